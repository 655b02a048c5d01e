package packets

import "github.com/Nixie-Tech-LLC/triton/internal/schedule"

type RegisterPairingCodeResponse struct {
	DeviceID string `json:"device_id"`
}

// NowPlayingResponse wraps the manifest; Playing is false (and Manifest nil)
// when no schedule is active for the screen.
type NowPlayingResponse struct {
	ScreenID int                `json:"screen_id"`
	Playing  bool               `json:"playing"`
	Manifest *schedule.Manifest `json:"manifest,omitempty"`
}
