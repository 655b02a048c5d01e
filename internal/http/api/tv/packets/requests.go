package packets

// RegisterPairingCodeRequest is what an unpaired device posts on boot.
type RegisterPairingCodeRequest struct {
	PairingCode string `json:"code" binding:"required"`
	DeviceID    string `json:"device_id" binding:"required"`
}

// ReportDimensionsRequest lets a paired device report its panel size.
type ReportDimensionsRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
	Width    int    `json:"width" binding:"required,gt=0"`
	Height   int    `json:"height" binding:"required,gt=0"`
}
