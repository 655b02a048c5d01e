package model

import "time"

// Screen represents a display device in the system.
type Screen struct {
	ID           int       `db:"id"            json:"id"`
	DeviceID     *string   `db:"device_id"     json:"device_id"`
	Name         string    `db:"name"          json:"name"`
	Location     *string   `db:"location"      json:"location"`
	Timezone     *string   `db:"timezone"      json:"timezone"` // IANA name; nil falls back to the system default
	ScreenWidth  *int      `db:"screen_width"  json:"screen_width"`
	ScreenHeight *int      `db:"screen_height" json:"screen_height"`
	Paired       bool      `db:"paired"        json:"paired"`
	CreatedBy    int       `db:"created_by"    json:"created_by"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updated_at"`
}
