package model

import "time"

// SystemSetting is a single key/value runtime setting, e.g. default_timezone.
type SystemSetting struct {
	Key       string    `db:"key"        json:"key"`
	Value     string    `db:"value"      json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
