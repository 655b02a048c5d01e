package model

import "time"

// Schedule is one weekday occurrence of a recurring broadcast window.
// A recurrence spanning several weekdays is stored as one row per weekday,
// all sharing series_id; day_of_week is the only column that varies inside
// a series.
type Schedule struct {
	ID         int       `db:"id"          json:"id"`
	SeriesID   string    `db:"series_id"   json:"series_id"`
	Name       string    `db:"name"        json:"name"`
	PlaylistID int       `db:"playlist_id" json:"playlist_id"`
	ScreenID   int       `db:"screen_id"   json:"screen_id"`
	StartDate  *string   `db:"start_date"  json:"start_date"` // YYYY-MM-DD, nil = unbounded
	EndDate    *string   `db:"end_date"    json:"end_date"`   // YYYY-MM-DD, nil = unbounded
	StartTime  string    `db:"start_time"  json:"start_time"` // HH:MM
	EndTime    string    `db:"end_time"    json:"end_time"`   // HH:MM; less than start_time means overnight
	DayOfWeek  int       `db:"day_of_week" json:"day_of_week"` // 0 = Sunday
	Priority   int       `db:"priority"    json:"priority"`
	IsActive   bool      `db:"is_active"   json:"is_active"`
	CreatedBy  int       `db:"created_by"  json:"created_by"`
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"  json:"updated_at"`
}

// ScheduleUpdate carries a partial update; nil fields are left unchanged.
type ScheduleUpdate struct {
	Name       *string `json:"name"`
	PlaylistID *int    `json:"playlist_id"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	DayOfWeek  *int    `json:"day_of_week"`
	Priority   *int    `json:"priority"`
	IsActive   *bool   `json:"is_active"`
}
