package packets

import "time"

// ScheduleResponse mirrors model.Schedule but flattens times to RFC3339.
type ScheduleResponse struct {
	ID         int     `json:"id"`
	SeriesID   string  `json:"series_id"`
	Name       string  `json:"name"`
	PlaylistID int     `json:"playlist_id"`
	ScreenID   int     `json:"screen_id"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	DayOfWeek  int     `json:"day_of_week"`
	Priority   int     `json:"priority"`
	IsActive   bool    `json:"is_active"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

type ScreenResponse struct {
	ID           int     `json:"id"`
	DeviceID     *string `json:"device_id"`
	Name         string  `json:"name"`
	Location     *string `json:"location"`
	Timezone     *string `json:"timezone"`
	ScreenWidth  *int    `json:"screen_width"`
	ScreenHeight *int    `json:"screen_height"`
	Paired       bool    `json:"paired"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ContentResponse struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	URL             string `json:"url"`
	DefaultDuration int    `json:"default_duration"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type PlaylistItemResponse struct {
	ID        int       `json:"id"`
	ContentID int       `json:"content_id"`
	Position  int       `json:"position"`
	Duration  int       `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
}

type PlaylistResponse struct {
	ID          int                    `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	CreatedBy   int                    `json:"created_by"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	Items       []PlaylistItemResponse `json:"items"`
}
