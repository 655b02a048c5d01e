package packets

// CreateScheduleRequest creates one schedule row per weekday; the rows
// share a series id and differ only in day_of_week.
type CreateScheduleRequest struct {
	Name       string  `json:"name" binding:"required"`
	PlaylistID int     `json:"playlist_id" binding:"required"`
	ScreenID   int     `json:"screen_id" binding:"required"`
	DaysOfWeek []int   `json:"days_of_week" binding:"required"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	StartTime  string  `json:"start_time" binding:"required"`
	EndTime    string  `json:"end_time" binding:"required"`
	Priority   int     `json:"priority"`
	IsActive   *bool   `json:"is_active"`
}

// UpdateScheduleRequest is a partial update; scope=series on the URL
// applies it to every row of the schedule's series.
type UpdateScheduleRequest struct {
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

type CreateScreenRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
	Timezone *string `json:"timezone"`
}

type UpdateScreenRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Timezone *string `json:"timezone"`
}

type PairScreenRequest struct {
	PairingCode string `json:"code" binding:"required"`
	ScreenID    int    `json:"screen_id" binding:"required"`
}

type CreatePlaylistRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type UpdatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type AddPlaylistItemRequest struct {
	ContentID int `json:"content_id" binding:"required"`
	Position  int `json:"position"`
	Duration  int `json:"duration" binding:"required"` // seconds
}

type UpdatePlaylistItemRequest struct {
	Position *int `json:"position"`
	Duration *int `json:"duration"`
}

type ReorderItemsRequest struct {
	ItemIDs []int `json:"item_ids" binding:"required"`
}

type UpdateContentRequest struct {
	Name            *string `json:"name"`
	Type            *string `json:"type"`
	URL             *string `json:"url"`
	DefaultDuration *int    `json:"default_duration"`
}
