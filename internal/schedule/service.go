package schedule

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/triton/internal/model"
)

// DefaultTimezoneKey is the system_settings key holding the fallback IANA
// timezone for screens that have none of their own.
const DefaultTimezoneKey = "default_timezone"

// Narrow store views so the engine is testable without a database;
// db.Store satisfies all of them.

type ScheduleStore interface {
	ListSchedulesByScreen(screenID int) ([]model.Schedule, error)
	ListSchedulesBySeries(seriesID string) ([]model.Schedule, error)
	GetScheduleByID(id int) (model.Schedule, error)
	CreateScheduleSeries(rows []model.Schedule) ([]model.Schedule, error)
	UpdateSchedule(id int, fields model.ScheduleUpdate) (model.Schedule, error)
	UpdateScheduleSeries(seriesID string, fields model.ScheduleUpdate) ([]model.Schedule, error)
	DeleteSchedule(id int) (bool, error)
	DeleteScheduleSeries(seriesID string) (int, error)
}

type PlaylistStore interface {
	GetPlaylistByID(id int) (model.Playlist, error)
	ListPlaylistItems(playlistID int) ([]model.PlaylistItem, error)
}

type ScreenStore interface {
	GetScreenByID(id int) (model.Screen, error)
}

type ContentStore interface {
	GetContentByID(id int) (model.Content, error)
}

type SettingStore interface {
	GetSystemSetting(key string) (string, error)
}

// Publisher pushes display-facing notifications after a mutation. Publish
// failures are the implementation's problem; the lifecycle never fails on
// them.
type Publisher interface {
	ScheduleUpdated(screenID int, reason string)
}

// Service owns the schedule lifecycle: validation, overlap and capacity
// checks, persistence and change notification.
type Service struct {
	schedules ScheduleStore
	playlists PlaylistStore
	screens   ScreenStore
	contents  ContentStore
	settings  SettingStore
	publisher Publisher
}

func NewService(
	schedules ScheduleStore,
	playlists PlaylistStore,
	screens ScreenStore,
	contents ContentStore,
	settings SettingStore,
	publisher Publisher,
) *Service {
	return &Service{
		schedules: schedules,
		playlists: playlists,
		screens:   screens,
		contents:  contents,
		settings:  settings,
		publisher: publisher,
	}
}

// CreateSeriesInput is one form submission: a shared window shape plus the
// weekdays it recurs on. One schedule row is created per weekday.
type CreateSeriesInput struct {
	Name       string
	PlaylistID int
	ScreenID   int
	DaysOfWeek []int
	StartDate  *string
	EndDate    *string
	StartTime  string
	EndTime    string
	Priority   int
	IsActive   bool
	CreatedBy  int
}

// CreateSeries validates the shape, verifies the playlist and screen exist,
// checks capacity once (the window is shared across the series) and overlap
// once per weekday, then persists all rows under a fresh series id. A
// single conflicting weekday aborts the whole series; nothing is written
// until every check has passed.
func (s *Service) CreateSeries(in CreateSeriesInput) ([]model.Schedule, error) {
	days, err := normalizeDays(in.DaysOfWeek)
	if err != nil {
		return nil, err
	}
	start, end, err := parseTimePair(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	if err := validateDatePair(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	if _, err := s.playlists.GetPlaylistByID(in.PlaylistID); err != nil {
		return nil, asNotFound(err, "playlist", strconv.Itoa(in.PlaylistID))
	}
	if _, err := s.screens.GetScreenByID(in.ScreenID); err != nil {
		return nil, asNotFound(err, "screen", strconv.Itoa(in.ScreenID))
	}

	items, err := s.playlists.ListPlaylistItems(in.PlaylistID)
	if err != nil {
		return nil, err
	}
	if err := CheckCapacity(start, end, PlaylistSeconds(items)); err != nil {
		return nil, err
	}

	existing, err := s.schedules.ListSchedulesByScreen(in.ScreenID)
	if err != nil {
		return nil, err
	}

	seriesID := uuid.NewString()
	rows := make([]model.Schedule, 0, len(days))
	for _, day := range days {
		row := model.Schedule{
			SeriesID:   seriesID,
			Name:       in.Name,
			PlaylistID: in.PlaylistID,
			ScreenID:   in.ScreenID,
			StartDate:  in.StartDate,
			EndDate:    in.EndDate,
			StartTime:  in.StartTime,
			EndTime:    in.EndTime,
			DayOfWeek:  day,
			Priority:   in.Priority,
			IsActive:   in.IsActive,
			CreatedBy:  in.CreatedBy,
		}
		conflict, err := FindConflict(row, existing, seriesID)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, &ConflictError{ScreenID: in.ScreenID, With: *conflict}
		}
		rows = append(rows, row)
	}

	created, err := s.schedules.CreateScheduleSeries(rows)
	if err != nil {
		return nil, err
	}
	s.notify(in.ScreenID, "schedule_created")
	return created, nil
}

// Update merges the provided fields onto one schedule row, or onto every
// row of its series when applySeries is set. Window or playlist changes
// re-run the capacity check; every affected weekday re-runs the overlap
// check before anything is written.
func (s *Service) Update(id int, fields model.ScheduleUpdate, applySeries bool) ([]model.Schedule, error) {
	current, err := s.schedules.GetScheduleByID(id)
	if err != nil {
		return nil, asNotFound(err, "schedule", strconv.Itoa(id))
	}
	if applySeries && fields.DayOfWeek != nil {
		return nil, &ValidationError{Message: "day_of_week cannot be changed for a whole series"}
	}

	targets := []model.Schedule{current}
	excludeSeries := ""
	if applySeries {
		if targets, err = s.schedules.ListSchedulesBySeries(current.SeriesID); err != nil {
			return nil, err
		}
		excludeSeries = current.SeriesID
	}

	existing, err := s.schedules.ListSchedulesByScreen(current.ScreenID)
	if err != nil {
		return nil, err
	}

	for _, target := range targets {
		candidate := merge(target, fields)
		w, err := parseWindow(candidate)
		if err != nil {
			return nil, err
		}
		if fields.PlaylistID != nil || fields.StartTime != nil || fields.EndTime != nil {
			if fields.PlaylistID != nil {
				if _, err := s.playlists.GetPlaylistByID(candidate.PlaylistID); err != nil {
					return nil, asNotFound(err, "playlist", strconv.Itoa(candidate.PlaylistID))
				}
			}
			items, err := s.playlists.ListPlaylistItems(candidate.PlaylistID)
			if err != nil {
				return nil, err
			}
			if err := CheckCapacity(w.start, w.end, PlaylistSeconds(items)); err != nil {
				return nil, err
			}
		}
		conflict, err := FindConflict(candidate, existing, excludeSeries)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, &ConflictError{ScreenID: current.ScreenID, With: *conflict}
		}
	}

	var updated []model.Schedule
	if applySeries {
		updated, err = s.schedules.UpdateScheduleSeries(current.SeriesID, fields)
	} else {
		var one model.Schedule
		one, err = s.schedules.UpdateSchedule(id, fields)
		updated = []model.Schedule{one}
	}
	if err != nil {
		return nil, err
	}
	s.notify(current.ScreenID, "schedule_updated")
	return updated, nil
}

// Delete removes one schedule row.
func (s *Service) Delete(id int) error {
	current, err := s.schedules.GetScheduleByID(id)
	if err != nil {
		return asNotFound(err, "schedule", strconv.Itoa(id))
	}
	ok, err := s.schedules.DeleteSchedule(id)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Resource: "schedule", ID: strconv.Itoa(id)}
	}
	s.notify(current.ScreenID, "schedule_deleted")
	return nil
}

// DeleteSeries removes every row sharing the series id and notifies each
// affected screen once.
func (s *Service) DeleteSeries(seriesID string) error {
	rows, err := s.schedules.ListSchedulesBySeries(seriesID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return &NotFoundError{Resource: "schedule series", ID: seriesID}
	}
	if _, err := s.schedules.DeleteScheduleSeries(seriesID); err != nil {
		return err
	}
	screens := map[int]bool{}
	for _, r := range rows {
		if !screens[r.ScreenID] {
			screens[r.ScreenID] = true
			s.notify(r.ScreenID, "schedule_deleted")
		}
	}
	return nil
}

// ActiveSchedule answers "what should this screen play at this instant",
// evaluated in the screen's timezone.
func (s *Service) ActiveSchedule(screenID int, at time.Time) (*model.Schedule, error) {
	screen, err := s.screens.GetScreenByID(screenID)
	if err != nil {
		return nil, asNotFound(err, "screen", strconv.Itoa(screenID))
	}
	rows, err := s.schedules.ListSchedulesByScreen(screenID)
	if err != nil {
		return nil, err
	}
	return ActiveAt(rows, at, s.locationFor(screen)), nil
}

// locationFor resolves the timezone window matching runs in: the screen's
// own zone, else the system default setting, else UTC.
func (s *Service) locationFor(screen model.Screen) *time.Location {
	if screen.Timezone != nil && *screen.Timezone != "" {
		if loc, err := time.LoadLocation(*screen.Timezone); err == nil {
			return loc
		}
		log.Warn().Int("screen_id", screen.ID).Str("timezone", *screen.Timezone).
			Msg("screen has an unknown timezone, falling back")
	}
	if s.settings != nil {
		if tz, err := s.settings.GetSystemSetting(DefaultTimezoneKey); err == nil && tz != "" {
			if loc, err := time.LoadLocation(tz); err == nil {
				return loc
			}
			log.Warn().Str("timezone", tz).Msg("default_timezone setting is not a valid IANA zone")
		}
	}
	return time.UTC
}

// NotifyScreen publishes a schedule_updated event outside the lifecycle
// paths, e.g. when a playlist's content changes under a live schedule.
func (s *Service) NotifyScreen(screenID int, reason string) {
	s.notify(screenID, reason)
}

func (s *Service) notify(screenID int, reason string) {
	if s.publisher == nil {
		return
	}
	s.publisher.ScheduleUpdated(screenID, reason)
}

func merge(row model.Schedule, fields model.ScheduleUpdate) model.Schedule {
	if fields.Name != nil {
		row.Name = *fields.Name
	}
	if fields.PlaylistID != nil {
		row.PlaylistID = *fields.PlaylistID
	}
	if fields.StartDate != nil {
		row.StartDate = fields.StartDate
	}
	if fields.EndDate != nil {
		row.EndDate = fields.EndDate
	}
	if fields.StartTime != nil {
		row.StartTime = *fields.StartTime
	}
	if fields.EndTime != nil {
		row.EndTime = *fields.EndTime
	}
	if fields.DayOfWeek != nil {
		row.DayOfWeek = *fields.DayOfWeek
	}
	if fields.Priority != nil {
		row.Priority = *fields.Priority
	}
	if fields.IsActive != nil {
		row.IsActive = *fields.IsActive
	}
	return row
}

func normalizeDays(days []int) ([]int, error) {
	if len(days) == 0 {
		return nil, &ValidationError{Message: "days_of_week must not be empty"}
	}
	seen := map[int]bool{}
	out := make([]int, 0, len(days))
	for _, d := range days {
		if !IsValidDayOfWeek(d) {
			return nil, &ValidationError{Message: "day_of_week must be between 0 and 6"}
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out, nil
}

func parseTimePair(startTime, endTime string) (TimeOfDay, TimeOfDay, error) {
	start, err := ParseTimeOfDay(startTime)
	if err != nil {
		return TimeOfDay{}, TimeOfDay{}, &ValidationError{Message: err.Error()}
	}
	end, err := ParseTimeOfDay(endTime)
	if err != nil {
		return TimeOfDay{}, TimeOfDay{}, &ValidationError{Message: err.Error()}
	}
	return start, end, nil
}

func validateDatePair(startDate, endDate *string) error {
	var start, end *Date
	if startDate != nil {
		d, err := ParseDate(*startDate)
		if err != nil {
			return &ValidationError{Message: err.Error()}
		}
		start = &d
	}
	if endDate != nil {
		d, err := ParseDate(*endDate)
		if err != nil {
			return &ValidationError{Message: err.Error()}
		}
		end = &d
	}
	if start != nil && end != nil && end.Before(*start) {
		return &ValidationError{Message: "start_date must not be after end_date"}
	}
	return nil
}

// asNotFound turns a missing-row error into the domain NotFoundError and
// passes everything else through.
func asNotFound(err error, resource, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return err
}
