package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/triton/internal/model"
)

const scheduleColumns = `
	id, series_id, name, playlist_id, screen_id,
	start_date, end_date, start_time, end_time,
	day_of_week, priority, is_active, created_by, created_at, updated_at`

func ListSchedules(ownerID int) ([]model.Schedule, error) {
	var out []model.Schedule
	q := `SELECT ` + scheduleColumns + ` FROM schedules WHERE created_by = $1 ORDER BY id;`
	if err := DB.Select(&out, q, ownerID); err != nil {
		log.Error().Err(err).Msg("ListSchedules failed")
		return nil, err
	}
	return out, nil
}

func ListSchedulesByScreen(screenID int) ([]model.Schedule, error) {
	var out []model.Schedule
	q := `SELECT ` + scheduleColumns + ` FROM schedules WHERE screen_id = $1 ORDER BY id;`
	if err := DB.Select(&out, q, screenID); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("ListSchedulesByScreen failed")
		return nil, err
	}
	return out, nil
}

func ListSchedulesBySeries(seriesID string) ([]model.Schedule, error) {
	var out []model.Schedule
	q := `SELECT ` + scheduleColumns + ` FROM schedules WHERE series_id = $1 ORDER BY day_of_week;`
	if err := DB.Select(&out, q, seriesID); err != nil {
		log.Error().Err(err).Str("series_id", seriesID).Msg("ListSchedulesBySeries failed")
		return nil, err
	}
	return out, nil
}

func GetScheduleByID(id int) (model.Schedule, error) {
	var s model.Schedule
	q := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1;`
	err := DB.Get(&s, q, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Int("schedule_id", id).Msg("GetScheduleByID failed")
	}
	return s, err
}

// CreateScheduleSeries inserts every row of a series in one transaction, so
// a failure on any weekday leaves nothing behind.
func CreateScheduleSeries(rows []model.Schedule) ([]model.Schedule, error) {
	tx, err := DB.Beginx()
	if err != nil {
		return nil, fmt.Errorf("begin series insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := `
	INSERT INTO schedules
	  (series_id, name, playlist_id, screen_id,
	   start_date, end_date, start_time, end_time,
	   day_of_week, priority, is_active, created_by, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now(),now())
	RETURNING ` + scheduleColumns + `;`

	out := make([]model.Schedule, 0, len(rows))
	for _, r := range rows {
		var created model.Schedule
		if err := tx.Get(&created, q,
			r.SeriesID, r.Name, r.PlaylistID, r.ScreenID,
			r.StartDate, r.EndDate, r.StartTime, r.EndTime,
			r.DayOfWeek, r.Priority, r.IsActive, r.CreatedBy,
		); err != nil {
			log.Error().Err(err).Str("series_id", r.SeriesID).Int("day_of_week", r.DayOfWeek).
				Msg("CreateScheduleSeries insert failed")
			return nil, err
		}
		out = append(out, created)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit series insert: %w", err)
	}
	return out, nil
}

const scheduleUpdateSet = `
	name        = COALESCE($2, name),
	playlist_id = COALESCE($3, playlist_id),
	start_date  = COALESCE($4, start_date),
	end_date    = COALESCE($5, end_date),
	start_time  = COALESCE($6, start_time),
	end_time    = COALESCE($7, end_time),
	day_of_week = COALESCE($8, day_of_week),
	priority    = COALESCE($9, priority),
	is_active   = COALESCE($10, is_active),
	updated_at  = now()`

func UpdateSchedule(id int, fields model.ScheduleUpdate) (model.Schedule, error) {
	var s model.Schedule
	q := `UPDATE schedules SET ` + scheduleUpdateSet + ` WHERE id = $1 RETURNING ` + scheduleColumns + `;`
	err := DB.Get(&s, q, id,
		fields.Name, fields.PlaylistID, fields.StartDate, fields.EndDate,
		fields.StartTime, fields.EndTime, fields.DayOfWeek, fields.Priority, fields.IsActive)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Int("schedule_id", id).Msg("UpdateSchedule failed")
	}
	return s, err
}

// UpdateScheduleSeries applies the same partial update to every row of the
// series in a single statement.
func UpdateScheduleSeries(seriesID string, fields model.ScheduleUpdate) ([]model.Schedule, error) {
	var out []model.Schedule
	q := `UPDATE schedules SET ` + scheduleUpdateSet + ` WHERE series_id = $1 RETURNING ` + scheduleColumns + `;`
	err := DB.Select(&out, q, seriesID,
		fields.Name, fields.PlaylistID, fields.StartDate, fields.EndDate,
		fields.StartTime, fields.EndTime, fields.DayOfWeek, fields.Priority, fields.IsActive)
	if err != nil {
		log.Error().Err(err).Str("series_id", seriesID).Msg("UpdateScheduleSeries failed")
		return nil, err
	}
	return out, nil
}

func DeleteSchedule(id int) (bool, error) {
	res, err := DB.Exec(`DELETE FROM schedules WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", id).Msg("DeleteSchedule failed")
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func DeleteScheduleSeries(seriesID string) (int, error) {
	res, err := DB.Exec(`DELETE FROM schedules WHERE series_id = $1;`, seriesID)
	if err != nil {
		log.Error().Err(err).Str("series_id", seriesID).Msg("DeleteScheduleSeries failed")
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func CountSchedulesByPlaylist(playlistID int) (int, error) {
	var n int
	err := DB.Get(&n, `SELECT count(*) FROM schedules WHERE playlist_id = $1;`, playlistID)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("CountSchedulesByPlaylist failed")
		return 0, err
	}
	return n, nil
}

func ListSchedulesByPlaylist(playlistID int) ([]model.Schedule, error) {
	var out []model.Schedule
	q := `SELECT ` + scheduleColumns + ` FROM schedules WHERE playlist_id = $1 ORDER BY id;`
	if err := DB.Select(&out, q, playlistID); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("ListSchedulesByPlaylist failed")
		return nil, err
	}
	return out, nil
}
