package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/triton/internal/model"
)

const screenColumns = `
	id, device_id, name, location, timezone, screen_width, screen_height,
	paired, created_by, created_at, updated_at`

func GetScreenByID(id int) (model.Screen, error) {
	var screen model.Screen
	err := DB.Get(&screen, `SELECT `+screenColumns+` FROM screens WHERE id = $1;`, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Int("screen_id", id).Msg("GetScreenByID failed")
	}
	return screen, err
}

func GetScreenByDeviceID(deviceID string) (model.Screen, error) {
	var screen model.Screen
	err := DB.Get(&screen, `SELECT `+screenColumns+` FROM screens WHERE device_id = $1;`, deviceID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Str("device_id", deviceID).Msg("GetScreenByDeviceID failed")
	}
	return screen, err
}

func IsScreenPairedByDeviceID(deviceID string) (bool, error) {
	var paired bool
	err := DB.Get(&paired, `SELECT paired FROM screens WHERE device_id = $1;`, deviceID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		log.Error().Err(err).Str("device_id", deviceID).Msg("IsScreenPairedByDeviceID failed")
	}
	return paired, err
}

func ListScreens() ([]model.Screen, error) {
	var screens []model.Screen
	err := DB.Select(&screens, `SELECT `+screenColumns+` FROM screens ORDER BY id;`)
	if err != nil {
		log.Error().Err(err).Msg("ListScreens failed")
		return nil, err
	}
	return screens, nil
}

func CreateScreen(name string, location, timezone *string, createdBy int) (model.Screen, error) {
	var s model.Screen
	q := `
	INSERT INTO screens (name, location, timezone, paired, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, false, $4, now(), now())
	RETURNING ` + screenColumns + `;`
	if err := DB.Get(&s, q, name, location, timezone, createdBy); err != nil {
		log.Error().Err(err).Msg("CreateScreen failed")
		return model.Screen{}, err
	}
	return s, nil
}

func UpdateScreen(id int, name, location, timezone *string) error {
	_, err := DB.Exec(`
		UPDATE screens
		SET name     = COALESCE($2, name),
		    location = COALESCE($3, location),
		    timezone = COALESCE($4, timezone),
		    updated_at = now()
		WHERE id = $1;`, id, name, location, timezone)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("UpdateScreen failed")
	}
	return err
}

func PairScreen(id int, deviceID string) error {
	_, err := DB.Exec(`
		UPDATE screens
		SET paired = TRUE,
		    device_id = $2,
		    updated_at = now()
		WHERE id = $1;`, id, deviceID)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("PairScreen failed")
	}
	return err
}

func SetScreenDimensions(id int, width, height *int) error {
	_, err := DB.Exec(`
		UPDATE screens
		SET screen_width  = COALESCE($2, screen_width),
		    screen_height = COALESCE($3, screen_height),
		    updated_at = now()
		WHERE id = $1;`, id, width, height)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("SetScreenDimensions failed")
	}
	return err
}

func DeleteScreen(id int) error {
	_, err := DB.Exec(`DELETE FROM screens WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("DeleteScreen failed")
	}
	return err
}
