package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"
)

// GetSystemSetting returns the empty string when the key is unset.
func GetSystemSetting(key string) (string, error) {
	var value string
	err := DB.Get(&value, `SELECT value FROM system_settings WHERE key = $1;`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("GetSystemSetting failed")
		return "", err
	}
	return value, nil
}

func SetSystemSetting(key, value string) error {
	_, err := DB.Exec(`
		INSERT INTO system_settings (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now();`, key, value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("SetSystemSetting failed")
	}
	return err
}
