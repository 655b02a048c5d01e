package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/triton/internal/model"
)

const contentColumns = `id, name, type, url, default_duration, created_by, created_at, updated_at`

func CreateContent(name, contentType, url string, defaultDuration, createdBy int) (model.Content, error) {
	var c model.Content
	q := `
	INSERT INTO content (name, type, url, default_duration, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, now(), now())
	RETURNING ` + contentColumns + `;`
	if err := DB.Get(&c, q, name, contentType, url, defaultDuration, createdBy); err != nil {
		log.Error().Err(err).Msg("CreateContent failed")
		return model.Content{}, err
	}
	return c, nil
}

func GetContentByID(id int) (model.Content, error) {
	var c model.Content
	err := DB.Get(&c, `SELECT `+contentColumns+` FROM content WHERE id = $1;`, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Int("content_id", id).Msg("GetContentByID failed")
	}
	return c, err
}

func ListContent() ([]model.Content, error) {
	var out []model.Content
	if err := DB.Select(&out, `SELECT `+contentColumns+` FROM content ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListContent failed")
		return nil, err
	}
	return out, nil
}

func UpdateContent(id int, name, contentType, url *string, defaultDuration *int) error {
	_, err := DB.Exec(`
		UPDATE content
		SET name             = COALESCE($2, name),
		    type             = COALESCE($3, type),
		    url              = COALESCE($4, url),
		    default_duration = COALESCE($5, default_duration),
		    updated_at       = now()
		WHERE id = $1;`, id, name, contentType, url, defaultDuration)
	if err != nil {
		log.Error().Err(err).Int("content_id", id).Msg("UpdateContent failed")
	}
	return err
}

func DeleteContent(id int) error {
	_, err := DB.Exec(`DELETE FROM content WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("content_id", id).Msg("DeleteContent failed")
	}
	return err
}
