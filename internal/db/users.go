package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/triton/internal/model"
)

// CreateUser inserts a new user and returns the new id.
func CreateUser(email, hashedPassword string, name *string) (int, error) {
	var newID int
	const q = `
	INSERT INTO users (email, hashed_password, name, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id;`
	if err := DB.Get(&newID, q, email, hashedPassword, name); err != nil {
		log.Error().Err(err).Msg("CreateUser failed")
		return 0, err
	}
	return newID, nil
}

// GetUserByEmail returns sql.ErrNoRows when no user matches.
func GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	const q = `
	SELECT id, email, hashed_password, name, created_at, updated_at
	FROM users WHERE email = $1;`
	if err := DB.Get(&u, q, email); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Msg("GetUserByEmail failed")
		}
		return nil, err
	}
	return &u, nil
}

func GetUserByID(id int) (*model.User, error) {
	var u model.User
	const q = `
	SELECT id, email, hashed_password, name, created_at, updated_at
	FROM users WHERE id = $1;`
	if err := DB.Get(&u, q, id); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Int("user_id", id).Msg("GetUserByID failed")
		}
		return nil, err
	}
	return &u, nil
}

func UpdateUserProfile(id int, email string, name *string) error {
	res, err := DB.Exec(`
		UPDATE users
		SET email = $2, name = $3, updated_at = now()
		WHERE id = $1;`, id, email, name)
	if err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("UpdateUserProfile failed")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("no such user")
	}
	return nil
}
