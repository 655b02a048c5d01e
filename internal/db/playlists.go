package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/triton/internal/model"
)

func CreatePlaylist(name string, description *string, createdBy int) (model.Playlist, error) {
	var p model.Playlist
	const q = `
	INSERT INTO playlists (name, description, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id, name, description, created_by, created_at, updated_at;`
	if err := DB.Get(&p, q, name, description, createdBy); err != nil {
		log.Error().Err(err).Msg("CreatePlaylist failed")
		return model.Playlist{}, err
	}
	return p, nil
}

func GetPlaylistByID(id int) (model.Playlist, error) {
	var p model.Playlist
	const q = `
	SELECT id, name, description, created_by, created_at, updated_at
	FROM playlists WHERE id = $1;`
	if err := DB.Get(&p, q, id); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Int("playlist_id", id).Msg("GetPlaylistByID failed")
		}
		return model.Playlist{}, err
	}
	items, err := ListPlaylistItems(id)
	if err != nil {
		return p, err
	}
	p.Items = items
	return p, nil
}

func ListPlaylists() ([]model.Playlist, error) {
	var out []model.Playlist
	const q = `SELECT id, name, description, created_by, created_at, updated_at FROM playlists ORDER BY id;`
	if err := DB.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("ListPlaylists failed")
		return nil, err
	}
	for i := range out {
		items, err := ListPlaylistItems(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func UpdatePlaylist(id int, name, description *string) error {
	_, err := DB.Exec(`
		UPDATE playlists
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    updated_at  = now()
		WHERE id = $1;`, id, name, description)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("UpdatePlaylist failed")
	}
	return err
}

func DeletePlaylist(id int) error {
	_, err := DB.Exec(`DELETE FROM playlists WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("DeletePlaylist failed")
	}
	return err
}

func ListPlaylistItems(playlistID int) ([]model.PlaylistItem, error) {
	var items []model.PlaylistItem
	const q = `
	SELECT id, playlist_id, content_id, position, duration, created_at
	FROM playlist_items
	WHERE playlist_id = $1
	ORDER BY position;`
	if err := DB.Select(&items, q, playlistID); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("ListPlaylistItems failed")
		return nil, err
	}
	return items, nil
}

func AddItemToPlaylist(playlistID, contentID, position, duration int) (model.PlaylistItem, error) {
	var it model.PlaylistItem
	const q = `
	INSERT INTO playlist_items (playlist_id, content_id, position, duration, created_at)
	VALUES ($1, $2, $3, $4, now())
	RETURNING id, playlist_id, content_id, position, duration, created_at;`
	if err := DB.Get(&it, q, playlistID, contentID, position, duration); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("AddItemToPlaylist failed")
		return model.PlaylistItem{}, err
	}
	return it, nil
}

func UpdatePlaylistItem(itemID int, position, duration *int) error {
	_, err := DB.Exec(`
		UPDATE playlist_items
		SET position = COALESCE($2, position),
		    duration = COALESCE($3, duration)
		WHERE id = $1;`, itemID, position, duration)
	if err != nil {
		log.Error().Err(err).Int("item_id", itemID).Msg("UpdatePlaylistItem failed")
	}
	return err
}

func RemovePlaylistItem(itemID int) error {
	_, err := DB.Exec(`DELETE FROM playlist_items WHERE id = $1;`, itemID)
	if err != nil {
		log.Error().Err(err).Int("item_id", itemID).Msg("RemovePlaylistItem failed")
	}
	return err
}

// ReorderPlaylistItems rewrites positions to match the given id order.
func ReorderPlaylistItems(playlistID int, itemIDs []int) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("begin reorder: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for pos, itemID := range itemIDs {
		if _, err := tx.Exec(`
			UPDATE playlist_items SET position = $3
			WHERE id = $2 AND playlist_id = $1;`, playlistID, itemID, pos); err != nil {
			log.Error().Err(err).Int("playlist_id", playlistID).Int("item_id", itemID).
				Msg("ReorderPlaylistItems failed")
			return err
		}
	}
	return tx.Commit()
}
