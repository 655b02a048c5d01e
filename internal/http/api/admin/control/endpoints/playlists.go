package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/triton/internal/db"
	"github.com/Nixie-Tech-LLC/triton/internal/http/api"
	"github.com/Nixie-Tech-LLC/triton/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/triton/internal/model"
	"github.com/Nixie-Tech-LLC/triton/internal/schedule"
)

type PlaylistController struct {
	store   db.Store
	service *schedule.Service
}

func newPlaylistController(store db.Store, service *schedule.Service) *PlaylistController {
	return &PlaylistController{store: store, service: service}
}

// PlaylistModule mounts all authenticated /playlists endpoints.
func PlaylistModule(store db.Store, service *schedule.Service) api.Module {
	ctl := newPlaylistController(store, service)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/playlists", ctl.listPlaylists)
		c.POST("/playlists", ctl.createPlaylist)
		c.GET("/playlists/:id", ctl.getPlaylist)
		c.PUT("/playlists/:id", ctl.updatePlaylist)
		c.DELETE("/playlists/:id", ctl.deletePlaylist)

		c.POST("/playlists/:id/items", ctl.addItem)
		c.PUT("/playlists/:id/items/:item_id", ctl.updateItem)
		c.DELETE("/playlists/:id/items/:item_id", ctl.removeItem)
		c.GET("/playlists/:id/items", ctl.listItems)
		c.PUT("/playlists/:id/items", ctl.reorderItems)
	})
}

// notifyScreensPlaylistUpdated tells every screen whose schedule uses this
// playlist that its content changed.
func (p *PlaylistController) notifyScreensPlaylistUpdated(playlistID int) {
	rows, err := p.store.ListSchedulesByPlaylist(playlistID)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).
			Msg("failed to list schedules for playlist notification")
		return
	}
	seen := map[int]bool{}
	for _, r := range rows {
		if seen[r.ScreenID] {
			continue
		}
		seen[r.ScreenID] = true
		p.service.NotifyScreen(r.ScreenID, "playlist_updated")
	}
}

func mapPlaylist(pl model.Playlist) packets.PlaylistResponse {
	items := make([]packets.PlaylistItemResponse, len(pl.Items))
	for i, it := range pl.Items {
		items[i] = mapItem(it)
	}

	var desc string
	if pl.Description != nil {
		desc = *pl.Description
	}

	return packets.PlaylistResponse{
		ID:          pl.ID,
		Name:        pl.Name,
		Description: desc,
		CreatedBy:   pl.CreatedBy,
		CreatedAt:   pl.CreatedAt,
		UpdatedAt:   pl.UpdatedAt,
		Items:       items,
	}
}

func mapItem(it model.PlaylistItem) packets.PlaylistItemResponse {
	return packets.PlaylistItemResponse{
		ID:        it.ID,
		ContentID: it.ContentID,
		Position:  it.Position,
		Duration:  it.Duration,
		CreatedAt: it.CreatedAt,
	}
}

func (p *PlaylistController) listPlaylists(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := p.store.ListPlaylists()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list playlists"}
	}

	var out []packets.PlaylistResponse
	for _, pl := range all {
		if pl.CreatedBy != user.ID {
			continue
		}
		out = append(out, mapPlaylist(pl))
	}
	return out, nil
}

func (p *PlaylistController) createPlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreatePlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	pl, err := p.store.CreatePlaylist(request.Name, request.Description, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create playlist"}
	}
	return mapPlaylist(pl), nil
}

// ownedPlaylist loads a playlist and enforces ownership.
func (p *PlaylistController) ownedPlaylist(ctx *gin.Context, user *model.User) (model.Playlist, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return model.Playlist{}, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	pl, err := p.store.GetPlaylistByID(id)
	if err != nil {
		return model.Playlist{}, &api.APIError{Code: http.StatusNotFound, Message: "playlist not found"}
	}
	if pl.CreatedBy != user.ID {
		return model.Playlist{}, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return pl, nil
}

func (p *PlaylistController) getPlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	pl, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return mapPlaylist(pl), nil
}

func (p *PlaylistController) updatePlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	pl, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdatePlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := p.store.UpdatePlaylist(pl.ID, request.Name, request.Description); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update playlist"}
	}

	updated, err := p.store.GetPlaylistByID(pl.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not fetch playlist"}
	}
	return mapPlaylist(updated), nil
}

func (p *PlaylistController) deletePlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	pl, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	// refuse while schedules still reference it
	n, err := p.store.CountSchedulesByPlaylist(pl.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not check playlist usage"}
	}
	if n > 0 {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "playlist is referenced by schedules"}
	}

	if err := p.store.DeletePlaylist(pl.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete playlist"}
	}
	return gin.H{"message": "deleted"}, nil
}

// addItem rejects items that would overflow every schedule window currently
// bound to this playlist.
func (p *PlaylistController) addItem(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	pl, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.AddPlaylistItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := p.store.GetContentByID(request.ContentID); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "content not found"}
	}

	if apiErr := p.checkScheduleCapacity(pl.ID, request.Duration); apiErr != nil {
		return nil, apiErr
	}

	it, err := p.store.AddItemToPlaylist(pl.ID, request.ContentID, request.Position, request.Duration)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not add item"}
	}

	p.notifyScreensPlaylistUpdated(pl.ID)
	return mapItem(it), nil
}

// checkScheduleCapacity verifies that the playlist still fits every
// schedule window referencing it after growing by extraSeconds.
func (p *PlaylistController) checkScheduleCapacity(playlistID, extraSeconds int) *api.APIError {
	items, err := p.store.ListPlaylistItems(playlistID)
	if err != nil {
		return &api.APIError{Code: http.StatusInternalServerError, Message: "could not list items"}
	}
	total := schedule.PlaylistSeconds(items) + extraSeconds

	rows, err := p.store.ListSchedulesByPlaylist(playlistID)
	if err != nil {
		return &api.APIError{Code: http.StatusInternalServerError, Message: "could not list schedules"}
	}
	for _, r := range rows {
		start, err1 := schedule.ParseTimeOfDay(r.StartTime)
		end, err2 := schedule.ParseTimeOfDay(r.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if err := schedule.CheckCapacity(start, end, total); err != nil {
			return &api.APIError{Code: http.StatusUnprocessableEntity, Message: err.Error()}
		}
	}
	return nil
}

func (p *PlaylistController) updateItem(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	pl, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	itemID, err := strconv.Atoi(ctx.Param("item_id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid item id"}
	}

	var request packets.UpdatePlaylistItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := p.store.UpdatePlaylistItem(itemID, request.Position, request.Duration); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update item"}
	}

	p.notifyScreensPlaylistUpdated(pl.ID)
	return gin.H{"message": "updated"}, nil
}

func (p *PlaylistController) removeItem(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	pl, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	itemID, err := strconv.Atoi(ctx.Param("item_id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid item id"}
	}

	if err := p.store.RemovePlaylistItem(itemID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not remove item"}
	}

	p.notifyScreensPlaylistUpdated(pl.ID)
	return gin.H{"message": "removed"}, nil
}

func (p *PlaylistController) listItems(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	pl, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	items, err := p.store.ListPlaylistItems(pl.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list items"}
	}

	out := make([]packets.PlaylistItemResponse, len(items))
	for i, it := range items {
		out[i] = mapItem(it)
	}
	return out, nil
}

func (p *PlaylistController) reorderItems(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	pl, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.ReorderItemsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := p.store.ReorderPlaylistItems(pl.ID, request.ItemIDs); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not reorder items"}
	}

	p.notifyScreensPlaylistUpdated(pl.ID)
	return gin.H{"message": "reordered"}, nil
}
