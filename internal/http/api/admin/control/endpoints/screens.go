package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/triton/internal/db"
	"github.com/Nixie-Tech-LLC/triton/internal/http/api"
	"github.com/Nixie-Tech-LLC/triton/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/triton/internal/model"
	redisclient "github.com/Nixie-Tech-LLC/triton/internal/redis"
)

type ScreenController struct {
	store db.Store
}

func newScreenController(store db.Store) *ScreenController {
	return &ScreenController{store: store}
}

func ScreenModule(store db.Store) api.Module {
	ctl := newScreenController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/screens", ctl.listScreens)
		c.POST("/screens", ctl.createScreen)
		c.GET("/screens/:id", ctl.getScreen)
		c.PUT("/screens/:id", ctl.updateScreen)
		c.DELETE("/screens/:id", ctl.deleteScreen)

		// claim a device that registered a pairing code
		c.POST("/screens/pair", ctl.pairScreen)
	})
}

func mapScreen(s model.Screen) packets.ScreenResponse {
	return packets.ScreenResponse{
		ID:           s.ID,
		DeviceID:     s.DeviceID,
		Name:         s.Name,
		Location:     s.Location,
		Timezone:     s.Timezone,
		ScreenWidth:  s.ScreenWidth,
		ScreenHeight: s.ScreenHeight,
		Paired:       s.Paired,
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    s.UpdatedAt.Format(time.RFC3339),
	}
}

func (t *ScreenController) listScreens(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := t.store.ListScreens()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list screens"}
	}

	out := make([]packets.ScreenResponse, 0, len(all))
	for _, s := range all {
		if s.CreatedBy != user.ID {
			continue
		}
		out = append(out, mapScreen(s))
	}
	return out, nil
}

func (t *ScreenController) createScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if request.Timezone != nil {
		if _, err := time.LoadLocation(*request.Timezone); err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown timezone"}
		}
	}

	screen, err := t.store.CreateScreen(request.Name, request.Location, request.Timezone, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create screen"}
	}
	return mapScreen(screen), nil
}

func (t *ScreenController) getScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	screen, err := t.store.GetScreenByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}
	if screen.CreatedBy != user.ID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return mapScreen(screen), nil
}

func (t *ScreenController) updateScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	screen, err := t.store.GetScreenByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}
	if screen.CreatedBy != user.ID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}

	var request packets.UpdateScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if request.Timezone != nil {
		if _, err := time.LoadLocation(*request.Timezone); err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown timezone"}
		}
	}

	if err := t.store.UpdateScreen(id, request.Name, request.Location, request.Timezone); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update screen"}
	}

	updated, err := t.store.GetScreenByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not fetch screen"}
	}
	return mapScreen(updated), nil
}

func (t *ScreenController) deleteScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	screen, err := t.store.GetScreenByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}
	if screen.CreatedBy != user.ID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}

	if err := t.store.DeleteScreen(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete screen"}
	}
	return gin.H{"message": "deleted"}, nil
}

// pairScreen claims the device id a TV registered under a pairing code.
func (t *ScreenController) pairScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.PairScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	screen, err := t.store.GetScreenByID(request.ScreenID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}
	if screen.CreatedBy != user.ID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}

	deviceID, err := redisclient.Get(ctx, request.PairingCode)
	if err != nil || deviceID == "" {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "pairing code not found"}
	}

	if err := t.store.PairScreen(request.ScreenID, deviceID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not pair screen"}
	}
	redisclient.Delete(ctx, request.PairingCode)

	log.Info().Int("screen_id", request.ScreenID).Str("device_id", deviceID).Msg("screen paired")
	return gin.H{"message": "paired"}, nil
}
