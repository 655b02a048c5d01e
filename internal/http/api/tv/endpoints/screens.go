package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/triton/internal/db"
	"github.com/Nixie-Tech-LLC/triton/internal/http/api"
	"github.com/Nixie-Tech-LLC/triton/internal/http/api/tv/packets"
	"github.com/Nixie-Tech-LLC/triton/internal/schedule"
)

type TvController struct {
	store   db.Store
	service *schedule.Service
}

func newTvController(store db.Store, service *schedule.Service) *TvController {
	return &TvController{store: store, service: service}
}

// ScreenModule mounts the public device-facing endpoints. Devices identify
// themselves by device_id, not by admin JWT.
func ScreenModule(store db.Store, service *schedule.Service) api.Module {
	ctl := newTvController(store, service)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/screens/:device_id/now_playing", ctl.nowPlaying)
		c.PUBLIC_POST("/screens/dimensions", ctl.reportDimensions)
	})
}

// nowPlaying resolves the device's active schedule into a playable manifest.
// An unknown device gets 401 rather than 404 so probes can't enumerate ids.
func (t *TvController) nowPlaying(ctx *gin.Context) (any, *api.APIError) {
	deviceID := ctx.Param("device_id")
	if deviceID == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "device_id is required"}
	}

	screen, err := t.store.GetScreenByDeviceID(deviceID)
	if err != nil {
		log.Warn().Str("device_id", deviceID).Msg("now_playing from unknown device")
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "unauthorized device"}
	}

	manifest, err := t.service.Manifest(ctx.Request.Context(), screen.ID, time.Now())
	if err != nil {
		log.Error().Err(err).Int("screen_id", screen.ID).Msg("manifest resolution failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not resolve manifest"}
	}

	return packets.NowPlayingResponse{
		ScreenID: screen.ID,
		Playing:  manifest != nil,
		Manifest: manifest,
	}, nil
}

// reportDimensions records the panel size a paired device announces.
func (t *TvController) reportDimensions(ctx *gin.Context) (any, *api.APIError) {
	var request packets.ReportDimensionsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	screen, err := t.store.GetScreenByDeviceID(request.DeviceID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "unauthorized device"}
	}

	if err := t.store.SetScreenDimensions(screen.ID, &request.Width, &request.Height); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not store dimensions"}
	}
	return gin.H{"message": "ok"}, nil
}
