package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/triton/internal/db"
	"github.com/Nixie-Tech-LLC/triton/internal/http/api"
	"github.com/Nixie-Tech-LLC/triton/internal/http/api/tv/packets"
	"github.com/Nixie-Tech-LLC/triton/internal/redis"
)

// pairing codes expire if no admin claims them
const pairingCodeTTL = 15 * time.Minute

// PairingModule mounts the public endpoint an unpaired device hits on boot.
func PairingModule(store db.Store) api.Module {
	ctl := newTvController(store, nil)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/register", ctl.registerPairingCode)
	})
}

// registerPairingCode stores code -> device_id in redis so an admin can claim
// the device through /screens/pair.
func (t *TvController) registerPairingCode(ctx *gin.Context) (any, *api.APIError) {
	var request packets.RegisterPairingCodeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	paired, err := t.store.IsScreenPairedByDeviceID(request.DeviceID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not check pairing state"}
	}
	if paired {
		log.Warn().Str("device_id", request.DeviceID).Msg("device already paired")
		return nil, &api.APIError{Code: http.StatusConflict, Message: "screen is already paired"}
	}

	redis.Set(ctx, request.PairingCode, request.DeviceID, pairingCodeTTL)

	return packets.RegisterPairingCodeResponse{DeviceID: request.DeviceID}, nil
}
