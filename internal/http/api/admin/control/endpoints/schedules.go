package endpoints

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/triton/internal/db"
	"github.com/Nixie-Tech-LLC/triton/internal/http/api"
	"github.com/Nixie-Tech-LLC/triton/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/triton/internal/model"
	"github.com/Nixie-Tech-LLC/triton/internal/schedule"
)

type ScheduleController struct {
	store   db.Store
	service *schedule.Service
}

func NewScheduleController(store db.Store, service *schedule.Service) *ScheduleController {
	return &ScheduleController{store: store, service: service}
}

func ScheduleModule(store db.Store, service *schedule.Service) api.Module {
	ctl := NewScheduleController(store, service)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedules", ctl.listSchedules)
		c.POST("/schedules", ctl.createSchedule)
		c.GET("/schedules/:id", ctl.getSchedule)
		c.PUT("/schedules/:id", ctl.updateSchedule)
		c.DELETE("/schedules/:id", ctl.deleteSchedule)
		c.DELETE("/schedules/series/:series_id", ctl.deleteSeries)

		// what a screen should be playing right now
		c.GET("/screens/:id/active-schedule", ctl.activeSchedule)
	})
}

// scheduleError maps engine errors onto HTTP statuses: missing collaborators
// are 404, shape/capacity problems 422, window collisions 409.
func scheduleError(err error) *api.APIError {
	var nf *schedule.NotFoundError
	if errors.As(err, &nf) {
		return &api.APIError{Code: http.StatusNotFound, Message: nf.Error()}
	}
	var ve *schedule.ValidationError
	if errors.As(err, &ve) {
		return &api.APIError{Code: http.StatusUnprocessableEntity, Message: ve.Error()}
	}
	var ce *schedule.ConflictError
	if errors.As(err, &ce) {
		return &api.APIError{Code: http.StatusConflict, Message: ce.Error()}
	}
	return &api.APIError{Code: http.StatusInternalServerError, Message: "internal error"}
}

func mapSchedule(s model.Schedule) packets.ScheduleResponse {
	return packets.ScheduleResponse{
		ID:         s.ID,
		SeriesID:   s.SeriesID,
		Name:       s.Name,
		PlaylistID: s.PlaylistID,
		ScreenID:   s.ScreenID,
		StartDate:  s.StartDate,
		EndDate:    s.EndDate,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		DayOfWeek:  s.DayOfWeek,
		Priority:   s.Priority,
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  s.UpdatedAt.Format(time.RFC3339),
	}
}

func mapSchedules(list []model.Schedule) []packets.ScheduleResponse {
	out := make([]packets.ScheduleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, mapSchedule(s))
	}
	return out
}

// GET /schedules?screen_id=N
func (s *ScheduleController) listSchedules(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if raw := ctx.Query("screen_id"); raw != "" {
		screenID, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen_id"}
		}
		list, err := s.store.ListSchedulesByScreen(screenID)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list schedules"}
		}
		return mapSchedules(list), nil
	}

	list, err := s.store.ListSchedules(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list schedules"}
	}
	return mapSchedules(list), nil
}

// POST /schedules
func (s *ScheduleController) createSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	isActive := true
	if request.IsActive != nil {
		isActive = *request.IsActive
	}

	created, err := s.service.CreateSeries(schedule.CreateSeriesInput{
		Name:       request.Name,
		PlaylistID: request.PlaylistID,
		ScreenID:   request.ScreenID,
		DaysOfWeek: request.DaysOfWeek,
		StartDate:  request.StartDate,
		EndDate:    request.EndDate,
		StartTime:  request.StartTime,
		EndTime:    request.EndTime,
		Priority:   request.Priority,
		IsActive:   isActive,
		CreatedBy:  user.ID,
	})
	if err != nil {
		return nil, scheduleError(err)
	}
	return mapSchedules(created), nil
}

// GET /schedules/:id
func (s *ScheduleController) getSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	row, err := s.store.GetScheduleByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}
	return mapSchedule(row), nil
}

// PUT /schedules/:id?scope=one|series
func (s *ScheduleController) updateSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var request packets.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	applySeries := false
	switch ctx.DefaultQuery("scope", "one") {
	case "one":
	case "series":
		applySeries = true
	default:
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "scope must be one or series"}
	}

	updated, err := s.service.Update(id, model.ScheduleUpdate{
		Name:       request.Name,
		PlaylistID: request.PlaylistID,
		StartDate:  request.StartDate,
		EndDate:    request.EndDate,
		StartTime:  request.StartTime,
		EndTime:    request.EndTime,
		DayOfWeek:  request.DayOfWeek,
		Priority:   request.Priority,
		IsActive:   request.IsActive,
	}, applySeries)
	if err != nil {
		return nil, scheduleError(err)
	}
	return mapSchedules(updated), nil
}

// DELETE /schedules/:id
func (s *ScheduleController) deleteSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if err := s.service.Delete(id); err != nil {
		return nil, scheduleError(err)
	}
	return gin.H{"message": "deleted"}, nil
}

// DELETE /schedules/series/:series_id
func (s *ScheduleController) deleteSeries(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	seriesID := ctx.Param("series_id")
	if seriesID == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid series id"}
	}
	if err := s.service.DeleteSeries(seriesID); err != nil {
		return nil, scheduleError(err)
	}
	return gin.H{"message": "deleted"}, nil
}

// GET /screens/:id/active-schedule
func (s *ScheduleController) activeSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	screenID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid screen id"}
	}
	active, err := s.service.ActiveSchedule(screenID, time.Now())
	if err != nil {
		return nil, scheduleError(err)
	}
	if active == nil {
		return gin.H{"active": nil}, nil
	}
	return gin.H{"active": mapSchedule(*active)}, nil
}
