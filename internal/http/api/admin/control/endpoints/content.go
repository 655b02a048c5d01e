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
	"github.com/Nixie-Tech-LLC/triton/internal/storage"
)

type ContentController struct {
	store   db.Store
	storage storage.Storage
}

func newContentController(store db.Store, storageSystem storage.Storage) *ContentController {
	return &ContentController{store: store, storage: storageSystem}
}

func ContentModule(store db.Store, storageSystem storage.Storage) api.Module {
	ctl := newContentController(store, storageSystem)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/content", ctl.listContent)
		c.POST("/content", ctl.createContent)
		c.GET("/content/:id", ctl.getContent)
		c.PUT("/content/:id", ctl.updateContent)
		c.DELETE("/content/:id", ctl.deleteContent)
	})
}

func mapContent(c model.Content) packets.ContentResponse {
	return packets.ContentResponse{
		ID:              c.ID,
		Name:            c.Name,
		Type:            c.Type,
		URL:             c.URL,
		DefaultDuration: c.DefaultDuration,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       c.UpdatedAt.Format(time.RFC3339),
	}
}

func (c *ContentController) listContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := c.store.ListContent()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list content"}
	}

	var out []packets.ContentResponse
	for _, item := range all {
		if item.CreatedBy != user.ID {
			continue
		}
		out = append(out, mapContent(item))
	}
	return out, nil
}

// createContent accepts a multipart form: name, type, default_duration and
// the file itself.
func (c *ContentController) createContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	name := ctx.PostForm("name")
	contentType := ctx.PostForm("type")
	if name == "" || contentType == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "missing required form fields"}
	}

	defaultDuration := 30
	if raw := ctx.PostForm("default_duration"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid default_duration"}
		}
		defaultDuration = d
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "file is required"}
	}

	url, err := c.storage.SaveFile(fileHeader, fileHeader.Filename)
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("content upload failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save file"}
	}

	created, err := c.store.CreateContent(name, contentType, url, defaultDuration, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create content"}
	}
	return mapContent(created), nil
}

func (c *ContentController) ownedContent(ctx *gin.Context, user *model.User) (model.Content, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return model.Content{}, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	item, err := c.store.GetContentByID(id)
	if err != nil {
		return model.Content{}, &api.APIError{Code: http.StatusNotFound, Message: "not found"}
	}
	if item.CreatedBy != user.ID {
		return model.Content{}, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return item, nil
}

func (c *ContentController) getContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	item, apiErr := c.ownedContent(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return mapContent(item), nil
}

func (c *ContentController) updateContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	item, apiErr := c.ownedContent(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateContentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := c.store.UpdateContent(item.ID, request.Name, request.Type, request.URL, request.DefaultDuration); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update content"}
	}

	updated, err := c.store.GetContentByID(item.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not fetch content"}
	}
	return mapContent(updated), nil
}

func (c *ContentController) deleteContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	item, apiErr := c.ownedContent(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := c.store.DeleteContent(item.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete content"}
	}
	return gin.H{"message": "deleted"}, nil
}
