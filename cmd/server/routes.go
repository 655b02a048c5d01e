package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/triton/internal/db"
	"github.com/Nixie-Tech-LLC/triton/internal/http/api"
	authapi "github.com/Nixie-Tech-LLC/triton/internal/http/api/admin/auth/endpoints"
	adminapi "github.com/Nixie-Tech-LLC/triton/internal/http/api/admin/control/endpoints"
	tvapi "github.com/Nixie-Tech-LLC/triton/internal/http/api/tv/endpoints"
	"github.com/Nixie-Tech-LLC/triton/internal/schedule"
	"github.com/Nixie-Tech-LLC/triton/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, service *schedule.Service, storageSystem storage.Storage) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		authapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
	},
		authapi.AuthSessionModule(env.SecretKey, store),
		adminapi.ScreenModule(store),
		adminapi.PlaylistModule(store, service),
		adminapi.ContentModule(store, storageSystem),
		adminapi.ScheduleModule(store, service),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/tv",
	},
		tvapi.PairingModule(store),
		tvapi.ScreenModule(store, service),
	)

	// Static content
	if !env.UseSpaces {
		r.Static("/uploads", "./uploads")
	}
}
