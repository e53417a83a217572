package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mindforge/collective-mind/api/handlers"
	"github.com/mindforge/collective-mind/communication"
	"github.com/mindforge/collective-mind/registry"
	"github.com/mindforge/collective-mind/storage"
)

// SetupRoutes initializes all API endpoints.
func SetupRoutes(router *gin.Engine, reg *registry.Registry, artifacts *storage.ArtifactRepository, ws *messaging.WSManager) {
	h := handlers.New(reg, artifacts)

	api := router.Group("/api")
	{
		api.GET("/status", h.GetStatus)
		api.GET("/minds/:mind/relationships", h.GetRelationships)
		api.GET("/minds/:mind/worklog", h.GetWorkLog)
		api.GET("/minds/:mind/standups", h.GetStandups)
		api.POST("/minds/:mind/phase", h.SetPhase)
	}

	router.GET("/ws", handlers.HandleWebSocket(ws))
}
