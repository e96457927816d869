package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"maintenance-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router over the handler.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(h.cfg.Server.RateLimitPerSec), h.cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(h.cfg.Server.CacheTTLSeconds) * time.Second
	if h.cache == nil {
		h.cache = cache.New(cacheTTL, 2*cacheTTL)
	}
	caching := mw.Cache(h.cache, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/locations", caching, h.GetLocations)
		api.POST("/locations", h.PostLocation)

		api.GET("/equipment", caching, h.GetEquipment)
		api.POST("/equipment", h.PostEquipment)
		api.DELETE("/equipment/:equipment_id", h.DeleteEquipment)
		api.GET("/equipment/:equipment_id/tasks", h.GetEquipmentTasks)

		api.GET("/technicians", caching, h.GetTechnicians)
		api.POST("/technicians", h.PostTechnician)
		api.DELETE("/technicians/:technician_id", h.DeleteTechnician)
		api.GET("/technicians/:technician_id/tasks", h.GetTechnicianTasks)

		api.GET("/tasks/pending", h.GetPendingTasks)
		api.POST("/tasks/preventive", h.PostPreventiveTask)
		api.POST("/tasks/corrective", h.PostCorrectiveTask)
		api.POST("/tasks/:task_id/execute", h.PostExecuteTask)

		api.GET("/alerts", h.GetAlerts)
		api.GET("/reports/summary", caching, h.GetReportSummary)

		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	return r
}
