package api

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"maintenance-backend/config"
	"maintenance-backend/internal/audit"
	"maintenance-backend/internal/manager"
	"maintenance-backend/internal/registry"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	mgr     *manager.Manager
	cfg     *config.Config
	db      *gorm.DB // nil when no operational database is configured
	audit   *audit.Recorder
	webpush *webpush.Options
	cache   *cache.Cache
}

// NewHandler creates a new API handler.
func NewHandler(mgr *manager.Manager, cfg *config.Config, db *gorm.DB, auditRec *audit.Recorder, webpushOptions *webpush.Options, cacheStore *cache.Cache) *Handler {
	return &Handler{
		mgr:     mgr,
		cfg:     cfg,
		db:      db,
		audit:   auditRec,
		webpush: webpushOptions,
		cache:   cacheStore,
	}
}

// invalidate flushes the GET response cache after a mutation.
func (h *Handler) invalidate() {
	if h.cache != nil {
		h.cache.Flush()
	}
}

// abortWithError maps the core's error kinds onto HTTP statuses.
func (h *Handler) abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, manager.ErrValidation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, manager.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, registry.ErrDuplicateID), errors.Is(err, manager.ErrReferenced):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, registry.ErrUnknownReference):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
