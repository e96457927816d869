package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maintenance-backend/internal/registry"
)

type postLocationRequest struct {
	ID          string `json:"id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// GetLocations handles GET /api/locations.
func (h *Handler) GetLocations(c *gin.Context) {
	var out []LocationResponse
	h.mgr.Read(func(reg *registry.Registry) {
		locations := reg.Locations()
		out = make([]LocationResponse, 0, len(locations))
		for _, l := range locations {
			out = append(out, toLocationResponse(l))
		}
	})
	c.JSON(http.StatusOK, out)
}

// PostLocation handles POST /api/locations.
func (h *Handler) PostLocation(c *gin.Context) {
	var req postLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc, err := h.mgr.RegisterLocation(req.ID, req.Name, req.Description)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	h.invalidate()
	h.audit.Record(c.Request.Context(), "register", "location", loc.ID, loc.Name)

	c.JSON(http.StatusCreated, toLocationResponse(loc))
}
