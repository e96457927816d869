package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"maintenance-backend/internal/registry"
)

type postEquipmentRequest struct {
	ID          string    `json:"id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	LocationID  string    `json:"locationId" binding:"required"`
	InstalledAt time.Time `json:"installedAt" binding:"required"`
	UsageHours  int       `json:"usageHours"`
}

// GetEquipment handles GET /api/equipment.
func (h *Handler) GetEquipment(c *gin.Context) {
	var out []EquipmentResponse
	h.mgr.Read(func(reg *registry.Registry) {
		equipment := reg.AllEquipment()
		out = make([]EquipmentResponse, 0, len(equipment))
		for _, e := range equipment {
			out = append(out, toEquipmentResponse(e))
		}
	})
	c.JSON(http.StatusOK, out)
}

// PostEquipment handles POST /api/equipment.
func (h *Handler) PostEquipment(c *gin.Context) {
	var req postEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eq, err := h.mgr.RegisterEquipment(req.ID, req.Name, req.LocationID, req.InstalledAt, req.UsageHours)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	h.invalidate()
	h.audit.Record(c.Request.Context(), "register", "equipment", eq.ID, eq.Name)

	c.JSON(http.StatusCreated, toEquipmentResponse(eq))
}

// DeleteEquipment handles DELETE /api/equipment/{equipment_id}. Deletion is
// refused while any task references the equipment.
func (h *Handler) DeleteEquipment(c *gin.Context) {
	id := c.Param("equipment_id")
	if err := h.mgr.RemoveEquipment(id); err != nil {
		h.abortWithError(c, err)
		return
	}
	h.invalidate()
	h.audit.Record(c.Request.Context(), "remove", "equipment", id, "")

	c.Status(http.StatusNoContent)
}

// GetEquipmentTasks handles GET /api/equipment/{equipment_id}/tasks.
func (h *Handler) GetEquipmentTasks(c *gin.Context) {
	id := c.Param("equipment_id")

	exists := false
	h.mgr.Read(func(reg *registry.Registry) {
		_, exists = reg.Equipment(id)
	})
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
		return
	}

	c.JSON(http.StatusOK, toTaskResponses(h.mgr.TasksForEquipment(id)))
}
