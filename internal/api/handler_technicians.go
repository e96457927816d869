package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maintenance-backend/internal/registry"
)

type postTechnicianRequest struct {
	ID        string `json:"id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Specialty string `json:"specialty"`
}

// GetTechnicians handles GET /api/technicians.
func (h *Handler) GetTechnicians(c *gin.Context) {
	var out []TechnicianResponse
	h.mgr.Read(func(reg *registry.Registry) {
		technicians := reg.Technicians()
		out = make([]TechnicianResponse, 0, len(technicians))
		for _, t := range technicians {
			out = append(out, toTechnicianResponse(t))
		}
	})
	c.JSON(http.StatusOK, out)
}

// PostTechnician handles POST /api/technicians.
func (h *Handler) PostTechnician(c *gin.Context) {
	var req postTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tech, err := h.mgr.RegisterTechnician(req.ID, req.Name, req.Specialty)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	h.invalidate()
	h.audit.Record(c.Request.Context(), "register", "technician", tech.ID, tech.Name)

	c.JSON(http.StatusCreated, toTechnicianResponse(tech))
}

// DeleteTechnician handles DELETE /api/technicians/{technician_id}. Deletion
// is refused while any task references the technician.
func (h *Handler) DeleteTechnician(c *gin.Context) {
	id := c.Param("technician_id")
	if err := h.mgr.RemoveTechnician(id); err != nil {
		h.abortWithError(c, err)
		return
	}
	h.invalidate()
	h.audit.Record(c.Request.Context(), "remove", "technician", id, "")

	c.Status(http.StatusNoContent)
}

// GetTechnicianTasks handles GET /api/technicians/{technician_id}/tasks.
func (h *Handler) GetTechnicianTasks(c *gin.Context) {
	id := c.Param("technician_id")

	exists := false
	h.mgr.Read(func(reg *registry.Registry) {
		_, exists = reg.Technician(id)
	})
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "technician not found"})
		return
	}

	c.JSON(http.StatusOK, toTaskResponses(h.mgr.TasksForTechnician(id)))
}
