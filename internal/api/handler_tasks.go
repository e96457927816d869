package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type postPreventiveTaskRequest struct {
	EquipmentID  string    `json:"equipmentId" binding:"required"`
	TechnicianID string    `json:"technicianId" binding:"required"`
	ScheduledAt  time.Time `json:"scheduledAt" binding:"required"`
}

type postCorrectiveTaskRequest struct {
	EquipmentID  string `json:"equipmentId" binding:"required"`
	TechnicianID string `json:"technicianId" binding:"required"`
	Notes        string `json:"notes"`
}

type postExecuteTaskRequest struct {
	DurationMinutes int    `json:"durationMinutes" binding:"required"`
	Notes           string `json:"notes"`
}

// GetPendingTasks handles GET /api/tasks/pending.
func (h *Handler) GetPendingTasks(c *gin.Context) {
	c.JSON(http.StatusOK, toTaskResponses(h.mgr.PendingTasks()))
}

// PostPreventiveTask handles POST /api/tasks/preventive: schedule future
// preventive maintenance for an equipment/technician pair.
func (h *Handler) PostPreventiveTask(c *gin.Context) {
	var req postPreventiveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.mgr.SchedulePreventiveMaintenance(req.EquipmentID, req.TechnicianID, req.ScheduledAt)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	h.invalidate()
	h.audit.Record(c.Request.Context(), "schedule", "task", task.ID, "preventive for "+req.EquipmentID)

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// PostCorrectiveTask handles POST /api/tasks/corrective: log corrective work
// already performed. The task is created COMPLETED.
func (h *Handler) PostCorrectiveTask(c *gin.Context) {
	var req postCorrectiveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.mgr.RecordCorrectiveMaintenance(req.EquipmentID, req.TechnicianID, req.Notes)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	h.invalidate()
	h.audit.Record(c.Request.Context(), "record", "task", task.ID, "corrective for "+req.EquipmentID)

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// PostExecuteTask handles POST /api/tasks/{task_id}/execute. The response
// mirrors the operation's contract: executed is false, with no other change,
// when the task is missing or not pending.
func (h *Handler) PostExecuteTask(c *gin.Context) {
	var req postExecuteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taskID := c.Param("task_id")
	executed := h.mgr.ExecuteTask(taskID, req.DurationMinutes, req.Notes)
	if executed {
		h.invalidate()
		h.audit.Record(c.Request.Context(), "execute", "task", taskID, "")
	}

	c.JSON(http.StatusOK, gin.H{"executed": executed})
}
