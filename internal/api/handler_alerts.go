package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAlerts handles GET /api/alerts: every equipment currently due for
// maintenance, in registry order.
func (h *Handler) GetAlerts(c *gin.Context) {
	alerts := h.mgr.MaintenanceAlerts()
	out := make([]EquipmentResponse, 0, len(alerts))
	for _, e := range alerts {
		out = append(out, toEquipmentResponse(e))
	}
	c.JSON(http.StatusOK, out)
}
