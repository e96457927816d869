package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maintenance-backend/internal/registry"
	"maintenance-backend/internal/report"
)

type rankedEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type reportSummaryResponse struct {
	TopEquipment       []rankedEntry  `json:"topEquipmentByTaskCount"`
	MostActive         []rankedEntry  `json:"mostActiveTechnicians"`
	RecurrentFailures  map[string]int `json:"recurrentFailures"`
	AverageDurationMin float64        `json:"averageMaintenanceDurationMinutes"`
	TasksByKind        map[string]int `json:"tasksByKind"`
}

// GetReportSummary handles GET /api/reports/summary: the aggregate
// statistics computed over a consistent registry snapshot.
func (h *Handler) GetReportSummary(c *gin.Context) {
	const topN = 5

	var resp reportSummaryResponse
	h.mgr.Read(func(reg *registry.Registry) {
		gen := report.NewGenerator(reg, h.cfg.Reports.FailureKeywords)

		for _, entry := range gen.TopEquipmentByTaskCount(topN) {
			resp.TopEquipment = append(resp.TopEquipment, rankedEntry{
				ID:    entry.Equipment.ID,
				Name:  entry.Equipment.Name,
				Count: entry.Count,
			})
		}
		for _, entry := range gen.MostActiveTechnicians(topN) {
			resp.MostActive = append(resp.MostActive, rankedEntry{
				ID:    entry.Technician.ID,
				Name:  entry.Technician.Name,
				Count: entry.Count,
			})
		}
		resp.RecurrentFailures = gen.RecurrentFailures()
		resp.AverageDurationMin = gen.AverageMaintenanceDuration()

		resp.TasksByKind = make(map[string]int)
		for kind, count := range gen.TasksByKind() {
			resp.TasksByKind[string(kind)] = count
		}
	})

	c.JSON(http.StatusOK, resp)
}
