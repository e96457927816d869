// Package report computes read-only aggregate statistics over the registry
// collections. It never mutates registry state; rendering the numbers is the
// presentation layer's job.
package report

import (
	"sort"
	"strings"

	"maintenance-backend/internal/model"
	"maintenance-backend/internal/registry"
)

// DefaultFailureKeywords are the note keywords counted as failure mentions
// when the configuration does not supply its own list.
var DefaultFailureKeywords = []string{
	"falla", "avería", "daño", "roto", "descompuesto",
	"mal funcionamiento", "error", "problema",
}

// EquipmentCount pairs equipment with a task tally.
type EquipmentCount struct {
	Equipment *model.Equipment
	Count     int
}

// TechnicianCount pairs a technician with a completed-task tally.
type TechnicianCount struct {
	Technician *model.Technician
	Count      int
}

// Generator computes reports over one registry.
type Generator struct {
	reg             *registry.Registry
	failureKeywords []string
}

// NewGenerator creates a report generator. An empty keyword list falls back
// to DefaultFailureKeywords.
func NewGenerator(reg *registry.Registry, failureKeywords []string) *Generator {
	if len(failureKeywords) == 0 {
		failureKeywords = DefaultFailureKeywords
	}
	return &Generator{reg: reg, failureKeywords: failureKeywords}
}

// TopEquipmentByTaskCount ranks equipment by total number of tasks,
// descending. Ties keep registry order.
func (g *Generator) TopEquipmentByTaskCount(topN int) []EquipmentCount {
	counts := make(map[string]int)
	for _, t := range g.reg.Tasks() {
		counts[t.Equipment.ID]++
	}

	ranked := g.reg.AllEquipment()
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i].ID] > counts[ranked[j].ID]
	})

	if topN > 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}
	out := make([]EquipmentCount, 0, len(ranked))
	for _, e := range ranked {
		out = append(out, EquipmentCount{Equipment: e, Count: counts[e.ID]})
	}
	return out
}

// MostActiveTechnicians ranks technicians by number of completed tasks,
// descending. Ties keep registry order.
func (g *Generator) MostActiveTechnicians(topN int) []TechnicianCount {
	counts := make(map[string]int)
	for _, t := range g.reg.Tasks() {
		if t.Status == model.StatusCompleted {
			counts[t.Technician.ID]++
		}
	}

	ranked := g.reg.Technicians()
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i].ID] > counts[ranked[j].ID]
	})

	if topN > 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}
	out := make([]TechnicianCount, 0, len(ranked))
	for _, t := range ranked {
		out = append(out, TechnicianCount{Technician: t, Count: counts[t.ID]})
	}
	return out
}

// RecurrentFailures tallies, per equipment name, the corrective tasks whose
// notes mention a failure keyword. Each task counts at most once.
func (g *Generator) RecurrentFailures() map[string]int {
	counts := make(map[string]int)
	for _, t := range g.reg.Tasks() {
		if t.Kind != model.KindCorrective || t.Notes == "" {
			continue
		}
		notes := strings.ToLower(t.Notes)
		for _, kw := range g.failureKeywords {
			if strings.Contains(notes, kw) {
				counts[t.Equipment.Name]++
				break
			}
		}
	}
	return counts
}

// AverageMaintenanceDuration returns the mean duration in minutes over
// completed tasks that recorded one, or 0 when there are none.
func (g *Generator) AverageMaintenanceDuration() float64 {
	var total, n int
	for _, t := range g.reg.Tasks() {
		if t.Status == model.StatusCompleted && t.DurationMinutes != nil && *t.DurationMinutes > 0 {
			total += *t.DurationMinutes
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}

// TasksByKind counts tasks per maintenance kind. Both kinds are always
// present in the result.
func (g *Generator) TasksByKind() map[model.MaintenanceKind]int {
	counts := map[model.MaintenanceKind]int{
		model.KindPreventive: 0,
		model.KindCorrective: 0,
	}
	for _, t := range g.reg.Tasks() {
		counts[t.Kind]++
	}
	return counts
}
