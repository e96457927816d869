package api

import (
	"time"

	"maintenance-backend/internal/model"
)

// LocationResponse is the API shape of a location.
type LocationResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EquipmentResponse is the API shape of equipment, with its location
// flattened to id and name.
type EquipmentResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	LocationID       string    `json:"locationId"`
	LocationName     string    `json:"locationName"`
	InstalledAt      time.Time `json:"installedAt"`
	UsageHours       int       `json:"usageHours"`
	ThresholdHours   int       `json:"maintenanceThresholdHours"`
	NeedsMaintenance bool      `json:"needsMaintenance"`
}

// TechnicianResponse is the API shape of a technician.
type TechnicianResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Active    bool   `json:"active"`
}

// TaskResponse is the API shape of a maintenance task, with references
// flattened to ids.
type TaskResponse struct {
	ID              string     `json:"id"`
	Kind            string     `json:"kind"`
	Status          string     `json:"status"`
	EquipmentID     string     `json:"equipmentId"`
	TechnicianID    string     `json:"technicianId"`
	ScheduledAt     time.Time  `json:"scheduledAt"`
	Notes           string     `json:"notes"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	DurationMinutes *int       `json:"durationMinutes,omitempty"`
}

func toLocationResponse(l *model.Location) LocationResponse {
	return LocationResponse{ID: l.ID, Name: l.Name, Description: l.Description}
}

func toEquipmentResponse(e *model.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:               e.ID,
		Name:             e.Name,
		LocationID:       e.Location.ID,
		LocationName:     e.Location.Name,
		InstalledAt:      e.InstalledAt,
		UsageHours:       e.UsageHours,
		ThresholdHours:   e.ThresholdHours,
		NeedsMaintenance: e.NeedsMaintenance(),
	}
}

func toTechnicianResponse(t *model.Technician) TechnicianResponse {
	return TechnicianResponse{ID: t.ID, Name: t.Name, Specialty: t.Specialty, Active: t.Active}
}

func toTaskResponse(t *model.MaintenanceTask) TaskResponse {
	return TaskResponse{
		ID:              t.ID,
		Kind:            string(t.Kind),
		Status:          string(t.Status),
		EquipmentID:     t.Equipment.ID,
		TechnicianID:    t.Technician.ID,
		ScheduledAt:     t.ScheduledAt,
		Notes:           t.Notes,
		CompletedAt:     t.CompletedAt,
		DurationMinutes: t.DurationMinutes,
	}
}

func toTaskResponses(tasks []*model.MaintenanceTask) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}
