package model

import (
	"fmt"
	"time"
)

// MaintenanceKind classifies a maintenance task. The constant values are the
// symbolic names used in the persisted document; they must not change, or
// previously saved files become unreadable.
type MaintenanceKind string

const (
	KindPreventive MaintenanceKind = "PREVENTIVO"
	KindCorrective MaintenanceKind = "CORRECTIVO"
)

// ParseMaintenanceKind maps a persisted symbolic name back to a kind.
func ParseMaintenanceKind(name string) (MaintenanceKind, error) {
	switch MaintenanceKind(name) {
	case KindPreventive, KindCorrective:
		return MaintenanceKind(name), nil
	}
	return "", fmt.Errorf("unknown maintenance kind %q", name)
}

// TaskStatus is the lifecycle state of a maintenance task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDIENTE"
	StatusInProgress TaskStatus = "EN_PROCESO"
	StatusCompleted  TaskStatus = "COMPLETADA"
	StatusCancelled  TaskStatus = "CANCELADA"
)

// ParseTaskStatus maps a persisted symbolic name back to a status.
func ParseTaskStatus(name string) (TaskStatus, error) {
	switch TaskStatus(name) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return TaskStatus(name), nil
	}
	return "", fmt.Errorf("unknown task status %q", name)
}

// MaintenanceTask represents one unit of maintenance work on a piece of
// equipment, assigned to a technician. Equipment and Technician are in-memory
// links to entries that exist in the registry; on disk they are stored by id.
type MaintenanceTask struct {
	ID          string          `json:"id"`
	Kind        MaintenanceKind `json:"kind"`
	Equipment   *Equipment      `json:"-"`
	Technician  *Technician     `json:"-"`
	ScheduledAt time.Time       `json:"scheduledAt"`
	Status      TaskStatus      `json:"status"`
	Notes       string          `json:"notes"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`

	// DurationMinutes is set when the task is executed; nil until then.
	DurationMinutes *int `json:"durationMinutes,omitempty"`
}
