package model

import "time"

// DefaultMaintenanceThresholdHours is applied when a piece of equipment is
// registered without an explicit usage-hours threshold.
const DefaultMaintenanceThresholdHours = 100

// Equipment represents a tracked industrial machine. It holds a non-owning
// reference to the Location it is installed at.
type Equipment struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    *Location `json:"location"`
	InstalledAt time.Time `json:"installedAt"`
	UsageHours  int       `json:"usageHours"`
	// ThresholdHours is the usage-hours mark past which the equipment is
	// considered due for maintenance.
	ThresholdHours int `json:"maintenanceThresholdHours"`
}

// NeedsMaintenance reports whether the accumulated usage hours have reached
// the maintenance threshold.
func (e *Equipment) NeedsMaintenance() bool {
	return e.UsageHours >= e.ThresholdHours
}
