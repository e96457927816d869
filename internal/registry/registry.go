// Package registry owns the in-memory collections of the maintenance system:
// locations, equipment, technicians, and tasks. Collections keep insertion
// order and are keyed by unique id; inserts that would leave a dangling
// cross-reference are rejected so that a dangling reference can only ever be
// a load-time condition, never a runtime state.
package registry

import (
	"errors"
	"fmt"

	"maintenance-backend/internal/model"
)

var (
	// ErrDuplicateID is returned when an insert reuses an id already
	// present in the target collection.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrUnknownReference is returned when an insert references a
	// location, equipment, or technician id that is not in the registry.
	ErrUnknownReference = errors.New("unknown reference")
)

// Registry holds the four entity collections for one process run. It is not
// safe for concurrent use; callers serialize access (see manager.Manager).
type Registry struct {
	locations   []*model.Location
	equipment   []*model.Equipment
	technicians []*model.Technician
	tasks       []*model.MaintenanceTask

	locationByID   map[string]*model.Location
	equipmentByID  map[string]*model.Equipment
	technicianByID map[string]*model.Technician
	taskByID       map[string]*model.MaintenanceTask
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		locationByID:   make(map[string]*model.Location),
		equipmentByID:  make(map[string]*model.Equipment),
		technicianByID: make(map[string]*model.Technician),
		taskByID:       make(map[string]*model.MaintenanceTask),
	}
}

// AddLocation appends a location to the registry.
func (r *Registry) AddLocation(l *model.Location) error {
	if _, exists := r.locationByID[l.ID]; exists {
		return fmt.Errorf("location %q: %w", l.ID, ErrDuplicateID)
	}
	r.locations = append(r.locations, l)
	r.locationByID[l.ID] = l
	return nil
}

// AddEquipment appends equipment to the registry. The equipment's location
// must already be registered.
func (r *Registry) AddEquipment(e *model.Equipment) error {
	if _, exists := r.equipmentByID[e.ID]; exists {
		return fmt.Errorf("equipment %q: %w", e.ID, ErrDuplicateID)
	}
	if e.Location == nil {
		return fmt.Errorf("equipment %q has no location: %w", e.ID, ErrUnknownReference)
	}
	loc, ok := r.locationByID[e.Location.ID]
	if !ok {
		return fmt.Errorf("equipment %q references location %q: %w", e.ID, e.Location.ID, ErrUnknownReference)
	}
	e.Location = loc
	r.equipment = append(r.equipment, e)
	r.equipmentByID[e.ID] = e
	return nil
}

// AddTechnician appends a technician to the registry.
func (r *Registry) AddTechnician(t *model.Technician) error {
	if _, exists := r.technicianByID[t.ID]; exists {
		return fmt.Errorf("technician %q: %w", t.ID, ErrDuplicateID)
	}
	r.technicians = append(r.technicians, t)
	r.technicianByID[t.ID] = t
	return nil
}

// AddTask appends a maintenance task to the registry. The task's equipment
// and technician must already be registered.
func (r *Registry) AddTask(t *model.MaintenanceTask) error {
	if _, exists := r.taskByID[t.ID]; exists {
		return fmt.Errorf("task %q: %w", t.ID, ErrDuplicateID)
	}
	if t.Equipment == nil || t.Technician == nil {
		return fmt.Errorf("task %q is missing a reference: %w", t.ID, ErrUnknownReference)
	}
	eq, ok := r.equipmentByID[t.Equipment.ID]
	if !ok {
		return fmt.Errorf("task %q references equipment %q: %w", t.ID, t.Equipment.ID, ErrUnknownReference)
	}
	tech, ok := r.technicianByID[t.Technician.ID]
	if !ok {
		return fmt.Errorf("task %q references technician %q: %w", t.ID, t.Technician.ID, ErrUnknownReference)
	}
	t.Equipment = eq
	t.Technician = tech
	r.tasks = append(r.tasks, t)
	r.taskByID[t.ID] = t
	return nil
}

// Location looks up a location by id.
func (r *Registry) Location(id string) (*model.Location, bool) {
	l, ok := r.locationByID[id]
	return l, ok
}

// Equipment looks up equipment by id.
func (r *Registry) Equipment(id string) (*model.Equipment, bool) {
	e, ok := r.equipmentByID[id]
	return e, ok
}

// Technician looks up a technician by id.
func (r *Registry) Technician(id string) (*model.Technician, bool) {
	t, ok := r.technicianByID[id]
	return t, ok
}

// Task looks up a task by id.
func (r *Registry) Task(id string) (*model.MaintenanceTask, bool) {
	t, ok := r.taskByID[id]
	return t, ok
}

// Locations returns the locations in insertion order.
func (r *Registry) Locations() []*model.Location {
	out := make([]*model.Location, len(r.locations))
	copy(out, r.locations)
	return out
}

// AllEquipment returns the equipment in insertion order.
func (r *Registry) AllEquipment() []*model.Equipment {
	out := make([]*model.Equipment, len(r.equipment))
	copy(out, r.equipment)
	return out
}

// Technicians returns the technicians in insertion order.
func (r *Registry) Technicians() []*model.Technician {
	out := make([]*model.Technician, len(r.technicians))
	copy(out, r.technicians)
	return out
}

// Tasks returns the tasks in insertion order.
func (r *Registry) Tasks() []*model.MaintenanceTask {
	out := make([]*model.MaintenanceTask, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// RemoveEquipment deletes equipment from the registry. Callers are
// responsible for checking that no task references it first.
func (r *Registry) RemoveEquipment(id string) bool {
	if _, ok := r.equipmentByID[id]; !ok {
		return false
	}
	delete(r.equipmentByID, id)
	for i, e := range r.equipment {
		if e.ID == id {
			r.equipment = append(r.equipment[:i], r.equipment[i+1:]...)
			break
		}
	}
	return true
}

// RemoveTechnician deletes a technician from the registry. Callers are
// responsible for checking that no task references them first.
func (r *Registry) RemoveTechnician(id string) bool {
	if _, ok := r.technicianByID[id]; !ok {
		return false
	}
	delete(r.technicianByID, id)
	for i, t := range r.technicians {
		if t.ID == id {
			r.technicians = append(r.technicians[:i], r.technicians[i+1:]...)
			break
		}
	}
	return true
}
