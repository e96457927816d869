// Package manager implements the business operations of the maintenance
// system: registering entities, scheduling and executing tasks, querying, and
// computing maintenance alerts. It is the single owner of the Registry; all
// access goes through it, and a RWMutex serializes the HTTP handlers and the
// background alert checker.
package manager

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"maintenance-backend/internal/model"
	"maintenance-backend/internal/registry"
)

var (
	// ErrValidation is returned when a create operation is missing a
	// required field.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when a referenced equipment, technician, or
	// task id does not exist at call time.
	ErrNotFound = errors.New("not found")
	// ErrReferenced is returned when a delete is refused because tasks
	// still reference the entity.
	ErrReferenced = errors.New("still referenced by tasks")
)

// DefaultStalenessWindow is the duration after which the absence of recent
// preventive maintenance triggers an alert. Roughly a semiannual cadence;
// override it through configuration.
const DefaultStalenessWindow = 180 * 24 * time.Hour

// Store persists the full registry state. Satisfied by store.FileStore.
type Store interface {
	Save(*registry.Registry) error
}

// Manager is the operations layer over one Registry instance.
type Manager struct {
	mu    sync.RWMutex
	reg   *registry.Registry
	store Store

	stalenessWindow time.Duration
	now             func() time.Time
	newTaskID       func() string
}

// New creates a manager around the given registry. A non-positive staleness
// window falls back to DefaultStalenessWindow.
func New(reg *registry.Registry, stalenessWindow time.Duration) *Manager {
	if stalenessWindow <= 0 {
		stalenessWindow = DefaultStalenessWindow
	}
	return &Manager{
		reg:             reg,
		stalenessWindow: stalenessWindow,
		now:             time.Now,
		newTaskID:       func() string { return "TAR-" + uuid.NewString() },
	}
}

// SetStore attaches a persister that is invoked after every successful
// mutation. Persistence failures are logged, not surfaced; the in-memory
// state remains authoritative for the rest of the run.
func (m *Manager) SetStore(s Store) {
	m.store = s
}

// Registry exposes the underlying registry for read-only collaborators
// (reports, persistence). Callers must go through Snapshot-style reads under
// the manager's locking discipline when the server is running.
func (m *Manager) Registry() *registry.Registry {
	return m.reg
}

// Read runs fn with the registry under the manager's read lock. Collaborators
// that iterate the collections directly (reports, persistence) use this to
// stay coherent with concurrent mutations. fn must not retain the registry.
func (m *Manager) Read(fn func(*registry.Registry)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn(m.reg)
}

// Flush persists the current registry state. Used at session boundaries.
func (m *Manager) Flush() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.store == nil {
		return nil
	}
	return m.store.Save(m.reg)
}

func (m *Manager) persist() {
	if m.store == nil {
		return
	}
	if err := m.store.Save(m.reg); err != nil {
		log.Printf("Warning: failed to persist registry: %v", err)
	}
}

// RegisterLocation validates and adds a new location.
func (m *Manager) RegisterLocation(id, name, description string) (*model.Location, error) {
	if id == "" || name == "" {
		return nil, fmt.Errorf("location id and name are required: %w", ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	loc := &model.Location{ID: id, Name: name, Description: description}
	if err := m.reg.AddLocation(loc); err != nil {
		return nil, err
	}
	m.persist()
	return loc, nil
}

// RegisterEquipment validates and adds new equipment installed at a known
// location. The maintenance threshold defaults to
// model.DefaultMaintenanceThresholdHours.
func (m *Manager) RegisterEquipment(id, name, locationID string, installedAt time.Time, usageHours int) (*model.Equipment, error) {
	if id == "" || name == "" {
		return nil, fmt.Errorf("equipment id and name are required: %w", ErrValidation)
	}
	if usageHours < 0 {
		return nil, fmt.Errorf("usage hours must not be negative: %w", ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	loc, ok := m.reg.Location(locationID)
	if !ok {
		return nil, fmt.Errorf("location %q: %w", locationID, registry.ErrUnknownReference)
	}
	eq := &model.Equipment{
		ID:             id,
		Name:           name,
		Location:       loc,
		InstalledAt:    installedAt,
		UsageHours:     usageHours,
		ThresholdHours: model.DefaultMaintenanceThresholdHours,
	}
	if err := m.reg.AddEquipment(eq); err != nil {
		return nil, err
	}
	m.persist()
	return eq, nil
}

// RegisterTechnician validates and adds a new technician. Technicians start
// out active.
func (m *Manager) RegisterTechnician(id, name, specialty string) (*model.Technician, error) {
	if id == "" || name == "" {
		return nil, fmt.Errorf("technician id and name are required: %w", ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tech := &model.Technician{ID: id, Name: name, Specialty: specialty, Active: true}
	if err := m.reg.AddTechnician(tech); err != nil {
		return nil, err
	}
	m.persist()
	return tech, nil
}

// SchedulePreventiveMaintenance creates a PENDING preventive task for the
// given equipment and technician at the given date.
func (m *Manager) SchedulePreventiveMaintenance(equipmentID, technicianID string, scheduledAt time.Time) (*model.MaintenanceTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	eq, ok := m.reg.Equipment(equipmentID)
	if !ok {
		return nil, fmt.Errorf("equipment %q: %w", equipmentID, ErrNotFound)
	}
	tech, ok := m.reg.Technician(technicianID)
	if !ok {
		return nil, fmt.Errorf("technician %q: %w", technicianID, ErrNotFound)
	}

	task := &model.MaintenanceTask{
		ID:          m.newTaskID(),
		Kind:        model.KindPreventive,
		Equipment:   eq,
		Technician:  tech,
		ScheduledAt: scheduledAt,
		Status:      model.StatusPending,
	}
	if err := m.reg.AddTask(task); err != nil {
		return nil, err
	}
	m.persist()
	return task, nil
}

// RecordCorrectiveMaintenance logs corrective work that has already been
// performed: the task is created COMPLETED with both timestamps set to now.
func (m *Manager) RecordCorrectiveMaintenance(equipmentID, technicianID, notes string) (*model.MaintenanceTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	eq, ok := m.reg.Equipment(equipmentID)
	if !ok {
		return nil, fmt.Errorf("equipment %q: %w", equipmentID, ErrNotFound)
	}
	tech, ok := m.reg.Technician(technicianID)
	if !ok {
		return nil, fmt.Errorf("technician %q: %w", technicianID, ErrNotFound)
	}

	now := m.now()
	task := &model.MaintenanceTask{
		ID:          m.newTaskID(),
		Kind:        model.KindCorrective,
		Equipment:   eq,
		Technician:  tech,
		ScheduledAt: now,
		Status:      model.StatusCompleted,
		Notes:       notes,
		CompletedAt: &now,
	}
	if err := m.reg.AddTask(task); err != nil {
		return nil, err
	}
	m.persist()
	return task, nil
}

// ExecuteTask completes a PENDING task, recording its duration and notes.
// It returns false, without touching anything, when the task does not exist
// or is not PENDING; callers rely on this silent no-op contract.
func (m *Manager) ExecuteTask(taskID string, durationMinutes int, notes string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.reg.Task(taskID)
	if !ok || task.Status != model.StatusPending {
		return false
	}
	now := m.now()
	task.Status = model.StatusCompleted
	task.CompletedAt = &now
	task.DurationMinutes = &durationMinutes
	task.Notes = notes
	m.persist()
	return true
}

// PendingTasks returns all PENDING tasks in insertion order.
func (m *Manager) PendingTasks() []*model.MaintenanceTask {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*model.MaintenanceTask
	for _, t := range m.reg.Tasks() {
		if t.Status == model.StatusPending {
			out = append(out, t)
		}
	}
	return out
}

// TasksForEquipment returns the tasks for one equipment in insertion order.
func (m *Manager) TasksForEquipment(equipmentID string) []*model.MaintenanceTask {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*model.MaintenanceTask
	for _, t := range m.reg.Tasks() {
		if t.Equipment.ID == equipmentID {
			out = append(out, t)
		}
	}
	return out
}

// TasksForTechnician returns the tasks assigned to one technician in
// insertion order.
func (m *Manager) TasksForTechnician(technicianID string) []*model.MaintenanceTask {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*model.MaintenanceTask
	for _, t := range m.reg.Tasks() {
		if t.Technician.ID == technicianID {
			out = append(out, t)
		}
	}
	return out
}

// MaintenanceAlerts returns, in registry order, every equipment that is due
// for attention: usage hours at or past the threshold, or the most recent
// preventive task scheduled longer than the staleness window ago, or no
// preventive task at all and an install date older than the window. Each
// equipment appears at most once.
func (m *Manager) MaintenanceAlerts() []*model.Equipment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()
	tasks := m.reg.Tasks()

	var alerts []*model.Equipment
	for _, eq := range m.reg.AllEquipment() {
		if eq.NeedsMaintenance() {
			alerts = append(alerts, eq)
			continue
		}

		var lastPreventive *model.MaintenanceTask
		for _, t := range tasks {
			if t.Kind != model.KindPreventive || t.Equipment.ID != eq.ID {
				continue
			}
			if lastPreventive == nil || t.ScheduledAt.After(lastPreventive.ScheduledAt) {
				lastPreventive = t
			}
		}

		if lastPreventive != nil {
			if now.Sub(lastPreventive.ScheduledAt) > m.stalenessWindow {
				alerts = append(alerts, eq)
			}
		} else if now.Sub(eq.InstalledAt) > m.stalenessWindow {
			// Never maintained since installation.
			alerts = append(alerts, eq)
		}
	}
	return alerts
}

// RemoveEquipment deletes equipment that no task references.
func (m *Manager) RemoveEquipment(equipmentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reg.Equipment(equipmentID); !ok {
		return fmt.Errorf("equipment %q: %w", equipmentID, ErrNotFound)
	}
	for _, t := range m.reg.Tasks() {
		if t.Equipment.ID == equipmentID {
			return fmt.Errorf("equipment %q: %w", equipmentID, ErrReferenced)
		}
	}
	m.reg.RemoveEquipment(equipmentID)
	m.persist()
	return nil
}

// RemoveTechnician deletes a technician that no task references.
func (m *Manager) RemoveTechnician(technicianID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reg.Technician(technicianID); !ok {
		return fmt.Errorf("technician %q: %w", technicianID, ErrNotFound)
	}
	for _, t := range m.reg.Tasks() {
		if t.Technician.ID == technicianID {
			return fmt.Errorf("technician %q: %w", technicianID, ErrReferenced)
		}
	}
	m.reg.RemoveTechnician(technicianID)
	m.persist()
	return nil
}
