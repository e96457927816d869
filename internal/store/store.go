// Package store persists the full registry state as one JSON document and
// reconstructs it, resolving cross-references by id. The document layout
// (top-level equipos/tecnicos/tareas/ubicaciones arrays, Spanish field names,
// enums by symbolic name, ISO-8601 dates) is the format the system has always
// written; it must stay readable across releases.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"maintenance-backend/internal/model"
	"maintenance-backend/internal/registry"
)

// DefaultPath is the registry document location used when the configuration
// does not override it.
const DefaultPath = "datos/mantenimiento.json"

// FileStore reads and writes the registry document at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore creates a file store, creating the parent directory if absent.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory %q: %w", dir, err)
		}
	}
	return &FileStore{path: path}, nil
}

// Path returns the document location.
func (s *FileStore) Path() string { return s.path }

// Save serializes the complete registry state and overwrites the document in
// a single write.
func (s *FileStore) Save(reg *registry.Registry) error {
	data, err := Encode(reg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", s.path, err)
	}
	return nil
}

// Load reconstructs the registry from the document. An absent or unparseable
// document yields an empty registry; this recovery branch is deliberate, not
// an error condition, so no error is returned.
func (s *FileStore) Load() *registry.Registry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: could not read %q, starting empty: %v", s.path, err)
		}
		return registry.New()
	}
	return Decode(data)
}

// document is the on-disk shape of the registry.
type document struct {
	Equipment   []equipmentRecord  `json:"equipos"`
	Technicians []technicianRecord `json:"tecnicos"`
	Tasks       []taskRecord       `json:"tareas"`
	Locations   []locationRecord   `json:"ubicaciones"`
}

type locationRecord struct {
	ID          string `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

type equipmentRecord struct {
	ID             string `json:"id"`
	Name           string `json:"nombre"`
	LocationID     string `json:"ubicacion_id"`
	InstalledAt    string `json:"fecha_instalacion"`
	UsageHours     int    `json:"horas_uso"`
	ThresholdHours *int   `json:"horas_mantenimiento"`
}

type technicianRecord struct {
	ID        string `json:"id"`
	Name      string `json:"nombre"`
	Specialty string `json:"especialidad"`
	Active    *bool  `json:"activo"`
}

type taskRecord struct {
	ID              string  `json:"id"`
	Kind            string  `json:"tipo"`
	Status          string  `json:"estado"`
	EquipmentID     string  `json:"equipo_id"`
	TechnicianID    string  `json:"tecnico_id"`
	ScheduledAt     string  `json:"fecha_programada"`
	Notes           string  `json:"observaciones"`
	CompletedAt     *string `json:"fecha_realizacion"`
	DurationMinutes *int    `json:"duracion_minutos"`
}

// Encode serializes the registry into the document format. Output is
// deterministic: arrays follow registry insertion order.
func Encode(reg *registry.Registry) ([]byte, error) {
	doc := document{
		Equipment:   make([]equipmentRecord, 0, len(reg.AllEquipment())),
		Technicians: make([]technicianRecord, 0, len(reg.Technicians())),
		Tasks:       make([]taskRecord, 0, len(reg.Tasks())),
		Locations:   make([]locationRecord, 0, len(reg.Locations())),
	}

	for _, e := range reg.AllEquipment() {
		threshold := e.ThresholdHours
		doc.Equipment = append(doc.Equipment, equipmentRecord{
			ID:             e.ID,
			Name:           e.Name,
			LocationID:     e.Location.ID,
			InstalledAt:    formatTimestamp(e.InstalledAt),
			UsageHours:     e.UsageHours,
			ThresholdHours: &threshold,
		})
	}
	for _, t := range reg.Technicians() {
		active := t.Active
		doc.Technicians = append(doc.Technicians, technicianRecord{
			ID:        t.ID,
			Name:      t.Name,
			Specialty: t.Specialty,
			Active:    &active,
		})
	}
	for _, t := range reg.Tasks() {
		rec := taskRecord{
			ID:           t.ID,
			Kind:         string(t.Kind),
			Status:       string(t.Status),
			EquipmentID:  t.Equipment.ID,
			TechnicianID: t.Technician.ID,
			ScheduledAt:  formatTimestamp(t.ScheduledAt),
			Notes:        t.Notes,
		}
		if t.CompletedAt != nil {
			s := formatTimestamp(*t.CompletedAt)
			rec.CompletedAt = &s
		}
		if t.DurationMinutes != nil {
			d := *t.DurationMinutes
			rec.DurationMinutes = &d
		}
		doc.Tasks = append(doc.Tasks, rec)
	}
	for _, l := range reg.Locations() {
		doc.Locations = append(doc.Locations, locationRecord{
			ID:          l.ID,
			Name:        l.Name,
			Description: l.Description,
		})
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode registry: %w", err)
	}
	return data, nil
}

// Decode rebuilds a registry from document bytes in strict dependency order:
// locations, equipment, technicians, tasks. A record that is malformed or
// references an unknown id is skipped with a logged diagnostic; one bad
// record never aborts the rest of the load. Unparseable input yields an
// empty registry.
func Decode(data []byte) *registry.Registry {
	reg := registry.New()

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("Warning: registry document is not parseable, starting empty: %v", err)
		return reg
	}

	for _, rec := range doc.Locations {
		if rec.ID == "" {
			log.Printf("Skipping location record without id")
			continue
		}
		loc := &model.Location{ID: rec.ID, Name: rec.Name, Description: rec.Description}
		if err := reg.AddLocation(loc); err != nil {
			log.Printf("Skipping location %q: %v", rec.ID, err)
		}
	}

	for _, rec := range doc.Equipment {
		if rec.ID == "" {
			log.Printf("Skipping equipment record without id")
			continue
		}
		loc, ok := reg.Location(rec.LocationID)
		if !ok {
			log.Printf("Skipping equipment %q: unknown location %q", rec.ID, rec.LocationID)
			continue
		}
		installedAt, err := parseTimestamp(rec.InstalledAt)
		if err != nil {
			log.Printf("Skipping equipment %q: bad install date: %v", rec.ID, err)
			continue
		}
		threshold := model.DefaultMaintenanceThresholdHours
		if rec.ThresholdHours != nil {
			threshold = *rec.ThresholdHours
		}
		eq := &model.Equipment{
			ID:             rec.ID,
			Name:           rec.Name,
			Location:       loc,
			InstalledAt:    installedAt,
			UsageHours:     rec.UsageHours,
			ThresholdHours: threshold,
		}
		if err := reg.AddEquipment(eq); err != nil {
			log.Printf("Skipping equipment %q: %v", rec.ID, err)
		}
	}

	for _, rec := range doc.Technicians {
		if rec.ID == "" {
			log.Printf("Skipping technician record without id")
			continue
		}
		active := true
		if rec.Active != nil {
			active = *rec.Active
		}
		tech := &model.Technician{ID: rec.ID, Name: rec.Name, Specialty: rec.Specialty, Active: active}
		if err := reg.AddTechnician(tech); err != nil {
			log.Printf("Skipping technician %q: %v", rec.ID, err)
		}
	}

	for _, rec := range doc.Tasks {
		task, err := decodeTask(reg, rec)
		if err != nil {
			log.Printf("Skipping task %q: %v", rec.ID, err)
			continue
		}
		if err := reg.AddTask(task); err != nil {
			log.Printf("Skipping task %q: %v", rec.ID, err)
		}
	}

	return reg
}

func decodeTask(reg *registry.Registry, rec taskRecord) (*model.MaintenanceTask, error) {
	if rec.ID == "" {
		return nil, fmt.Errorf("record has no id")
	}
	eq, ok := reg.Equipment(rec.EquipmentID)
	if !ok {
		return nil, fmt.Errorf("unknown equipment %q", rec.EquipmentID)
	}
	tech, ok := reg.Technician(rec.TechnicianID)
	if !ok {
		return nil, fmt.Errorf("unknown technician %q", rec.TechnicianID)
	}
	kind, err := model.ParseMaintenanceKind(rec.Kind)
	if err != nil {
		return nil, err
	}
	status := model.StatusPending
	if rec.Status != "" {
		status, err = model.ParseTaskStatus(rec.Status)
		if err != nil {
			return nil, err
		}
	}
	scheduledAt, err := parseTimestamp(rec.ScheduledAt)
	if err != nil {
		return nil, fmt.Errorf("bad scheduled date: %w", err)
	}

	task := &model.MaintenanceTask{
		ID:          rec.ID,
		Kind:        kind,
		Equipment:   eq,
		Technician:  tech,
		ScheduledAt: scheduledAt,
		Status:      status,
		Notes:       rec.Notes,
	}
	if rec.CompletedAt != nil && *rec.CompletedAt != "" {
		completedAt, err := parseTimestamp(*rec.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("bad completion date: %w", err)
		}
		task.CompletedAt = &completedAt
	}
	if rec.DurationMinutes != nil {
		d := *rec.DurationMinutes
		task.DurationMinutes = &d
	}
	return task, nil
}

func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// Layouts accepted on load. Documents written by earlier revisions carry
// naive ISO-8601 timestamps without an offset.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
