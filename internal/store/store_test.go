package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-backend/internal/model"
	"maintenance-backend/internal/registry"
)

func seedRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()

	loc := &model.Location{ID: "L1", Name: "Plant A", Description: "main floor"}
	require.NoError(t, reg.AddLocation(loc))
	require.NoError(t, reg.AddLocation(&model.Location{ID: "L2", Name: "Plant B"}))

	eq := &model.Equipment{
		ID:             "E1",
		Name:           "Pump-1",
		Location:       loc,
		InstalledAt:    time.Date(2024, 2, 10, 8, 30, 0, 0, time.UTC),
		UsageHours:     42,
		ThresholdHours: 100,
	}
	require.NoError(t, reg.AddEquipment(eq))

	tech := &model.Technician{ID: "T1", Name: "Ana", Specialty: "Electrical", Active: true}
	require.NoError(t, reg.AddTechnician(tech))
	require.NoError(t, reg.AddTechnician(&model.Technician{ID: "T2", Name: "Luis", Specialty: "Mechanical", Active: false}))

	completedAt := time.Date(2025, 1, 5, 16, 0, 0, 0, time.UTC)
	duration := 45
	require.NoError(t, reg.AddTask(&model.MaintenanceTask{
		ID:              "TAR-1",
		Kind:            model.KindPreventive,
		Equipment:       eq,
		Technician:      tech,
		ScheduledAt:     time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC),
		Status:          model.StatusCompleted,
		Notes:           "replaced filter",
		CompletedAt:     &completedAt,
		DurationMinutes: &duration,
	}))
	require.NoError(t, reg.AddTask(&model.MaintenanceTask{
		ID:          "TAR-2",
		Kind:        model.KindCorrective,
		Equipment:   eq,
		Technician:  tech,
		ScheduledAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Status:      model.StatusPending,
	}))

	return reg
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	reg := seedRegistry(t)

	data, err := Encode(reg)
	require.NoError(t, err)

	loaded := Decode(data)

	require.Len(t, loaded.Locations(), 2)
	assert.Equal(t, reg.Locations(), loaded.Locations())

	require.Len(t, loaded.AllEquipment(), 1)
	gotEq := loaded.AllEquipment()[0]
	wantEq := reg.AllEquipment()[0]
	assert.Equal(t, wantEq.ID, gotEq.ID)
	assert.Equal(t, wantEq.Name, gotEq.Name)
	assert.Equal(t, wantEq.UsageHours, gotEq.UsageHours)
	assert.Equal(t, wantEq.ThresholdHours, gotEq.ThresholdHours)
	assert.True(t, wantEq.InstalledAt.Equal(gotEq.InstalledAt))
	// The location reference resolves to the loaded registry's instance.
	loadedLoc, _ := loaded.Location("L1")
	assert.Same(t, loadedLoc, gotEq.Location)

	assert.Equal(t, reg.Technicians(), loaded.Technicians())

	require.Len(t, loaded.Tasks(), 2)
	gotTask := loaded.Tasks()[0]
	assert.Equal(t, "TAR-1", gotTask.ID)
	assert.Equal(t, model.KindPreventive, gotTask.Kind)
	assert.Equal(t, model.StatusCompleted, gotTask.Status)
	assert.Equal(t, "replaced filter", gotTask.Notes)
	require.NotNil(t, gotTask.CompletedAt)
	assert.True(t, gotTask.CompletedAt.Equal(time.Date(2025, 1, 5, 16, 0, 0, 0, time.UTC)))
	require.NotNil(t, gotTask.DurationMinutes)
	assert.Equal(t, 45, *gotTask.DurationMinutes)
	assert.Same(t, gotEq, gotTask.Equipment)

	pendingTask := loaded.Tasks()[1]
	assert.Equal(t, model.StatusPending, pendingTask.Status)
	assert.Nil(t, pendingTask.CompletedAt)
	assert.Nil(t, pendingTask.DurationMinutes)
}

func TestEncodeIsDeterministic(t *testing.T) {
	reg := seedRegistry(t)

	first, err := Encode(reg)
	require.NoError(t, err)
	second, err := Encode(reg)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A decode/encode cycle also reproduces the same bytes.
	third, err := Encode(Decode(first))
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestDecodeUnparseableDocumentYieldsEmptyRegistry(t *testing.T) {
	for _, data := range [][]byte{
		[]byte("not json at all"),
		[]byte(`{"equipos": "should be an array"}`),
		[]byte(""),
	} {
		reg := Decode(data)
		assert.Empty(t, reg.Locations())
		assert.Empty(t, reg.AllEquipment())
		assert.Empty(t, reg.Technicians())
		assert.Empty(t, reg.Tasks())
	}
}

func TestDecodeSkipsMalformedEquipmentRecords(t *testing.T) {
	doc := `{
        "ubicaciones": [{"id": "L1", "nombre": "Plant A", "descripcion": ""}],
        "equipos": [
            {"id": "E1", "nombre": "Pump-1", "ubicacion_id": "L1", "fecha_instalacion": "2024-02-10T08:30:00Z", "horas_uso": 10, "horas_mantenimiento": 100},
            {"id": "E2", "nombre": "Pump-2", "ubicacion_id": "L-ghost", "fecha_instalacion": "2024-02-10T08:30:00Z", "horas_uso": 10, "horas_mantenimiento": 100},
            {"id": "E3", "nombre": "Pump-3", "ubicacion_id": "L1", "fecha_instalacion": "2024-02-11T08:30:00Z", "horas_uso": 5, "horas_mantenimiento": 100}
        ],
        "tecnicos": [],
        "tareas": []
    }`

	reg := Decode([]byte(doc))

	equipment := reg.AllEquipment()
	require.Len(t, equipment, 2)
	assert.Equal(t, "E1", equipment[0].ID)
	assert.Equal(t, "E3", equipment[1].ID)
}

func TestDecodeSkipsBadDatesAndEnums(t *testing.T) {
	doc := `{
        "ubicaciones": [{"id": "L1", "nombre": "Plant A"}],
        "equipos": [
            {"id": "E1", "nombre": "Pump-1", "ubicacion_id": "L1", "fecha_instalacion": "not-a-date"},
            {"id": "E2", "nombre": "Pump-2", "ubicacion_id": "L1", "fecha_instalacion": "2024-02-10T08:30:00Z"}
        ],
        "tecnicos": [{"id": "T1", "nombre": "Ana", "especialidad": "Electrical", "activo": true}],
        "tareas": [
            {"id": "TAR-1", "tipo": "PREDICTIVO", "estado": "PENDIENTE", "equipo_id": "E2", "tecnico_id": "T1", "fecha_programada": "2025-01-05T09:00:00Z"},
            {"id": "TAR-2", "tipo": "PREVENTIVO", "estado": "ARCHIVADA", "equipo_id": "E2", "tecnico_id": "T1", "fecha_programada": "2025-01-05T09:00:00Z"},
            {"id": "TAR-3", "tipo": "PREVENTIVO", "estado": "PENDIENTE", "equipo_id": "E1", "tecnico_id": "T1", "fecha_programada": "2025-01-05T09:00:00Z"},
            {"id": "TAR-4", "tipo": "PREVENTIVO", "estado": "PENDIENTE", "equipo_id": "E2", "tecnico_id": "T1", "fecha_programada": "2025-01-05T09:00:00Z"}
        ]
    }`

	reg := Decode([]byte(doc))

	// E1 dropped for its date, so TAR-3 drops with a dangling reference.
	require.Len(t, reg.AllEquipment(), 1)
	tasks := reg.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "TAR-4", tasks[0].ID)
}

func TestDecodeAcceptsNaiveTimestamps(t *testing.T) {
	// Documents from earlier revisions carry ISO-8601 without an offset.
	doc := `{
        "ubicaciones": [{"id": "L1", "nombre": "Plant A"}],
        "equipos": [{"id": "E1", "nombre": "Pump-1", "ubicacion_id": "L1", "fecha_instalacion": "2024-02-10T08:30:00.123456"}],
        "tecnicos": [],
        "tareas": []
    }`

	reg := Decode([]byte(doc))
	require.Len(t, reg.AllEquipment(), 1)
	assert.Equal(t, 2024, reg.AllEquipment()[0].InstalledAt.Year())
}

func TestDecodeAppliesDefaults(t *testing.T) {
	doc := `{
        "ubicaciones": [{"id": "L1", "nombre": "Plant A"}],
        "equipos": [{"id": "E1", "nombre": "Pump-1", "ubicacion_id": "L1", "fecha_instalacion": "2024-02-10T08:30:00Z"}],
        "tecnicos": [{"id": "T1", "nombre": "Ana", "especialidad": "Electrical"}],
        "tareas": []
    }`

	reg := Decode([]byte(doc))

	require.Len(t, reg.AllEquipment(), 1)
	assert.Equal(t, model.DefaultMaintenanceThresholdHours, reg.AllEquipment()[0].ThresholdHours)

	require.Len(t, reg.Technicians(), 1)
	assert.True(t, reg.Technicians()[0].Active)
}

func TestFileStoreSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "datos", "mantenimiento.json")

	fs, err := NewFileStore(path)
	require.NoError(t, err)

	// Parent directory was created.
	_, err = os.Stat(filepath.Dir(path))
	require.NoError(t, err)

	// Missing file loads as an empty registry.
	empty := fs.Load()
	assert.Empty(t, empty.Locations())

	reg := seedRegistry(t)
	require.NoError(t, fs.Save(reg))

	loaded := fs.Load()
	assert.Len(t, loaded.Locations(), 2)
	assert.Len(t, loaded.AllEquipment(), 1)
	assert.Len(t, loaded.Technicians(), 2)
	assert.Len(t, loaded.Tasks(), 2)

	// Saving twice produces byte-identical documents.
	require.NoError(t, fs.Save(reg))
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, fs.Save(reg))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFileStoreLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mantenimiento.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o644))

	fs, err := NewFileStore(path)
	require.NoError(t, err)

	reg := fs.Load()
	assert.Empty(t, reg.Locations())
	assert.Empty(t, reg.Tasks())
}
