package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-backend/internal/model"
	"maintenance-backend/internal/registry"
)

func minutes(n int) *int { return &n }

func seedRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()

	loc := &model.Location{ID: "L1", Name: "Plant A"}
	require.NoError(t, reg.AddLocation(loc))

	installedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	press := &model.Equipment{ID: "E1", Name: "Press", Location: loc, InstalledAt: installedAt, ThresholdHours: 100}
	lathe := &model.Equipment{ID: "E2", Name: "Lathe", Location: loc, InstalledAt: installedAt, ThresholdHours: 100}
	drill := &model.Equipment{ID: "E3", Name: "Drill", Location: loc, InstalledAt: installedAt, ThresholdHours: 100}
	for _, e := range []*model.Equipment{press, lathe, drill} {
		require.NoError(t, reg.AddEquipment(e))
	}

	ana := &model.Technician{ID: "T1", Name: "Ana", Specialty: "Electrical", Active: true}
	luis := &model.Technician{ID: "T2", Name: "Luis", Specialty: "Mechanical", Active: true}
	require.NoError(t, reg.AddTechnician(ana))
	require.NoError(t, reg.AddTechnician(luis))

	completedAt := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	addTask := func(id string, kind model.MaintenanceKind, eq *model.Equipment, tech *model.Technician, status model.TaskStatus, notes string, duration *int) {
		task := &model.MaintenanceTask{
			ID:          id,
			Kind:        kind,
			Equipment:   eq,
			Technician:  tech,
			ScheduledAt: completedAt,
			Status:      status,
			Notes:       notes,
		}
		if status == model.StatusCompleted {
			task.CompletedAt = &completedAt
			task.DurationMinutes = duration
		}
		require.NoError(t, reg.AddTask(task))
	}

	// Press: two corrective failures plus one preventive; Lathe: one
	// corrective without failure wording; Drill: untouched.
	addTask("TAR-1", model.KindCorrective, press, ana, model.StatusCompleted, "falla en el motor", minutes(30))
	addTask("TAR-2", model.KindCorrective, press, ana, model.StatusCompleted, "Rodamiento ROTO tras sobrecarga", minutes(60))
	addTask("TAR-3", model.KindPreventive, press, luis, model.StatusCompleted, "rutina", minutes(90))
	addTask("TAR-4", model.KindCorrective, lathe, luis, model.StatusCompleted, "ajuste menor", nil)
	addTask("TAR-5", model.KindPreventive, lathe, ana, model.StatusPending, "", nil)

	return reg
}

func TestTopEquipmentByTaskCount(t *testing.T) {
	gen := NewGenerator(seedRegistry(t), nil)

	ranked := gen.TopEquipmentByTaskCount(5)
	require.Len(t, ranked, 3)
	assert.Equal(t, "E1", ranked[0].Equipment.ID)
	assert.Equal(t, 3, ranked[0].Count)
	assert.Equal(t, "E2", ranked[1].Equipment.ID)
	assert.Equal(t, 2, ranked[1].Count)
	assert.Equal(t, "E3", ranked[2].Equipment.ID)
	assert.Equal(t, 0, ranked[2].Count)

	top1 := gen.TopEquipmentByTaskCount(1)
	require.Len(t, top1, 1)
	assert.Equal(t, "E1", top1[0].Equipment.ID)
}

func TestMostActiveTechnicians(t *testing.T) {
	gen := NewGenerator(seedRegistry(t), nil)

	ranked := gen.MostActiveTechnicians(5)
	require.Len(t, ranked, 2)
	// Ana: TAR-1, TAR-2 completed; pending TAR-5 does not count.
	assert.Equal(t, "T1", ranked[0].Technician.ID)
	assert.Equal(t, 2, ranked[0].Count)
	assert.Equal(t, "T2", ranked[1].Technician.ID)
	assert.Equal(t, 2, ranked[1].Count)
}

func TestRecurrentFailures(t *testing.T) {
	gen := NewGenerator(seedRegistry(t), nil)

	failures := gen.RecurrentFailures()
	// Matching is case-insensitive and each task counts once even when the
	// notes mention several keywords.
	assert.Equal(t, map[string]int{"Press": 2}, failures)
}

func TestRecurrentFailuresCustomKeywords(t *testing.T) {
	gen := NewGenerator(seedRegistry(t), []string{"sobrecarga"})

	failures := gen.RecurrentFailures()
	assert.Equal(t, map[string]int{"Press": 1}, failures)
}

func TestAverageMaintenanceDuration(t *testing.T) {
	gen := NewGenerator(seedRegistry(t), nil)

	// TAR-1 30m, TAR-2 60m, TAR-3 90m; TAR-4 completed without a duration
	// is excluded.
	assert.InDelta(t, 60.0, gen.AverageMaintenanceDuration(), 0.001)
}

func TestAverageMaintenanceDurationEmpty(t *testing.T) {
	gen := NewGenerator(registry.New(), nil)
	assert.Zero(t, gen.AverageMaintenanceDuration())
}

func TestTasksByKind(t *testing.T) {
	gen := NewGenerator(seedRegistry(t), nil)

	counts := gen.TasksByKind()
	assert.Equal(t, 2, counts[model.KindPreventive])
	assert.Equal(t, 3, counts[model.KindCorrective])
}

func TestTasksByKindEmptyRegistry(t *testing.T) {
	gen := NewGenerator(registry.New(), nil)

	counts := gen.TasksByKind()
	assert.Equal(t, 0, counts[model.KindPreventive])
	assert.Equal(t, 0, counts[model.KindCorrective])
}
