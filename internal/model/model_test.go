package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEquipmentNeedsMaintenance(t *testing.T) {
	testCases := []struct {
		name      string
		usage     int
		threshold int
		expected  bool
	}{
		{name: "well below threshold", usage: 10, threshold: 100, expected: false},
		{name: "just below threshold", usage: 99, threshold: 100, expected: false},
		{name: "exactly at threshold", usage: 100, threshold: 100, expected: true},
		{name: "above threshold", usage: 150, threshold: 100, expected: true},
		{name: "zero usage", usage: 0, threshold: 1, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := &Equipment{
				ID:             "EQ-1",
				Name:           "Pump-1",
				Location:       &Location{ID: "L1", Name: "Plant A"},
				InstalledAt:    time.Now(),
				UsageHours:     tc.usage,
				ThresholdHours: tc.threshold,
			}
			assert.Equal(t, tc.expected, e.NeedsMaintenance())
		})
	}
}

func TestParseMaintenanceKind(t *testing.T) {
	kind, err := ParseMaintenanceKind("PREVENTIVO")
	assert.NoError(t, err)
	assert.Equal(t, KindPreventive, kind)

	kind, err = ParseMaintenanceKind("CORRECTIVO")
	assert.NoError(t, err)
	assert.Equal(t, KindCorrective, kind)

	_, err = ParseMaintenanceKind("PREDICTIVO")
	assert.Error(t, err)

	_, err = ParseMaintenanceKind("")
	assert.Error(t, err)
}

func TestParseTaskStatus(t *testing.T) {
	for _, name := range []string{"PENDIENTE", "EN_PROCESO", "COMPLETADA", "CANCELADA"} {
		status, err := ParseTaskStatus(name)
		assert.NoError(t, err)
		assert.Equal(t, TaskStatus(name), status)
	}

	_, err := ParseTaskStatus("ARCHIVADA")
	assert.Error(t, err)
}
