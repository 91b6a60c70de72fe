package gauge_test

import (
	"testing"

	"codeberg.org/mutker/gaugectl/internal/gauge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveZone(t *testing.T) {
	zones := gauge.DefaultZones()

	tests := []struct {
		value float64
		want  gauge.Role
	}{
		{0, gauge.RoleSuccess},
		{59.99, gauge.RoleSuccess},
		{60, gauge.RoleWarning},
		{84.9, gauge.RoleWarning},
		{85, gauge.RoleDanger},
		{92, gauge.RoleDanger},
		{100, gauge.RoleDanger},
	}

	for _, tt := range tests {
		z := gauge.ResolveZone(tt.value, zones)
		require.NotNil(t, z, "value %v", tt.value)
		assert.Equal(t, tt.want, z.Color, "value %v", tt.value)
	}
}

func TestResolveZoneEmpty(t *testing.T) {
	assert.Nil(t, gauge.ResolveZone(10, nil))
	assert.Nil(t, gauge.ResolveZone(10, []gauge.Zone{}))
}

func TestResolveZoneGapFallsBackToLast(t *testing.T) {
	zones := []gauge.Zone{
		{From: 0, To: 10, Color: gauge.RoleSuccess},
		{From: 20, To: 30, Color: gauge.RoleInfo},
	}

	z := gauge.ResolveZone(15, zones)
	require.NotNil(t, z)
	assert.Equal(t, gauge.RoleInfo, z.Color)
}

func TestResolveZoneOverlapTakesFirst(t *testing.T) {
	zones := []gauge.Zone{
		{From: 0, To: 50, Color: gauge.RoleSuccess},
		{From: 40, To: 100, Color: gauge.RoleDanger},
	}

	z := gauge.ResolveZone(45, zones)
	require.NotNil(t, z)
	assert.Equal(t, gauge.RoleSuccess, z.Color)
}

func TestResolveZoneIdempotent(t *testing.T) {
	zones := gauge.DefaultZones()

	first := gauge.ResolveZone(72, zones)
	second := gauge.ResolveZone(72, zones)
	assert.Equal(t, first, second)
}

func TestResolveZoneReturnsCopy(t *testing.T) {
	zones := gauge.DefaultZones()

	z := gauge.ResolveZone(10, zones)
	z.Color = gauge.RoleInfo
	assert.Equal(t, gauge.RoleSuccess, zones[0].Color)
}
