package dashboard_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/gaugectl/internal/dashboard"
	"codeberg.org/mutker/gaugectl/internal/errors"
	"codeberg.org/mutker/gaugectl/internal/gauge"
	"codeberg.org/mutker/gaugectl/internal/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const board = `
title: Engine room
theme: hmi-classic
colors:
  danger: "#ff0000"
gauges:
  - id: coolant
    label: Coolant
    unit: "°C"
    type: semi-circular
    min: 0
    max: 120
    threshold:
      warning: 90
      critical: 105
    source:
      kind: replay
      values: [70, 80, 95]
  - id: exhaust
    type: pressure-compact
    mode: exhaust
    zones: []
    source:
      kind: modbus
      endpoint: 127.0.0.1:502
      address: 10
      data_type: float32
  - id: gpu
    type: linear
    orientation: vertical
    show_value: false
    source:
      kind: nvml
      metric: temperature
`

func TestParse(t *testing.T) {
	f, err := dashboard.Parse([]byte(board))
	require.NoError(t, err)

	assert.Equal(t, "Engine room", f.Title)
	assert.Equal(t, "hmi-classic", f.Theme)
	assert.Equal(t, "#ff0000", f.Colors["danger"])
	require.Len(t, f.Gauges, 3)

	coolant := f.Gauges[0]
	assert.Equal(t, "Coolant", coolant.Label)
	assert.Equal(t, time.Second, coolant.Source.Interval())
	require.NotNil(t, coolant.Source.Loop)
	assert.True(t, *coolant.Source.Loop)

	exhaust := f.Gauges[1]
	assert.Equal(t, "exhaust", exhaust.Label, "label defaults to id")
	assert.Equal(t, uint8(3), exhaust.Source.FC)
	assert.Equal(t, "big", exhaust.Source.WordOrder)
	require.NotNil(t, exhaust.Source.Scale)
	assert.InDelta(t, 1.0, *exhaust.Source.Scale, 1e-9)
	assert.Equal(t, time.Second, exhaust.Source.Timeout())
	assert.Equal(t, "float32", exhaust.Source.DataType)
}

func TestWidgetConfig(t *testing.T) {
	f, err := dashboard.Parse([]byte(board))
	require.NoError(t, err)

	cfg := f.Gauges[0].WidgetConfig()
	assert.Equal(t, "coolant", cfg.ID)
	assert.Equal(t, shape.SemiCircular, cfg.Shape)
	assert.Equal(t, gauge.Domain{Min: 0, Max: 120}, cfg.Domain)
	assert.Equal(t, gauge.DefaultZones(), cfg.Zones, "absent zones keep the defaults")
	require.NotNil(t, cfg.Threshold)
	assert.InDelta(t, 90, *cfg.Threshold.Warning, 1e-9)
	assert.InDelta(t, 105, *cfg.Threshold.Critical, 1e-9)
	assert.True(t, cfg.Animated)

	cfg = f.Gauges[1].WidgetConfig()
	assert.Equal(t, gauge.ModeExhaust, cfg.Mode)
	assert.NotNil(t, cfg.Zones)
	assert.Empty(t, cfg.Zones, "explicit empty zones disable banding")
	assert.Nil(t, cfg.Threshold)

	cfg = f.Gauges[2].WidgetConfig()
	assert.Equal(t, shape.Vertical, cfg.Orientation)
	assert.False(t, cfg.ShowValue)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.ErrorCode
	}{
		{
			name: "unknown key",
			doc:  "gauges:\n  - id: a\n    colour: red\n",
			code: dashboard.ErrParse,
		},
		{
			name: "no gauges",
			doc:  "title: empty\n",
			code: dashboard.ErrInvalid,
		},
		{
			name: "duplicate id",
			doc:  "gauges:\n  - id: a\n  - id: a\n",
			code: dashboard.ErrDuplicateID,
		},
		{
			name: "inverted domain",
			doc:  "gauges:\n  - id: a\n    min: 10\n    max: 5\n",
			code: dashboard.ErrInvalid,
		},
		{
			name: "unknown type",
			doc:  "gauges:\n  - id: a\n    type: hexagon\n",
			code: dashboard.ErrInvalid,
		},
		{
			name: "warning above critical",
			doc:  "gauges:\n  - id: a\n    threshold: {warning: 90, critical: 80}\n",
			code: dashboard.ErrInvalid,
		},
		{
			name: "modbus without endpoint",
			doc:  "gauges:\n  - id: a\n    source: {kind: modbus}\n",
			code: dashboard.ErrSource,
		},
		{
			name: "modbus bad fc",
			doc:  "gauges:\n  - id: a\n    source: {kind: modbus, endpoint: 'h:502', fc: 6}\n",
			code: dashboard.ErrSource,
		},
		{
			name: "replay without values",
			doc:  "gauges:\n  - id: a\n    source: {kind: replay}\n",
			code: dashboard.ErrSource,
		},
		{
			name: "unknown metric",
			doc:  "gauges:\n  - id: a\n    source: {kind: nvml, metric: voltage}\n",
			code: dashboard.ErrSource,
		},
		{
			name: "unknown source kind",
			doc:  "gauges:\n  - id: a\n    source: {kind: mqtt}\n",
			code: dashboard.ErrSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dashboard.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	doc := "gauges:\n  - id: a\n    min: 5\n    max: 1\n  - id: a\n    type: nope\n"
	_, err := dashboard.Parse([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, dashboard.ErrInvalid))
	assert.True(t, errors.HasCode(err, dashboard.ErrDuplicateID))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(board), 0o600))

	f, err := dashboard.Load(path)
	require.NoError(t, err)

	g, err := f.Gauge("gpu")
	require.NoError(t, err)
	assert.Equal(t, string(shape.Linear), g.Type)

	_, err = f.Gauge("missing")
	assert.True(t, errors.HasCode(err, dashboard.ErrUnknownGauge))

	_, err = dashboard.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, errors.HasCode(err, dashboard.ErrReadFile))
}
