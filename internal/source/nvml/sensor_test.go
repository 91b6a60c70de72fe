package nvml

import (
	"context"
	"testing"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	temp, fan, power uint32
	util             nvml.Utilization
	ret              nvml.Return
}

func (d *fakeDevice) GetTemperature(nvml.TemperatureSensors) (uint32, nvml.Return) {
	return d.temp, d.ret
}

func (d *fakeDevice) GetFanSpeed() (uint32, nvml.Return) { return d.fan, d.ret }

func (d *fakeDevice) GetPowerUsage() (uint32, nvml.Return) { return d.power, d.ret }

func (d *fakeDevice) GetUtilizationRates() (nvml.Utilization, nvml.Return) {
	return d.util, d.ret
}

type fakeLibrary struct {
	dev      *fakeDevice
	missing  bool
	inits    int
	shutdown int
}

func (l *fakeLibrary) Initialize() error { l.inits++; return nil }

func (l *fakeLibrary) Shutdown() error { l.shutdown++; return nil }

func (l *fakeLibrary) GetDevice(index int) (device, error) {
	if l.missing {
		return nil, errors.New().WithData(ErrDeviceNotFound, index)
	}
	return l.dev, nil
}

func TestSensorMetrics(t *testing.T) {
	dev := &fakeDevice{
		temp:  64,
		fan:   45,
		power: 215500,
		util:  nvml.Utilization{Gpu: 88, Memory: 30},
		ret:   nvml.SUCCESS,
	}

	tests := []struct {
		metric Metric
		want   float64
	}{
		{Temperature, 64},
		{FanSpeed, 45},
		{PowerUsage, 215.5},
		{Utilization, 88},
	}
	for _, tt := range tests {
		t.Run(string(tt.metric), func(t *testing.T) {
			lib := &fakeLibrary{dev: dev}
			s, err := open(lib, 0, tt.metric)
			require.NoError(t, err)

			v, err := s.Read(context.Background())
			require.NoError(t, err)
			assert.InDelta(t, tt.want, v, 1e-9)

			require.NoError(t, s.Close())
			require.NoError(t, s.Close())
			assert.Equal(t, 1, lib.shutdown)
		})
	}
}

func TestSensorErrors(t *testing.T) {
	_, err := open(&fakeLibrary{}, 0, "voltage")
	assert.True(t, errors.HasCode(err, ErrUnknownMetric))

	lib := &fakeLibrary{missing: true}
	_, err = open(lib, 3, Temperature)
	assert.True(t, errors.HasCode(err, ErrDeviceNotFound))
	assert.Equal(t, 1, lib.shutdown, "failed open releases the library")

	s, err := open(&fakeLibrary{dev: &fakeDevice{ret: nvml.ERROR_NOT_SUPPORTED}}, 0, FanSpeed)
	require.NoError(t, err)
	_, err = s.Read(context.Background())
	assert.True(t, errors.HasCode(err, ErrReadFailed))

	require.NoError(t, s.Close())
	_, err = s.Read(context.Background())
	assert.True(t, errors.HasCode(err, ErrNotInitialized))
}
