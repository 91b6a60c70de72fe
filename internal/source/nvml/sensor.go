// Package nvml reads GPU telemetry through NVIDIA's management library.
package nvml

import (
	"context"
	"sync"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

type Metric string

const (
	Temperature Metric = "temperature" // °C
	FanSpeed    Metric = "fan_speed"   // percent
	PowerUsage  Metric = "power_usage" // W
	Utilization Metric = "utilization" // percent

	milliWattsToWatts = 1000
)

// Valid reports whether m is a supported metric.
func (m Metric) Valid() bool {
	switch m {
	case Temperature, FanSpeed, PowerUsage, Utilization:
		return true
	default:
		return false
	}
}

// Sensor reads one metric from one device.
type Sensor struct {
	lib    library
	index  int
	metric Metric

	mu     sync.Mutex
	dev    device
	closed bool
}

// Open initializes NVML and resolves the device at index.
func Open(index int, metric Metric) (*Sensor, error) {
	return open(system, index, metric)
}

func open(lib library, index int, metric Metric) (*Sensor, error) {
	if !metric.Valid() {
		return nil, errors.New().WithData(ErrUnknownMetric, metric)
	}
	if err := lib.Initialize(); err != nil {
		return nil, err
	}

	dev, err := lib.GetDevice(index)
	if err != nil {
		_ = lib.Shutdown()
		return nil, err
	}

	return &Sensor{lib: lib, index: index, metric: metric, dev: dev}, nil
}

func (s *Sensor) Read(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, errors.New().New(ErrNotInitialized)
	}

	var (
		v   float64
		ret nvml.Return
	)
	switch s.metric {
	case Temperature:
		var t uint32
		t, ret = s.dev.GetTemperature(nvml.TEMPERATURE_GPU)
		v = float64(t)
	case FanSpeed:
		var f uint32
		f, ret = s.dev.GetFanSpeed()
		v = float64(f)
	case PowerUsage:
		var p uint32
		p, ret = s.dev.GetPowerUsage()
		v = float64(p) / milliWattsToWatts
	case Utilization:
		var u nvml.Utilization
		u, ret = s.dev.GetUtilizationRates()
		v = float64(u.Gpu)
	}

	if !IsNVMLSuccess(ret) {
		return 0, errors.New().Wrap(ErrReadFailed, newNVMLError(ret)).WithData(string(s.metric))
	}
	return v, nil
}

// Close releases this sensor's NVML reference.
func (s *Sensor) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.lib.Shutdown()
}
