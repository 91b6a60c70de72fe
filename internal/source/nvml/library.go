package nvml

import (
	"sync"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// device is the part of nvml.Device the sensors read.
type device interface {
	GetTemperature(sensor nvml.TemperatureSensors) (uint32, nvml.Return)
	GetFanSpeed() (uint32, nvml.Return)
	GetPowerUsage() (uint32, nvml.Return)
	GetUtilizationRates() (nvml.Utilization, nvml.Return)
}

// library abstracts NVML lifecycle and device lookup for testing
type library interface {
	Initialize() error
	Shutdown() error
	GetDevice(index int) (device, error)
}

// sharedLibrary reference-counts nvml.Init so several gauges can read the
// same process-wide NVML instance.
type sharedLibrary struct {
	mu   sync.Mutex
	refs int
}

var system = &sharedLibrary{}

func (l *sharedLibrary) Initialize() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.refs > 0 {
		l.refs++
		return nil
	}

	ret := nvml.Init()
	if !IsNVMLSuccess(ret) {
		return errors.New().Wrap(ErrInitFailed, newNVMLError(ret))
	}

	l.refs = 1

	return nil
}

func (l *sharedLibrary) Shutdown() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.refs == 0 {
		return nil
	}
	l.refs--
	if l.refs > 0 {
		return nil
	}

	ret := nvml.Shutdown()
	if !IsNVMLSuccess(ret) {
		return errors.New().Wrap(ErrShutdownFailed, newNVMLError(ret))
	}

	return nil
}

func (l *sharedLibrary) GetDevice(index int) (device, error) {
	errFactory := errors.New()

	l.mu.Lock()
	initialized := l.refs > 0
	l.mu.Unlock()
	if !initialized {
		return nil, errFactory.New(ErrNotInitialized)
	}

	dev, ret := nvml.DeviceGetHandleByIndex(index)
	if !IsNVMLSuccess(ret) {
		return nil, errFactory.Wrap(ErrDeviceNotFound, newNVMLError(ret)).WithData(index)
	}

	return dev, nil
}
