package nvml

import (
	"codeberg.org/mutker/gaugectl/internal/errors"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

const (
	ErrNotInitialized = errors.ErrorCode("nvml_not_initialized")
	ErrInitFailed     = errors.ErrorCode("nvml_init_failed")
	ErrShutdownFailed = errors.ErrorCode("nvml_shutdown_failed")
	ErrDeviceNotFound = errors.ErrorCode("nvml_device_not_found")
	ErrUnknownMetric  = errors.ErrorCode("nvml_unknown_metric")
	ErrReadFailed     = errors.ErrorCode("nvml_read_failed")
)

// nvmlError represents an NVML-specific error
type nvmlError struct {
	ret nvml.Return
}

func (e nvmlError) Error() string {
	return nvml.ErrorString(e.ret)
}

// newNVMLError creates an error from an NVML return code
func newNVMLError(ret nvml.Return) error {
	if ret == nvml.SUCCESS {
		return nil
	}
	return &nvmlError{ret: ret}
}

// IsNVMLSuccess checks if a Return value indicates success
func IsNVMLSuccess(ret nvml.Return) bool {
	return ret == nvml.SUCCESS
}
