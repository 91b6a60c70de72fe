package widget

import "codeberg.org/mutker/gaugectl/internal/errors"

const (
	ErrInvalidDomain  = errors.ErrorCode("widget_invalid_domain")
	ErrUnknownShape   = errors.ErrorCode("widget_unknown_shape")
	ErrInvalidSize    = errors.ErrorCode("widget_invalid_size")
	ErrInvalidZone    = errors.ErrorCode("widget_invalid_zone")
	ErrInvalidCutoffs = errors.ErrorCode("widget_invalid_threshold")
)
