package dashboard

import "codeberg.org/mutker/gaugectl/internal/errors"

const (
	ErrReadFile     = errors.ErrorCode("dashboard_read_failed")
	ErrParse        = errors.ErrorCode("dashboard_parse_failed")
	ErrInvalid      = errors.ErrorCode("dashboard_invalid")
	ErrDuplicateID  = errors.ErrorCode("dashboard_duplicate_id")
	ErrUnknownGauge = errors.ErrorCode("dashboard_unknown_gauge")
	ErrSource       = errors.ErrorCode("dashboard_invalid_source")
)
