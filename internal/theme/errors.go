package theme

import "codeberg.org/mutker/gaugectl/internal/errors"

const (
	ErrUnknownTheme = errors.ErrorCode("theme_unknown")
	ErrInvalidColor = errors.ErrorCode("theme_invalid_color")
	ErrUnknownRole  = errors.ErrorCode("theme_unknown_role")
)
