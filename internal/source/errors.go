package source

import "codeberg.org/mutker/gaugectl/internal/errors"

const (
	ErrExhausted   = errors.ErrorCode("source_exhausted")
	ErrOpenReplay  = errors.ErrorCode("source_open_replay_failed")
	ErrParseReplay = errors.ErrorCode("source_parse_replay_failed")
	ErrUnsupported = errors.ErrorCode("source_unsupported_kind")
	ErrBuild       = errors.ErrorCode("source_build_failed")
)
