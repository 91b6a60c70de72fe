// Package journal keeps a SQLite history of gauge readings and threshold
// crossings.
package journal

import (
	"codeberg.org/mutker/gaugectl/internal/errors"
	"codeberg.org/mutker/gaugectl/internal/logger"
)

type noopRecorder struct{}

// New returns a SQLite-backed Recorder, or a no-op one when the journal is
// disabled.
func New(cfg Config, log logger.Logger) (Recorder, error) {
	errFactory := errors.New()

	if log == nil {
		log = logger.Nop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		log.Debug().Msg("Journal disabled, using no-op recorder")
		return noopRecorder{}, nil
	}

	store, err := Open(cfg, log)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (noopRecorder) RecordReading(Reading) error { return nil }
func (noopRecorder) RecordCrossing(Crossing) error { return nil }
func (noopRecorder) Close() error { return nil }
