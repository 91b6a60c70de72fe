// Package source produces raw readings for gauges and pumps them into a
// sink on a fixed interval.
package source

import (
	"context"
	"time"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"codeberg.org/mutker/gaugectl/internal/logger"
)

// Source yields one reading per call. Implementations need not be safe for
// concurrent use; Run calls Read from a single goroutine.
type Source interface {
	Read(ctx context.Context) (float64, error)
	Close() error
}

// Sink receives every successful reading.
type Sink func(value float64)

// Run reads src immediately and then once per interval until ctx is done
// or src reports ErrExhausted. Failed reads are logged and skipped. src is
// closed on return.
func Run(ctx context.Context, name string, src Source, interval time.Duration, sink Sink, log logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Warn().Err(err).Str("gauge", name).Msg("Failed to close source")
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	failures := 0
	for {
		v, err := src.Read(ctx)
		switch {
		case err == nil:
			if failures > 0 {
				log.Info().Str("gauge", name).Int("failures", failures).Msg("Source recovered")
				failures = 0
			}
			sink(v)
		case errors.HasCode(err, ErrExhausted):
			log.Debug().Str("gauge", name).Msg("Source exhausted")
			return nil
		case ctx.Err() != nil:
			return nil
		default:
			failures++
			// Only the first failure of a streak is worth a warning.
			if failures == 1 {
				log.Warn().Err(err).Str("gauge", name).Msg("Failed to read source")
			} else {
				log.Debug().Err(err).Str("gauge", name).Int("failures", failures).Msg("Source still failing")
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Func adapts a plain function to Source.
type Func func(ctx context.Context) (float64, error)

func (f Func) Read(ctx context.Context) (float64, error) { return f(ctx) }
func (Func) Close() error { return nil }
