// Package board runs a dashboard: one widget per gauge, fed by its source,
// with crossings journaled and sounded.
package board

import (
	"context"
	"sync"
	"time"

	"codeberg.org/mutker/gaugectl/internal/alarm"
	"codeberg.org/mutker/gaugectl/internal/dashboard"
	"codeberg.org/mutker/gaugectl/internal/errors"
	"codeberg.org/mutker/gaugectl/internal/gauge"
	"codeberg.org/mutker/gaugectl/internal/journal"
	"codeberg.org/mutker/gaugectl/internal/logger"
	"codeberg.org/mutker/gaugectl/internal/source"
	"codeberg.org/mutker/gaugectl/internal/widget"
	"golang.org/x/sync/errgroup"
)

const (
	ErrBuildSource = errors.ErrorCode("board_build_source_failed")
	ErrUnknown     = errors.ErrorCode("board_unknown_gauge")
)

// SourceBuilder turns a feed definition into a Source.
type SourceBuilder func(dashboard.Source) (source.Source, error)

type Option func(*Board)

func WithClock(c widget.Clock) Option { return func(b *Board) { b.clock = c } }

func WithRecorder(r journal.Recorder) Option { return func(b *Board) { b.rec = r } }

func WithAlarm(a *alarm.Alarm) Option { return func(b *Board) { b.alarm = a } }

func WithLogger(l logger.Logger) Option { return func(b *Board) { b.log = l } }

func WithSourceBuilder(s SourceBuilder) Option { return func(b *Board) { b.build = s } }

// WithNow replaces the journal timestamp source.
func WithNow(now func() time.Time) Option { return func(b *Board) { b.now = now } }

type feed struct {
	id       string
	src      source.Source
	interval time.Duration
}

// Board owns the widgets and feeds of one dashboard file.
type Board struct {
	file    *dashboard.File
	widgets []*widget.Widget
	byID    map[string]*widget.Widget
	feeds   []feed

	clock widget.Clock
	rec   journal.Recorder
	alarm *alarm.Alarm
	log   logger.Logger
	build SourceBuilder
	now   func() time.Time

	closeOnce sync.Once
}

// New builds a widget for every gauge and a source for every gauge with a
// feed. Sources already built are closed when a later one fails.
func New(f *dashboard.File, opts ...Option) (*Board, error) {
	b := &Board{
		file:  f,
		byID:  make(map[string]*widget.Widget, len(f.Gauges)),
		clock: widget.RealClock{},
		log:   logger.Nop(),
		build: source.Build,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}

	for _, g := range f.Gauges {
		w := widget.New(b.widgetConfig(g), widget.WithClock(b.clock), widget.WithLogger(b.log))
		b.widgets = append(b.widgets, w)
		b.byID[g.ID] = w

		src, err := b.build(g.Source)
		if err != nil {
			b.Close()
			b.CloseSources()
			return nil, errors.New().Wrap(ErrBuildSource, err).WithData(g.ID)
		}
		if src != nil {
			b.feeds = append(b.feeds, feed{id: g.ID, src: src, interval: g.Source.Interval()})
		}
	}

	b.log.Info().
		Int("gauges", len(b.widgets)).
		Int("feeds", len(b.feeds)).
		Msg("Dashboard ready")

	return b, nil
}

func (b *Board) widgetConfig(g dashboard.Gauge) widget.Config {
	cfg := g.WidgetConfig()
	id := g.ID

	if cfg.Threshold != nil {
		cfg.Threshold.OnWarning = func(v float64) { b.crossing(id, gauge.AlertWarning, v) }
		cfg.Threshold.OnCritical = func(v float64) { b.crossing(id, gauge.AlertCritical, v) }
	}
	cfg.OnClick = func(v float64, label string) {
		b.log.Info().Str("gauge", id).Str("label", label).Float64("value", v).Msg("Gauge selected")
	}
	return cfg
}

func (b *Board) crossing(id string, kind gauge.Alert, v float64) {
	b.log.Warn().Str("gauge", id).Str("kind", kind.String()).Float64("value", v).Msg("Threshold crossed")

	if b.rec != nil {
		err := b.rec.RecordCrossing(journal.Crossing{Timestamp: b.now(), GaugeID: id, Kind: kind, Value: v})
		if err != nil {
			b.log.Warn().Err(err).Str("gauge", id).Msg("Failed to journal crossing")
		}
	}

	switch kind {
	case gauge.AlertCritical:
		b.alarm.Critical(id, v)
	case gauge.AlertWarning:
		b.alarm.Warning(id, v)
	}
}

// Title is the dashboard title.
func (b *Board) Title() string { return b.file.Title }

// Widgets returns the widgets in file order.
func (b *Board) Widgets() []*widget.Widget { return b.widgets }

// Widget returns the widget of a gauge id.
func (b *Board) Widget(id string) (*widget.Widget, bool) {
	w, ok := b.byID[id]
	return w, ok
}

// Feed pushes a raw reading into a gauge and journals it.
func (b *Board) Feed(id string, raw float64) error {
	w, ok := b.byID[id]
	if !ok {
		return errors.New().WithData(ErrUnknown, id)
	}
	w.Update(raw)

	if b.rec != nil {
		f := w.Frame()
		err := b.rec.RecordReading(journal.Reading{
			Timestamp: b.now(),
			GaugeID:   id,
			Value:     raw,
			Zone:      f.Fill,
			Alert:     f.Alert,
		})
		if err != nil {
			b.log.Debug().Err(err).Str("gauge", id).Msg("Failed to journal reading")
		}
	}
	return nil
}

// Run polls every feed until ctx ends. Each feed gets its own goroutine and
// closes its source when done.
func (b *Board) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fd := range b.feeds {
		g.Go(func() error {
			return source.Run(gctx, fd.id, fd.src, fd.interval, func(v float64) {
				if err := b.Feed(fd.id, v); err != nil {
					b.log.Debug().Err(err).Msg("Dropped reading")
				}
			}, b.log)
		})
	}
	return g.Wait()
}

// Close stops every widget. Sources are closed by Run.
func (b *Board) Close() {
	b.closeOnce.Do(func() {
		for _, w := range b.widgets {
			w.Close()
		}
	})
}

// CloseSources closes sources of a board that will never Run.
func (b *Board) CloseSources() {
	for _, fd := range b.feeds {
		if err := fd.src.Close(); err != nil {
			b.log.Debug().Err(err).Str("gauge", fd.id).Msg("Failed to close source")
		}
	}
}
