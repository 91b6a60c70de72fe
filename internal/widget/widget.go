// Package widget composes value rules and shape geometry into a live
// gauge with its own animation timer and threshold latch.
package widget

import (
	"math"
	"sync"

	"codeberg.org/mutker/gaugectl/internal/gauge"
	"codeberg.org/mutker/gaugectl/internal/logger"
	"codeberg.org/mutker/gaugectl/internal/shape"
)

type delivery struct {
	threshold *gauge.Threshold
	crossing  gauge.Crossing
	frame     Frame
	subs      []func(Frame)
}

// Option customizes a Widget.
type Option func(*Widget)

// WithClock replaces the animation clock. The default is RealClock.
func WithClock(c Clock) Option {
	return func(w *Widget) {
		if c != nil {
			w.clock = c
		}
	}
}

// WithLogger sets the logger used for configuration warnings.
func WithLogger(l logger.Logger) Option {
	return func(w *Widget) {
		if l != nil {
			w.log = l
		}
	}
}

// Widget is one live gauge. All methods are safe for concurrent use.
// Updates are applied in call order; a running animation is preempted,
// never queued.
type Widget struct {
	mu sync.Mutex

	cfg   Config
	gen   shape.Generator
	anim  *gauge.Animator
	latch gauge.Latch

	target   float64
	raw      float64
	hasValue bool

	clock      Clock
	timer      Timer
	generation uint64
	closed     bool

	frame   Frame
	seq     uint64
	subs    map[uint64]func(Frame)
	nextSub uint64

	// queue holds hook and subscriber deliveries in the order their
	// changes were applied.
	queue    []delivery
	draining bool

	log logger.Logger
}

// New builds a widget. An invalid cfg is logged and normalized; it never
// fails.
func New(cfg Config, opts ...Option) *Widget {
	w := &Widget{
		clock: RealClock{},
		log:   logger.Nop(),
		subs:  make(map[uint64]func(Frame)),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.apply(cfg)
	w.rebuild()
	return w
}

// apply installs cfg and resets animation and latch state. Callers hold mu.
func (w *Widget) apply(cfg Config) {
	if err := cfg.Check(); err != nil {
		w.log.Warn().Err(err).Str("gauge", cfg.ID).Msg("Gauge configuration normalized")
	}
	w.cfg = cfg.Normalize()
	w.gen, _ = shape.For(w.cfg.Shape)
	w.anim = gauge.NewAnimator(w.cfg.Animated)
	w.latch = gauge.Latch{}
	w.target = w.cfg.Domain.Min
}

// Update feeds a raw reading. NaN readings are dropped.
func (w *Widget) Update(raw float64) {
	if math.IsNaN(raw) {
		w.log.Debug().Str("gauge", w.id()).Msg("Dropping NaN reading")
		return
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.raw, w.hasValue = raw, true
	w.publish(w.retarget(raw))
	w.mu.Unlock()

	w.drain()
}

// retarget clamps raw, restarts the animation toward it and evaluates
// thresholds on the new displayed value. Callers hold mu.
func (w *Widget) retarget(raw float64) gauge.Crossing {
	w.stopTimer()
	w.target = w.cfg.Domain.Clamp(raw)
	displayed, animating := w.anim.Advance(w.target)
	if animating {
		gen := w.generation
		w.timer = w.clock.Every(gauge.TickPeriod, func() { w.tick(gen) })
	}
	return w.evaluate(displayed)
}

func (w *Widget) tick(gen uint64) {
	w.mu.Lock()
	if w.closed || gen != w.generation || !w.anim.Active() {
		w.mu.Unlock()
		return
	}
	displayed, done := w.anim.Tick()
	if done {
		w.stopTimer()
	}
	w.publish(w.evaluate(displayed))
	w.mu.Unlock()

	w.drain()
}

// stopTimer cancels the running animation timer and invalidates any tick
// already in flight. Callers hold mu.
func (w *Widget) stopTimer() {
	w.generation++
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Widget) evaluate(displayed float64) gauge.Crossing {
	latch, crossing := w.cfg.Threshold.Evaluate(w.cfg.Domain.Clamp(displayed), w.latch)
	w.latch = latch
	return crossing
}

// publish rebuilds the frame and queues its delivery. Callers hold mu.
func (w *Widget) publish(c gauge.Crossing) {
	w.rebuild()
	subs := make([]func(Frame), 0, len(w.subs))
	for id := uint64(0); id < w.nextSub; id++ {
		if fn, ok := w.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	w.queue = append(w.queue, delivery{
		threshold: w.cfg.Threshold,
		crossing:  c,
		frame:     w.frame,
		subs:      subs,
	})
}

// drain delivers queued hooks and frames without holding mu. Only one
// goroutine drains at a time, so deliveries keep their order and a hook
// may call back into the widget.
func (w *Widget) drain() {
	w.mu.Lock()
	if w.draining {
		w.mu.Unlock()
		return
	}
	w.draining = true
	for len(w.queue) > 0 {
		d := w.queue[0]
		w.queue = w.queue[1:]
		w.mu.Unlock()

		d.threshold.Fire(d.crossing)
		for _, fn := range d.subs {
			fn(d.frame)
		}

		w.mu.Lock()
	}
	w.draining = false
	w.mu.Unlock()
}

// rebuild recomputes the frame from the displayed value. Callers hold mu.
func (w *Widget) rebuild() {
	cfg := w.cfg
	value := cfg.Domain.Clamp(w.anim.Displayed())
	if !w.anim.Primed() {
		value = cfg.Domain.Min
	}
	pct := cfg.Domain.Percentage(value)
	zones := cfg.activeZones()
	zone := gauge.ResolveZone(value, zones)

	var mode *gauge.ModeStyle
	if style, ok := gauge.ResolveMode(cfg.Mode); ok {
		mode = &style
	}
	fill := fillRole(w.latch, zone, mode)
	display := gauge.FormatValue(value, cfg.Precision)

	drawing := w.gen.Generate(shape.Input{
		Percentage:    pct,
		Size:          cfg.Size,
		Zones:         zones,
		Domain:        cfg.Domain,
		Fill:          fill,
		DisplayValue:  display,
		Unit:          cfg.Unit,
		ShowValue:     cfg.ShowValue,
		Mode:          mode,
		ShowBadge:     cfg.ShowModeIndicator,
		Orientation:   cfg.Orientation,
		IndicatorOnly: cfg.IndicatorOnly,
	})
	width, height := w.gen.Footprint(cfg.Size, cfg.Orientation)

	w.seq++
	f := Frame{
		ID:            cfg.ID,
		Label:         cfg.Label,
		Unit:          cfg.Unit,
		Kind:          w.gen.Kind(),
		Width:         width,
		Height:        height,
		LabelBelow:    w.gen.Kind().LabelBelow(),
		Target:        w.target,
		Value:         value,
		Percentage:    pct,
		Display:       display,
		Animating:     w.anim.Active(),
		Zone:          zone,
		Fill:          fill,
		Latch:         w.latch,
		Alert:         w.latch.Alert(),
		ShowValue:     cfg.ShowValue,
		IndicatorOnly: cfg.IndicatorOnly,
		Drawing:       drawing,
		Seq:           w.seq,
	}
	if mode != nil && cfg.ShowModeIndicator {
		f.Mode = mode
		f.Status = mode.Icon + " " + mode.Label
	}
	w.frame = f
}

// Frame returns the current snapshot.
func (w *Widget) Frame() Frame {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frame
}

// Config returns the normalized configuration in effect.
func (w *Widget) Config() Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cfg
}

// ValueText is shorthand for Frame().ValueText().
func (w *Widget) ValueText() string {
	return w.Frame().ValueText()
}

// Reconfigure replaces the configuration wholesale. Animation and latch
// state start over; the last reading, if any, is re-applied under the new
// configuration without animating. The re-applied reading seeds the latch
// silently, so an excursion already reported does not fire again.
func (w *Widget) Reconfigure(cfg Config) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.stopTimer()
	w.apply(cfg)
	if w.hasValue {
		w.retarget(w.raw)
	}
	w.publish(gauge.Crossing{})
	w.mu.Unlock()

	w.drain()
}

// Click invokes the click handler, if any, with the clamped displayed
// value and the label. It does not change widget state.
func (w *Widget) Click() {
	w.mu.Lock()
	handler := w.cfg.OnClick
	value, label := w.frame.Value, w.cfg.Label
	w.mu.Unlock()

	if handler != nil {
		handler(value, label)
	}
}

// Subscribe registers fn to receive every rebuilt frame. fn runs on the
// goroutine that caused the change, after internal locks are released.
// The returned func unregisters it.
func (w *Widget) Subscribe(fn func(Frame)) (cancel func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextSub
	w.nextSub++
	w.subs[id] = fn
	return func() {
		w.mu.Lock()
		delete(w.subs, id)
		w.mu.Unlock()
	}
}

// Close stops the animation timer. No callback or tick mutates the widget
// afterwards. Close is idempotent.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	w.stopTimer()
	w.subs = make(map[uint64]func(Frame))
	w.queue = nil
}

// Closed reports whether Close has been called.
func (w *Widget) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

func (w *Widget) id() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cfg.ID
}
