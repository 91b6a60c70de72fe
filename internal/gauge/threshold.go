package gauge

// Threshold holds optional raw-value cutoffs and one-shot hooks. A nil
// cutoff disables that band.
type Threshold struct {
	Warning  *float64 `yaml:"warning"`
	Critical *float64 `yaml:"critical"`

	OnWarning  func(value float64) `yaml:"-"`
	OnCritical func(value float64) `yaml:"-"`
}

// Latch is the last evaluated alert state of one widget.
type Latch struct {
	Warning  bool
	Critical bool
}

// Alert is the glyph a host should display for a latch.
type Alert int

const (
	AlertNone Alert = iota
	AlertWarning
	AlertCritical
)

// Glyph returns the alert marker drawn next to a gauge.
func (a Alert) Glyph() string {
	switch a {
	case AlertCritical:
		return "!"
	case AlertWarning:
		return "⚠"
	default:
		return ""
	}
}

func (a Alert) String() string {
	switch a {
	case AlertCritical:
		return "critical"
	case AlertWarning:
		return "warning"
	default:
		return "none"
	}
}

// Alert returns the display state. Critical masks warning.
func (l Latch) Alert() Alert {
	switch {
	case l.Critical:
		return AlertCritical
	case l.Warning:
		return AlertWarning
	default:
		return AlertNone
	}
}

// Crossing records which bands were entered by one evaluation.
type Crossing struct {
	EnteredWarning  bool
	EnteredCritical bool
	Value           float64
}

// Any reports whether any band was entered.
func (c Crossing) Any() bool {
	return c.EnteredWarning || c.EnteredCritical
}

// Cutoffs returns the configured bounds, using ok flags for absent ones.
func (t *Threshold) Cutoffs() (warning float64, hasWarning bool, critical float64, hasCritical bool) {
	if t == nil {
		return 0, false, 0, false
	}
	if t.Warning != nil {
		warning, hasWarning = *t.Warning, true
	}
	if t.Critical != nil {
		critical, hasCritical = *t.Critical, true
	}
	return warning, hasWarning, critical, hasCritical
}

// Evaluate computes the new latch for value and reports the bands entered
// since prev. Warning is the band [warning, critical); critical is
// [critical, +inf). A value that jumps from below warning straight past
// critical enters only critical.
func (t *Threshold) Evaluate(value float64, prev Latch) (Latch, Crossing) {
	warning, hasWarning, critical, hasCritical := t.Cutoffs()

	next := Latch{}
	if hasCritical {
		next.Critical = value >= critical
	}
	if hasWarning {
		next.Warning = value >= warning && !(hasCritical && value >= critical)
	}

	return next, Crossing{
		EnteredWarning:  next.Warning && !prev.Warning,
		EnteredCritical: next.Critical && !prev.Critical,
		Value:           value,
	}
}

// Fire invokes the hooks for the bands c entered.
func (t *Threshold) Fire(c Crossing) {
	if t == nil {
		return
	}
	if c.EnteredCritical && t.OnCritical != nil {
		t.OnCritical(c.Value)
	}
	if c.EnteredWarning && t.OnWarning != nil {
		t.OnWarning(c.Value)
	}
}

// Float returns a pointer to v, for building thresholds in code.
func Float(v float64) *float64 {
	return &v
}
