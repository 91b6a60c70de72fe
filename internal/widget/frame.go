package widget

import (
	"codeberg.org/mutker/gaugectl/internal/gauge"
	"codeberg.org/mutker/gaugectl/internal/shape"
)

// Frame is a snapshot of everything a host needs to paint a widget.
type Frame struct {
	ID         string
	Label      string
	Unit       string
	Kind       shape.Kind
	Width      float64
	Height     float64
	LabelBelow bool

	// Target is the latest clamped reading; Value is the clamped
	// displayed value, which trails Target while animating.
	Target     float64
	Value      float64
	Percentage float64
	Display    string
	Animating  bool

	Zone  *gauge.Zone
	Fill  gauge.Role
	Latch gauge.Latch
	Alert gauge.Alert

	// Mode is nil when there is no operating mode or the indicator is hidden.
	Mode   *gauge.ModeStyle
	Status string

	ShowValue     bool
	IndicatorOnly bool
	Drawing       shape.Drawing

	// Seq increases with every rebuilt frame.
	Seq uint64
}

// ValueText is the display string followed by the unit, e.g. "92.0 °C".
// It is empty when numeric text is hidden.
func (f Frame) ValueText() string {
	if !f.ShowValue || f.IndicatorOnly {
		return ""
	}
	if f.Unit == "" {
		return f.Display
	}
	return f.Display + " " + f.Unit
}

// Title is the label with the alert glyph appended, as shown in headers.
func (f Frame) Title() string {
	if g := f.Alert.Glyph(); g != "" {
		return f.Label + " " + g
	}
	return f.Label
}

// fillRole picks the paint role: critical, then warning, then zone, then
// mode, then primary.
func fillRole(latch gauge.Latch, zone *gauge.Zone, mode *gauge.ModeStyle) gauge.Role {
	switch {
	case latch.Critical:
		return gauge.RoleDanger
	case latch.Warning:
		return gauge.RoleWarning
	case zone != nil:
		return zone.Color.Fill()
	case mode != nil:
		return mode.Color
	default:
		return gauge.RolePrimary
	}
}
