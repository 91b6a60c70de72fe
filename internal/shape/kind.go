package shape

import "strings"

// Kind names a gauge presentation.
type Kind string

const (
	Circular        Kind = "circular"
	SemiCircular    Kind = "semi-circular"
	HalfCircle      Kind = "half-circle"
	Compact         Kind = "compact"
	Mini            Kind = "mini"
	Donut           Kind = "donut"
	Linear          Kind = "linear"
	PressureCompact Kind = "pressure-compact"
	PressureMini    Kind = "pressure-mini"
	PressureMicro   Kind = "pressure-micro"
)

// Default is used for unknown shape names.
const Default = Circular

// Orientation applies to linear bars.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// ParseOrientation returns Vertical for "vertical" and Horizontal otherwise.
func ParseOrientation(s string) Orientation {
	if strings.EqualFold(strings.TrimSpace(s), string(Vertical)) {
		return Vertical
	}
	return Horizontal
}

var generators = map[Kind]Generator{
	Circular:        ringCircular,
	Compact:         ringCompact,
	Mini:            ringMini,
	Donut:           ringDonut,
	SemiCircular:    dialSemi,
	HalfCircle:      dialHalf,
	Linear:          linear{},
	PressureCompact: pressureCompact{},
	PressureMini:    pressureMini{},
	PressureMicro:   pressureMicro{},
}

// Kinds lists the supported shapes in a stable order.
func Kinds() []Kind {
	return []Kind{
		Circular, SemiCircular, HalfCircle, Compact, Mini, Donut,
		Linear, PressureCompact, PressureMini, PressureMicro,
	}
}

// ParseKind normalizes a shape name. ok is false for unsupported names.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	_, ok := generators[k]
	return k, ok
}

// For returns the generator of k, falling back to the default shape.
// ok reports whether k was supported.
func For(k Kind) (Generator, bool) {
	if g, ok := generators[k]; ok {
		return g, true
	}
	return generators[Default], false
}

// LabelBelow reports whether the widget label goes under the shape rather
// than above it.
func (k Kind) LabelBelow() bool {
	switch k {
	case Mini, Compact, HalfCircle:
		return true
	default:
		return false
	}
}

// Pressure reports whether k is one of the fixed-size pressure bars.
func (k Kind) Pressure() bool {
	switch k {
	case PressureCompact, PressureMini, PressureMicro:
		return true
	default:
		return false
	}
}
