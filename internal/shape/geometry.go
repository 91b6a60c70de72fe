package shape

import (
	"math"

	"codeberg.org/mutker/gaugectl/internal/gauge"
)

// tickStops are the percentages a dial marks.
var tickStops = []float64{0, 25, 50, 75, 100}

func polar(c Point, r, deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{X: c.X + r*math.Cos(rad), Y: c.Y + r*math.Sin(rad)}
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

func clampPct(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Max(0, math.Min(100, p))
}

func unit(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return math.Max(0, math.Min(1, f))
}

func newArc(class string, c Point, r, start, sweep float64, large bool) Arc {
	r = nonNegative(r)
	return Arc{
		Class:    class,
		Center:   c,
		Radius:   r,
		Start:    start,
		Sweep:    sweep,
		From:     polar(c, r, start),
		To:       polar(c, r, start+sweep),
		LargeArc: large,
		Opacity:  1,
	}
}

// zoneSpan converts a zone into a start fraction and a length fraction of
// the domain, both clamped to [0,1].
func zoneSpan(z gauge.Zone, d gauge.Domain) (from, length float64) {
	a := unit(d.Fraction(z.From))
	b := unit(d.Fraction(z.To))
	if b < a {
		b = a
	}
	return a, b - a
}

func radialTicks(c Point, r float64) []Line {
	lines := make([]Line, 0, len(tickStops))
	for _, p := range tickStops {
		lines = append(lines, Line{
			Class:   "tick",
			From:    polar(c, r-15, -90+p*3.6),
			To:      polar(c, r-5, -90+p*3.6),
			Width:   2,
			Stroke:  gauge.RoleText,
			Opacity: 0.5,
		})
	}
	return lines
}

func valueText(in Input, at Point, size float64, weight int, anchor Anchor) []Text {
	if in.IndicatorOnly || !in.ShowValue {
		return nil
	}
	return []Text{{
		Class:   "value",
		At:      at,
		Content: in.DisplayValue,
		Size:    size,
		Weight:  weight,
		Anchor:  anchor,
		Fill:    gauge.RoleText,
		Opacity: 1,
	}}
}

func unitText(in Input, at Point, size float64, anchor Anchor) []Text {
	if in.IndicatorOnly || !in.ShowValue || in.Unit == "" {
		return nil
	}
	return []Text{{
		Class:   "unit",
		At:      at,
		Content: in.Unit,
		Size:    size,
		Anchor:  anchor,
		Fill:    gauge.RoleTextSecondary,
		Opacity: 1,
	}}
}

func boundTexts(in Input, minAt, maxAt Point, size float64, minAnchor, maxAnchor Anchor) []Text {
	if in.IndicatorOnly {
		return nil
	}
	return []Text{
		{
			Class:   "min",
			At:      minAt,
			Content: gauge.FormatBound(in.Domain.Min),
			Size:    size,
			Anchor:  minAnchor,
			Fill:    gauge.RoleTextSecondary,
			Opacity: 1,
		},
		{
			Class:   "max",
			At:      maxAt,
			Content: gauge.FormatBound(in.Domain.Max),
			Size:    size,
			Anchor:  maxAnchor,
			Fill:    gauge.RoleTextSecondary,
			Opacity: 1,
		},
	}
}
