package shape

import "codeberg.org/mutker/gaugectl/internal/gauge"

const (
	linearThickness = 40
	linearPad       = 20
	linearBar       = 16
	linearInset     = 12
	linearRadius    = 8
)

// linear is a straight bar, filled left to right or bottom to top. The
// value text is left to the host.
type linear struct{}

func (linear) Kind() Kind { return Linear }

func (linear) Footprint(size float64, o Orientation) (float64, float64) {
	s := nonNegative(size)
	if o == Vertical {
		return linearThickness, s
	}
	return s, linearThickness
}

func (g linear) Generate(in Input) Drawing {
	w, h := g.Footprint(in.Size, in.Orientation)
	length := nonNegative(nonNegative(in.Size) - 2*linearPad)
	pct := clampPct(in.Percentage)
	vertical := in.Orientation == Vertical

	d := Drawing{Kind: Linear, Width: w, Height: h}

	// along builds a bar segment covering [from, from+span] of the track.
	along := func(class string, from, span float64, fill gauge.Role, opacity float64) Rect {
		r := Rect{Class: class, Radius: linearRadius, Fill: fill, Opacity: opacity}
		if vertical {
			r.X, r.W = linearInset, linearBar
			r.Y, r.H = linearPad+length-from-span, span
		} else {
			r.X, r.W = linearPad+from, span
			r.Y, r.H = linearInset, linearBar
		}
		return r
	}

	d.Rects = append(d.Rects, along("background", 0, length, gauge.RoleBorder, 0.3))
	if in.Zones != nil {
		for _, z := range in.Zones {
			from, span := zoneSpan(z, in.Domain)
			d.Rects = append(d.Rects, along("zone", from*length, span*length, z.Color, 0.2))
		}
	}
	d.Rects = append(d.Rects, along("value", 0, pct/100*length, in.Fill, 1))

	for _, p := range tickStops {
		pos := p / 100 * length
		l := Line{Class: "tick", Width: 1, Stroke: gauge.RoleText, Opacity: 0.5}
		if vertical {
			y := linearPad + length - pos
			l.From, l.To = Point{X: 10, Y: y}, Point{X: 30, Y: y}
		} else {
			x := linearPad + pos
			l.From, l.To = Point{X: x, Y: 10}, Point{X: x, Y: 30}
		}
		d.Lines = append(d.Lines, l)
	}
	return d
}
