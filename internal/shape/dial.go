package shape

import "codeberg.org/mutker/gaugectl/internal/gauge"

// dial draws an open arc with min and max labels at its ends.
type dial struct {
	kind         Kind
	start        float64
	sweep        float64
	heightFactor float64
	labelInset   float64
	labelY       float64
	// bigArcs enables the large-arc flag for sub-arcs covering more than
	// half of their own range.
	bigArcs bool
}

var (
	dialSemi = dial{kind: SemiCircular, start: -135, sweep: 270, heightFactor: 0.6, labelInset: 20, labelY: 0.55, bigArcs: true}
	dialHalf = dial{kind: HalfCircle, start: -180, sweep: 180, heightFactor: 0.55, labelInset: 15, labelY: 0.52}
)

const (
	dialInset       = 20
	dialStroke      = 12
	dialZoneStroke  = 8
	dialZoneOpacity = 0.3
)

func (g dial) Kind() Kind { return g.kind }

func (g dial) Footprint(size float64, _ Orientation) (float64, float64) {
	s := nonNegative(size)
	return s, s * g.heightFactor
}

func (g dial) large(pct float64) bool {
	return g.bigArcs && pct > 50
}

func (g dial) Generate(in Input) Drawing {
	s := nonNegative(in.Size)
	w, h := g.Footprint(s, in.Orientation)
	c := Point{X: s / 2, Y: s / 2}
	r := nonNegative(s/2 - dialInset)
	pct := clampPct(in.Percentage)

	d := Drawing{Kind: g.kind, Width: w, Height: h}

	bg := newArc("background", c, r, g.start, g.sweep, g.large(100))
	bg.Width = dialStroke
	bg.Stroke = gauge.RoleBorder
	d.Arcs = append(d.Arcs, bg)

	if in.Zones != nil {
		for _, z := range in.Zones {
			from, length := zoneSpan(z, in.Domain)
			a := newArc("zone", c, r, g.start+from*g.sweep, length*g.sweep, g.large(length*100))
			a.Width = dialZoneStroke
			a.Stroke = z.Color
			a.Opacity = dialZoneOpacity
			d.Arcs = append(d.Arcs, a)
		}
	}

	v := newArc("value", c, r, g.start, pct/100*g.sweep, g.large(pct))
	v.Width = dialStroke
	v.Stroke = in.Fill
	v.RoundCap = true
	d.Arcs = append(d.Arcs, v)

	for _, p := range tickStops {
		deg := g.start + p/100*g.sweep
		d.Lines = append(d.Lines, Line{
			Class:   "tick",
			From:    polar(c, r-15, deg),
			To:      polar(c, r-5, deg),
			Width:   2,
			Stroke:  gauge.RoleText,
			Opacity: 0.5,
		})
	}

	ly := s * g.labelY
	d.Texts = append(d.Texts, boundTexts(in,
		Point{X: g.labelInset, Y: ly}, Point{X: s - g.labelInset, Y: ly},
		12, AnchorStart, AnchorEnd)...)
	d.Texts = append(d.Texts, valueText(in, Point{X: c.X, Y: c.Y}, 24, 700, AnchorMiddle)...)
	d.Texts = append(d.Texts, unitText(in, Point{X: c.X, Y: c.Y + 16}, 11, AnchorMiddle)...)
	return d
}
