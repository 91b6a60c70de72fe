package shape

import "codeberg.org/mutker/gaugectl/internal/gauge"

// ring draws a full circle track with a value arc starting at 12 o'clock.
type ring struct {
	kind        Kind
	scale       float64
	inset       float64
	stroke      float64
	zoneStroke  float64
	zoneOpacity float64
	zones       bool
	ticks       bool
	valueSize   float64
}

var (
	ringCircular = ring{kind: Circular, scale: 1, inset: 20, stroke: 12, zoneStroke: 8, zoneOpacity: 0.3, zones: true, ticks: true, valueSize: 28}
	ringCompact  = ring{kind: Compact, scale: 0.7, inset: 12, stroke: 8, valueSize: 18}
	ringMini     = ring{kind: Mini, scale: 0.5, inset: 6, stroke: 4, valueSize: 12}
	ringDonut    = ring{kind: Donut, scale: 0.8, inset: 25, stroke: 20, zoneStroke: 16, zoneOpacity: 0.25, zones: true, valueSize: 24}
)

func (g ring) Kind() Kind { return g.kind }

func (g ring) Footprint(size float64, _ Orientation) (float64, float64) {
	s := nonNegative(size) * g.scale
	return s, s
}

func (g ring) Generate(in Input) Drawing {
	side, _ := g.Footprint(in.Size, in.Orientation)
	c := Point{X: side / 2, Y: side / 2}
	r := nonNegative(side/2 - g.inset)
	pct := clampPct(in.Percentage)

	d := Drawing{Kind: g.kind, Width: side, Height: side}

	bg := newArc("background", c, r, -90, 360, true)
	bg.Width = g.stroke
	bg.Stroke = gauge.RoleBorder
	d.Arcs = append(d.Arcs, bg)

	if g.zones && in.Zones != nil {
		for _, z := range in.Zones {
			from, length := zoneSpan(z, in.Domain)
			sweep := length * 360
			a := newArc("zone", c, r, -90+from*360, sweep, sweep > 180)
			a.Width = g.zoneStroke
			a.Stroke = z.Color
			a.Opacity = g.zoneOpacity
			d.Arcs = append(d.Arcs, a)
		}
	}

	sweep := pct * 3.6
	v := newArc("value", c, r, -90, sweep, sweep > 180)
	v.Width = g.stroke
	v.Stroke = in.Fill
	v.RoundCap = true
	d.Arcs = append(d.Arcs, v)

	if g.ticks {
		d.Lines = radialTicks(c, r)
	}

	d.Texts = append(d.Texts, valueText(in, Point{X: c.X, Y: c.Y + g.valueSize/3}, g.valueSize, 700, AnchorMiddle)...)
	d.Texts = append(d.Texts, unitText(in, Point{X: c.X, Y: c.Y + g.valueSize/3 + g.valueSize*0.6}, g.valueSize*0.45, AnchorMiddle)...)
	return d
}
