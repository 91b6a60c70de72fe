package shape

import (
	"time"

	"codeberg.org/mutker/gaugectl/internal/gauge"
)

// bar is the horizontal track shared by the pressure shapes.
type bar struct {
	x, y, w, h  float64
	zoneOpacity float64
	fillOpacity float64
	outline     float64
	labelGap    float64
	labelSize   float64
	labelDrop   float64
	ticks       []float64
	tickGap     float64
	tickLen     float64
	tickWidth   float64
}

func (b bar) draw(d *Drawing, in Input) {
	rx := b.h / 2
	pct := clampPct(in.Percentage)

	d.Rects = append(d.Rects, Rect{
		Class: "background", X: b.x, Y: b.y, W: b.w, H: b.h, Radius: rx,
		Fill: gauge.RoleBorder, Opacity: 0.3,
	})
	if in.Zones != nil {
		for _, z := range in.Zones {
			from, span := zoneSpan(z, in.Domain)
			d.Rects = append(d.Rects, Rect{
				Class: "zone", X: b.x + from*b.w, Y: b.y, W: span * b.w, H: b.h, Radius: rx,
				Fill: z.Color, Opacity: b.zoneOpacity,
			})
		}
	}
	d.Rects = append(d.Rects,
		Rect{
			Class: "value", X: b.x, Y: b.y, W: pct / 100 * b.w, H: b.h, Radius: rx,
			Fill: in.Fill, Opacity: b.fillOpacity,
		},
		Rect{
			Class: "outline", X: b.x, Y: b.y, W: b.w, H: b.h, Radius: rx,
			Stroke: gauge.RoleBorder, StrokeWidth: b.outline, Opacity: 1,
		},
	)

	ly := b.y + b.h/2 + b.labelDrop
	d.Texts = append(d.Texts, boundTexts(in,
		Point{X: b.x - b.labelGap, Y: ly}, Point{X: b.x + b.w + b.labelGap, Y: ly},
		b.labelSize, AnchorEnd, AnchorStart)...)

	if in.IndicatorOnly {
		return
	}
	for _, t := range b.ticks {
		x := b.x + t/100*b.w
		d.Lines = append(d.Lines, Line{
			Class:   "tick",
			From:    Point{X: x, Y: b.y + b.h + b.tickGap},
			To:      Point{X: x, Y: b.y + b.h + b.tickGap + b.tickLen},
			Width:   b.tickWidth,
			Stroke:  gauge.RoleTextSecondary,
			Opacity: 0.5,
		})
	}
}

// activeMode returns the mode style to decorate with, or nil.
func activeMode(in Input) *gauge.ModeStyle {
	if !in.ShowBadge || in.Mode == nil {
		return nil
	}
	return in.Mode
}

func pulse(at Point, r float64, period time.Duration, color gauge.Role, shrink bool) Pulse {
	p := Pulse{
		Dot:        Circle{Class: "pulse", Center: at, Radius: r, Fill: color, Opacity: 1},
		Period:     period,
		MinOpacity: 0.3,
	}
	if shrink {
		p.MinRadius = r - 0.5
	}
	return p
}

// fastPulse is the quicker cadence used by the smaller pressure shapes.
func fastPulse(m *gauge.ModeStyle) time.Duration {
	return m.Pulse * 4 / 5
}

type pressureCompact struct{}

func (pressureCompact) Kind() Kind { return PressureCompact }

func (pressureCompact) Footprint(float64, Orientation) (float64, float64) { return 200, 120 }

func (g pressureCompact) Generate(in Input) Drawing {
	d := Drawing{Kind: PressureCompact, Width: 200, Height: 120}
	m := activeMode(in)

	if m != nil {
		d.Rects = append(d.Rects,
			Rect{Class: "badge", X: 5, Y: 5, W: 60, H: 22, Radius: 11, Fill: m.Color, Opacity: 0.15},
			Rect{Class: "badge-outline", X: 5, Y: 5, W: 60, H: 22, Radius: 11, Stroke: m.Color, StrokeWidth: 2, Opacity: 1},
		)
		d.Texts = append(d.Texts,
			Text{Class: "badge-icon", At: Point{X: 15, Y: 20}, Content: m.Icon, Size: 14, Weight: 700, Anchor: AnchorStart, Fill: m.Color, Opacity: 1},
			Text{Class: "badge-label", At: Point{X: 28, Y: 20}, Content: m.Short(), Size: 10, Weight: 700, Anchor: AnchorStart, Fill: m.Color, Opacity: 1, LetterSpacing: 0.5},
		)
	}

	d.Texts = append(d.Texts, valueText(in, Point{X: 195, Y: 20}, 24, 700, AnchorEnd)...)
	d.Texts = append(d.Texts, unitText(in, Point{X: 195, Y: 35}, 11, AnchorEnd)...)

	bar{
		x: 50, y: 50, w: 140, h: 24,
		zoneOpacity: 0.15, fillOpacity: 0.9, outline: 2,
		labelGap: 5, labelSize: 10, labelDrop: 4,
		ticks: []float64{25, 50, 75}, tickGap: 3, tickLen: 5, tickWidth: 1.5,
	}.draw(&d, in)

	if m != nil {
		d.Texts = append(d.Texts, Text{
			Class: "status", At: Point{X: 100, Y: 110}, Content: m.Icon + " " + m.Label,
			Size: 10, Weight: 600, Anchor: AnchorMiddle, Fill: m.Color, Opacity: 0.8,
		})
		if m.Pulsing() {
			d.Pulses = append(d.Pulses, pulse(Point{X: 55, Y: 107}, 3, m.Pulse, m.Color, true))
		}
	}
	return d
}

type pressureMini struct{}

func (pressureMini) Kind() Kind { return PressureMini }

func (pressureMini) Footprint(float64, Orientation) (float64, float64) { return 160, 80 }

func (g pressureMini) Generate(in Input) Drawing {
	d := Drawing{Kind: PressureMini, Width: 160, Height: 80}
	m := activeMode(in)

	if m != nil {
		d.Circles = append(d.Circles,
			Circle{Class: "badge", Center: Point{X: 12, Y: 12}, Radius: 10, Fill: m.Color, Opacity: 0.15},
			Circle{Class: "badge-outline", Center: Point{X: 12, Y: 12}, Radius: 10, Stroke: m.Color, StrokeWidth: 1.5, Opacity: 1},
		)
		d.Texts = append(d.Texts, Text{
			Class: "badge-icon", At: Point{X: 12, Y: 17}, Content: m.Icon,
			Size: 12, Weight: 700, Anchor: AnchorMiddle, Fill: m.Color, Opacity: 1,
		})
	}

	d.Texts = append(d.Texts, valueText(in, Point{X: 155, Y: 14}, 16, 700, AnchorEnd)...)
	d.Texts = append(d.Texts, unitText(in, Point{X: 155, Y: 26}, 8, AnchorEnd)...)

	bar{
		x: 40, y: 35, w: 100, h: 18,
		zoneOpacity: 0.12, fillOpacity: 0.9, outline: 1.5,
		labelGap: 3, labelSize: 8, labelDrop: 3,
		ticks: []float64{50}, tickGap: 2, tickLen: 4, tickWidth: 1,
	}.draw(&d, in)

	if m != nil {
		if m.Pulsing() {
			d.Pulses = append(d.Pulses, pulse(Point{X: 60, Y: 72}, 2, fastPulse(m), m.Color, false))
		}
		d.Texts = append(d.Texts, Text{
			Class: "status", At: Point{X: 80, Y: 75}, Content: m.Icon,
			Size: 8, Weight: 600, Anchor: AnchorMiddle, Fill: m.Color, Opacity: 0.7,
		})
	}
	return d
}

type pressureMicro struct{}

func (pressureMicro) Kind() Kind { return PressureMicro }

func (pressureMicro) Footprint(float64, Orientation) (float64, float64) { return 120, 60 }

func (g pressureMicro) Generate(in Input) Drawing {
	d := Drawing{Kind: PressureMicro, Width: 120, Height: 60}
	m := activeMode(in)

	if m != nil {
		d.Texts = append(d.Texts, Text{
			Class: "badge-icon", At: Point{X: 6, Y: 12}, Content: m.Icon,
			Size: 10, Weight: 700, Anchor: AnchorStart, Fill: m.Color, Opacity: 1,
		})
	}

	d.Texts = append(d.Texts, valueText(in, Point{X: 60, Y: 14}, 14, 700, AnchorMiddle)...)
	d.Texts = append(d.Texts, unitText(in, Point{X: 60, Y: 23}, 7, AnchorMiddle)...)

	bar{
		x: 20, y: 28, w: 80, h: 14,
		zoneOpacity: 0.1, fillOpacity: 0.85, outline: 1.5,
		labelGap: 2, labelSize: 7, labelDrop: 3,
	}.draw(&d, in)

	if m != nil && m.Pulsing() {
		d.Pulses = append(d.Pulses, pulse(Point{X: 60, Y: 54}, 1.5, fastPulse(m), m.Color, false))
	}
	return d
}
