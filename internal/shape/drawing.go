package shape

import (
	"time"

	"codeberg.org/mutker/gaugectl/internal/gauge"
)

// Point is a position in drawing coordinates: origin top-left, y down.
type Point struct {
	X, Y float64
}

// Arc is a stroked circular arc. Angles are degrees, 0 along +x and
// increasing clockwise on screen. A sweep of 360 is a full ring.
type Arc struct {
	Class    string
	Center   Point
	Radius   float64
	Start    float64
	Sweep    float64
	From, To Point
	// LargeArc is the path flag a vector backend needs to pick the arc
	// between From and To.
	LargeArc bool
	Width    float64
	Stroke   gauge.Role
	Opacity  float64
	RoundCap bool
}

// Full reports whether the arc closes on itself.
func (a Arc) Full() bool {
	return a.Sweep >= 360
}

// Rect is an axis-aligned, optionally rounded rectangle. An empty Fill
// means unfilled; an empty Stroke means no outline.
type Rect struct {
	Class       string
	X, Y, W, H  float64
	Radius      float64
	Fill        gauge.Role
	Stroke      gauge.Role
	StrokeWidth float64
	Opacity     float64
}

// Line is a stroked segment.
type Line struct {
	Class    string
	From, To Point
	Width    float64
	Stroke   gauge.Role
	Opacity  float64
}

// Circle is a filled and/or stroked circle.
type Circle struct {
	Class       string
	Center      Point
	Radius      float64
	Fill        gauge.Role
	Stroke      gauge.Role
	StrokeWidth float64
	Opacity     float64
}

// Anchor is the horizontal alignment of a text run relative to its point.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Text is a text run anchored at a baseline point.
type Text struct {
	Class         string
	At            Point
	Content       string
	Size          float64
	Weight        int
	Anchor        Anchor
	Fill          gauge.Role
	Opacity       float64
	LetterSpacing float64
}

// Pulse is an activity dot whose opacity (and optionally radius) cycles
// with Period. Hosts animate it; the geometry is static.
type Pulse struct {
	Dot        Circle
	Period     time.Duration
	MinOpacity float64
	// MinRadius is the radius at mid-cycle; zero keeps the radius fixed.
	MinRadius float64
}

// Drawing is the full instruction set for one gauge. Hosts paint the
// slices in field order: arcs, rects, circles, lines, texts, pulses.
type Drawing struct {
	Kind    Kind
	Width   float64
	Height  float64
	Arcs    []Arc
	Rects   []Rect
	Circles []Circle
	Lines   []Line
	Texts   []Text
	Pulses  []Pulse
}

// Translate returns a copy of d with every element moved by dx, dy. The
// size is unchanged.
func (d Drawing) Translate(dx, dy float64) Drawing {
	move := func(p Point) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

	out := d
	out.Arcs = make([]Arc, len(d.Arcs))
	for i, a := range d.Arcs {
		a.Center, a.From, a.To = move(a.Center), move(a.From), move(a.To)
		out.Arcs[i] = a
	}
	out.Rects = make([]Rect, len(d.Rects))
	for i, r := range d.Rects {
		r.X, r.Y = r.X+dx, r.Y+dy
		out.Rects[i] = r
	}
	out.Circles = make([]Circle, len(d.Circles))
	for i, c := range d.Circles {
		c.Center = move(c.Center)
		out.Circles[i] = c
	}
	out.Lines = make([]Line, len(d.Lines))
	for i, l := range d.Lines {
		l.From, l.To = move(l.From), move(l.To)
		out.Lines[i] = l
	}
	out.Texts = make([]Text, len(d.Texts))
	for i, t := range d.Texts {
		t.At = move(t.At)
		out.Texts[i] = t
	}
	out.Pulses = make([]Pulse, len(d.Pulses))
	for i, p := range d.Pulses {
		p.Dot.Center = move(p.Dot.Center)
		out.Pulses[i] = p
	}
	return out
}

// Input is everything a generator needs. Zones nil means zone bands are
// disabled. Mode nil means no operating mode. ShowValue false drops the
// value and unit texts.
type Input struct {
	Percentage    float64
	Size          float64
	Zones         []gauge.Zone
	Domain        gauge.Domain
	Fill          gauge.Role
	DisplayValue  string
	Unit          string
	ShowValue     bool
	Mode          *gauge.ModeStyle
	ShowBadge     bool
	Orientation   Orientation
	IndicatorOnly bool
}

// Generator turns an Input into drawing instructions for one shape.
// Implementations are pure: equal inputs give equal drawings.
type Generator interface {
	Kind() Kind
	// Footprint is the container size the shape occupies.
	Footprint(size float64, o Orientation) (w, h float64)
	Generate(in Input) Drawing
}
