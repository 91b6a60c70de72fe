package term

import (
	"math"

	"codeberg.org/mutker/gaugectl/internal/gauge"
	"codeberg.org/mutker/gaugectl/internal/shape"
	"codeberg.org/mutker/gaugectl/internal/theme"
	"github.com/lucasb-eyer/go-colorful"
)

// Canvas is a drawing sampled onto a cell grid. Every cell holds two
// vertically stacked pixels, painted with an upper half block.
type Canvas struct {
	Cols, Rows int
	Top        []colorful.Color
	Bottom     []colorful.Color
}

// At returns the colors of cell (x, y).
func (c *Canvas) At(x, y int) (top, bottom colorful.Color) {
	i := y*c.Cols + x
	return c.Top[i], c.Bottom[i]
}

// Sample paints d into a cols x rows canvas, centered and scaled to fit.
// Text runs are left to the caller. Pulse dots are drawn when pulse is set.
func Sample(d shape.Drawing, th *theme.Theme, cols, rows int, pulse bool) *Canvas {
	c := &Canvas{
		Cols:   max(cols, 0),
		Rows:   max(rows, 0),
		Top:    make([]colorful.Color, max(cols, 0)*max(rows, 0)),
		Bottom: make([]colorful.Color, max(cols, 0)*max(rows, 0)),
	}
	if c.Cols == 0 || c.Rows == 0 || !(d.Width > 0) || !(d.Height > 0) {
		for i := range c.Top {
			c.Top[i], c.Bottom[i] = th.Surface, th.Surface
		}
		return c
	}

	pw, ph := float64(c.Cols), float64(c.Rows*2)
	scale := math.Min(pw/d.Width, ph/d.Height)
	ox := (pw - d.Width*scale) / 2
	oy := (ph - d.Height*scale) / 2
	// Thin strokes still cover at least one sample.
	minHalf := 0.5 / scale

	paint := func(px, py int) colorful.Color {
		p := shape.Point{X: (float64(px) + 0.5 - ox) / scale, Y: (float64(py) + 0.5 - oy) / scale}
		col := th.Surface
		over := func(role gauge.Role, opacity float64) {
			pp := th.Paint(role)
			col = col.BlendRgb(pp.Color, clamp01(pp.Alpha*opacity))
		}
		for _, a := range d.Arcs {
			if onArc(p, a, minHalf) {
				over(a.Stroke, a.Opacity)
			}
		}
		for _, r := range d.Rects {
			if r.Fill != "" && inRect(p, r) {
				over(r.Fill, r.Opacity)
			}
			if r.Stroke != "" && onRectEdge(p, r, math.Max(r.StrokeWidth/2, minHalf)) {
				over(r.Stroke, r.Opacity)
			}
		}
		for _, ci := range d.Circles {
			paintCircle(p, ci, minHalf, over)
		}
		for _, l := range d.Lines {
			if segmentDist(p, l.From, l.To) <= math.Max(l.Width/2, minHalf) {
				over(l.Stroke, l.Opacity)
			}
		}
		if pulse {
			for _, pl := range d.Pulses {
				paintCircle(p, pl.Dot, minHalf, over)
			}
		}
		return col.Clamped()
	}

	for y := 0; y < c.Rows; y++ {
		for x := 0; x < c.Cols; x++ {
			i := y*c.Cols + x
			c.Top[i] = paint(x, 2*y)
			c.Bottom[i] = paint(x, 2*y+1)
		}
	}
	return c
}

func paintCircle(p shape.Point, c shape.Circle, minHalf float64, over func(gauge.Role, float64)) {
	dist := math.Hypot(p.X-c.Center.X, p.Y-c.Center.Y)
	if c.Fill != "" && dist <= math.Max(c.Radius, minHalf) {
		over(c.Fill, c.Opacity)
	}
	if c.Stroke != "" && math.Abs(dist-c.Radius) <= math.Max(c.StrokeWidth/2, minHalf) {
		over(c.Stroke, c.Opacity)
	}
}

func onArc(p shape.Point, a shape.Arc, minHalf float64) bool {
	if a.Sweep <= 0 || a.Radius <= 0 {
		return false
	}
	dx, dy := p.X-a.Center.X, p.Y-a.Center.Y
	if math.Abs(math.Hypot(dx, dy)-a.Radius) > math.Max(a.Width/2, minHalf) {
		return false
	}
	if a.Full() {
		return true
	}
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	rel := math.Mod(deg-a.Start, 360)
	if rel < 0 {
		rel += 360
	}
	if rel <= a.Sweep {
		return true
	}
	if a.RoundCap {
		half := a.Width / 2
		return math.Hypot(p.X-a.From.X, p.Y-a.From.Y) <= half ||
			math.Hypot(p.X-a.To.X, p.Y-a.To.Y) <= half
	}
	return false
}

func inRect(p shape.Point, r shape.Rect) bool {
	return r.W > 0 && r.H > 0 &&
		p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

func onRectEdge(p shape.Point, r shape.Rect, half float64) bool {
	outer := shape.Rect{X: r.X - half, Y: r.Y - half, W: r.W + 2*half, H: r.H + 2*half}
	inner := shape.Rect{X: r.X + half, Y: r.Y + half, W: r.W - 2*half, H: r.H - 2*half}
	return inRect(p, outer) && !inRect(p, inner)
}

func segmentDist(p, a, b shape.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
