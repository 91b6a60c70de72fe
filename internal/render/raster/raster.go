// Package raster paints gauge drawings into images with gg.
package raster

import (
	"image"
	"io"
	"math"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"codeberg.org/mutker/gaugectl/internal/gauge"
	"codeberg.org/mutker/gaugectl/internal/shape"
	"codeberg.org/mutker/gaugectl/internal/theme"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

const (
	ErrLoadFont = errors.ErrorCode("raster_load_font_failed")
	ErrPaint    = errors.ErrorCode("raster_paint_failed")
	ErrEncode   = errors.ErrorCode("raster_encode_failed")
)

// Options controls rasterization.
type Options struct {
	// Scale multiplies every coordinate; 2 gives a HiDPI image.
	Scale      float64
	Background bool
	// FontPath is a TTF/OTF file. Without it text runs are skipped.
	FontPath string
}

// Renderer paints drawings with one theme and font.
type Renderer struct {
	theme *theme.Theme
	opts  Options
	font  *text.FontSource
	faces map[float64]text.Face
}

func New(th *theme.Theme, opts Options) (*Renderer, error) {
	if !(opts.Scale > 0) {
		opts.Scale = 1
	}
	r := &Renderer{theme: th, opts: opts, faces: make(map[float64]text.Face)}
	if opts.FontPath != "" {
		src, err := text.NewFontSourceFromFile(opts.FontPath)
		if err != nil {
			return nil, errors.New().Wrap(ErrLoadFont, err).WithData(opts.FontPath)
		}
		r.font = src
	}
	return r, nil
}

// Close releases the font. Faces made from it are invalid afterwards and
// text runs are skipped. Close is idempotent.
func (r *Renderer) Close() error {
	if r.font == nil {
		return nil
	}
	err := r.font.Close()
	r.font = nil
	r.faces = make(map[float64]text.Face)
	return err
}

// Render paints d and returns the image.
func (r *Renderer) Render(d shape.Drawing) (image.Image, error) {
	dc, err := r.paint(d)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// EncodePNG paints d and writes it as PNG.
func (r *Renderer) EncodePNG(w io.Writer, d shape.Drawing) error {
	dc, err := r.paint(d)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return errors.New().Wrap(ErrEncode, err)
	}
	return nil
}

func (r *Renderer) paint(d shape.Drawing) (*gg.Context, error) {
	s := r.opts.Scale
	width := int(math.Ceil(d.Width * s))
	height := int(math.Ceil(d.Height * s))
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dc := gg.NewContext(width, height)
	if r.opts.Background {
		dc.ClearWithColor(gg.FromColor(r.theme.Background))
	}

	p := painter{dc: dc, th: r.theme, s: s}
	for _, a := range d.Arcs {
		p.arc(a)
	}
	for _, rc := range d.Rects {
		p.rect(rc)
	}
	for _, c := range d.Circles {
		p.circle(c)
	}
	for _, l := range d.Lines {
		p.line(l)
	}
	if r.font != nil {
		for _, t := range d.Texts {
			p.text(t, r.face(t.Size*s))
		}
	}
	for _, pl := range d.Pulses {
		p.circle(pl.Dot)
	}

	// Close flushes queued shapes; the pixmap stays readable.
	_ = dc.Close()
	if p.err != nil {
		return nil, errors.New().Wrap(ErrPaint, p.err)
	}
	return dc, nil
}

func (r *Renderer) face(size float64) text.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := r.font.Face(size)
	r.faces[size] = f
	return f
}

// painter keeps the first paint error and skips the rest.
type painter struct {
	dc  *gg.Context
	th  *theme.Theme
	s   float64
	err error
}

func (p *painter) check(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *painter) set(role gauge.Role, opacity float64) {
	p.dc.SetColor(p.th.NRGBA(role, opacity))
}

func (p *painter) arc(a shape.Arc) {
	if a.Sweep <= 0 || a.Radius <= 0 {
		return
	}
	p.dc.ClearPath()
	lineCap := gg.LineCapButt
	if a.RoundCap {
		lineCap = gg.LineCapRound
	}
	p.dc.SetLineCap(lineCap)
	p.dc.SetLineWidth(a.Width * p.s)
	p.set(a.Stroke, a.Opacity)
	cx, cy, r := a.Center.X*p.s, a.Center.Y*p.s, a.Radius*p.s
	if a.Full() {
		p.dc.DrawCircle(cx, cy, r)
	} else {
		start := a.Start * math.Pi / 180
		p.dc.DrawArc(cx, cy, r, start, start+a.Sweep*math.Pi/180)
	}
	p.check(p.dc.Stroke())
}

func (p *painter) rect(rc shape.Rect) {
	if rc.W <= 0 || rc.H <= 0 {
		return
	}
	radius := math.Min(rc.Radius, math.Min(rc.W, rc.H)/2) * p.s
	if rc.Fill != "" {
		p.dc.ClearPath()
		p.set(rc.Fill, rc.Opacity)
		p.dc.DrawRoundedRectangle(rc.X*p.s, rc.Y*p.s, rc.W*p.s, rc.H*p.s, radius)
		p.check(p.dc.Fill())
	}
	if rc.Stroke != "" && rc.StrokeWidth > 0 {
		p.dc.ClearPath()
		p.dc.SetLineWidth(rc.StrokeWidth * p.s)
		p.set(rc.Stroke, rc.Opacity)
		p.dc.DrawRoundedRectangle(rc.X*p.s, rc.Y*p.s, rc.W*p.s, rc.H*p.s, radius)
		p.check(p.dc.Stroke())
	}
}

func (p *painter) circle(c shape.Circle) {
	if c.Radius <= 0 {
		return
	}
	if c.Fill != "" {
		p.dc.ClearPath()
		p.set(c.Fill, c.Opacity)
		p.dc.DrawCircle(c.Center.X*p.s, c.Center.Y*p.s, c.Radius*p.s)
		p.check(p.dc.Fill())
	}
	if c.Stroke != "" && c.StrokeWidth > 0 {
		p.dc.ClearPath()
		p.dc.SetLineWidth(c.StrokeWidth * p.s)
		p.set(c.Stroke, c.Opacity)
		p.dc.DrawCircle(c.Center.X*p.s, c.Center.Y*p.s, c.Radius*p.s)
		p.check(p.dc.Stroke())
	}
}

func (p *painter) line(l shape.Line) {
	p.dc.ClearPath()
	p.dc.SetLineCap(gg.LineCapButt)
	p.dc.SetLineWidth(l.Width * p.s)
	p.set(l.Stroke, l.Opacity)
	p.dc.DrawLine(l.From.X*p.s, l.From.Y*p.s, l.To.X*p.s, l.To.Y*p.s)
	p.check(p.dc.Stroke())
}

func (p *painter) text(t shape.Text, face text.Face) {
	p.dc.SetFont(face)
	p.set(t.Fill, t.Opacity)
	ax := 0.0
	switch t.Anchor {
	case shape.AnchorMiddle:
		ax = 0.5
	case shape.AnchorEnd:
		ax = 1
	}
	p.dc.DrawStringAnchored(t.Content, t.At.X*p.s, t.At.Y*p.s, ax, 0)
}
