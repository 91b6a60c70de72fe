// Package svg encodes gauge drawings as standalone SVG documents.
package svg

import (
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"codeberg.org/mutker/gaugectl/internal/gauge"
	"codeberg.org/mutker/gaugectl/internal/shape"
	"codeberg.org/mutker/gaugectl/internal/theme"
)

const ErrWrite = errors.ErrorCode("svg_write_failed")

// Options controls document-level output.
type Options struct {
	// Background paints the theme background behind the gauge.
	Background bool
	// Animate emits SMIL animations for pulse dots.
	Animate bool
	Font    string
}

// Encode writes d as SVG, resolving roles through th.
func Encode(w io.Writer, d shape.Drawing, th *theme.Theme, opts Options) error {
	if _, err := io.WriteString(w, Render(d, th, opts)); err != nil {
		return errors.New().Wrap(ErrWrite, err)
	}
	return nil
}

// Render returns d as an SVG document.
func Render(d shape.Drawing, th *theme.Theme, opts Options) string {
	font := opts.Font
	if font == "" {
		font = "sans-serif"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" class="gauge-svg %s" width="%s" height="%s" viewBox="0 0 %s %s" font-family="%s">`,
		d.Kind, num(d.Width), num(d.Height), num(d.Width), num(d.Height), html.EscapeString(font))
	sb.WriteByte('\n')

	if opts.Background {
		fmt.Fprintf(&sb, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", th.Background.Hex())
	}

	for _, a := range d.Arcs {
		writeArc(&sb, a, th)
	}
	for _, r := range d.Rects {
		writeRect(&sb, r, th)
	}
	for _, c := range d.Circles {
		writeCircle(&sb, c, th, "/>")
	}
	for _, l := range d.Lines {
		fmt.Fprintf(&sb, `<line class="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"%s/>`+"\n",
			l.Class, num(l.From.X), num(l.From.Y), num(l.To.X), num(l.To.Y),
			th.Hex(l.Stroke), num(l.Width), opacity(th, l.Stroke, l.Opacity))
	}
	for _, t := range d.Texts {
		writeText(&sb, t, th)
	}
	for _, p := range d.Pulses {
		if !opts.Animate {
			writeCircle(&sb, p.Dot, th, "/>")
			continue
		}
		writeCircle(&sb, p.Dot, th, ">")
		dur := strconv.FormatFloat(p.Period.Seconds(), 'f', -1, 64) + "s"
		fmt.Fprintf(&sb, `<animate attributeName="opacity" values="1;%s;1" dur="%s" repeatCount="indefinite"/>`,
			num(p.MinOpacity), dur)
		if p.MinRadius > 0 {
			fmt.Fprintf(&sb, `<animate attributeName="r" values="%s;%s;%s" dur="%s" repeatCount="indefinite"/>`,
				num(p.Dot.Radius), num(p.MinRadius), num(p.Dot.Radius), dur)
		}
		sb.WriteString("</circle>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writeArc(sb *strings.Builder, a shape.Arc, th *theme.Theme) {
	attrs := fmt.Sprintf(`fill="none" stroke="%s" stroke-width="%s"%s`,
		th.Hex(a.Stroke), num(a.Width), opacity(th, a.Stroke, a.Opacity))
	if a.RoundCap {
		attrs += ` stroke-linecap="round"`
	}

	if a.Full() {
		fmt.Fprintf(sb, `<circle class="%s" cx="%s" cy="%s" r="%s" %s/>`+"\n",
			a.Class, num(a.Center.X), num(a.Center.Y), num(a.Radius), attrs)
		return
	}
	if a.Sweep <= 0 || a.Radius <= 0 {
		return
	}
	large := 0
	if a.LargeArc {
		large = 1
	}
	fmt.Fprintf(sb, `<path class="%s" d="M %s %s A %s %s 0 %d 1 %s %s" %s/>`+"\n",
		a.Class, num(a.From.X), num(a.From.Y), num(a.Radius), num(a.Radius),
		large, num(a.To.X), num(a.To.Y), attrs)
}

func writeRect(sb *strings.Builder, r shape.Rect, th *theme.Theme) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	fill := "none"
	opacityRole := r.Stroke
	if r.Fill != "" {
		fill = th.Hex(r.Fill)
		opacityRole = r.Fill
	}
	fmt.Fprintf(sb, `<rect class="%s" x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s"`,
		r.Class, num(r.X), num(r.Y), num(r.W), num(r.H), num(r.Radius), fill)
	if r.Stroke != "" {
		fmt.Fprintf(sb, ` stroke="%s" stroke-width="%s"`, th.Hex(r.Stroke), num(r.StrokeWidth))
	}
	sb.WriteString(opacity(th, opacityRole, r.Opacity))
	sb.WriteString("/>\n")
}

func writeCircle(sb *strings.Builder, c shape.Circle, th *theme.Theme, end string) {
	fill := "none"
	opacityRole := c.Stroke
	if c.Fill != "" {
		fill = th.Hex(c.Fill)
		opacityRole = c.Fill
	}
	fmt.Fprintf(sb, `<circle class="%s" cx="%s" cy="%s" r="%s" fill="%s"`,
		c.Class, num(c.Center.X), num(c.Center.Y), num(c.Radius), fill)
	if c.Stroke != "" {
		fmt.Fprintf(sb, ` stroke="%s" stroke-width="%s"`, th.Hex(c.Stroke), num(c.StrokeWidth))
	}
	sb.WriteString(opacity(th, opacityRole, c.Opacity))
	sb.WriteString(end)
	if end == "/>" {
		sb.WriteByte('\n')
	}
}

func writeText(sb *strings.Builder, t shape.Text, th *theme.Theme) {
	fmt.Fprintf(sb, `<text class="%s" x="%s" y="%s" fill="%s" font-size="%s"`,
		t.Class, num(t.At.X), num(t.At.Y), th.Hex(t.Fill), num(t.Size))
	if t.Weight > 0 {
		fmt.Fprintf(sb, ` font-weight="%d"`, t.Weight)
	}
	if t.Anchor != "" && t.Anchor != shape.AnchorStart {
		fmt.Fprintf(sb, ` text-anchor="%s"`, t.Anchor)
	}
	if t.LetterSpacing != 0 {
		fmt.Fprintf(sb, ` letter-spacing="%s"`, num(t.LetterSpacing))
	}
	sb.WriteString(opacity(th, t.Fill, t.Opacity))
	fmt.Fprintf(sb, ">%s</text>\n", html.EscapeString(t.Content))
}

// opacity folds the role's own alpha into the element opacity and omits
// the attribute when fully opaque.
func opacity(th *theme.Theme, role gauge.Role, o float64) string {
	a := th.Paint(role).Alpha * o
	if a >= 1 {
		return ""
	}
	return ` opacity="` + num(math.Max(0, a)) + `"`
}

// num prints a coordinate with at most three decimals.
func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
