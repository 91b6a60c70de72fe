package widget

import (
	"strings"

	"codeberg.org/mutker/gaugectl/internal/gauge"
	"codeberg.org/mutker/gaugectl/internal/shape"
)

const (
	cardRow = 22
	cardPad = 8
)

// Card lays the label row, alert glyph and status row of f around its
// drawing, for hosts that export one standalone image per gauge. The label
// row goes above or below the shape as LabelBelow says. Pressure shapes
// draw their own badge, so they get no status row.
func Card(f Frame) shape.Drawing {
	d := f.Drawing

	top := 0.0
	if !f.LabelBelow {
		top = cardRow
	}
	out := d.Translate(0, top)
	out.Height = d.Height + cardRow
	width := d.Width

	below := top + d.Height
	labelY := float64(cardRow) - 7
	if f.LabelBelow {
		labelY = below + cardRow - 7
		below += cardRow
	}

	out.Texts = append(out.Texts, shape.Text{
		Class:   "label",
		At:      shape.Point{X: width / 2, Y: labelY},
		Content: f.Label,
		Size:    13,
		Weight:  600,
		Anchor:  shape.AnchorMiddle,
		Fill:    gauge.RoleText,
		Opacity: 1,
	})
	if glyph := f.Alert.Glyph(); glyph != "" {
		out.Texts = append(out.Texts, shape.Text{
			Class:   "alert",
			At:      shape.Point{X: width - cardPad, Y: labelY},
			Content: glyph,
			Size:    14,
			Weight:  700,
			Anchor:  shape.AnchorEnd,
			Fill:    alertRole(f.Alert),
			Opacity: 1,
		})
	}

	var parts []string
	role := gauge.RoleTextSecondary
	if f.Kind == shape.Linear {
		// Linear shapes leave their value to the host.
		if v := f.ValueText(); v != "" {
			parts = append(parts, v)
		}
	}
	if f.Status != "" && !f.Kind.Pressure() {
		parts = append(parts, f.Status)
		role = f.Mode.Color
	}
	if len(parts) > 0 {
		out.Height += cardRow
		out.Texts = append(out.Texts, shape.Text{
			Class:   "status",
			At:      shape.Point{X: width / 2, Y: below + cardRow - 7},
			Content: strings.Join(parts, "  "),
			Size:    11,
			Anchor:  shape.AnchorMiddle,
			Fill:    role,
			Opacity: 1,
		})
	}
	return out
}

func alertRole(a gauge.Alert) gauge.Role {
	if a == gauge.AlertCritical {
		return gauge.RoleDanger
	}
	return gauge.RoleWarning
}
