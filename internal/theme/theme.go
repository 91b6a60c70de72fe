// Package theme resolves symbolic color roles to concrete paint values.
package theme

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"codeberg.org/mutker/gaugectl/internal/gauge"
	"github.com/lucasb-eyer/go-colorful"
)

const DefaultName = "standard"

// Paint is a resolved color with its own alpha.
type Paint struct {
	Color colorful.Color
	Alpha float64
}

// Theme maps every role to a paint over a background.
type Theme struct {
	Name       string
	Background colorful.Color
	Surface    colorful.Color
	roles      map[gauge.Role]Paint
}

type definition struct {
	background string
	surface    string
	roles      map[gauge.Role]string
}

var definitions = map[string]definition{
	"standard": {
		background: "#ffffff",
		surface:    "#ffffff",
		roles: map[gauge.Role]string{
			gauge.RolePrimary:       "#007bff",
			gauge.RoleSuccess:       "#28a745",
			gauge.RoleDanger:        "#dc3545",
			gauge.RoleWarning:       "#ffc107",
			gauge.RoleInfo:          "#17a2b8",
			gauge.RoleText:          "#212529",
			gauge.RoleTextSecondary: "#6c757d",
			gauge.RoleBorder:        "#dee2e6",
		},
	},
	"dark-night": {
		background: "#121212",
		surface:    "#1e1e1e",
		roles: map[gauge.Role]string{
			gauge.RolePrimary:       "#6c757d",
			gauge.RoleSuccess:       "#28a745",
			gauge.RoleDanger:        "#dc3545",
			gauge.RoleWarning:       "#ffc107",
			gauge.RoleInfo:          "#17a2b8",
			gauge.RoleText:          "#ffffff",
			gauge.RoleTextSecondary: "#adb5bd",
			gauge.RoleBorder:        "#495057",
		},
	},
	"hmi-classic": {
		background: "#f3f4f6",
		surface:    "#ffffff",
		roles: map[gauge.Role]string{
			gauge.RolePrimary:       "#6c757d",
			gauge.RoleSuccess:       "#10b981",
			gauge.RoleDanger:        "#ef4444",
			gauge.RoleWarning:       "#f59e0b",
			gauge.RoleInfo:          "#3b82f6",
			gauge.RoleText:          "#111827",
			gauge.RoleTextSecondary: "#6b7280",
			gauge.RoleBorder:        "#d1d5db",
		},
	},
	"hmi-future": {
		background: "#667eea",
		surface:    "rgba(255, 255, 255, 0.1)",
		roles: map[gauge.Role]string{
			gauge.RolePrimary:       "rgba(255, 255, 255, 0.2)",
			gauge.RoleSuccess:       "rgba(34, 197, 94, 0.8)",
			gauge.RoleDanger:        "rgba(239, 68, 68, 0.8)",
			gauge.RoleWarning:       "rgba(245, 158, 11, 0.8)",
			gauge.RoleInfo:          "rgba(59, 130, 246, 0.8)",
			gauge.RoleText:          "#ffffff",
			gauge.RoleTextSecondary: "rgba(255, 255, 255, 0.7)",
			gauge.RoleBorder:        "rgba(255, 255, 255, 0.2)",
		},
	},
}

// Names lists the built-in themes.
func Names() []string {
	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load builds a theme by name. Role names in overrides replace the
// built-in colors; values are "#rrggbb" or "rgba(r, g, b, a)".
func Load(name string, overrides map[string]string) (*Theme, error) {
	errorFactory := errors.New()

	if name == "" {
		name = DefaultName
	}
	def, ok := definitions[strings.ToLower(name)]
	if !ok {
		return nil, errorFactory.WithMessage(ErrUnknownTheme,
			fmt.Sprintf("unknown theme %q (have %s)", name, strings.Join(Names(), ", ")))
	}

	bg, err := ParseColor(def.background)
	if err != nil {
		return nil, err
	}
	t := &Theme{
		Name:       strings.ToLower(name),
		Background: bg.Color,
		roles:      make(map[gauge.Role]Paint, len(def.roles)),
	}
	surface, err := ParseColor(def.surface)
	if err != nil {
		return nil, err
	}
	t.Surface = flatten(surface, bg.Color)

	for role, value := range def.roles {
		p, err := ParseColor(value)
		if err != nil {
			return nil, err
		}
		t.roles[role] = p
	}

	for key, value := range overrides {
		role := gauge.ParseRole(key)
		if !role.Known() || (role == gauge.RolePrimary && !strings.EqualFold(key, string(gauge.RolePrimary))) {
			return nil, errorFactory.WithMessage(ErrUnknownRole, fmt.Sprintf("unknown color role %q", key))
		}
		p, err := ParseColor(value)
		if err != nil {
			return nil, err
		}
		t.roles[role] = p
	}
	return t, nil
}

// MustLoad is Load for built-in names without overrides.
func MustLoad(name string) *Theme {
	t, err := Load(name, nil)
	if err != nil {
		panic(err)
	}
	return t
}

// Paint returns the color of role; unknown roles resolve as primary.
func (t *Theme) Paint(role gauge.Role) Paint {
	if p, ok := t.roles[role]; ok {
		return p
	}
	return t.roles[gauge.RolePrimary]
}

// NRGBA returns role at the given extra opacity, for backends with alpha.
func (t *Theme) NRGBA(role gauge.Role, opacity float64) color.NRGBA {
	p := t.Paint(role)
	r, g, b := p.Color.Clamped().RGB255()
	a := clamp01(p.Alpha * opacity)
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}

// Flat returns role composited over the background at opacity, for
// backends without alpha such as terminals.
func (t *Theme) Flat(role gauge.Role, opacity float64) colorful.Color {
	p := t.Paint(role)
	p.Alpha = clamp01(p.Alpha * opacity)
	return flatten(p, t.Background)
}

// Hex is the opaque "#rrggbb" form of role.
func (t *Theme) Hex(role gauge.Role) string {
	return t.Paint(role).Color.Clamped().Hex()
}

func flatten(p Paint, bg colorful.Color) colorful.Color {
	return bg.BlendRgb(p.Color, clamp01(p.Alpha)).Clamped()
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
