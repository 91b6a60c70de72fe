package gauge

import (
	"strings"
	"time"
)

// Mode is the operating context shown by pressure-style gauges.
type Mode int

const (
	ModeNone Mode = iota
	ModeIntake
	ModeExhaust
	ModeIdle
)

// ParseMode maps a configuration string to a Mode. Unknown or empty
// strings yield ModeNone.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "intake":
		return ModeIntake
	case "exhaust":
		return ModeExhaust
	case "idle":
		return ModeIdle
	default:
		return ModeNone
	}
}

func (m Mode) String() string {
	switch m {
	case ModeIntake:
		return "intake"
	case ModeExhaust:
		return "exhaust"
	case ModeIdle:
		return "idle"
	default:
		return ""
	}
}

// ModeStyle is the presentation of a live operating mode.
type ModeStyle struct {
	Mode  Mode
	Icon  string
	Label string
	Color Role
	// TintOpacity is the badge background opacity over Color.
	TintOpacity float64
	// Pulse is the activity-dot cadence; zero means no pulse.
	Pulse time.Duration
}

// Short returns the first three letters of the label, as printed inside
// the compact badge.
func (s ModeStyle) Short() string {
	r := []rune(s.Label)
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}

// Pulsing reports whether the mode shows an activity dot.
func (s ModeStyle) Pulsing() bool {
	return s.Pulse > 0
}

// ResolveMode returns the style of m. ok is false for ModeNone, which
// suppresses the badge and status line entirely.
func ResolveMode(m Mode) (style ModeStyle, ok bool) {
	switch m {
	case ModeIntake:
		return ModeStyle{
			Mode: m, Icon: "↓", Label: "INTAKE", Color: RoleInfo,
			TintOpacity: 0.1, Pulse: 1500 * time.Millisecond,
		}, true
	case ModeExhaust:
		return ModeStyle{
			Mode: m, Icon: "↑", Label: "EXHAUST", Color: RoleWarning,
			TintOpacity: 0.1, Pulse: time.Second,
		}, true
	case ModeIdle:
		return ModeStyle{
			Mode: m, Icon: "⏸", Label: "IDLE", Color: RoleTextSecondary,
			TintOpacity: 0.1,
		}, true
	default:
		return ModeStyle{}, false
	}
}
