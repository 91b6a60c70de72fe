package dashboard

import (
	"fmt"
	"strings"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"codeberg.org/mutker/gaugectl/internal/shape"
)

var (
	modbusTypes = map[string]bool{"": true, "uint16": true, "int16": true, "uint32": true, "int32": true, "float32": true}
	nvmlMetrics = map[string]bool{"temperature": true, "fan_speed": true, "power_usage": true, "utilization": true}
)

// Validate checks a decoded file. It does not mutate it. Every problem is
// reported, joined into one error.
func Validate(f *File) error {
	errorFactory := errors.New()
	var errs []error
	fail := func(code errors.ErrorCode, format string, args ...any) {
		errs = append(errs, errorFactory.WithMessage(code, fmt.Sprintf(format, args...)))
	}

	if len(f.Gauges) == 0 {
		fail(ErrInvalid, "no gauges defined")
	}

	seen := make(map[string]bool, len(f.Gauges))
	for i, g := range f.Gauges {
		name := g.ID
		if name == "" {
			fail(ErrInvalid, "gauge %d: id is required", i)
			name = fmt.Sprintf("#%d", i)
		} else if seen[g.ID] {
			fail(ErrDuplicateID, "gauge %q: duplicate id", g.ID)
		}
		seen[g.ID] = true

		if g.Type != "" {
			if _, ok := shape.ParseKind(g.Type); !ok {
				fail(ErrInvalid, "gauge %q: unknown type %q", name, g.Type)
			}
		}
		lo, hi := 0.0, 100.0
		if g.Min != nil {
			lo = *g.Min
		}
		if g.Max != nil {
			hi = *g.Max
		}
		if !(lo < hi) {
			fail(ErrInvalid, "gauge %q: min %v must be below max %v", name, lo, hi)
		}
		if g.Size < 0 {
			fail(ErrInvalid, "gauge %q: size must not be negative", name)
		}
		if g.Precision != nil && (*g.Precision < 0 || *g.Precision > 10) {
			fail(ErrInvalid, "gauge %q: precision must be within 0..10", name)
		}
		for j, z := range g.Zones {
			if !(z.From < z.To) {
				fail(ErrInvalid, "gauge %q: zone %d: from %v must be below to %v", name, j, z.From, z.To)
			}
		}
		if t := g.Threshold; t != nil && t.Warning != nil && t.Critical != nil && *t.Warning > *t.Critical {
			fail(ErrInvalid, "gauge %q: warning %v is above critical %v", name, *t.Warning, *t.Critical)
		}
		switch strings.ToLower(g.Mode) {
		case "", "none", "intake", "exhaust", "idle":
		default:
			fail(ErrInvalid, "gauge %q: unknown mode %q", name, g.Mode)
		}
		switch strings.ToLower(g.Orientation) {
		case "", "horizontal", "vertical":
		default:
			fail(ErrInvalid, "gauge %q: unknown orientation %q", name, g.Orientation)
		}

		if err := validateSource(name, g.Source); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func validateSource(gauge string, s Source) error {
	errorFactory := errors.New()
	bad := func(format string, args ...any) error {
		return errorFactory.WithMessage(ErrSource, fmt.Sprintf("gauge %q: source: ", gauge)+fmt.Sprintf(format, args...))
	}

	if s.IntervalMs < 0 {
		return bad("interval_ms must not be negative")
	}
	switch s.Kind {
	case SourceNone:
		return nil
	case SourceReplay:
		if len(s.Values) == 0 && s.File == "" {
			return bad("replay needs values or file")
		}
	case SourceModbus:
		if s.Endpoint == "" {
			return bad("modbus endpoint is required")
		}
		if s.FC != 0 && s.FC != 3 && s.FC != 4 {
			return bad("modbus fc must be 3 or 4, got %d", s.FC)
		}
		if !modbusTypes[strings.ToLower(s.DataType)] {
			return bad("unknown modbus data_type %q", s.DataType)
		}
		switch strings.ToLower(s.WordOrder) {
		case "", "big", "little":
		default:
			return bad("word_order must be big or little")
		}
		if s.Scale != nil && *s.Scale == 0 {
			return bad("scale must not be zero")
		}
	case SourceNVML:
		if !nvmlMetrics[s.Metric] {
			return bad("unknown nvml metric %q", s.Metric)
		}
		if s.Device < 0 {
			return bad("device index must not be negative")
		}
	default:
		return bad("unknown kind %q", s.Kind)
	}
	return nil
}
