package widget

import (
	"fmt"
	"math"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"codeberg.org/mutker/gaugectl/internal/gauge"
	"codeberg.org/mutker/gaugectl/internal/shape"
)

const (
	DefaultSize      = 200
	DefaultPrecision = 1
	DefaultLabel     = "Gauge"
)

// ClickHandler receives the clamped displayed value and the widget label.
type ClickHandler func(value float64, label string)

// Config is the full input of one widget. It is treated as immutable;
// use Widget.Reconfigure to replace it.
type Config struct {
	ID                string
	Label             string
	Unit              string
	Domain            gauge.Domain
	Zones             []gauge.Zone
	Shape             shape.Kind
	Size              float64
	Precision         int
	Threshold         *gauge.Threshold
	Mode              gauge.Mode
	Orientation       shape.Orientation
	ShowValue         bool
	ShowZones         bool
	ShowModeIndicator bool
	IndicatorOnly     bool
	Animated          bool
	OnClick           ClickHandler
}

// DefaultConfig returns a 0..100 circular gauge with the default zones.
func DefaultConfig() Config {
	return Config{
		Label:             DefaultLabel,
		Domain:            gauge.Domain{Min: 0, Max: 100},
		Zones:             gauge.DefaultZones(),
		Shape:             shape.Default,
		Size:              DefaultSize,
		Precision:         DefaultPrecision,
		Orientation:       shape.Horizontal,
		ShowValue:         true,
		ShowZones:         true,
		ShowModeIndicator: true,
		Animated:          true,
	}
}

// Check reports configuration problems. None of them stop a widget from
// rendering; Normalize replaces every offending field with a safe value.
func (c Config) Check() error {
	errorFactory := errors.New()
	var errs []error

	if !c.Domain.Valid() {
		errs = append(errs, errorFactory.WithData(ErrInvalidDomain, c.Domain).
			WithMessage(fmt.Sprintf("min %v must be below max %v", c.Domain.Min, c.Domain.Max)))
	}
	if _, ok := shape.ParseKind(string(c.Shape)); !ok && c.Shape != "" {
		errs = append(errs, errorFactory.WithMessage(ErrUnknownShape,
			fmt.Sprintf("unsupported shape %q", c.Shape)))
	}
	if c.Size < 0 || math.IsNaN(c.Size) || math.IsInf(c.Size, 0) {
		errs = append(errs, errorFactory.WithData(ErrInvalidSize, c.Size))
	}
	for i, z := range c.Zones {
		if !(z.From < z.To) {
			errs = append(errs, errorFactory.WithData(ErrInvalidZone, i).
				WithMessage(fmt.Sprintf("zone %d: from %v must be below to %v", i, z.From, z.To)))
		}
	}
	if w, hasW, cr, hasC := c.Threshold.Cutoffs(); hasW && hasC && w > cr {
		errs = append(errs, errorFactory.WithMessage(ErrInvalidCutoffs,
			fmt.Sprintf("warning %v is above critical %v", w, cr)))
	}
	return errors.Join(errs...)
}

// Normalize returns c with every invalid field replaced by its default.
func (c Config) Normalize() Config {
	c.Domain = c.Domain.Sanitize()
	if k, ok := shape.ParseKind(string(c.Shape)); ok {
		c.Shape = k
	} else {
		c.Shape = shape.Default
	}
	if !(c.Size > 0) || math.IsInf(c.Size, 0) {
		c.Size = DefaultSize
	}
	if c.Precision < 0 {
		c.Precision = 0
	}
	if c.Orientation != shape.Vertical {
		c.Orientation = shape.Horizontal
	}
	if c.Label == "" {
		c.Label = DefaultLabel
	}
	zones := make([]gauge.Zone, 0, len(c.Zones))
	for _, z := range c.Zones {
		if z.From < z.To {
			z.Color = z.Color.Fill()
			zones = append(zones, z)
		}
	}
	c.Zones = zones
	return c
}

// activeZones is nil when zone colouring is off or nothing is configured.
func (c Config) activeZones() []gauge.Zone {
	if !c.ShowZones || len(c.Zones) == 0 {
		return nil
	}
	return c.Zones
}
