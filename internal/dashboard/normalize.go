package dashboard

import (
	"strings"
	"time"

	"codeberg.org/mutker/gaugectl/internal/gauge"
	"codeberg.org/mutker/gaugectl/internal/shape"
	"codeberg.org/mutker/gaugectl/internal/widget"
)

const (
	DefaultInterval      = time.Second
	DefaultModbusTimeout = time.Second
)

// Normalize fills defaults. Call it after Validate.
func Normalize(f *File) {
	if f == nil {
		return
	}
	if f.Title == "" {
		f.Title = "gaugectl"
	}
	for i := range f.Gauges {
		g := &f.Gauges[i]
		if g.Label == "" {
			g.Label = g.ID
		}
		g.Type = strings.ToLower(strings.TrimSpace(g.Type))
		if g.Type == "" {
			g.Type = string(shape.Default)
		}
		if g.Size == 0 {
			g.Size = widget.DefaultSize
		}

		s := &g.Source
		if s.IntervalMs == 0 {
			s.IntervalMs = int(DefaultInterval / time.Millisecond)
		}
		switch s.Kind {
		case SourceModbus:
			if s.FC == 0 {
				s.FC = 3
			}
			s.DataType = strings.ToLower(s.DataType)
			if s.DataType == "" {
				s.DataType = "uint16"
			}
			s.WordOrder = strings.ToLower(s.WordOrder)
			if s.WordOrder == "" {
				s.WordOrder = "big"
			}
			if s.Scale == nil {
				one := 1.0
				s.Scale = &one
			}
			if s.TimeoutMs == 0 {
				s.TimeoutMs = int(DefaultModbusTimeout / time.Millisecond)
			}
		case SourceReplay:
			if s.Loop == nil {
				loop := true
				s.Loop = &loop
			}
		}
	}
}

// Interval is the feed polling period.
func (s Source) Interval() time.Duration {
	if s.IntervalMs <= 0 {
		return DefaultInterval
	}
	return time.Duration(s.IntervalMs) * time.Millisecond
}

// Timeout is the modbus request timeout.
func (s Source) Timeout() time.Duration {
	if s.TimeoutMs <= 0 {
		return DefaultModbusTimeout
	}
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

// WidgetConfig converts g into a widget configuration. Hooks and the click
// handler are left for the caller to attach.
func (g Gauge) WidgetConfig() widget.Config {
	cfg := widget.DefaultConfig()
	cfg.ID = g.ID
	cfg.Label = g.Label
	cfg.Unit = g.Unit
	cfg.Shape = shape.Kind(g.Type)
	cfg.Orientation = shape.ParseOrientation(g.Orientation)
	cfg.Mode = gauge.ParseMode(g.Mode)
	cfg.IndicatorOnly = g.IndicatorOnly
	if g.Size > 0 {
		cfg.Size = g.Size
	}
	if g.Min != nil {
		cfg.Domain.Min = *g.Min
	}
	if g.Max != nil {
		cfg.Domain.Max = *g.Max
	}
	if g.Precision != nil {
		cfg.Precision = *g.Precision
	}
	if g.Zones != nil {
		cfg.Zones = make([]gauge.Zone, 0, len(g.Zones))
		for _, z := range g.Zones {
			cfg.Zones = append(cfg.Zones, gauge.Zone{From: z.From, To: z.To, Color: gauge.ParseRole(z.Color)})
		}
	}
	if g.Threshold != nil && (g.Threshold.Warning != nil || g.Threshold.Critical != nil) {
		cfg.Threshold = &gauge.Threshold{Warning: g.Threshold.Warning, Critical: g.Threshold.Critical}
	}
	if g.ShowValue != nil {
		cfg.ShowValue = *g.ShowValue
	}
	if g.ShowZones != nil {
		cfg.ShowZones = *g.ShowZones
	}
	if g.ShowModeIndicator != nil {
		cfg.ShowModeIndicator = *g.ShowModeIndicator
	}
	if g.Animated != nil {
		cfg.Animated = *g.Animated
	}
	return cfg
}
