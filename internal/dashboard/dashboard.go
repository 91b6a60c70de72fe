// Package dashboard loads the YAML file describing a board of gauges and
// their value feeds.
package dashboard

import (
	"bytes"
	"os"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"gopkg.in/yaml.v3"
)

// File is the root of a dashboard document.
type File struct {
	Title  string            `yaml:"title"`
	Theme  string            `yaml:"theme"`
	Colors map[string]string `yaml:"colors"`
	Gauges []Gauge           `yaml:"gauges"`
}

// ---- GAUGE ----

type Gauge struct {
	ID          string     `yaml:"id"`
	Label       string     `yaml:"label"`
	Unit        string     `yaml:"unit"`
	Type        string     `yaml:"type"`
	Size        float64    `yaml:"size"`
	Min         *float64   `yaml:"min"`
	Max         *float64   `yaml:"max"`
	Precision   *int       `yaml:"precision"`
	Zones       []Zone     `yaml:"zones"` // absent => defaults; [] => none
	Threshold   *Threshold `yaml:"threshold"`
	Mode        string     `yaml:"mode"`
	Orientation string     `yaml:"orientation"`

	ShowValue         *bool `yaml:"show_value"`
	ShowZones         *bool `yaml:"show_zones"`
	ShowModeIndicator *bool `yaml:"show_mode_indicator"`
	IndicatorOnly     bool  `yaml:"indicator_only"`
	Animated          *bool `yaml:"animated"`

	Source Source `yaml:"source"`
}

type Zone struct {
	From  float64 `yaml:"from"`
	To    float64 `yaml:"to"`
	Color string  `yaml:"color"`
}

type Threshold struct {
	Warning  *float64 `yaml:"warning"`
	Critical *float64 `yaml:"critical"`
}

// ---- SOURCE ----

const (
	SourceNone   = ""
	SourceReplay = "replay"
	SourceModbus = "modbus"
	SourceNVML   = "nvml"
)

// Source describes where a gauge's readings come from. Only the fields of
// the selected kind are read.
type Source struct {
	Kind       string `yaml:"kind"`
	IntervalMs int    `yaml:"interval_ms"`

	// replay
	Values []float64 `yaml:"values"`
	File   string    `yaml:"file"`
	Loop   *bool     `yaml:"loop"`

	// modbus
	Endpoint  string   `yaml:"endpoint"`
	UnitID    uint8    `yaml:"unit_id"`
	FC        uint8    `yaml:"fc"`
	Address   uint16   `yaml:"address"`
	DataType  string   `yaml:"data_type"`
	WordOrder string   `yaml:"word_order"`
	Scale     *float64 `yaml:"scale"`
	Offset    float64  `yaml:"offset"`
	TimeoutMs int      `yaml:"timeout_ms"`

	// nvml
	Device int    `yaml:"device"`
	Metric string `yaml:"metric"`
}

// Load reads, validates and normalizes a dashboard file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New().Wrap(ErrReadFile, err).WithData(path)
	}
	return Parse(data)
}

// Parse decodes, validates and normalizes a dashboard document. Unknown
// keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.New().Wrap(ErrParse, err)
	}
	if err := Validate(&f); err != nil {
		return nil, err
	}
	Normalize(&f)
	return &f, nil
}

// Gauge returns the gauge with the given id.
func (f *File) Gauge(id string) (*Gauge, error) {
	for i := range f.Gauges {
		if f.Gauges[i].ID == id {
			return &f.Gauges[i], nil
		}
	}
	return nil, errors.New().WithData(ErrUnknownGauge, id)
}
