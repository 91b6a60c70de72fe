package journal

import (
	"time"

	"codeberg.org/mutker/gaugectl/internal/gauge"
)

// Recorder persists what the gauges showed.
type Recorder interface {
	// RecordReading buffers a reading; buffered rows are written in batches.
	RecordReading(r Reading) error
	// RecordCrossing writes a threshold crossing immediately.
	RecordCrossing(c Crossing) error
	Close() error
}

// Reading is one raw value fed to a gauge with the state it produced.
type Reading struct {
	Timestamp time.Time
	GaugeID   string
	Value     float64
	Zone      gauge.Role
	Alert     gauge.Alert
}

// Crossing is a warning or critical hook firing.
type Crossing struct {
	Timestamp time.Time
	GaugeID   string
	Kind      gauge.Alert
	Value     float64
}
