package source

import (
	"codeberg.org/mutker/gaugectl/internal/dashboard"
	"codeberg.org/mutker/gaugectl/internal/errors"
	smodbus "codeberg.org/mutker/gaugectl/internal/source/modbus"
	snvml "codeberg.org/mutker/gaugectl/internal/source/nvml"
)

// Build constructs the source described by s. It returns nil, nil for a
// gauge without a feed. Modbus connections are opened lazily on the first
// read, so an unreachable PLC does not fail startup.
func Build(s dashboard.Source) (Source, error) {
	errorFactory := errors.New()

	switch s.Kind {
	case dashboard.SourceNone:
		return nil, nil

	case dashboard.SourceReplay:
		loop := s.Loop == nil || *s.Loop
		if len(s.Values) > 0 {
			return NewReplay(s.Values, loop), nil
		}
		r, err := OpenReplay(s.File, loop)
		if err != nil {
			return nil, err
		}
		return r, nil

	case dashboard.SourceModbus:
		scale := 1.0
		if s.Scale != nil {
			scale = *s.Scale
		}
		r, err := smodbus.New(smodbus.Config{
			Endpoint:  s.Endpoint,
			UnitID:    s.UnitID,
			FC:        s.FC,
			Address:   s.Address,
			DataType:  s.DataType,
			WordOrder: s.WordOrder,
			Scale:     scale,
			Offset:    s.Offset,
			Timeout:   s.Timeout(),
		})
		if err != nil {
			return nil, errorFactory.Wrap(ErrBuild, err).WithData(s.Kind)
		}
		return r, nil

	case dashboard.SourceNVML:
		sensor, err := snvml.Open(s.Device, snvml.Metric(s.Metric))
		if err != nil {
			return nil, errorFactory.Wrap(ErrBuild, err).WithData(s.Kind)
		}
		return sensor, nil

	default:
		return nil, errorFactory.WithData(ErrUnsupported, s.Kind)
	}
}
