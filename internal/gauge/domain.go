// Package gauge holds the value-side rules shared by every gauge shape:
// range normalization, severity zones, threshold latching, value animation
// and operating-mode styling. Nothing here knows about geometry or paint.
package gauge

import (
	"math"
	"strconv"
)

// Domain is the measurement range of a gauge.
type Domain struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Valid reports whether Min < Max and both ends are finite.
func (d Domain) Valid() bool {
	return d.Min < d.Max && !math.IsInf(d.Min, 0) && !math.IsInf(d.Max, 0)
}

// Span returns Max - Min.
func (d Domain) Span() float64 {
	return d.Max - d.Min
}

// Sanitize returns d when valid, otherwise a unit range starting at Min
// (or at zero when Min is not finite). Rendering never stops on a bad range.
func (d Domain) Sanitize() Domain {
	if d.Valid() {
		return d
	}
	lo := d.Min
	if math.IsNaN(lo) || math.IsInf(lo, 0) {
		lo = 0
	}
	return Domain{Min: lo, Max: lo + 1}
}

// Clamp restricts v to [Min, Max].
func (d Domain) Clamp(v float64) float64 {
	return math.Max(d.Min, math.Min(d.Max, v))
}

// Percentage maps v into [0, 100] after clamping.
func (d Domain) Percentage(v float64) float64 {
	span := d.Span()
	if !(span > 0) {
		return 0
	}
	return (d.Clamp(v) - d.Min) / span * 100
}

// Fraction maps v to its unclamped position in the domain, 0 at Min and 1 at Max.
func (d Domain) Fraction(v float64) float64 {
	span := d.Span()
	if !(span > 0) {
		return 0
	}
	return (v - d.Min) / span
}

// FormatValue renders v with a fixed number of decimals. Negative
// precision is treated as zero.
func FormatValue(v float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// FormatBound renders a domain bound using the shortest exact form,
// so 0 prints as "0" and 2.5 as "2.5".
func FormatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
