package shape_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/mutker/gaugectl/internal/gauge"
	"codeberg.org/mutker/gaugectl/internal/shape"
)

func baseInput(pct float64) shape.Input {
	return shape.Input{
		Percentage:   pct,
		Size:         200,
		Zones:        gauge.DefaultZones(),
		Domain:       gauge.Domain{Min: 0, Max: 100},
		Fill:         gauge.RoleDanger,
		DisplayValue: "92.0",
		Unit:         "°C",
		ShowValue:    true,
	}
}

func arcsByClass(d shape.Drawing, class string) []shape.Arc {
	var out []shape.Arc
	for _, a := range d.Arcs {
		if a.Class == class {
			out = append(out, a)
		}
	}
	return out
}

func textsByClass(d shape.Drawing, class string) []shape.Text {
	var out []shape.Text
	for _, t := range d.Texts {
		if t.Class == class {
			out = append(out, t)
		}
	}
	return out
}

func TestGeneratorsAreDeterministic(t *testing.T) {
	for _, k := range shape.Kinds() {
		g, ok := shape.For(k)
		require.True(t, ok, k)
		in := baseInput(42)
		style, _ := gauge.ResolveMode(gauge.ModeExhaust)
		in.Mode = &style
		in.ShowBadge = true
		assert.Equal(t, g.Generate(in), g.Generate(in), k)
		assert.Equal(t, k, g.Generate(in).Kind)
	}
}

func TestUnknownKindFallsBack(t *testing.T) {
	g, ok := shape.For("hexagon")
	assert.False(t, ok)
	assert.Equal(t, shape.Circular, g.Kind())

	_, ok = shape.ParseKind("Semi-Circular ")
	assert.True(t, ok)
}

func TestCircularGeometry(t *testing.T) {
	g, _ := shape.For(shape.Circular)
	d := g.Generate(baseInput(92))

	assert.Equal(t, 200.0, d.Width)
	assert.Equal(t, 200.0, d.Height)

	bg := arcsByClass(d, "background")
	require.Len(t, bg, 1)
	assert.Equal(t, 80.0, bg[0].Radius)
	assert.Equal(t, 12.0, bg[0].Width)
	assert.True(t, bg[0].Full())

	zones := arcsByClass(d, "zone")
	require.Len(t, zones, 3)
	assert.InDelta(t, 216.0, zones[0].Sweep, 1e-9)
	assert.True(t, zones[0].LargeArc)
	assert.InDelta(t, 90.0, zones[1].Sweep, 1e-9)
	assert.False(t, zones[1].LargeArc)
	assert.Equal(t, 0.3, zones[0].Opacity)

	v := arcsByClass(d, "value")
	require.Len(t, v, 1)
	assert.InDelta(t, 331.2, v[0].Sweep, 1e-9)
	assert.Equal(t, -90.0, v[0].Start)
	assert.Equal(t, gauge.RoleDanger, v[0].Stroke)
	assert.True(t, v[0].RoundCap)
	assert.InDelta(t, 100.0, v[0].From.X, 1e-9)
	assert.InDelta(t, 20.0, v[0].From.Y, 1e-9)

	assert.Len(t, d.Lines, 5)
}

func TestZonesDisabled(t *testing.T) {
	for _, k := range shape.Kinds() {
		g, _ := shape.For(k)
		in := baseInput(50)
		in.Zones = nil
		d := g.Generate(in)
		assert.Empty(t, arcsByClass(d, "zone"), k)
		for _, r := range d.Rects {
			assert.NotEqual(t, "zone", r.Class, k)
		}
	}
}

func TestCompactAndMiniOmitZonesAndTicks(t *testing.T) {
	for _, k := range []shape.Kind{shape.Compact, shape.Mini} {
		g, _ := shape.For(k)
		d := g.Generate(baseInput(50))
		assert.Empty(t, arcsByClass(d, "zone"), k)
		assert.Empty(t, d.Lines, k)
	}

	g, _ := shape.For(shape.Mini)
	d := g.Generate(baseInput(50))
	assert.Equal(t, 100.0, d.Width)
	assert.Equal(t, 44.0, arcsByClass(d, "background")[0].Radius)
	assert.Equal(t, 4.0, arcsByClass(d, "value")[0].Width)
}

func TestDonutGeometry(t *testing.T) {
	g, _ := shape.For(shape.Donut)
	d := g.Generate(baseInput(50))
	assert.Equal(t, 160.0, d.Width)
	assert.Equal(t, 55.0, arcsByClass(d, "value")[0].Radius)
	assert.Equal(t, 20.0, arcsByClass(d, "value")[0].Width)
	z := arcsByClass(d, "zone")
	require.Len(t, z, 3)
	assert.Equal(t, 16.0, z[0].Width)
	assert.Equal(t, 0.25, z[0].Opacity)
}

func TestSemiCircularLargeArc(t *testing.T) {
	g, _ := shape.For(shape.SemiCircular)

	d := g.Generate(baseInput(60))
	v := arcsByClass(d, "value")[0]
	assert.Equal(t, -135.0, v.Start)
	assert.InDelta(t, 162.0, v.Sweep, 1e-9)
	assert.True(t, v.LargeArc)

	d = g.Generate(baseInput(40))
	assert.False(t, arcsByClass(d, "value")[0].LargeArc)

	z := arcsByClass(d, "zone")
	require.Len(t, z, 3)
	assert.True(t, z[0].LargeArc)
	assert.False(t, z[1].LargeArc)
	assert.InDelta(t, 120.0, d.Height, 1e-9)
}

func TestHalfCircleNeverLargeArc(t *testing.T) {
	g, _ := shape.For(shape.HalfCircle)
	d := g.Generate(baseInput(100))
	for _, a := range d.Arcs {
		assert.False(t, a.LargeArc, a.Class)
	}
	v := arcsByClass(d, "value")[0]
	assert.Equal(t, -180.0, v.Start)
	assert.InDelta(t, 180.0, v.Sweep, 1e-9)
	assert.InDelta(t, 110.0, d.Height, 1e-9)

	minLabel := textsByClass(d, "min")
	require.Len(t, minLabel, 1)
	assert.InDelta(t, 15.0, minLabel[0].At.X, 1e-9)
	assert.InDelta(t, 104.0, minLabel[0].At.Y, 1e-9)
	assert.Equal(t, "0", minLabel[0].Content)
}

func TestLinearOrientation(t *testing.T) {
	g, _ := shape.For(shape.Linear)

	in := baseInput(50)
	d := g.Generate(in)
	assert.Equal(t, 200.0, d.Width)
	assert.Equal(t, 40.0, d.Height)
	value := d.Rects[len(d.Rects)-1]
	assert.Equal(t, "value", value.Class)
	assert.Equal(t, 20.0, value.X)
	assert.Equal(t, 80.0, value.W)

	in.Orientation = shape.Vertical
	d = g.Generate(in)
	assert.Equal(t, 40.0, d.Width)
	assert.Equal(t, 200.0, d.Height)
	value = d.Rects[len(d.Rects)-1]
	assert.Equal(t, 12.0, value.X)
	assert.Equal(t, 100.0, value.Y)
	assert.Equal(t, 80.0, value.H)
}

func TestZoneOutsideDomainIsClamped(t *testing.T) {
	g, _ := shape.For(shape.Linear)
	in := baseInput(10)
	in.Zones = []gauge.Zone{{From: -50, To: 150, Color: gauge.RoleInfo}}
	d := g.Generate(in)
	var zone shape.Rect
	for _, r := range d.Rects {
		if r.Class == "zone" {
			zone = r
		}
	}
	assert.Equal(t, 20.0, zone.X)
	assert.Equal(t, 160.0, zone.W)
}

func TestPressureCompactBadgeAndPulse(t *testing.T) {
	g, _ := shape.For(shape.PressureCompact)
	style, _ := gauge.ResolveMode(gauge.ModeExhaust)
	in := baseInput(50)
	in.Mode = &style
	in.ShowBadge = true

	d := g.Generate(in)
	assert.Equal(t, 200.0, d.Width)
	assert.Equal(t, 120.0, d.Height)
	require.Len(t, d.Pulses, 1)
	assert.Equal(t, style.Pulse, d.Pulses[0].Period)
	assert.Equal(t, "EXH", textsByClass(d, "badge-label")[0].Content)
	assert.Equal(t, "↑ EXHAUST", textsByClass(d, "status")[0].Content)
	assert.Len(t, d.Lines, 3)

	in.ShowBadge = false
	d = g.Generate(in)
	assert.Empty(t, d.Pulses)
	assert.Empty(t, textsByClass(d, "badge-label"))
}

func TestIdleHasNoPulse(t *testing.T) {
	style, _ := gauge.ResolveMode(gauge.ModeIdle)
	for _, k := range []shape.Kind{shape.PressureCompact, shape.PressureMini, shape.PressureMicro} {
		g, _ := shape.For(k)
		in := baseInput(30)
		in.Mode = &style
		in.ShowBadge = true
		assert.Empty(t, g.Generate(in).Pulses, k)
	}
}

func TestSmallPressurePulseIsFaster(t *testing.T) {
	style, _ := gauge.ResolveMode(gauge.ModeIntake)
	for _, k := range []shape.Kind{shape.PressureMini, shape.PressureMicro} {
		g, _ := shape.For(k)
		in := baseInput(30)
		in.Mode = &style
		in.ShowBadge = true
		d := g.Generate(in)
		require.Len(t, d.Pulses, 1, k)
		assert.Equal(t, 1200*time.Millisecond, d.Pulses[0].Period, k)
	}
}

func TestIndicatorOnlySuppressesText(t *testing.T) {
	for _, k := range shape.Kinds() {
		g, _ := shape.For(k)
		in := baseInput(70)
		in.IndicatorOnly = true
		d := g.Generate(in)
		assert.Empty(t, textsByClass(d, "value"), k)
		assert.Empty(t, textsByClass(d, "unit"), k)
		assert.Empty(t, textsByClass(d, "min"), k)
		assert.Empty(t, textsByClass(d, "max"), k)
	}
}

func TestHiddenValueDropsValueText(t *testing.T) {
	for _, k := range shape.Kinds() {
		g, _ := shape.For(k)
		shown := g.Generate(baseInput(70))
		in := baseInput(70)
		in.ShowValue = false
		d := g.Generate(in)
		assert.Empty(t, textsByClass(d, "value"), k)
		assert.Empty(t, textsByClass(d, "unit"), k)
		assert.Equal(t, shown.Arcs, d.Arcs, k)
		assert.Equal(t, shown.Rects, d.Rects, k)
		assert.Equal(t, textsByClass(shown, "min"), textsByClass(d, "min"), k)
	}
}

func TestTranslateMovesEveryElement(t *testing.T) {
	style, _ := gauge.ResolveMode(gauge.ModeIntake)
	g, _ := shape.For(shape.PressureCompact)
	in := baseInput(50)
	in.Mode = &style
	in.ShowBadge = true
	d := g.Generate(in)
	moved := d.Translate(3, 20)

	assert.Equal(t, d.Width, moved.Width)
	assert.Equal(t, d.Height, moved.Height)
	require.Len(t, moved.Rects, len(d.Rects))
	assert.Equal(t, d.Rects[0].X+3, moved.Rects[0].X)
	assert.Equal(t, d.Rects[0].Y+20, moved.Rects[0].Y)
	require.Len(t, moved.Texts, len(d.Texts))
	assert.Equal(t, d.Texts[0].At.Y+20, moved.Texts[0].At.Y)
	require.Len(t, moved.Pulses, 1)
	assert.Equal(t, d.Pulses[0].Dot.Center.X+3, moved.Pulses[0].Dot.Center.X)

	moved.Rects[0].X = -1
	assert.NotEqual(t, -1.0, d.Rects[0].X)
}

func TestPercentageOutOfRangeIsClamped(t *testing.T) {
	g, _ := shape.For(shape.Circular)
	assert.InDelta(t, 360.0, arcsByClass(g.Generate(baseInput(140)), "value")[0].Sweep, 1e-9)
	assert.Equal(t, 0.0, arcsByClass(g.Generate(baseInput(-3)), "value")[0].Sweep)
}

func TestLabelPlacement(t *testing.T) {
	assert.True(t, shape.Mini.LabelBelow())
	assert.True(t, shape.Compact.LabelBelow())
	assert.True(t, shape.HalfCircle.LabelBelow())
	assert.False(t, shape.Circular.LabelBelow())
	assert.False(t, shape.PressureMini.LabelBelow())
}
