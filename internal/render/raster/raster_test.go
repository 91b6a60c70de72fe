package raster_test

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"codeberg.org/mutker/gaugectl/internal/gauge"
	"codeberg.org/mutker/gaugectl/internal/render/raster"
	"codeberg.org/mutker/gaugectl/internal/shape"
	"codeberg.org/mutker/gaugectl/internal/theme"
)

func circular(pct float64) shape.Drawing {
	g, _ := shape.For(shape.Circular)
	return g.Generate(shape.Input{
		Percentage: pct,
		Size:       200,
		Domain:     gauge.Domain{Min: 0, Max: 100},
		Fill:       gauge.RoleDanger,
	})
}

func TestRenderPaintsValueArc(t *testing.T) {
	r, err := raster.New(theme.MustLoad("standard"), raster.Options{})
	require.NoError(t, err)

	img, err := r.Render(circular(92))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	// A point halfway along the value arc, on the stroke centerline.
	rad := 75 * math.Pi / 180
	x, y := 100+80*math.Cos(rad), 100+80*math.Sin(rad)
	c := color.NRGBAModel.Convert(img.At(int(x), int(y))).(color.NRGBA)
	assert.Greater(t, int(c.R), 150)
	assert.Less(t, int(c.G), 120)
	assert.Greater(t, int(c.A), 200)

	center := color.NRGBAModel.Convert(img.At(100, 100)).(color.NRGBA)
	assert.Equal(t, uint8(0), center.A)
}

func TestRenderScaleAndBackground(t *testing.T) {
	th := theme.MustLoad("dark-night")
	r, err := raster.New(th, raster.Options{Scale: 2, Background: true})
	require.NoError(t, err)

	img, err := r.Render(circular(10))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())

	c := color.NRGBAModel.Convert(img.At(2, 2)).(color.NRGBA)
	assert.Equal(t, uint8(0x12), c.R)
	assert.Equal(t, uint8(0xff), c.A)
}

func TestEncodePNG(t *testing.T) {
	r, err := raster.New(theme.MustLoad("standard"), raster.Options{})
	require.NoError(t, err)

	g, _ := shape.For(shape.PressureMini)
	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf, g.Generate(shape.Input{Percentage: 40, Fill: gauge.RoleInfo})))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestCloseWithoutFont(t *testing.T) {
	r, err := raster.New(theme.MustLoad("standard"), raster.Options{})
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf, circular(50)))
}

func TestMissingFont(t *testing.T) {
	_, err := raster.New(theme.MustLoad("standard"), raster.Options{FontPath: t.TempDir() + "/missing.ttf"})
	assert.True(t, errors.HasCode(err, raster.ErrLoadFont))
}
