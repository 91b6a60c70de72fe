package theme_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"codeberg.org/mutker/gaugectl/internal/gauge"
	"codeberg.org/mutker/gaugectl/internal/theme"
)

func TestEveryThemeResolvesEveryRole(t *testing.T) {
	for _, name := range theme.Names() {
		th, err := theme.Load(name, nil)
		require.NoError(t, err, name)
		for _, role := range gauge.Roles {
			assert.NotZero(t, th.Paint(role).Alpha, "%s/%s", name, role)
		}
	}
}

func TestStandardColors(t *testing.T) {
	th := theme.MustLoad("standard")
	assert.Equal(t, "#dc3545", th.Hex(gauge.RoleDanger))
	assert.Equal(t, "#28a745", th.Hex(gauge.RoleSuccess))
	assert.Equal(t, th.Hex(gauge.RolePrimary), th.Hex(gauge.Role("chartreuse")))
}

func TestFlatBlendsOverBackground(t *testing.T) {
	th := theme.MustLoad("standard")
	assert.Equal(t, "#ffffff", th.Flat(gauge.RoleDanger, 0).Hex())
	assert.Equal(t, "#dc3545", th.Flat(gauge.RoleDanger, 1).Hex())

	r, g, b := th.Flat(gauge.RoleBorder, 0.5).RGB255()
	assert.InDelta(t, (0xde+0xff)/2, int(r), 1)
	assert.InDelta(t, (0xe2+0xff)/2, int(g), 1)
	assert.InDelta(t, (0xe6+0xff)/2, int(b), 1)
}

func TestNRGBAKeepsAlpha(t *testing.T) {
	th := theme.MustLoad("hmi-future")
	c := th.NRGBA(gauge.RoleSuccess, 0.5)
	assert.Equal(t, uint8(34), c.R)
	assert.Equal(t, uint8(102), c.A)
}

func TestOverrides(t *testing.T) {
	th, err := theme.Load("dark-night", map[string]string{"danger": "#f00", "textSecondary": "rgb(1, 2, 3)"})
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", th.Hex(gauge.RoleDanger))
	assert.Equal(t, "#010203", th.Hex(gauge.RoleTextSecondary))

	_, err = theme.Load("dark-night", map[string]string{"sparkle": "#fff"})
	assert.True(t, errors.HasCode(err, theme.ErrUnknownRole))

	_, err = theme.Load("dark-night", map[string]string{"danger": "red"})
	assert.True(t, errors.HasCode(err, theme.ErrInvalidColor))
}

func TestUnknownTheme(t *testing.T) {
	_, err := theme.Load("neon", nil)
	assert.True(t, errors.HasCode(err, theme.ErrUnknownTheme))

	th, err := theme.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, theme.DefaultName, th.Name)
}

func TestParseColor(t *testing.T) {
	p, err := theme.ParseColor("rgba(255, 255, 255, 0.7)")
	require.NoError(t, err)
	assert.Equal(t, 0.7, p.Alpha)
	assert.Equal(t, "#ffffff", p.Color.Hex())

	for _, bad := range []string{"", "rgba(1,2)", "rgb(300, 0, 0)", "rgba(1, 2, 3, 2)", "#zzzzzz"} {
		_, err := theme.ParseColor(bad)
		assert.Error(t, err, bad)
	}
}
