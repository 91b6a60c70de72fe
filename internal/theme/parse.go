package theme

import (
	"fmt"
	"strings"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor accepts "#rgb", "#rrggbb", "rgb(r, g, b)" and
// "rgba(r, g, b, a)".
func ParseColor(s string) (Paint, error) {
	errorFactory := errors.New()
	s = strings.TrimSpace(strings.ToLower(s))

	switch {
	case strings.HasPrefix(s, "#"):
		if len(s) == 4 {
			s = "#" + string([]byte{s[1], s[1], s[2], s[2], s[3], s[3]})
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return Paint{}, errorFactory.Wrap(ErrInvalidColor, err).WithData(s)
		}
		return Paint{Color: c, Alpha: 1}, nil

	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		var r, g, b int
		a := 1.0
		body := s[strings.IndexByte(s, '(')+1:]
		body = strings.TrimSuffix(body, ")")
		fields := strings.Split(body, ",")
		if len(fields) != 3 && len(fields) != 4 {
			return Paint{}, errorFactory.WithData(ErrInvalidColor, s)
		}
		for i, dst := range []*int{&r, &g, &b} {
			if _, err := fmt.Sscan(strings.TrimSpace(fields[i]), dst); err != nil || *dst < 0 || *dst > 255 {
				return Paint{}, errorFactory.WithData(ErrInvalidColor, s)
			}
		}
		if len(fields) == 4 {
			if _, err := fmt.Sscan(strings.TrimSpace(fields[3]), &a); err != nil || a < 0 || a > 1 {
				return Paint{}, errorFactory.WithData(ErrInvalidColor, s)
			}
		}
		return Paint{
			Color: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255},
			Alpha: a,
		}, nil
	}

	return Paint{}, errorFactory.WithData(ErrInvalidColor, s)
}
