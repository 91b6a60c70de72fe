package source

import (
	"bufio"
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"codeberg.org/mutker/gaugectl/internal/errors"
)

// Replay plays back a fixed list of readings.
type Replay struct {
	values []float64
	loop   bool
	next   int
}

// NewReplay returns a replay over values. With loop set it wraps around,
// otherwise Read reports ErrExhausted after the last value.
func NewReplay(values []float64, loop bool) *Replay {
	v := make([]float64, len(values))
	copy(v, values)
	return &Replay{values: v, loop: loop}
}

// OpenReplay loads readings from a file. See ParseReplay for the format.
func OpenReplay(path string, loop bool) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New().Wrap(ErrOpenReplay, err).WithData(path)
	}
	defer f.Close()

	values, err := ParseReplay(f)
	if err != nil {
		return nil, err
	}
	return NewReplay(values, loop), nil
}

// ParseReplay reads whitespace or comma separated numbers. Text after '#'
// is a comment. An input without any number is an error.
func ParseReplay(r io.Reader) ([]float64, error) {
	errorFactory := errors.New()

	var values []float64
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == ';'
		})
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errorFactory.Wrap(ErrParseReplay, err).WithData(line)
			}
			values = append(values, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errorFactory.Wrap(ErrParseReplay, err)
	}
	if len(values) == 0 {
		return nil, errorFactory.WithMessage(ErrParseReplay, "replay contains no values")
	}
	return values, nil
}

func (r *Replay) Read(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if r.next >= len(r.values) {
		if !r.loop || len(r.values) == 0 {
			return 0, errors.New().New(ErrExhausted)
		}
		r.next = 0
	}
	v := r.values[r.next]
	r.next++
	return v, nil
}

func (r *Replay) Close() error { return nil }
