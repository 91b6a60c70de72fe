package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"codeberg.org/mutker/gaugectl/internal/gauge"
	"codeberg.org/mutker/gaugectl/internal/logger"
	"codeberg.org/mutker/gaugectl/internal/render/raster"
	"codeberg.org/mutker/gaugectl/internal/render/svg"
	"codeberg.org/mutker/gaugectl/internal/shape"
	"codeberg.org/mutker/gaugectl/internal/theme"
	"codeberg.org/mutker/gaugectl/internal/widget"
	"github.com/spf13/cobra"
)

var renderOpts struct {
	gauge  string
	values string
	format string
	out    string
	frames string
	scale  float64
	font   string
	bare   bool
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Feed values to one gauge and write the resulting image",
	Long: `Render feeds a sequence of values to one gauge on a simulated clock,
stepping the animation between values, and writes the final frame as SVG or
PNG. With --frames every intermediate frame is written too.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		file, th, err := loadBoard()
		if err != nil {
			return err
		}

		id := renderOpts.gauge
		if id == "" {
			id = file.Gauges[0].ID
		}
		g, err := file.Gauge(id)
		if err != nil {
			return err
		}

		values, err := parseValues(renderOpts.values)
		if err != nil {
			return err
		}

		out, err := newOutput(renderOpts.format, th)
		if err != nil {
			return err
		}
		defer func() {
			if err := out.Close(); err != nil {
				logger.Debug().Err(err).Msg("Failed to release renderer")
			}
		}()

		frames := simulate(g.WidgetConfig(), values, logger.Component("render"))
		if renderOpts.frames != "" {
			if err := writeFrames(renderOpts.frames, id, frames, out); err != nil {
				return err
			}
		}

		last := frames[len(frames)-1]
		if renderOpts.out == "" || renderOpts.out == "-" {
			return out.encode(cmd.OutOrStdout(), layout(last))
		}
		return writeFile(renderOpts.out, layout(last), out)
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOpts.gauge, "gauge", "g", "", "Gauge id (default: first gauge)")
	f.StringVar(&renderOpts.values, "values", "", "Comma separated readings to feed")
	f.StringVarP(&renderOpts.format, "format", "f", "svg", "Output format: svg or png")
	f.StringVarP(&renderOpts.out, "out", "o", "-", "Output file, - for stdout")
	f.StringVar(&renderOpts.frames, "frames", "", "Directory to write every frame to")
	f.Float64Var(&renderOpts.scale, "scale", 1, "PNG scale factor")
	f.StringVar(&renderOpts.font, "font", "", "TTF/OTF font for PNG text")
	f.BoolVar(&renderOpts.bare, "bare", false, "Write only the gauge shape, without label and status rows")
}

// output encodes drawings in one format.
type output struct {
	ext    string
	encode func(w io.Writer, d shape.Drawing) error
	close  func() error
}

func (o *output) Close() error {
	if o.close == nil {
		return nil
	}
	return o.close()
}

func newOutput(format string, th *theme.Theme) (*output, error) {
	switch strings.ToLower(format) {
	case "svg":
		return &output{ext: "svg", encode: func(w io.Writer, d shape.Drawing) error {
			return svg.Encode(w, d, th, svg.Options{Background: true, Animate: true})
		}}, nil
	case "png":
		r, err := raster.New(th, raster.Options{
			Scale:      renderOpts.scale,
			Background: true,
			FontPath:   renderOpts.font,
		})
		if err != nil {
			return nil, err
		}
		return &output{ext: "png", encode: r.EncodePNG, close: r.Close}, nil
	default:
		return nil, errors.New().WithData(errors.ErrInvalidArgument, format)
	}
}

// layout is the drawing written for f: the card, or the bare shape.
func layout(f widget.Frame) shape.Drawing {
	if renderOpts.bare {
		return f.Drawing
	}
	return widget.Card(f)
}

func parseValues(s string) ([]float64, error) {
	var values []float64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.New().Wrap(errors.ErrInvalidArgument, err).WithData(field)
		}
		values = append(values, v)
	}
	return values, nil
}

// simulate runs a widget on a manual clock. It returns the initial frame,
// then the frame after every reading and every animation tick.
func simulate(cfg widget.Config, values []float64, log logger.Logger) []widget.Frame {
	clock := widget.NewManualClock()
	w := widget.New(cfg, widget.WithClock(clock), widget.WithLogger(log))
	defer w.Close()

	frames := []widget.Frame{w.Frame()}
	for _, v := range values {
		w.Update(v)
		frames = append(frames, w.Frame())
		for i := 0; i < gauge.AnimationSteps && w.Frame().Animating; i++ {
			clock.Advance(gauge.TickPeriod)
			frames = append(frames, w.Frame())
		}
		log.Debug().Float64("value", v).Str("display", w.ValueText()).Msg("Reading applied")
	}
	return frames
}

func writeFrames(dir, id string, frames []widget.Frame, out *output) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.New().Wrap(errors.ErrRenderGauge, err).WithData(dir)
	}
	for i, f := range frames {
		path := filepath.Join(dir, fmt.Sprintf("%s_%04d.%s", id, i, out.ext))
		if err := writeFile(path, layout(f), out); err != nil {
			return err
		}
	}
	logger.Info().Int("frames", len(frames)).Str("dir", dir).Msg("Frames written")
	return nil
}

func writeFile(path string, d shape.Drawing, o *output) error {
	errFactory := errors.New()

	out, err := os.Create(path)
	if err != nil {
		return errFactory.Wrap(errors.ErrRenderGauge, err).WithData(path)
	}
	if err := o.encode(out, d); err != nil {
		out.Close()
		return errFactory.Wrap(errors.ErrRenderGauge, err).WithData(path)
	}
	if err := out.Close(); err != nil {
		return errFactory.Wrap(errors.ErrRenderGauge, err).WithData(path)
	}
	return nil
}
