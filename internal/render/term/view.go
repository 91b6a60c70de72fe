// Package term draws live gauges on a terminal with tcell.
package term

import (
	"context"
	"time"

	"codeberg.org/mutker/gaugectl/internal/gauge"
	"codeberg.org/mutker/gaugectl/internal/logger"
	"codeberg.org/mutker/gaugectl/internal/theme"
	"codeberg.org/mutker/gaugectl/internal/widget"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	TileCols = 28
	TileRows = 13

	canvasRows = TileRows - 4
	halfBlock  = '▀'
)

// Screen is the part of tcell.Screen the view draws on.
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
	Clear()
	Show()
}

// Tile is one gauge on the board.
type Tile interface {
	Frame() widget.Frame
	Click()
}

// View lays tiles out in a grid under a title bar.
type View struct {
	theme *theme.Theme
	title string
	tiles []Tile
	log   logger.Logger
}

func NewView(th *theme.Theme, title string, tiles []Tile, log logger.Logger) *View {
	if log == nil {
		log = logger.Nop()
	}
	return &View{theme: th, title: title, tiles: tiles, log: log}
}

// Draw paints every tile. elapsed drives the pulse dots.
func (v *View) Draw(s Screen, elapsed time.Duration) {
	s.Clear()
	width, height := s.Size()
	base := tcell.StyleDefault.
		Foreground(color(v.theme.Flat(gauge.RoleText, 1))).
		Background(color(v.theme.Background))

	fill(s, 0, 0, width, height, base)
	header := base.Background(color(v.theme.Surface)).Bold(true)
	fill(s, 0, 0, width, 1, header)
	put(s, 1, 0, width-2, v.title, header)
	hint := "1-9 select  q quit"
	put(s, width-len(hint)-1, 0, len(hint), hint, header.Bold(false))

	perRow := max(1, width/TileCols)
	for i, t := range v.tiles {
		x := (i % perRow) * TileCols
		y := 1 + (i/perRow)*TileRows
		if y+TileRows > height {
			break
		}
		v.drawTile(s, x, y, i, t.Frame(), elapsed, base)
	}
	s.Show()
}

func (v *View) drawTile(s Screen, x, y, index int, f widget.Frame, elapsed time.Duration, base tcell.Style) {
	surface := base.Background(color(v.theme.Surface))
	fill(s, x, y, TileCols-1, TileRows-1, surface)

	titleStyle := surface.Bold(true)
	switch f.Alert {
	case gauge.AlertCritical:
		titleStyle = titleStyle.Foreground(color(v.theme.Flat(gauge.RoleDanger, 1)))
	case gauge.AlertWarning:
		titleStyle = titleStyle.Foreground(color(v.theme.Flat(gauge.RoleWarning, 1)))
	}
	label := f.Title()
	if index < 9 {
		label = string(rune('1'+index)) + " " + label
	}

	canvasTop := y + 1
	textRow := y + 1 + canvasRows
	if f.LabelBelow {
		canvasTop = y
		textRow = y + canvasRows
		put(s, x+1, y+canvasRows+1, TileCols-3, label, titleStyle)
	} else {
		put(s, x+1, y, TileCols-3, label, titleStyle)
	}

	pulse := false
	if f.Mode != nil && f.Mode.Pulsing() {
		pulse = elapsed%f.Mode.Pulse < f.Mode.Pulse/2
	}
	c := Sample(f.Drawing, v.theme, TileCols-3, canvasRows, pulse)
	for cy := 0; cy < c.Rows; cy++ {
		for cx := 0; cx < c.Cols; cx++ {
			top, bottom := c.At(cx, cy)
			st := tcell.StyleDefault.Foreground(color(top)).Background(color(bottom))
			s.SetContent(x+1+cx, canvasTop+cy, halfBlock, nil, st)
		}
	}

	valueStyle := surface.Foreground(color(v.theme.Flat(f.Fill, 1))).Bold(true)
	put(s, x+1, textRow, TileCols-3, f.ValueText(), valueStyle)
	if f.Status != "" && f.Mode != nil {
		statusStyle := surface.Foreground(color(v.theme.Flat(f.Mode.Color, 1)))
		put(s, x+1, y+TileRows-2, TileCols-3, f.Status, statusStyle)
	}
}

// Run draws every refresh until ctx ends or the user quits. Digit keys
// click the matching tile. The caller owns Init and Fini of screen.
func (v *View) Run(ctx context.Context, screen tcell.Screen, refresh time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(refresh)
	defer ticker.Stop()
	start := time.Now()
	v.Draw(screen, 0)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if v.HandleKey(ev.Key(), ev.Rune()) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
			v.Draw(screen, time.Since(start))
		case <-ticker.C:
			v.Draw(screen, time.Since(start))
		}
	}
}

// HandleKey applies a key press and reports whether the view should quit.
func (v *View) HandleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		if r == 'q' {
			return true
		}
		if r >= '1' && r <= '9' {
			if i := int(r - '1'); i < len(v.tiles) {
				v.log.Debug().Int("tile", i).Msg("Tile selected")
				v.tiles[i].Click()
			}
		}
	}
	return false
}

func color(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func fill(s Screen, x, y, w, h int, st tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, ' ', nil, st)
		}
	}
}

// put writes text clipped to width cells.
func put(s Screen, x, y, width int, text string, st tcell.Style) {
	n := 0
	for _, r := range text {
		if n >= width {
			return
		}
		s.SetContent(x+n, y, r, nil, st)
		n++
	}
}
