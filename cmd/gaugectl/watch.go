package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/gaugectl/internal/alarm"
	"codeberg.org/mutker/gaugectl/internal/board"
	"codeberg.org/mutker/gaugectl/internal/errors"
	"codeberg.org/mutker/gaugectl/internal/journal"
	"codeberg.org/mutker/gaugectl/internal/logger"
	"codeberg.org/mutker/gaugectl/internal/pid"
	"codeberg.org/mutker/gaugectl/internal/render/term"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the dashboard live in the terminal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return watch(cmd.Context())
	},
}

func watch(parent context.Context) error {
	errFactory := errors.New()

	// The screen owns the terminal; logs go to a file or nowhere.
	logOut := io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return errFactory.Wrap(errors.ErrInitApp, err).WithData(cfg.LogFile)
		}
		defer f.Close()
		logOut = f
	}
	level, _ := logger.ParseLevel(cfg.LogLevel)
	logger.InitWithWriter(logOut, level, true)

	file, th, err := loadBoard()
	if err != nil {
		return err
	}

	pidPath := pid.DefaultPath()
	if err := pid.Write(pidPath); err != nil {
		return err
	}
	defer func() {
		if err := pid.Remove(pidPath); err != nil {
			logger.Warn().Err(err).Msg("Failed to remove PID file")
		}
	}()

	rec, err := journal.New(journal.Config{
		Enabled:      cfg.Journal.Enabled,
		DBPath:       cfg.Journal.DBPath,
		BatchSize:    cfg.Journal.BatchSize,
		BatchTimeout: cfg.Journal.Timeout(),
	}, logger.Component("journal"))
	if err != nil {
		return errFactory.Wrap(errors.ErrInitApp, err)
	}
	defer func() {
		if err := rec.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close journal")
		}
	}()

	al := alarm.New(alarm.Config{
		Enabled:   cfg.Alarm.Enabled,
		Frequency: cfg.Alarm.Frequency,
		Duration:  cfg.Alarm.Duration(),
		Cooldown:  cfg.Alarm.Cooldown(),
	}, &alarm.Speaker{}, logger.Component("alarm"))

	b, err := board.New(file,
		board.WithRecorder(rec),
		board.WithAlarm(al),
		board.WithLogger(logger.Component("board")),
	)
	if err != nil {
		return errFactory.Wrap(errors.ErrStartFeed, err)
	}
	defer b.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		b.CloseSources()
		return errFactory.Wrap(errors.ErrInitApp, err)
	}
	if err := screen.Init(); err != nil {
		b.CloseSources()
		return errFactory.Wrap(errors.ErrInitApp, err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tiles := make([]term.Tile, 0, len(b.Widgets()))
	for _, w := range b.Widgets() {
		tiles = append(tiles, w)
	}
	view := term.NewView(th, b.Title(), tiles, logger.Component("term"))

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.Run(gctx) })
	g.Go(func() error {
		// Quitting the view ends the session.
		defer cancel()
		return view.Run(gctx, screen, cfg.Refresh())
	})

	if err := g.Wait(); err != nil {
		return errFactory.Wrap(errors.ErrMainLoop, err)
	}

	logger.Info().Dur("uptime", time.Since(start)).Msg("Exiting...")
	return nil
}
