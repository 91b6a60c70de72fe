package main

import (
	"fmt"
	"io"
	"os"

	"codeberg.org/mutker/gaugectl/internal/config"
	"codeberg.org/mutker/gaugectl/internal/dashboard"
	"codeberg.org/mutker/gaugectl/internal/errors"
	"codeberg.org/mutker/gaugectl/internal/logger"
	"codeberg.org/mutker/gaugectl/internal/theme"
	"github.com/spf13/cobra"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "gaugectl",
	Short:         "Render and watch dashboard gauges",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(cmd.Flags())
		if err != nil {
			return err
		}

		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger.Init(level, logger.IsService())
		logger.Debug().Str("dashboard", cfg.Dashboard).Str("theme", cfg.Theme).Msg("Config loaded")
		return nil
	},
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(watchCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gaugectl %s (%s)\n", version, commit)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the dashboard file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		file, th, err := loadBoard()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d gauges, theme %s\n", cfg.Dashboard, len(file.Gauges), th.Name)
		for _, g := range file.Gauges {
			describe(out, g)
		}
		return nil
	},
}

func describe(out io.Writer, g dashboard.Gauge) {
	feed := g.Source.Kind
	if feed == "" {
		feed = "none"
	}
	fmt.Fprintf(out, "  %-16s %-18s feed=%s\n", g.ID, g.Type, feed)
}

// loadBoard reads the dashboard and resolves its theme. A theme chosen in
// the dashboard file is used unless the configuration names another one.
func loadBoard() (*dashboard.File, *theme.Theme, error) {
	file, err := dashboard.Load(cfg.Dashboard)
	if err != nil {
		return nil, nil, errors.New().Wrap(errors.ErrLoadBoard, err)
	}

	name := cfg.Theme
	if file.Theme != "" && cfg.Theme == config.DefaultTheme {
		name = file.Theme
	}
	th, err := theme.Load(name, file.Colors)
	if err != nil {
		return nil, nil, errors.New().Wrap(errors.ErrLoadBoard, err)
	}
	return file, th, nil
}
