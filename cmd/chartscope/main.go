package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"

	"chartscope/internal/charts"
	"chartscope/internal/config"
	"chartscope/internal/logger"
	"chartscope/internal/models"
	"chartscope/internal/timefmt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "chartscope",
		Short: "Render and exercise interactive time-series charts",
		Long: `chartscope renders chart definitions (line, gauge and scatter series)
into SVG, PNG and HTML artifacts, and replays scripted pointer, brush and
click input against them to show the events a host page would receive.

  chartscope render -f def.yaml [--png] [--html] [--out name]
  chartscope simulate -f def.yaml -s script.yaml
  chartscope version`,
		Version:      config.GetVersion(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				logger.GetGlobalLogger().SetLevel(logger.DEBUG)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newRenderCmd(),
		newSimulateCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// session is a chart built from a definition file under the environment
// configuration
type session struct {
	cfg   *config.Config
	def   *models.Definition
	fmt   *timefmt.Formatter
	chart *charts.Chart
}

func loadSession(ctx context.Context, path string, clk clock.Clock) (*session, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open definition: %w", err)
	}
	defer f.Close()

	def, err := models.LoadDefinitionWith(f, cfg.ChartDefaults())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	formatter := timefmt.New(loc)
	opts := []charts.Option{charts.WithFormatter(formatter)}
	if clk != nil {
		opts = append(opts, charts.WithClock(clk))
	}
	c, err := charts.New(def.Chart, def.Series, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &session{cfg: cfg, def: def, fmt: formatter, chart: c}, nil
}

// baseName is a definition file name without directory or extension
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
