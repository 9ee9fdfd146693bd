package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"

	"chartscope/internal/playback"
)

type simulateOptions struct {
	file   string
	script string
	svg    string
}

// newSimulateCmd creates the simulate subcommand
func newSimulateCmd() *cobra.Command {
	var o simulateOptions

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay an interaction script and print the events it produces",
		Long: `Replay an interaction script against a chart definition. Every zoom and
route event the chart publishes is printed as one JSON line. Gauge
animations run on a virtual clock advanced by tick steps.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			steps, err := playback.LoadScriptFile(o.script)
			if err != nil {
				return err
			}

			mock := clock.NewMock()
			s, err := loadSession(ctx, o.file, mock)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			var encErr error
			p := playback.NewPlayer(s.chart, mock)
			p.OnRecord = func(r playback.Record) {
				if err := enc.Encode(r); err != nil && encErr == nil {
					encErr = err
				}
			}

			if err := p.Run(ctx, steps); err != nil {
				return err
			}
			if encErr != nil {
				return fmt.Errorf("failed to write event: %w", encErr)
			}

			if o.svg != "" {
				s.chart.Settle()
				f, err := os.Create(o.svg)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", o.svg, err)
				}
				defer f.Close()
				if err := s.chart.WriteSVG(f); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "chart definition (YAML or JSON)")
	cmd.Flags().StringVarP(&o.script, "script", "s", "", "interaction script (YAML list of steps)")
	cmd.Flags().StringVar(&o.svg, "svg", "", "write the final scene to this SVG file")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("script")
	return cmd
}
