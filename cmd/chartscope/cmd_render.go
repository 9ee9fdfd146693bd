package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"chartscope/internal/config"
	"chartscope/internal/reports"
	"chartscope/internal/storage"
)

type renderOptions struct {
	file  string
	png   bool
	html  bool
	out   string
	title string
}

// newRenderCmd creates the render subcommand
func newRenderCmd() *cobra.Command {
	var o renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a chart definition and store its artifacts",
		Long: `Render a chart definition to chart.svg and, optionally, chart.png and an
index.html page. Artifacts go to the storage selected by STORAGE_MODE:
OUTPUT_DIR for local, GCS_BUCKET for gcs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := loadSession(ctx, o.file, nil)
			if err != nil {
				return err
			}

			store, err := storage.FromConfig(ctx, s.cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			name := o.out
			if name == "" {
				name = baseName(o.file)
			}
			title := o.title
			if title == "" {
				title = name
			}

			artifacts, err := reports.NewExporter(store, s.fmt).Export(ctx, s.chart, reports.ExportOptions{
				Name:      name,
				PNG:       o.png,
				HTML:      o.html,
				Title:     title,
				Notes:     s.def.Notes,
				Version:   config.GetVersion(),
				Timestamp: time.Now(),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Chart %s (%d series)\n", s.chart.ID(), len(s.def.Series))
			for _, a := range artifacts {
				fmt.Fprintf(out, "  %-10s %8s  %s\n", a.Filename, humanize.Bytes(uint64(a.Size)), a.Location)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "chart definition (YAML or JSON)")
	cmd.Flags().BoolVar(&o.png, "png", false, "also render chart.png")
	cmd.Flags().BoolVar(&o.html, "html", false, "also build index.html")
	cmd.Flags().StringVar(&o.out, "out", "", "export name (default: definition file name)")
	cmd.Flags().StringVar(&o.title, "title", "", "page title (default: export name)")
	cmd.MarkFlagRequired("file")
	return cmd
}
