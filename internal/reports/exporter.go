package reports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"chartscope/internal/charts"
	"chartscope/internal/logger"
	"chartscope/internal/storage"
	"chartscope/internal/timefmt"
)

const (
	SVGFile  = storage.ExportMarker
	PNGFile  = "chart.png"
	HTMLFile = "index.html"
)

// ExportOptions selects the artifacts written for one chart
type ExportOptions struct {
	Name      string
	PNG       bool
	HTML      bool
	Title     string
	Notes     string
	Version   string
	Timestamp time.Time
}

type file struct {
	name string
	data []byte
}

// Artifact is one stored file
type Artifact struct {
	Filename string
	Location string
	Size     int
}

// Exporter renders a chart into files and hands them to a storage client
type Exporter struct {
	storage storage.StorageClient
	html    *HTMLBuilder
	fmt     *timefmt.Formatter
	log     *logger.Logger
}

// NewExporter creates an exporter writing through s
func NewExporter(s storage.StorageClient, f *timefmt.Formatter) *Exporter {
	if f == nil {
		f = timefmt.New(nil)
	}
	return &Exporter{
		storage: s,
		html:    NewHTMLBuilder(),
		fmt:     f,
		log:     logger.GetGlobalLogger().WithComponent("export"),
	}
}

// HTMLBuilder exposes the page builder, e.g. to point it at local assets
func (e *Exporter) HTMLBuilder() *HTMLBuilder { return e.html }

// Export stores the chart's SVG and, when asked, its PNG and HTML page
func (e *Exporter) Export(ctx context.Context, c *charts.Chart, opts ExportOptions) ([]Artifact, error) {
	if opts.Timestamp.IsZero() {
		opts.Timestamp = time.Now()
	}
	if opts.Name == "" {
		opts.Name = c.ID()
	}

	c.Settle()
	var svg bytes.Buffer
	if err := c.WriteSVG(&svg); err != nil {
		return nil, fmt.Errorf("failed to render SVG: %w", err)
	}
	files := []file{{SVGFile, svg.Bytes()}}

	if opts.PNG {
		var png bytes.Buffer
		if err := c.WritePNG(&png); err != nil {
			return nil, fmt.Errorf("failed to render PNG: %w", err)
		}
		files = append(files, file{PNGFile, png.Bytes()})
	}

	if opts.HTML {
		in := PageInput{
			Title:       opts.Title,
			ChartID:     c.ID(),
			SVG:         svg.Bytes(),
			Notes:       opts.Notes,
			Snippets:    GenerateSnippets(c.ID(), c.Specs(), e.fmt),
			GeneratedAt: opts.Timestamp,
			Version:     opts.Version,
		}
		if opts.PNG {
			in.PNGFile = PNGFile
		}
		var page bytes.Buffer
		if err := e.html.BuildPage(&page, in); err != nil {
			return nil, err
		}
		files = append(files, file{HTMLFile, page.Bytes()})
	}

	artifacts := make([]Artifact, 0, len(files))
	for _, f := range files {
		location, err := e.storage.StoreFile(ctx, f.data, opts.Name, f.name, opts.Timestamp)
		if err != nil {
			return artifacts, fmt.Errorf("failed to store %s: %w", f.name, err)
		}
		artifacts = append(artifacts, Artifact{Filename: f.name, Location: location, Size: len(f.data)})
	}

	e.log.Info("Chart exported", logger.Fields{
		"chart":     opts.Name,
		"artifacts": len(artifacts),
	})
	return artifacts, nil
}
