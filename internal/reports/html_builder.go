// Package reports turns rendered charts into exportable artifacts: an HTML
// page embedding the SVG, markdown notes and an ECharts fallback view.
package reports

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultAssetsHost serves echarts.min.js and its themes
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

//go:embed templates/page.html
var pageTemplate string

// HTMLBuilder handles HTML generation with goldmark
type HTMLBuilder struct {
	goldmark   goldmark.Markdown
	page       *template.Template
	AssetsHost string
}

// NewHTMLBuilder creates an HTML builder
func NewHTMLBuilder() *HTMLBuilder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	return &HTMLBuilder{
		goldmark:   md,
		page:       template.Must(template.New("page").Parse(pageTemplate)),
		AssetsHost: DefaultAssetsHost,
	}
}

// pageData is everything the page template needs
type pageData struct {
	Title       string
	ChartID     string
	SVG         template.HTML
	PNGFile     string
	Notes       template.HTML
	Snippets    []snippetHTML
	GeneratedAt string
	Version     string
	AssetsHost  string
}

// PageInput describes one exported chart
type PageInput struct {
	Title       string
	ChartID     string
	SVG         []byte
	PNGFile     string
	Notes       string
	Snippets    []ChartSnippet
	GeneratedAt time.Time
	Version     string
}

// snippetHTML is what the page ranges over
type snippetHTML struct {
	Title  string
	Div    template.HTML
	Script template.HTML
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark. Raw HTML
// in the notes is dropped.
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// BuildPage writes the complete HTML page for a chart
func (h *HTMLBuilder) BuildPage(w io.Writer, in PageInput) error {
	notes, err := h.ConvertMarkdownToHTML(in.Notes)
	if err != nil {
		return err
	}

	snippets := make([]snippetHTML, len(in.Snippets))
	for i, s := range in.Snippets {
		snippets[i] = snippetHTML{
			Title:  s.Title,
			Div:    template.HTML(s.Div),
			Script: template.HTML(s.Script),
		}
	}

	title := in.Title
	if title == "" {
		title = "Chart"
	}
	data := pageData{
		Title:       title,
		ChartID:     in.ChartID,
		SVG:         template.HTML(in.SVG),
		PNGFile:     in.PNGFile,
		Notes:       notes,
		Snippets:    snippets,
		GeneratedAt: in.GeneratedAt.UTC().Format(time.RFC3339),
		Version:     in.Version,
		AssetsHost:  h.AssetsHost,
	}
	if err := h.page.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute page template: %w", err)
	}
	return nil
}
