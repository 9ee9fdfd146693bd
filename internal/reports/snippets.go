package reports

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
	"github.com/go-echarts/go-echarts/v2/types"

	"chartscope/internal/models"
	"chartscope/internal/timefmt"
)

// ChartSnippet is an embeddable ECharts rendition of a chart. Div holds the
// container element, Script the block initialising it.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
}

const (
	snippetWidth  = "900px"
	snippetHeight = "400px"
)

// echartsLineType maps a dash style onto the three ECharts line types
func echartsLineType(d models.DashStyle) string {
	switch d {
	case models.Solid, "":
		return "solid"
	case models.Dot:
		return "dotted"
	default:
		return "dashed"
	}
}

// GenerateSnippets builds one time-series snippet for every line and scatter
// series, plus one gauge snippet per gauge series. Snippet ids are derived
// from chartID so several charts can share a page.
func GenerateSnippets(chartID string, series []models.SeriesSpec, f *timefmt.Formatter) []ChartSnippet {
	if f == nil {
		f = timefmt.New(nil)
	}
	var out []ChartSnippet

	var line *charts.Line
	for _, s := range series {
		switch s := s.(type) {
		case *models.LineSeries:
			if line == nil {
				line = newTimeSeries(chartID)
			}
			data := make([]opts.LineData, len(s.Data))
			for i, d := range s.Data {
				data[i] = opts.LineData{Value: []interface{}{f.Zoom(d.X), d.Y}}
			}
			line.AddSeries(s.Name, data,
				charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color, Type: echartsLineType(s.DashStyle)}),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
			)
		case *models.ScatterSeries:
			if line == nil {
				line = newTimeSeries(chartID)
			}
			scatter := charts.NewScatter()
			data := make([]opts.ScatterData, len(s.Data))
			for i, d := range s.Data {
				data[i] = opts.ScatterData{Name: d.Description, Value: []interface{}{f.Zoom(d.X), d.Y}}
			}
			scatter.AddSeries(s.Name, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
			line.Overlap(scatter)
		}
	}
	if line != nil {
		out = append(out, snippetOf(chartID+"-series", "Series", line.RenderSnippet()))
	}

	for _, s := range series {
		g, ok := s.(*models.GaugeSeries)
		if !ok {
			continue
		}
		id := fmt.Sprintf("%s-gauge-%s", chartID, g.ID)
		gauge := charts.NewGauge()
		gauge.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{
				ChartID: sanitizeID(id),
				Theme:   types.ThemeWesteros,
				Width:   "400px",
				Height:  "300px",
			}),
			charts.WithTitleOpts(opts.Title{Title: g.Name}),
		)
		max := g.MaxValue
		gauge.AddSeries(g.Name, []opts.GaugeData{{Name: g.Unit, Value: g.Value()}},
			charts.WithSeriesOpts(func(ss *charts.SingleSeries) {
				ss.Min = 0
				ss.Max = int(math.Ceil(max))
			}),
		)
		out = append(out, snippetOf(id, g.Name, gauge.RenderSnippet()))
	}
	return out
}

func newTimeSeries(chartID string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: sanitizeID(chartID + "-series"),
			Theme:   types.ThemeWesteros,
			Width:   snippetWidth,
			Height:  snippetHeight,
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	return line
}

// sanitizeID keeps ids usable as JavaScript identifiers, which go-echarts
// derives its instance variable from
func sanitizeID(id string) string {
	b := []byte(id)
	for i, c := range b {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			b[i] = '_'
		}
	}
	return string(b)
}

func snippetOf(id, title string, r render.ChartSnippet) ChartSnippet {
	return ChartSnippet{ID: id, Title: title, Div: r.Element, Script: r.Script}
}
