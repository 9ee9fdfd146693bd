package charts

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"chartscope/internal/events"
	"chartscope/internal/logger"
	"chartscope/internal/models"
	"chartscope/internal/scales"
	"chartscope/internal/scene"
	"chartscope/internal/timefmt"
)

var (
	// ErrDuplicateSeries is returned when two series share an id
	ErrDuplicateSeries = errors.New("duplicate series id")
	// ErrUnknownSeries is returned for an id the chart does not hold
	ErrUnknownSeries = errors.New("unknown series")
	// ErrNotGauge is returned when a gauge operation targets another kind
	ErrNotGauge = errors.New("series is not a gauge")
	// ErrNotScatter is returned when a point click targets another kind
	ErrNotScatter = errors.New("series is not a scatter plot")
	// ErrDestroyed is returned by output methods after Destroy
	ErrDestroyed = errors.New("chart destroyed")
)

const (
	// DefaultColor is used for series without a colour
	DefaultColor = "blue"
	// YAxisStep is the horizontal gutter each extra y axis takes
	YAxisStep = 35
	// YTickCount is the number of y intervals per axis
	YTickCount = 5
	// GaugeCornerRadius is the corner radius the composer gives its gauges
	GaugeCornerRadius = 4

	legendRowHeight = 24
	legendSwatch    = 12
	legendSpacing   = 22
	legendCharWidth = 7
)

// seriesState is everything the chart derives for one series. It is
// updated in place as scales and renderers are attached.
type seriesState struct {
	spec  models.SeriesSpec
	index int

	xScale *scales.TimeScale
	yScale *scales.LinearScale

	legend *scene.Node
	yAxis  *scene.Node

	line        *Line
	pointIcon   *scene.Node
	pointShadow *scene.Node
	gauge       *Gauge
	scatter     *ScatterPlot
}

func (s *seriesState) common() *models.SeriesCommon { return s.spec.Common() }

// Option configures a Chart
type Option func(*Chart)

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Chart) { c.log = l }
}

// WithClock sets the clock driving gauge animations
func WithClock(clk clock.Clock) Option {
	return func(c *Chart) { c.clock = clk }
}

// WithFormatter sets the time formatter for labels and zoom payloads
func WithFormatter(f *timefmt.Formatter) Option {
	return func(c *Chart) { c.fmt = f }
}

// WithID sets the instance id written to the root node
func WithID(id string) Option {
	return func(c *Chart) { c.id = id }
}

// Chart composes every series of a configuration into one scene with
// shared axes, legend, hover tooltip and zoom brush. It is not safe for
// concurrent use.
type Chart struct {
	cfg   models.ChartConfig
	id    string
	log   *logger.Logger
	clock clock.Clock
	fmt   *timefmt.Formatter
	bus   *events.Bus

	series []*seriesState
	byID   map[string]*seriesState

	headerHeight float64
	yAxisWidth   float64

	root        *scene.Node
	header      *scene.Node
	headerInner *scene.Node
	container   *scene.Node
	xAxis       *scene.Node
	pointer     *scene.Node
	brush       *scene.BrushX
	tooltip     *Tooltip
}

// New validates the series and renders the chart
func New(cfg models.ChartConfig, series []models.SeriesSpec, opts ...Option) (*Chart, error) {
	c := &Chart{
		cfg:  cfg,
		byID: make(map[string]*seriesState, len(series)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.GetGlobalLogger().WithComponent("chart")
	}
	if c.clock == nil {
		c.clock = clock.New()
	}
	if c.fmt == nil {
		c.fmt = timefmt.New(time.UTC)
	}
	if c.id == "" {
		c.id = uuid.New().String()
	}

	for i, s := range series {
		if s == nil {
			return nil, fmt.Errorf("series %d: %w", i, models.ErrUnknownSeriesKind)
		}
		id := s.Common().ID
		if _, ok := c.byID[id]; ok {
			return nil, fmt.Errorf("series %q: %w", id, ErrDuplicateSeries)
		}
		if g, ok := s.(*models.GaugeSeries); ok {
			if err := g.Validate(); err != nil {
				return nil, err
			}
		}
		st := &seriesState{spec: s, index: i}
		c.series = append(c.series, st)
		c.byID[id] = st
	}

	if n := len(c.series); n > 1 {
		c.yAxisWidth = YAxisStep * float64(n-1)
	}
	c.headerHeight = c.estimateHeaderHeight()

	if err := c.Render(); err != nil {
		return nil, err
	}
	return c, nil
}

// Render discards the current scene and draws the chart from scratch
func (c *Chart) Render() error {
	c.teardown()
	c.bus = c.busOrNew()

	c.root = scene.New("svg").Classed("chart", true).
		Attr("width", c.cfg.Width).
		Attr("height", c.cfg.Height).
		Attr("data-chart-id", c.id)
	if c.cfg.Target != "" {
		c.root.Attr("id", c.cfg.Target)
	}

	if c.cfg.ShowLegend {
		c.addLegend()
	}
	if c.header != nil {
		c.header.Attr("height", scene.Num(c.headerHeight)+"px")
	}

	c.container = c.root.Append("g").
		Attr("transform", scene.Translate(c.cfg.Margin.Left+c.yAxisWidth, c.cfg.Margin.Top+c.headerHeight)).
		Attr("width", c.cfg.Width-(c.cfg.Margin.Left+c.cfg.Margin.Right))

	c.attachScales()
	if c.cfg.ShowScales {
		c.addAxes()
	}
	if c.cfg.ShowTooltip || c.cfg.EnableZoom {
		c.createPointerContainer()
	}
	if c.cfg.ShowTooltip {
		c.setPointerListeners()
	}

	for _, st := range c.series {
		if err := c.renderSeries(st); err != nil {
			return err
		}
	}

	c.log.Debug("Chart rendered", logger.Fields{
		"id":     c.id,
		"series": len(c.series),
		"header": c.headerHeight,
	})
	return nil
}

func (c *Chart) busOrNew() *events.Bus {
	if c.bus != nil {
		return c.bus
	}
	return events.NewBus()
}

func (c *Chart) teardown() {
	if c.tooltip != nil {
		c.tooltip.Hide()
		c.tooltip = nil
	}
	if c.root != nil {
		c.root.Remove()
	}
	c.root, c.header, c.headerInner, c.container = nil, nil, nil, nil
	c.xAxis, c.pointer, c.brush = nil, nil, nil
	for _, st := range c.series {
		st.legend, st.yAxis = nil, nil
		st.line, st.pointIcon, st.pointShadow = nil, nil, nil
		st.gauge, st.scatter = nil, nil
	}
}

// renderSeries dispatches a series to the renderer of its kind
func (c *Chart) renderSeries(st *seriesState) error {
	switch s := st.spec.(type) {
	case *models.LineSeries:
		c.renderLine(st, s)
	case *models.GaugeSeries:
		return c.renderGauge(st, s)
	case *models.ScatterSeries:
		c.renderScatter(st, s)
	default:
		return fmt.Errorf("series %q: %w", st.common().ID, models.ErrUnknownSeriesKind)
	}
	return nil
}

// PlotWidth is the width of the plot area
func (c *Chart) PlotWidth() float64 { return c.cfg.PlotWidth(c.yAxisWidth) }

// PlotHeight is the height of the plot area
func (c *Chart) PlotHeight() float64 { return c.cfg.PlotHeight(c.headerHeight) }

// HeaderHeight is the legend height computed at construction
func (c *Chart) HeaderHeight() float64 { return c.headerHeight }

// YAxisWidth is the gutter taken by the stacked y axes
func (c *Chart) YAxisWidth() float64 { return c.yAxisWidth }

// ID is the chart instance id
func (c *Chart) ID() string { return c.id }

// Config returns the configuration the chart was built with
func (c *Chart) Config() models.ChartConfig { return c.cfg }

// Events is the host-facing bus carrying "zoom" and "route"
func (c *Chart) Events() *events.Bus { return c.bus }

// Root is the svg node, nil after Destroy
func (c *Chart) Root() *scene.Node { return c.root }

// Series returns the spec with id
func (c *Chart) Series(id string) (models.SeriesSpec, bool) {
	st, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return st.spec, true
}

// Specs returns every series in drawing order
func (c *Chart) Specs() []models.SeriesSpec {
	out := make([]models.SeriesSpec, len(c.series))
	for i, st := range c.series {
		out[i] = st.spec
	}
	return out
}

// Scales returns the scale pair attached to a series, nil for a series
// without samples
func (c *Chart) Scales(id string) (*scales.TimeScale, *scales.LinearScale, error) {
	st, ok := c.byID[id]
	if !ok {
		return nil, nil, fmt.Errorf("%q: %w", id, ErrUnknownSeries)
	}
	return st.xScale, st.yScale, nil
}

// Gauge returns the renderer of a gauge series
func (c *Chart) Gauge(id string) (*Gauge, error) {
	st, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownSeries)
	}
	if st.gauge == nil {
		return nil, fmt.Errorf("%q: %w", id, ErrNotGauge)
	}
	return st.gauge, nil
}

// Scatter returns the renderer of a scatter series
func (c *Chart) Scatter(id string) (*ScatterPlot, error) {
	st, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownSeries)
	}
	if st.scatter == nil {
		return nil, fmt.Errorf("%q: %w", id, ErrNotScatter)
	}
	return st.scatter, nil
}

// Tooltip is the hover tooltip, nil when the pointer is outside the plot
func (c *Chart) Tooltip() *Tooltip { return c.tooltip }

// Brush is the zoom gesture, nil when zoom is disabled
func (c *Chart) Brush() *scene.BrushX { return c.brush }

// UpdateGauge shows a new value on a gauge series
func (c *Chart) UpdateGauge(id string, value float64) error {
	g, err := c.Gauge(id)
	if err != nil {
		return err
	}
	common := c.byID[id].common()
	if len(common.Data) == 0 {
		common.Data = append(common.Data, models.SampleRecord{X: c.clock.Now()})
	}
	common.Data[0].Y = value
	g.Update(value)
	return nil
}

// Tick advances every gauge animation to the clock's current time and
// reports whether any is still running
func (c *Chart) Tick() bool {
	now := c.clock.Now()
	running := false
	for _, st := range c.series {
		if st.gauge != nil && st.gauge.Advance(now) {
			running = true
		}
	}
	return running
}

// Settle finishes every gauge animation so the scene shows final values.
// Exports call it before serializing.
func (c *Chart) Settle() {
	for _, st := range c.series {
		if st.gauge != nil {
			st.gauge.Finish()
		}
	}
}

// WriteSVG serializes the scene
func (c *Chart) WriteSVG(w io.Writer) error {
	if c.root == nil {
		return ErrDestroyed
	}
	return c.root.WriteSVG(w)
}

// WritePNG rasterizes the scene
func (c *Chart) WritePNG(w io.Writer) error {
	if c.root == nil {
		return ErrDestroyed
	}
	r, err := scene.NewRasterizer(int(c.cfg.Width), int(c.cfg.Height))
	if err != nil {
		return err
	}
	return r.Render(c.root, w)
}

// Destroy tears the scene down. Render brings it back.
func (c *Chart) Destroy() {
	c.teardown()
	c.log.Debug("Chart destroyed", logger.Fields{"id": c.id})
}

func (c *Chart) colorOf(st *seriesState) string {
	if col := st.common().Color; col != "" {
		return col
	}
	return DefaultColor
}

// estimateHeaderHeight lays legend entries out in rows across the chart
// width. It runs once, before any layout reads it.
func (c *Chart) estimateHeaderHeight() float64 {
	if !c.cfg.ShowLegend || len(c.series) == 0 {
		return 0
	}
	avail := c.cfg.Width - (c.cfg.Margin.Left + c.cfg.Margin.Right)
	rows, used := 1, 0.0
	for _, st := range c.series {
		w := float64(legendSwatch + legendSpacing + legendCharWidth*len([]rune(st.common().Name)))
		if used > 0 && used+w > avail {
			rows++
			used = 0
		}
		used += w
	}
	return float64(rows * legendRowHeight)
}

func (c *Chart) addLegend() {
	c.header = c.root.Append("foreignObject").Classed("chart-header", true).
		Attr("width", "100%").
		Attr("height", "1px")
	c.headerInner = c.header.Append("xhtml:div").Classed("chart-header__inner", true)
	list := c.headerInner.Append("div").Classed("legend-list", true)

	for _, st := range c.series {
		st.legend = list.Append("div").Classed("legend", true)
		st.legend.Append("div").Classed("legend__color", true).Style("background", c.colorOf(st))
		st.legend.Append("div").Classed("legend__name", true).
			Style("color", c.cfg.TextColor).
			SetText(st.common().Name)
	}
}

// attachScales derives each series' scale pair from its own samples
func (c *Chart) attachScales() {
	engine := scales.NewEngine(c.PlotWidth(), c.PlotHeight())
	for _, st := range c.series {
		data := st.common().Data
		st.xScale = engine.CreateXScale(data)
		st.yScale = engine.CreateYScale(data)
	}
}

func (c *Chart) addAxes() {
	if len(c.series) == 0 || c.series[0].xScale == nil {
		c.log.Warn("Skipping x axis: first series has no samples")
	} else {
		first := c.series[0]
		t0, t1 := first.xScale.Domain()
		var ticks []scene.Tick
		for _, t := range scales.TimeTickList(t0, t1, scales.XTickNumber(c.cfg.Width)) {
			ticks = append(ticks, scene.Tick{Pos: first.xScale.Map(t), Label: c.fmt.Axis(t)})
		}
		r0, r1 := first.xScale.Range()
		c.xAxis = c.container.Append("g").Classed("chart-x-axis", true).
			Attr("transform", scene.Translate(0, c.PlotHeight()))
		scene.NewAxis(scene.Bottom, ticks, r0, r1).Render(c.xAxis)

		removeAll(c.xAxis, ".domain")
		for _, t := range c.xAxis.SelectAll("text") {
			t.Style("fill", c.cfg.TextColor)
		}
		removeAll(c.xAxis, "line")
	}

	for idx, st := range c.series {
		if st.yScale == nil {
			continue
		}
		common := st.common()
		max := common.MaxValue
		if max == 0 {
			_, max = st.yScale.Domain()
		}
		var ticks []scene.Tick
		for _, v := range scales.TickList(0, max, YTickCount) {
			ticks = append(ticks, scene.Tick{Pos: st.yScale.Map(v), Label: scales.FormatTick(v)})
		}

		r0, r1 := st.yScale.Range()
		axis := scene.NewAxis(scene.Left, ticks, r0, r1)
		axis.TickSize = -c.PlotWidth()
		st.yAxis = c.container.Append("g").Classed("chart-y-axis-"+common.ID, true)
		axis.Render(st.yAxis)
		st.yAxis.Attr("transform", scene.Translate(-YAxisStep*float64(idx), 0))

		removeAll(st.yAxis, ".domain")
		for _, t := range st.yAxis.SelectAll("text") {
			t.Attr("x", -10).Style("fill", c.colorOf(st))
		}
		for _, l := range st.yAxis.SelectAll("line") {
			l.Style("stroke", "var(--layer)")
		}
		if idx > 0 {
			removeAll(st.yAxis, "line")
		}
	}
}

func removeAll(n *scene.Node, sel string) {
	for _, c := range n.SelectAll(sel) {
		c.Remove()
	}
}

// showAreas reports whether a line gets threshold colouring
func (c *Chart) showAreas(s *models.LineSeries) bool {
	return c.cfg.ShowCriticalAreas && s.Gradient && s.WarningValue != 0 && s.CriticalValue != 0
}

// GradientID is the id of a series' threshold gradient
func GradientID(seriesID string) string {
	return "areas-gradient-" + seriesID
}

func (c *Chart) addGradient(s *models.LineSeries) {
	lo, hi := scales.Extent(s.Data)
	g := scales.ComputeGradient(lo, hi, s.WarningValue, s.CriticalValue)

	grad := c.container.Append("linearGradient").
		Attr("id", GradientID(s.ID)).
		Attr("gradientUnits", "userSpaceOnUse").
		Attr("x1", 0).
		Attr("y1", c.PlotHeight()).
		Attr("x2", 0).
		Attr("y2", 0)
	for _, stop := range g.Stops {
		grad.Append("stop").
			Attr("offset", stop.OffsetString()).
			Attr("stop-color", stop.Color)
	}
}

func (c *Chart) renderLine(st *seriesState, s *models.LineSeries) {
	if st.xScale == nil {
		c.log.Warn("Skipping line without samples", logger.Fields{"series": s.ID})
		return
	}
	opts := LineOptions{
		XScale:    st.xScale,
		YScale:    st.yScale,
		Data:      s.Data,
		Color:     c.colorOf(st),
		DashStyle: s.DashStyle,
	}
	if c.showAreas(s) {
		c.addGradient(s)
		opts.GradientURL = "url(#" + GradientID(s.ID) + ")"
	}
	st.line = NewLine(c.container, opts)

	st.pointIcon = c.container.Append("circle").
		Style("pointer-events", "none").
		Style("fill", c.colorOf(st)).
		Attr("stroke", "white").
		Attr("r", 7).
		Style("opacity", 0)
	st.pointShadow = c.container.Append("circle").
		Style("pointer-events", "none").
		Style("fill", "none").
		Attr("stroke", c.colorOf(st)).
		Attr("stroke-width", 5).
		Attr("r", 10).
		Style("opacity", 0)
}

func (c *Chart) renderGauge(st *seriesState, s *models.GaugeSeries) error {
	g, err := NewGauge(c.container, s, GaugeOptions{
		Width:        c.cfg.Width,
		Height:       c.cfg.Height,
		CornerRadius: GaugeCornerRadius,
		Threshold:    s.Subtype == models.SubtypeSolid,
		Clock:        c.clock,
		Logger:       c.log.WithComponent("gauge"),
	})
	if err != nil {
		return err
	}
	st.gauge = g
	return nil
}

func (c *Chart) renderScatter(st *seriesState, s *models.ScatterSeries) {
	if st.xScale == nil {
		c.log.Warn("Skipping scatter plot without samples", logger.Fields{"series": s.ID})
		return
	}
	st.scatter = NewScatterPlot(c.container, s, ScatterOptions{
		XScale:    st.xScale,
		YScale:    st.yScale,
		Color:     c.colorOf(st),
		MaxX:      c.PlotWidth(),
		Formatter: c.fmt,
		Logger:    c.log.WithComponent("scatter"),
	})
	st.scatter.Events().Forward(c.bus, events.Route)
}
