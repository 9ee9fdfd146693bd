package models

// Margin is the outer spacing around the plot area, in pixels
type Margin struct {
	Top    float64 `yaml:"top" json:"top"`
	Right  float64 `yaml:"right" json:"right"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
	Left   float64 `yaml:"left" json:"left"`
}

// ChartConfig describes the frame every series is drawn into
type ChartConfig struct {
	// Target is the mount id emitted on the root node
	Target string  `yaml:"target" json:"target"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
	Margin Margin  `yaml:"margin" json:"margin"`

	// XField and YField name the keys samples are read from in raw records
	XField string `yaml:"xField" json:"xField"`
	YField string `yaml:"yField" json:"yField"`

	ShowCriticalAreas bool `yaml:"showCriticalAreas" json:"showCriticalAreas"`
	EnableZoom        bool `yaml:"enableZoom" json:"enableZoom"`
	ShowLegend        bool `yaml:"showLegend" json:"showLegend"`
	ShowTooltip       bool `yaml:"showTooltip" json:"showTooltip"`
	ShowScales        bool `yaml:"showScales" json:"showScales"`

	TextColor string `yaml:"textColor" json:"textColor"`
}

// DefaultChartConfig returns the stock 900x400 configuration
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:  900,
		Height: 400,
		Margin: Margin{Top: 40, Right: 40, Bottom: 40, Left: 50},
		XField: "x",
		YField: "y",

		ShowCriticalAreas: false,
		EnableZoom:        true,
		ShowLegend:        true,
		ShowTooltip:       true,
		ShowScales:        true,

		TextColor: "var(--text-base-color)",
	}
}

// PlotWidth is the horizontal space left for the plot once margins and the
// stacked y-axis gutter are removed
func (c ChartConfig) PlotWidth(yAxisWidth float64) float64 {
	return c.Width - (c.Margin.Left + c.Margin.Right) - yAxisWidth
}

// PlotHeight is the vertical space left for the plot below the header
func (c ChartConfig) PlotHeight(headerHeight float64) float64 {
	return c.Height - (c.Margin.Top + c.Margin.Bottom + headerHeight)
}
