package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownSeriesKind is returned for a series type no renderer handles
	ErrUnknownSeriesKind = errors.New("unknown series kind")
	// ErrUnknownGaugeSubtype is returned for a gauge that is neither solid nor segment
	ErrUnknownGaugeSubtype = errors.New("unknown gauge subtype")
)

// SeriesKind is the variant tag of a series
type SeriesKind string

const (
	KindLine    SeriesKind = "line"
	KindGauge   SeriesKind = "gauge"
	KindScatter SeriesKind = "scatterplot"
)

// SampleRecord is one data point. Series data must be ascending by X.
type SampleRecord struct {
	X              time.Time `json:"x"`
	Y              float64   `json:"y"`
	Icon           string    `json:"icon,omitempty"`
	Description    string    `json:"description,omitempty"`
	LinkText       string    `json:"linkText,omitempty"`
	AdditionalData any       `json:"additionalData,omitempty"`
}

// SeriesCommon holds the fields shared by every series variant
type SeriesCommon struct {
	ID       string
	Name     string
	Color    string
	MaxValue float64
	Data     []SampleRecord
}

// SeriesSpec is the closed set of series variants: *LineSeries,
// *GaugeSeries and *ScatterSeries
type SeriesSpec interface {
	Kind() SeriesKind
	Common() *SeriesCommon
	sealed()
}

// DashStyle names an entry of the line dash palette
type DashStyle string

const (
	Solid     DashStyle = "Solid"
	Dash      DashStyle = "Dash"
	ShortDash DashStyle = "ShortDash"
	LongDash  DashStyle = "LongDash"
	Dot       DashStyle = "Dot"
	DashDot   DashStyle = "DashDot"
)

// LineSeries is a time-series polyline
type LineSeries struct {
	SeriesCommon
	DashStyle     DashStyle
	WarningValue  float64
	CriticalValue float64
	// Gradient allows threshold colouring when critical areas are shown
	Gradient bool
}

func (s *LineSeries) Kind() SeriesKind      { return KindLine }
func (s *LineSeries) Common() *SeriesCommon { return &s.SeriesCommon }
func (s *LineSeries) sealed()               {}

// GaugeSubtype selects the gauge drawing variant
type GaugeSubtype string

const (
	SubtypeSolid   GaugeSubtype = "solid"
	SubtypeSegment GaugeSubtype = "segment"
)

// GaugeBreakpoint closes a colour band at Point
type GaugeBreakpoint struct {
	Point float64 `yaml:"point" json:"point"`
	Color string  `yaml:"color" json:"color"`
}

// GaugeSeries is a radial gauge showing Data[0].Y against MaxValue
type GaugeSeries struct {
	SeriesCommon
	Unit    string
	Points  []GaugeBreakpoint
	Subtype GaugeSubtype
}

func (s *GaugeSeries) Kind() SeriesKind      { return KindGauge }
func (s *GaugeSeries) Common() *SeriesCommon { return &s.SeriesCommon }
func (s *GaugeSeries) sealed()               {}

// Value is the gauge reading, zero when there is no sample
func (s *GaugeSeries) Value() float64 {
	if len(s.Data) == 0 {
		return 0
	}
	return s.Data[0].Y
}

// Validate checks the subtype
func (s *GaugeSeries) Validate() error {
	switch s.Subtype {
	case SubtypeSolid, SubtypeSegment:
		return nil
	default:
		return fmt.Errorf("gauge %q: %w: %q", s.ID, ErrUnknownGaugeSubtype, s.Subtype)
	}
}

// ScatterSeries draws one icon per sample
type ScatterSeries struct {
	SeriesCommon
	// Icon is the default marker markup for samples without their own
	Icon string
	// ClickTarget is the tag highlighted when a point is clicked
	ClickTarget string
}

func (s *ScatterSeries) Kind() SeriesKind      { return KindScatter }
func (s *ScatterSeries) Common() *SeriesCommon { return &s.SeriesCommon }
func (s *ScatterSeries) sealed()               {}

// GaugeSegment is a band of the gauge as fractions of MaxValue
type GaugeSegment struct {
	Start float64
	End   float64
	Color string
}

// BuildSegments turns breakpoints into contiguous segments. A segment starts
// where the previous breakpoint ended, the first one at zero.
func BuildSegments(points []GaugeBreakpoint, max float64) []GaugeSegment {
	if max <= 0 {
		return nil
	}
	segments := make([]GaugeSegment, len(points))
	for i, p := range points {
		start := 0.0
		if i > 0 {
			start = points[i-1].Point / max
		}
		segments[i] = GaugeSegment{Start: start, End: p.Point / max, Color: p.Color}
	}
	return segments
}

// TooltipRow is one line of tooltip content
type TooltipRow struct {
	X              time.Time
	Y              string
	Name           string
	Color          string
	Description    string
	LinkText       string
	AdditionalData any
}
