package models

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSample is returned when a raw record has an unreadable x or y
var ErrInvalidSample = errors.New("invalid sample")

// Definition is a chart described in a YAML or JSON file
type Definition struct {
	Chart  ChartConfig
	Notes  string
	Series []SeriesSpec
}

type rawDefinition struct {
	Chart  ChartConfig `yaml:"chart"`
	Notes  string      `yaml:"notes"`
	Series []rawSeries `yaml:"series"`
}

type rawSeries struct {
	Type     string  `yaml:"type"`
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Color    string  `yaml:"color"`
	MaxValue float64 `yaml:"maxValue"`

	DashStyle     string  `yaml:"dashStyle"`
	WarningValue  float64 `yaml:"warningValue"`
	CriticalValue float64 `yaml:"criticalValue"`
	Gradient      *bool   `yaml:"gradient"`

	Unit    string            `yaml:"unit"`
	Points  []GaugeBreakpoint `yaml:"points"`
	Subtype string            `yaml:"subtype"`

	Icon        string `yaml:"icon"`
	ClickTarget string `yaml:"clickTarget"`

	Data []map[string]any `yaml:"data"`
}

// LoadDefinitionFile reads a definition from disk
func LoadDefinitionFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open definition: %w", err)
	}
	defer f.Close()

	def, err := LoadDefinition(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// LoadDefinition decodes a definition. Chart settings that are absent keep
// their DefaultChartConfig values.
func LoadDefinition(r io.Reader) (*Definition, error) {
	return LoadDefinitionWith(r, DefaultChartConfig())
}

// LoadDefinitionWith decodes a definition over base chart settings
func LoadDefinitionWith(r io.Reader, base ChartConfig) (*Definition, error) {
	raw := rawDefinition{Chart: base}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}

	def := &Definition{Chart: raw.Chart, Notes: raw.Notes}
	for i, rs := range raw.Series {
		s, err := rs.build(raw.Chart.XField, raw.Chart.YField)
		if err != nil {
			return nil, fmt.Errorf("series %d: %w", i, err)
		}
		def.Series = append(def.Series, s)
	}
	return def, nil
}

func (rs rawSeries) build(xField, yField string) (SeriesSpec, error) {
	data := make([]SampleRecord, 0, len(rs.Data))
	for j, rec := range rs.Data {
		sample, err := parseSample(rec, xField, yField)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", j, err)
		}
		data = append(data, sample)
	}
	common := SeriesCommon{
		ID:       rs.ID,
		Name:     rs.Name,
		Color:    rs.Color,
		MaxValue: rs.MaxValue,
		Data:     data,
	}

	switch SeriesKind(rs.Type) {
	case KindLine:
		gradient := true
		if rs.Gradient != nil {
			gradient = *rs.Gradient
		}
		return &LineSeries{
			SeriesCommon:  common,
			DashStyle:     DashStyle(rs.DashStyle),
			WarningValue:  rs.WarningValue,
			CriticalValue: rs.CriticalValue,
			Gradient:      gradient,
		}, nil
	case KindGauge:
		g := &GaugeSeries{
			SeriesCommon: common,
			Unit:         rs.Unit,
			Points:       rs.Points,
			Subtype:      GaugeSubtype(rs.Subtype),
		}
		if g.Subtype == "" {
			g.Subtype = SubtypeSolid
		}
		if err := g.Validate(); err != nil {
			return nil, err
		}
		return g, nil
	case KindScatter:
		return &ScatterSeries{
			SeriesCommon: common,
			Icon:         rs.Icon,
			ClickTarget:  rs.ClickTarget,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSeriesKind, rs.Type)
	}
}

func parseSample(rec map[string]any, xField, yField string) (SampleRecord, error) {
	x, err := parseTime(rec[xField])
	if err != nil {
		return SampleRecord{}, fmt.Errorf("%w: field %q: %v", ErrInvalidSample, xField, err)
	}
	y, err := parseNumber(rec[yField])
	if err != nil {
		return SampleRecord{}, fmt.Errorf("%w: field %q: %v", ErrInvalidSample, yField, err)
	}

	s := SampleRecord{X: x, Y: y, AdditionalData: rec["additionalData"]}
	s.Icon, _ = rec["icon"].(string)
	s.Description, _ = rec["description"].(string)
	s.LinkText, _ = rec["linkText"].(string)
	return s, nil
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"}

func parseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, nil
			}
		}
		if ms, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return time.UnixMilli(ms).UTC(), nil
		}
		return time.Time{}, fmt.Errorf("unrecognised time %q", t)
	case int:
		return time.UnixMilli(int64(t)).UTC(), nil
	case int64:
		return time.UnixMilli(t).UTC(), nil
	case uint64:
		return time.UnixMilli(int64(t)).UTC(), nil
	case float64:
		return time.UnixMilli(int64(math.Round(t))).UTC(), nil
	case nil:
		return time.Time{}, errors.New("missing")
	default:
		return time.Time{}, fmt.Errorf("unsupported type %T", v)
	}
}

func parseNumber(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	case nil:
		return 0, errors.New("missing")
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
