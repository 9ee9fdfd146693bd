package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"chartscope/internal/models"
)

// Config holds all configuration for chart rendering and export
type Config struct {
	Chart   ChartSettings   `env:", prefix=CHART_"`
	Export  ExportSettings
	Logging LogSettings
}

// ChartSettings are the defaults applied to definitions
type ChartSettings struct {
	Width  float64 `env:"WIDTH, default=900"`
	Height float64 `env:"HEIGHT, default=400"`

	MarginTop    float64 `env:"MARGIN_TOP, default=40"`
	MarginRight  float64 `env:"MARGIN_RIGHT, default=40"`
	MarginBottom float64 `env:"MARGIN_BOTTOM, default=40"`
	MarginLeft   float64 `env:"MARGIN_LEFT, default=50"`

	ShowCriticalAreas bool `env:"SHOW_CRITICAL_AREAS, default=false"`
	EnableZoom        bool `env:"ENABLE_ZOOM, default=true"`
	ShowLegend        bool `env:"SHOW_LEGEND, default=true"`
	ShowTooltip       bool `env:"SHOW_TOOLTIP, default=true"`
	ShowScales        bool `env:"SHOW_SCALES, default=true"`

	TextColor string `env:"TEXT_COLOR, default=var(--text-base-color)"`
	// Timezone is used for every formatted label
	Timezone string `env:"TIMEZONE, default=UTC"`
}

// ExportSettings control where rendered artifacts go
type ExportSettings struct {
	OutputDir   string `env:"OUTPUT_DIR, default=./charts"`
	StorageMode string `env:"STORAGE_MODE, default=local"`
	GCSBucket   string `env:"GCS_BUCKET"`
}

// LogSettings mirror the variables read by the logger package
type LogSettings struct {
	Level  string `env:"LOG_LEVEL, default=info"`
	Format string `env:"LOG_FORMAT, default=json"`
	File   string `env:"LOG_FILE"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	switch cfg.Export.StorageMode {
	case "local", "gcs":
	default:
		return nil, fmt.Errorf("invalid STORAGE_MODE %q: must be local or gcs", cfg.Export.StorageMode)
	}
	if cfg.Export.StorageMode == "gcs" && cfg.Export.GCSBucket == "" {
		return nil, fmt.Errorf("GCS_BUCKET is required when STORAGE_MODE is gcs")
	}
	return &cfg, nil
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Chart.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid CHART_TIMEZONE %q: %w", c.Chart.Timezone, err)
	}
	return loc, nil
}

// ChartDefaults is the configured base for every chart definition
func (c *Config) ChartDefaults() models.ChartConfig {
	s := c.Chart
	cfg := models.DefaultChartConfig()
	cfg.Width = s.Width
	cfg.Height = s.Height
	cfg.Margin = models.Margin{
		Top:    s.MarginTop,
		Right:  s.MarginRight,
		Bottom: s.MarginBottom,
		Left:   s.MarginLeft,
	}
	cfg.ShowCriticalAreas = s.ShowCriticalAreas
	cfg.EnableZoom = s.EnableZoom
	cfg.ShowLegend = s.ShowLegend
	cfg.ShowTooltip = s.ShowTooltip
	cfg.ShowScales = s.ShowScales
	cfg.TextColor = s.TextColor
	return cfg
}
