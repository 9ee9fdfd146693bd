// Package playback replays scripted pointer, brush, click and gauge input
// against a chart and records the events it publishes to its host.
package playback

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrUnknownAction is returned for a step whose action is not recognised
var ErrUnknownAction = errors.New("unknown action")

// Action names one kind of scripted input
type Action string

const (
	Enter Action = "enter"
	Move  Action = "move"
	Leave Action = "leave"
	Brush Action = "brush"
	Click Action = "click"
	// Close activates the close control of a scatter plot's open tooltip
	Close Action = "close"
	// Link activates the first link of a scatter plot's open tooltip
	Link  Action = "link"
	Gauge Action = "gauge"
	Tick  Action = "tick"
)

// Step is one scripted input. Only the fields its action reads are used.
type Step struct {
	Action Action  `yaml:"action"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	X0     float64 `yaml:"x0"`
	X1     float64 `yaml:"x1"`
	Series string  `yaml:"series"`
	Index  int     `yaml:"index"`
	Value  float64 `yaml:"value"`
	// Advance moves the clock before a tick
	Advance time.Duration `yaml:"advance"`
}

// Validate checks that the step names a known action and the fields it needs
func (s Step) Validate() error {
	switch s.Action {
	case Enter, Move, Leave, Brush, Tick:
		return nil
	case Click, Close, Link, Gauge:
		if s.Series == "" {
			return fmt.Errorf("%s: series is required", s.Action)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, s.Action)
	}
}

// LoadScriptFile reads a script from disk
func LoadScriptFile(path string) ([]Step, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	steps, err := LoadScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return steps, nil
}

// LoadScript decodes a YAML list of steps
func LoadScript(r io.Reader) ([]Step, error) {
	var steps []Step
	if err := yaml.NewDecoder(r).Decode(&steps); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}
	for i, s := range steps {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return steps, nil
}
