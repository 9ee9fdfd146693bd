// Package timefmt renders timestamps into the literal strings shown on axes,
// tooltips and zoom payloads.
package timefmt

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/strftime"
)

const (
	AxisPattern    = "%H:%M, %d.%m"
	TooltipPattern = "%H:%M:%S, %d.%m"
	ZoomPattern    = "%Y-%m-%d %H:%M:%S"
)

// Formatter formats times in a fixed location
type Formatter struct {
	loc     *time.Location
	axis    *strftime.Strftime
	tooltip *strftime.Strftime
	zoom    *strftime.Strftime
}

// New compiles the stock patterns. A nil location means UTC.
func New(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{
		loc:     loc,
		axis:    mustCompile(AxisPattern),
		tooltip: mustCompile(TooltipPattern),
		zoom:    mustCompile(ZoomPattern),
	}
}

func mustCompile(p string) *strftime.Strftime {
	f, err := strftime.New(p)
	if err != nil {
		panic(fmt.Sprintf("timefmt: invalid pattern %q: %v", p, err))
	}
	return f
}

// Location is the zone every label is rendered in
func (f *Formatter) Location() *time.Location { return f.loc }

// Axis formats an x-axis tick label
func (f *Formatter) Axis(t time.Time) string { return f.axis.FormatString(t.In(f.loc)) }

// Tooltip formats the shared tooltip date line
func (f *Formatter) Tooltip(t time.Time) string { return f.tooltip.FormatString(t.In(f.loc)) }

// Zoom formats a zoom range endpoint
func (f *Formatter) Zoom(t time.Time) string { return f.zoom.FormatString(t.In(f.loc)) }

// Format renders t with an arbitrary strftime pattern
func (f *Formatter) Format(pattern string, t time.Time) (string, error) {
	return strftime.Format(pattern, t.In(f.loc))
}
