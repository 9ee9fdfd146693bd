package playback

import (
	"context"
	"fmt"

	"github.com/benbjohnson/clock"

	"chartscope/internal/charts"
	"chartscope/internal/events"
	"chartscope/internal/logger"
	"chartscope/internal/scene"
)

// Record is one host-facing event and the step that caused it
type Record struct {
	Step    int            `json:"step"`
	Event   events.Name    `json:"event"`
	Payload events.Payload `json:"payload"`
}

// Player drives a chart through a script. It is not safe for concurrent use.
type Player struct {
	chart *charts.Chart
	clock *clock.Mock
	log   *logger.Logger

	step    int
	records []Record

	// OnRecord, when set, sees every record as it is made
	OnRecord func(Record)
}

// NewPlayer subscribes to the chart's zoom and route events. With a mock
// clock, tick steps advance it before stepping the animations; without one
// they use whatever clock the chart was built with.
func NewPlayer(c *charts.Chart, mock *clock.Mock) *Player {
	p := &Player{
		chart: c,
		clock: mock,
		log:   logger.GetGlobalLogger().WithComponent("playback"),
	}
	record := events.Listener(func(e events.Event) {
		r := Record{Step: p.step, Event: e.Name, Payload: e.Payload}
		p.records = append(p.records, r)
		if p.OnRecord != nil {
			p.OnRecord(r)
		}
	})
	c.Events().OnEvent(events.Zoom, record).OnEvent(events.Route, record)
	return p
}

// Records returns everything recorded so far
func (p *Player) Records() []Record {
	return p.records
}

// Run applies steps in order and stops at the first failing step
func (p *Player) Run(ctx context.Context, steps []Step) error {
	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.step = i
		if err := p.apply(s); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, s.Action, err)
		}
	}
	p.log.Debug("Script finished", logger.Fields{
		"steps":  len(steps),
		"events": len(p.records),
	})
	return nil
}

func (p *Player) apply(s Step) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c := p.chart
	switch s.Action {
	case Enter:
		c.PointerEnter()
	case Move:
		c.PointerMove(s.X, s.Y)
	case Leave:
		c.PointerLeave()
	case Brush:
		return c.BrushTo(s.X0, s.X1)
	case Click:
		return c.ClickPoint(s.Series, s.Index)
	case Close:
		return p.activate(s.Series, (*charts.Tooltip).CloseControls)
	case Link:
		return p.activate(s.Series, (*charts.Tooltip).Links)
	case Gauge:
		return c.UpdateGauge(s.Series, s.Value)
	case Tick:
		if p.clock != nil && s.Advance > 0 {
			p.clock.Add(s.Advance)
		}
		c.Tick()
	}
	return nil
}

// activate clicks the first node pick finds in the open tooltip of a
// scatter series
func (p *Player) activate(seriesID string, pick func(*charts.Tooltip) []*scene.Node) error {
	sp, err := p.chart.Scatter(seriesID)
	if err != nil {
		return err
	}
	t := sp.Tooltip()
	if t == nil || !t.Visible() {
		return fmt.Errorf("%q has no open tooltip", seriesID)
	}
	nodes := pick(t)
	if len(nodes) == 0 {
		return fmt.Errorf("%q tooltip has no such control", seriesID)
	}
	nodes[0].Dispatch(scene.Click, 0, 0)
	return nil
}
