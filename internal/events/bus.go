package events

import (
	"strings"
)

// Name identifies an event in the catalog
type Name string

const (
	// Zoom is published when a drag-select gesture completes with a selection
	Zoom Name = "zoom"
	// Route is published when a navigation affordance is activated
	Route Name = "route"
	// Hide is published when a tooltip panel is torn down
	Hide Name = "hide"
)

// Payload is the fixed payload shape of one event name
type Payload interface {
	Name() Name
}

// ZoomRange carries the selected time range as literal date-time strings
type ZoomRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Name implements Payload
func (ZoomRange) Name() Name { return Zoom }

// RouteRequest carries the opaque data attached to a point or tooltip link
type RouteRequest struct {
	Data any `json:"data"`
}

// Name implements Payload
func (RouteRequest) Name() Name { return Route }

// Hidden is the empty payload of a hide event
type Hidden struct{}

// Name implements Payload
func (Hidden) Name() Name { return Hide }

// Event is what handlers receive
type Event struct {
	Name    Name
	Payload Payload
}

// Handler reacts to an event. Returning false marks the dispatch as vetoed
// but never stops the remaining handlers from running.
type Handler func(Event) bool

// Listener adapts a function that never vetoes
func Listener(fn func(Event)) Handler {
	return func(e Event) bool {
		fn(e)
		return true
	}
}

// Bus is a synchronous publish/subscribe hub. It is not safe for concurrent use.
type Bus struct {
	handlers map[Name][]Handler
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{handlers: make(map[Name][]Handler)}
}

// On registers h for every space-separated name in names
func (b *Bus) On(names string, h Handler) *Bus {
	for _, n := range strings.Fields(names) {
		b.OnEvent(Name(n), h)
	}
	return b
}

// OnEvent registers h for a single event name
func (b *Bus) OnEvent(name Name, h Handler) *Bus {
	if h == nil {
		return b
	}
	b.handlers[name] = append(b.handlers[name], h)
	return b
}

// Trigger runs every handler registered for the payload's event in
// registration order and reports whether none of them returned false.
func (b *Bus) Trigger(p Payload) bool {
	if p == nil {
		return true
	}
	name := p.Name()
	// copy so handlers registered during dispatch only see later triggers
	hs := append([]Handler(nil), b.handlers[name]...)

	ok := true
	for _, h := range hs {
		if !h(Event{Name: name, Payload: p}) {
			ok = false
		}
	}
	return ok
}

// Forward re-publishes the named events on another bus
func (b *Bus) Forward(to *Bus, names ...Name) *Bus {
	for _, n := range names {
		b.OnEvent(n, func(e Event) bool {
			return to.Trigger(e.Payload)
		})
	}
	return b
}

// Count returns the number of handlers registered for name
func (b *Bus) Count(name Name) int {
	return len(b.handlers[name])
}
