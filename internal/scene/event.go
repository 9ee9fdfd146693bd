package scene

// Pointer event types
const (
	PointerOver = "mouseover"
	PointerMove = "mousemove"
	PointerOut  = "mouseout"
	Click       = "click"
)

// Event is a pointer event travelling from its target up to the root
type Event struct {
	Type string
	// Target is the node the event was dispatched on
	Target *Node
	// Current is the node whose handler is running
	Current *Node
	// X and Y are pointer coordinates relative to the plot area
	X, Y float64

	stopped bool
}

// StopPropagation keeps the event from reaching further ancestors
func (e *Event) StopPropagation() { e.stopped = true }

// Handler reacts to a pointer event
type Handler func(*Event)

// On registers h for events of type typ reaching n
func (n *Node) On(typ string, h Handler) *Node {
	if n.handlers == nil {
		n.handlers = make(map[string][]Handler)
	}
	n.handlers[typ] = append(n.handlers[typ], h)
	return n
}

// Off removes every handler for typ
func (n *Node) Off(typ string) *Node {
	delete(n.handlers, typ)
	return n
}

// HasHandler reports whether n listens for typ
func (n *Node) HasHandler(typ string) bool {
	return len(n.handlers[typ]) > 0
}

// Dispatch delivers an event to n and then to each ancestor until a handler
// stops propagation
func (n *Node) Dispatch(typ string, x, y float64) *Event {
	e := &Event{Type: typ, Target: n, X: x, Y: y}
	for c := n; c != nil && !e.stopped; c = c.parent {
		e.Current = c
		for _, h := range append([]Handler(nil), c.handlers[typ]...) {
			h(e)
		}
	}
	return e
}
