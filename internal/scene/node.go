// Package scene is a small retained-mode vector scene graph: nodes with
// ordered attributes, styles and classes, bound data, bubbling pointer
// events, path generators, axis and brush primitives, and SVG/PNG output.
package scene

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type kv struct {
	key   string
	value string
}

// Node is one element of the scene
type Node struct {
	tag      string
	attrs    []kv
	styles   []kv
	classes  []string
	text     string
	markup   string
	children []*Node
	parent   *Node
	datum    any
	path     *Path
	handlers map[string][]Handler
}

// New creates a detached node
func New(tag string) *Node {
	return &Node{tag: tag}
}

// Tag returns the element name
func (n *Node) Tag() string { return n.tag }

// Parent returns the containing node, nil for a root or detached node
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes in document order
func (n *Node) Children() []*Node { return n.children }

// Append creates a child at the end of n
func (n *Node) Append(tag string) *Node {
	return n.AppendNode(New(tag))
}

// AppendNode moves c to the end of n
func (n *Node) AppendNode(c *Node) *Node {
	c.Remove()
	c.parent = n
	n.children = append(n.children, c)
	return c
}

// Remove detaches n from its parent
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Clear drops every child and any text or markup
func (n *Node) Clear() *Node {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	n.text = ""
	n.markup = ""
	return n
}

// Attr sets an attribute; a nil value removes it
func (n *Node) Attr(name string, value any) *Node {
	if value == nil {
		n.attrs = without(n.attrs, name)
		return n
	}
	n.attrs = set(n.attrs, name, Format(value))
	return n
}

// AttrValue returns an attribute, empty when unset
func (n *Node) AttrValue(name string) string {
	v, _ := lookup(n.attrs, name)
	return v
}

// LookupAttr returns an attribute and whether it is set
func (n *Node) LookupAttr(name string) (string, bool) {
	return lookup(n.attrs, name)
}

// AttrFloat parses a numeric attribute, zero when unset or not a number
func (n *Node) AttrFloat(name string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSuffix(n.AttrValue(name), "px"), 64)
	return f
}

// Style sets an inline style property; a nil value removes it
func (n *Node) Style(name string, value any) *Node {
	if value == nil {
		n.styles = without(n.styles, name)
		return n
	}
	n.styles = set(n.styles, name, Format(value))
	return n
}

// StyleValue returns an inline style property, empty when unset
func (n *Node) StyleValue(name string) string {
	v, _ := lookup(n.styles, name)
	return v
}

// Classed adds or removes each space-separated class name
func (n *Node) Classed(names string, on bool) *Node {
	for _, name := range strings.Fields(names) {
		has := n.HasClass(name)
		switch {
		case on && !has:
			n.classes = append(n.classes, name)
		case !on && has:
			for i, c := range n.classes {
				if c == name {
					n.classes = append(n.classes[:i:i], n.classes[i+1:]...)
					break
				}
			}
		}
	}
	return n
}

// HasClass reports whether n carries the class
func (n *Node) HasClass(name string) bool {
	for _, c := range n.classes {
		if c == name {
			return true
		}
	}
	return false
}

// SetText replaces the content of n with text
func (n *Node) SetText(text string) *Node {
	n.Clear()
	n.text = text
	return n
}

// Text returns the node's own text
func (n *Node) Text() string { return n.text }

// TextContent concatenates the text of n and its descendants
func (n *Node) TextContent() string {
	var b strings.Builder
	n.walk(func(c *Node) bool {
		b.WriteString(c.text)
		return true
	})
	return b.String()
}

// SetHTML replaces the content of n with raw markup emitted verbatim
func (n *Node) SetHTML(markup string) *Node {
	n.Clear()
	n.markup = markup
	return n
}

// Markup returns the raw markup set by SetHTML
func (n *Node) Markup() string { return n.markup }

// SetDatum binds a value to n
func (n *Node) SetDatum(d any) *Node {
	n.datum = d
	return n
}

// Datum returns the bound value of n or its closest ancestor that has one
func (n *Node) Datum() any {
	for c := n; c != nil; c = c.parent {
		if c.datum != nil {
			return c.datum
		}
	}
	return nil
}

// SetPath sets the geometry of a path node and its d attribute
func (n *Node) SetPath(p *Path) *Node {
	n.path = p
	if p == nil {
		return n.Attr("d", nil)
	}
	return n.Attr("d", p.String())
}

// Path returns the geometry set by SetPath
func (n *Node) Path() *Path { return n.path }

// Select returns the first descendant matching sel, or nil.
// Selectors are "tag", ".class" or "tag.class".
func (n *Node) Select(sel string) *Node {
	m := parseSelector(sel)
	var found *Node
	n.walkDescendants(func(c *Node) bool {
		if m.match(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// SelectAll returns every descendant matching sel in document order
func (n *Node) SelectAll(sel string) []*Node {
	m := parseSelector(sel)
	var out []*Node
	n.walkDescendants(func(c *Node) bool {
		if m.match(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Closest returns n or its nearest ancestor matching sel
func (n *Node) Closest(sel string) *Node {
	m := parseSelector(sel)
	for c := n; c != nil; c = c.parent {
		if m.match(c) {
			return c
		}
	}
	return nil
}

// walk visits n and its descendants depth first until fn returns false
func (n *Node) walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	return n.walkDescendants(fn)
}

func (n *Node) walkDescendants(fn func(*Node) bool) bool {
	for _, c := range n.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

type selector struct {
	tag   string
	class string
}

func parseSelector(sel string) selector {
	tag, class, _ := strings.Cut(strings.TrimSpace(sel), ".")
	return selector{tag: tag, class: class}
}

func (s selector) match(n *Node) bool {
	if s.tag != "" && s.tag != n.tag {
		return false
	}
	if s.class != "" && !n.HasClass(s.class) {
		return false
	}
	return true
}

// Format renders an attribute or style value. Floats are rounded to four
// decimals and printed without trailing zeros.
func Format(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return Num(t)
	case float32:
		return Num(float64(t))
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// Num prints a coordinate
func Num(v float64) string {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Translate renders a translate transform
func Translate(x, y float64) string {
	return "translate(" + Num(x) + "," + Num(y) + ")"
}

// ParseTranslate reads the offset of a translate transform
func ParseTranslate(transform string) (float64, float64, bool) {
	s := strings.TrimSpace(transform)
	if !strings.HasPrefix(s, "translate(") || !strings.HasSuffix(s, ")") {
		return 0, 0, false
	}
	args := strings.FieldsFunc(s[len("translate("):len(s)-1], func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(args) == 0 {
		return 0, 0, false
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, false
	}
	var y float64
	if len(args) > 1 {
		if y, err = strconv.ParseFloat(args[1], 64); err != nil {
			return 0, 0, false
		}
	}
	return x, y, true
}

func lookup(list []kv, key string) (string, bool) {
	for _, e := range list {
		if e.key == key {
			return e.value, true
		}
	}
	return "", false
}

func set(list []kv, key, value string) []kv {
	for i, e := range list {
		if e.key == key {
			list[i].value = value
			return list
		}
	}
	return append(list, kv{key, value})
}

func without(list []kv, key string) []kv {
	for i, e := range list {
		if e.key == key {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
