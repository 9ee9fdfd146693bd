package scene

import (
	"bufio"
	"html"
	"io"
	"strings"
)

const (
	svgNS   = "http://www.w3.org/2000/svg"
	xhtmlNS = "http://www.w3.org/1999/xhtml"
)

// WriteSVG serializes n and its descendants as markup. An svg root gets the
// SVG namespace and "xhtml:" elements are written with the XHTML namespace.
func (n *Node) WriteSVG(w io.Writer) error {
	bw := bufio.NewWriter(w)
	n.writeSVG(bw, false)
	return bw.Flush()
}

// SVG returns the serialized markup of n
func (n *Node) SVG() string {
	var b strings.Builder
	_ = n.WriteSVG(&b)
	return b.String()
}

func (n *Node) writeSVG(w *bufio.Writer, inXHTML bool) {
	tag := n.tag
	xhtml := strings.HasPrefix(tag, "xhtml:")
	if xhtml {
		tag = strings.TrimPrefix(tag, "xhtml:")
	}

	w.WriteString("<" + tag)
	switch {
	case n.tag == "svg" && n.parent == nil:
		if _, ok := n.LookupAttr("xmlns"); !ok {
			writeAttr(w, "xmlns", svgNS)
		}
	case xhtml && !inXHTML:
		writeAttr(w, "xmlns", xhtmlNS)
	}
	if len(n.classes) > 0 {
		writeAttr(w, "class", strings.Join(n.classes, " "))
	}
	for _, a := range n.attrs {
		writeAttr(w, a.key, a.value)
	}
	if len(n.styles) > 0 {
		parts := make([]string, 0, len(n.styles))
		for _, s := range n.styles {
			parts = append(parts, s.key+": "+s.value)
		}
		writeAttr(w, "style", strings.Join(parts, "; ")+";")
	}

	if n.text == "" && n.markup == "" && len(n.children) == 0 && !xhtml {
		w.WriteString("/>")
		return
	}
	w.WriteString(">")
	w.WriteString(html.EscapeString(n.text))
	w.WriteString(n.markup)
	for _, c := range n.children {
		c.writeSVG(w, inXHTML || xhtml)
	}
	w.WriteString("</" + tag + ">")
}

func writeAttr(w *bufio.Writer, key, value string) {
	w.WriteString(" " + key + "=\"" + html.EscapeString(value) + "\"")
}
