package parser

import (
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
)

// HTMLContext renders a markup skeleton of the constructs that were open
// when the diagnostic was recorded, with the offending source line at the
// innermost position. The result is escaped and safe to embed in an HTML
// error page.
func (e *ParseError) HTMLContext() string {
	doc := buildErrorContext(e.path, e.line)
	return renderErrorContext(doc)
}

// buildErrorContext nests one etree element per open element, outermost
// first. Open blocks cannot nest as elements, so each contributes a
// comment marker instead.
func buildErrorContext(path []string, line string) *etree.Element {
	root := &etree.Element{}
	cur := root
	for _, name := range path {
		if strings.HasPrefix(name, "#") {
			cur.AddChild(etree.NewComment("{" + name + "}"))
			continue
		}
		el := etree.NewElement(name)
		cur.AddChild(el)
		cur = el
	}
	if line != "" {
		cur.AddChild(etree.NewText(line))
	}
	return root
}

func renderErrorContext(doc *etree.Element) string {
	dst := &html.Node{Type: html.DocumentNode}

	var render func(*html.Node, *etree.Element)
	render = func(dst *html.Node, src *etree.Element) {
		for _, c := range src.Child {
			switch t := c.(type) {
			case *etree.Element:
				n := &html.Node{Type: html.ElementNode, Data: t.FullTag()}
				for _, a := range t.Attr {
					n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Value})
				}
				dst.AppendChild(n)
				render(n, t)
			case *etree.CharData:
				dst.AppendChild(&html.Node{Type: html.TextNode, Data: t.Data})
			case *etree.Comment:
				dst.AppendChild(&html.Node{Type: html.CommentNode, Data: t.Data})
			}
		}
	}

	render(dst, doc)

	var buf strings.Builder
	_ = html.Render(&buf, dst)

	return buf.String()
}
