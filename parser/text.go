package parser

import (
	"golang.org/x/net/html"

	"github.com/levish0/lux-sub001/ast"
)

// text consumes a literal run up to the next '<' or '{' (or EOF).
func (p *Parser) text() {
	start := p.index
	for p.index < len(p.template) {
		c := p.template[p.index]
		if c == '<' || c == '{' {
			break
		}
		p.index++
	}
	raw := p.template[start:p.index]
	p.append(&ast.Text{
		Span: ast.NewSpan(start, p.index),
		Raw:  raw,
		Data: html.UnescapeString(raw),
	})
}
