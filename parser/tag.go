package parser

import (
	"strings"

	"github.com/levish0/lux-sub001/ast"
)

// tag handles a '{': expression tag, block opener, continuation, closer,
// or @-special tag. "{//" and "{/*" are expressions that start with a
// comment, not block closers.
func (p *Parser) tag() {
	start := p.index
	p.index++ // '{'
	p.allowWhitespace()

	switch {
	case p.eat("#"):
		p.openBlock(start)
	case p.matchStr(":"):
		p.index++
		p.blockContinuation(start)
	case p.matchStr("/") && !p.matchStr("//") && !p.matchStr("/*"):
		p.index++
		p.blockClose(start)
	case p.eat("@"):
		p.specialTag(start)
	default:
		expr := p.readExpression()
		p.allowWhitespace()
		p.eatRequired("}")
		p.append(&ast.ExpressionTag{Span: ast.NewSpan(start, p.index), Expression: expr})
	}
}

// specialTag handles {@html}, {@debug}, {@const} and {@render}.
func (p *Parser) specialTag(start int) {
	word, wordStart, wordEnd := p.readIdentifier()
	switch word {
	case "html":
		p.requireWhitespace()
		expr := p.readExpression()
		p.allowWhitespace()
		p.eatRequired("}")
		p.append(&ast.HtmlTag{Span: ast.NewSpan(start, p.index), Expression: expr})

	case "debug":
		p.debugTag(start)

	case "const":
		p.constTag(start)

	case "render":
		p.requireWhitespace()
		expr := p.readExpression()
		p.allowWhitespace()
		p.eatRequired("}")
		if expr != nil && !looksLikeCall(expr.Src) {
			p.fail(ErrRenderTagInvalidExpression, expr.Span.Start, expr.Span.End,
				"{@render} must call a snippet")
		}
		p.append(&ast.RenderTag{Span: ast.NewSpan(start, p.index), Expression: expr})

	default:
		p.fail(ErrExpectedTag, wordStart, wordEnd,
			"expected 'html', 'debug', 'const' or 'render'")
		p.skipToClosingBrace(p.index)
	}
}

// debugTag parses {@debug} (bare) or {@debug a, b} with a comma-separated
// identifier list.
func (p *Parser) debugTag(start int) {
	p.allowWhitespace()
	node := &ast.DebugTag{}
	if !p.matchStr("}") {
		end := findExpressionEnd(p.template, p.index)
		for _, part := range splitTopLevel(p.template[p.index:end], p.index) {
			span := trimmedSpan(p.template, part.Start, part.End)
			if span.Len() == 0 {
				continue
			}
			e, err := p.engine.ParseExpression(PadDocument(p.template, span), span, p.ts)
			if err != nil {
				p.expressionError(err)
			}
			node.Identifiers = append(node.Identifiers, e)
		}
		p.index = end
	}
	p.allowWhitespace()
	p.eatRequired("}")
	node.Span = ast.NewSpan(start, p.index)
	p.append(node)
}

// constTag parses {@const pattern = expression}.
func (p *Parser) constTag(start int) {
	p.requireWhitespace()
	pat := p.readPattern()
	p.allowWhitespace()
	if !p.eat("=") {
		p.fail(ErrConstTagInvalidExpression, start, p.index,
			"{@const} must be an assignment")
		p.skipToClosingBrace(p.index)
		p.append(&ast.ConstTag{Span: ast.NewSpan(start, p.index), Pattern: pat})
		return
	}
	p.allowWhitespace()
	expr := p.readExpression()
	p.allowWhitespace()
	p.eatRequired("}")
	p.append(&ast.ConstTag{
		Span:       ast.NewSpan(start, p.index),
		Pattern:    pat,
		Expression: expr,
	})
}

// looksLikeCall reports whether src is syntactically a call (possibly
// optional-chained).
func looksLikeCall(src string) bool {
	s := strings.TrimSpace(src)
	return strings.HasSuffix(s, ")") && strings.ContainsRune(s, '(')
}

// splitTopLevel splits src on commas at bracket depth zero, returning
// spans offset by base.
func splitTopLevel(src string, base int) []ast.Span {
	var parts []ast.Span
	depth := 0
	start := 0
	i := 0
	for i < len(src) {
		c := src[i]
		switch c {
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		case '\'', '"':
			if j, ok := skipString(src, i); ok {
				i = j
				continue
			}
		case '`':
			if j, ok := skipTemplateLiteral(src, i); ok {
				i = j
				continue
			}
		case ',':
			if depth == 0 {
				parts = append(parts, ast.NewSpan(base+start, base+i))
				start = i + 1
			}
		}
		i++
	}
	parts = append(parts, ast.NewSpan(base+start, base+len(src)))
	return parts
}
