package parser

import (
	"errors"

	"github.com/levish0/lux-sub001/ast"
)

// findExpressionEnd scans forward from i and returns the offset of the
// first unmatched '}', ')' or ']', with strings, template literals and
// comments skipped. This locates an expression's extent without parsing
// the expression grammar.
func findExpressionEnd(src string, i int) int {
	var brace, paren, bracket int
	for i < len(src) {
		c := src[i]
		switch c {
		case '{':
			brace++
		case '}':
			if brace == 0 {
				return i
			}
			brace--
		case '(':
			paren++
		case ')':
			if paren == 0 {
				return i
			}
			paren--
		case '[':
			bracket++
		case ']':
			if bracket == 0 {
				return i
			}
			bracket--
		case '\'', '"', '`':
			var (
				j  int
				ok bool
			)
			if c == '`' {
				j, ok = skipTemplateLiteral(src, i)
			} else {
				j, ok = skipString(src, i)
			}
			if !ok {
				return len(src)
			}
			i = j
			continue
		case '/':
			if i+1 < len(src) {
				switch src[i+1] {
				case '/':
					i = skipLineComment(src, i)
					continue
				case '*':
					j, ok := skipBlockComment(src, i)
					if !ok {
						return len(src)
					}
					i = j
					continue
				}
			}
		}
		i++
	}
	return len(src)
}

// looseExpression is the placeholder produced when an expression is
// missing or unparsable in loose mode.
func looseExpression(start, end int) *ast.Expression {
	return &ast.Expression{Span: ast.NewSpan(start, end)}
}

// readExpression reads one embedded expression at the cursor, stopping at
// the first unmatched close delimiter, and hands it to the engine inside
// a padded document so reported positions match the file.
func (p *Parser) readExpression() *ast.Expression {
	start := p.index
	end := findExpressionEnd(p.template, p.index)
	span := trimmedSpan(p.template, start, end)

	if span.Len() == 0 {
		if !p.loose {
			p.fail(ErrExpectedExpression, start, start, "expected an expression")
		}
		p.index = end
		return looseExpression(start, end)
	}

	e, err := p.engine.ParseExpression(PadDocument(p.template, span), span, p.ts)
	if err != nil {
		p.expressionError(err)
		p.index = end
		if e == nil {
			e = looseExpression(span.Start, span.End)
		}
		return e
	}
	p.index = end
	return e
}

// engineExpression parses an expression occupying an explicit span, such
// as a block-header expression whose extent was found by keyword or
// bracket scanning.
func (p *Parser) engineExpression(span ast.Span) *ast.Expression {
	if span.Len() == 0 {
		if !p.loose {
			p.fail(ErrExpectedExpression, span.Start, span.End, "expected an expression")
		}
		return looseExpression(span.Start, span.End)
	}
	e, err := p.engine.ParseExpression(PadDocument(p.template, span), span, p.ts)
	if err != nil {
		p.expressionError(err)
		if e == nil {
			e = looseExpression(span.Start, span.End)
		}
	}
	return e
}

// expressionError surfaces an engine diagnostic, aligned to the file.
func (p *Parser) expressionError(err error) {
	var ee *EngineError
	if errors.As(err, &ee) {
		p.fail(ErrExpressionSyntax, ee.Span.Start, ee.Span.End, ee.Message)
		return
	}
	p.fail(ErrExpressionSyntax, p.index, p.index, err.Error())
}

// readPattern reads a binding pattern: a bare identifier or a
// destructuring form, optionally followed by a type annotation.
func (p *Parser) readPattern() *ast.Pattern {
	start := p.index

	name, idStart, idEnd := p.readIdentifier()
	if name != "" {
		p.allowWhitespace()
		end := idEnd
		if p.eat(":") {
			end = findAnnotationEnd(p.template, p.index)
			p.index = end
		} else {
			p.index = idEnd
		}
		return p.enginePattern(idStart, end)
	}

	c := p.peek()
	if c != '{' && c != '[' {
		if !p.loose {
			p.fail(ErrExpectedExpression, start, start, "expected a binding pattern")
		}
		return nil
	}

	closeIdx, ok := MatchBracket(p.template, start+1, c)
	if !ok {
		p.fail(ErrUnexpectedEOF, start, len(p.template), "unterminated binding pattern")
		p.index = len(p.template)
		return nil
	}
	p.index = closeIdx + 1
	end := p.index
	p.allowWhitespace()
	if p.eat(":") {
		end = findAnnotationEnd(p.template, p.index)
		p.index = end
	} else {
		p.index = end
	}
	return p.enginePattern(start, end)
}

func (p *Parser) enginePattern(start, end int) *ast.Pattern {
	span := ast.NewSpan(start, end)
	pat, err := p.engine.ParsePattern(PadDocument(p.template, span), span, p.ts)
	if err != nil {
		p.expressionError(err)
		return &ast.Pattern{Span: span, Src: span.Slice(p.template)}
	}
	return pat
}

// findAnnotationEnd finds where a type annotation ends: the first '=',
// ',', ')' or '}' outside angle-bracket nesting.
func findAnnotationEnd(src string, i int) int {
	depth := 0
	for i < len(src) {
		switch src[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case '=', ',', ')', '}':
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return i
}
