package parser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/levish0/lux-sub001/ast"
)

// readAttributes runs the attribute loop until the tag end. textOnly is
// set for top-level script/style tags, whose attribute values never
// contain interpolations.
func (p *Parser) readAttributes(textOnly bool) []ast.AttributeNode {
	var attrs []ast.AttributeNode
	seen := map[string]bool{}
	for {
		p.allowWhitespace()
		if p.index >= len(p.template) {
			p.fail(ErrUnexpectedEOF, p.index, p.index, "unexpected end of input inside a tag")
			return attrs
		}
		c := p.peek()
		if c == '>' {
			return attrs
		}
		if c == '/' && p.index+1 < len(p.template) && p.template[p.index+1] == '>' {
			return attrs
		}
		a := p.readAttribute(textOnly, seen)
		if a == nil {
			return attrs
		}
		attrs = append(attrs, a)
	}
}

func (p *Parser) readAttribute(textOnly bool, seen map[string]bool) ast.AttributeNode {
	start := p.index

	if p.eat("{") {
		p.allowWhitespace()
		if p.eat("...") {
			expr := p.readExpression()
			p.allowWhitespace()
			p.eatRequired("}")
			return &ast.SpreadAttribute{Span: ast.NewSpan(start, p.index), Expression: expr}
		}
		if p.eat("@attach") {
			p.requireWhitespace()
			expr := p.readExpression()
			p.allowWhitespace()
			p.eatRequired("}")
			return &ast.AttachTag{Span: ast.NewSpan(start, p.index), Expression: expr}
		}

		name, nameStart, nameEnd := p.readIdentifier()
		if name == "" {
			p.fail(ErrAttributeEmptyShorthand, start, p.index,
				"attribute shorthand cannot be empty")
			p.skipToClosingBrace(start + 1)
			return nil
		}
		p.allowWhitespace()
		p.eatRequired("}")
		span := ast.NewSpan(nameStart, nameEnd)
		expr, err := p.engine.ParseExpression(PadDocument(p.template, span), span, p.ts)
		if err != nil {
			p.expressionError(err)
		}
		return &ast.Attribute{
			Span:    ast.NewSpan(start, p.index),
			Name:    name,
			NameLoc: ast.SourceLocation{Start: nameStart, End: nameEnd},
			Value: ast.AttributeValue{
				Expression: &ast.ExpressionTag{Span: span, Expression: expr},
			},
		}
	}

	nameStart := p.index
	name := p.readUntilByte(isTokenEnd)
	nameEnd := p.index
	if name == "" {
		p.fail(ErrExpectedToken, p.index, p.index, "expected an attribute name")
		p.index++
		return nil
	}

	if colon := strings.IndexByte(name, ':'); colon > 0 && isDirectiveFamily(name[:colon]) {
		return p.readDirective(start, name, nameStart, colon)
	}

	if seen[name] {
		p.fail(ErrAttributeDuplicate, nameStart, nameEnd,
			fmt.Sprintf("attribute %q is duplicated", name))
	}
	seen[name] = true

	value := ast.AttributeValue{True: true}
	if p.eat("=") {
		p.allowWhitespace()
		value = p.readAttributeValue(textOnly)
	} else if c := p.peek(); c == '"' || c == '\'' {
		p.fail(ErrExpectedToken, p.index, p.index, "expected '=' before a quoted value")
	}

	return &ast.Attribute{
		Span:    ast.NewSpan(start, p.index),
		Name:    name,
		NameLoc: ast.SourceLocation{Start: nameStart, End: nameEnd},
		Value:   value,
	}
}

var directiveFamilies = map[string]bool{
	"bind": true, "class": true, "style": true, "on": true,
	"transition": true, "in": true, "out": true, "animate": true,
	"use": true, "let": true,
}

func isDirectiveFamily(s string) bool { return directiveFamilies[s] }

func (p *Parser) readDirective(start int, fullName string, nameStart, colon int) ast.AttributeNode {
	family := fullName[:colon]
	rest := fullName[colon+1:]
	parts := strings.Split(rest, "|")
	dirName := parts[0]
	modifiers := parts[1:]
	if dirName == "" {
		p.fail(ErrDirectiveMissingName, nameStart, nameStart+len(fullName),
			fmt.Sprintf("%s: directive requires a name", family))
		return nil
	}
	nameLoc := ast.SourceLocation{
		Start: nameStart + colon + 1,
		End:   nameStart + colon + 1 + len(dirName),
	}

	value := ast.AttributeValue{True: true}
	if p.eat("=") {
		p.allowWhitespace()
		value = p.readAttributeValue(false)
	}
	span := ast.NewSpan(start, p.index)

	if family == "style" {
		return &ast.StyleDirective{
			Span: span, Name: dirName, NameLoc: nameLoc,
			Value: value, Modifiers: modifiers,
		}
	}

	var expr *ast.Expression
	switch {
	case value.Expression != nil:
		expr = value.Expression.Expression
	case value.True:
		// bind: and class: without a value refer to the identifier of
		// their own name.
		if family == "bind" || family == "class" {
			s := ast.NewSpan(nameLoc.Start, nameLoc.End)
			e, err := p.engine.ParseExpression(PadDocument(p.template, s), s, p.ts)
			if err != nil {
				p.expressionError(err)
			}
			expr = e
		}
	default:
		p.fail(ErrDirectiveInvalidValue, span.Start, span.End,
			fmt.Sprintf("%s: directive value must be a single expression", family))
	}

	switch family {
	case "bind":
		return &ast.BindDirective{Span: span, Name: dirName, NameLoc: nameLoc, Expression: expr, Modifiers: modifiers}
	case "class":
		return &ast.ClassDirective{Span: span, Name: dirName, NameLoc: nameLoc, Expression: expr, Modifiers: modifiers}
	case "on":
		return &ast.OnDirective{Span: span, Name: dirName, NameLoc: nameLoc, Expression: expr, Modifiers: modifiers}
	case "transition", "in", "out":
		return &ast.TransitionDirective{
			Span: span, Name: dirName, NameLoc: nameLoc, Expression: expr,
			Modifiers: modifiers,
			Intro:     family == "transition" || family == "in",
			Outro:     family == "transition" || family == "out",
		}
	case "animate":
		return &ast.AnimateDirective{Span: span, Name: dirName, NameLoc: nameLoc, Expression: expr, Modifiers: modifiers}
	case "use":
		return &ast.UseDirective{Span: span, Name: dirName, NameLoc: nameLoc, Expression: expr, Modifiers: modifiers}
	case "let":
		return &ast.LetDirective{Span: span, Name: dirName, NameLoc: nameLoc, Expression: expr, Modifiers: modifiers}
	}
	return nil
}

// readAttributeValue reads the value after '='. Quoted and unquoted
// values are sequences of text and expression chunks; a sequence that is
// exactly one interpolation with no literal text collapses to a bare
// expression value.
func (p *Parser) readAttributeValue(textOnly bool) ast.AttributeValue {
	// value=/> makes '/' the one-character value; the tag is not
	// self-closing.
	if p.peek() == '/' && p.index+1 < len(p.template) && p.template[p.index+1] == '>' {
		s := p.index
		p.index++
		return ast.AttributeValue{Sequence: []ast.AttributeSequenceValue{{
			Text: &ast.Text{Span: ast.NewSpan(s, s+1), Raw: "/", Data: "/"},
		}}}
	}

	var quote byte
	if c := p.peek(); c == '"' || c == '\'' {
		quote = c
		p.index++
	}

	if quote != 0 && p.peek() == quote {
		// Empty quoted value keeps a single empty text chunk.
		inner := p.index
		p.index++
		return ast.AttributeValue{Sequence: []ast.AttributeSequenceValue{{
			Text: &ast.Text{Span: ast.NewSpan(inner, inner)},
		}}}
	}

	chunks := p.readSequence(quote, textOnly)
	if len(chunks) == 0 {
		p.fail(ErrExpectedAttributeValue, p.index, p.index, "expected an attribute value")
		return ast.AttributeValue{True: true}
	}
	if len(chunks) == 1 && chunks[0].Expression != nil {
		return ast.AttributeValue{Expression: chunks[0].Expression}
	}
	return ast.AttributeValue{Sequence: chunks}
}

// readSequence reads text/expression chunks until the closing quote, or
// for unquoted values until whitespace, a quote, '=', '<', '>', '`' or
// '/>'.
func (p *Parser) readSequence(quote byte, textOnly bool) []ast.AttributeSequenceValue {
	var chunks []ast.AttributeSequenceValue
	textStart := p.index

	flush := func(to int) {
		if to > textStart {
			raw := p.template[textStart:to]
			chunks = append(chunks, ast.AttributeSequenceValue{Text: &ast.Text{
				Span: ast.NewSpan(textStart, to),
				Raw:  raw,
				Data: html.UnescapeString(raw),
			}})
		}
	}

	for p.index < len(p.template) {
		c := p.peek()
		if quote != 0 {
			if c == quote {
				flush(p.index)
				p.index++
				return chunks
			}
		} else {
			if isWhitespaceByte(c) || c == '"' || c == '\'' || c == '=' || c == '<' || c == '>' || c == '`' {
				flush(p.index)
				return chunks
			}
			if c == '/' && p.index+1 < len(p.template) && p.template[p.index+1] == '>' {
				flush(p.index)
				return chunks
			}
		}
		if c == '{' && !textOnly {
			flush(p.index)
			open := p.index
			p.index++
			p.allowWhitespace()
			expr := p.readExpression()
			p.allowWhitespace()
			p.eatRequired("}")
			chunks = append(chunks, ast.AttributeSequenceValue{Expression: &ast.ExpressionTag{
				Span:       ast.NewSpan(open, p.index),
				Expression: expr,
			}})
			textStart = p.index
			continue
		}
		p.index++
	}

	if quote != 0 {
		p.fail(ErrUnexpectedEOF, textStart, len(p.template), "unterminated attribute value")
	}
	flush(p.index)
	return chunks
}

// skipToClosingBrace is loose-mode recovery: jump past the '}' matching
// the brace opened at openIdx-1.
func (p *Parser) skipToClosingBrace(afterOpen int) {
	if end, ok := MatchBracket(p.template, afterOpen, '{'); ok {
		p.index = end + 1
		return
	}
	p.index = len(p.template)
}
