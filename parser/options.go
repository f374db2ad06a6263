package parser

import (
	"fmt"
	"strings"

	"github.com/levish0/lux-sub001/ast"
)

// reservedTagNames are hyphenated names the custom-element registry
// refuses.
var reservedTagNames = map[string]bool{
	"annotation-xml":   true,
	"color-profile":    true,
	"font-face":        true,
	"font-face-src":    true,
	"font-face-uri":    true,
	"font-face-format": true,
	"font-face-name":   true,
	"missing-glyph":    true,
}

// isValidCustomElementTag checks the custom-element name grammar: a
// lowercase ASCII letter, then name characters, with at least one hyphen.
func isValidCustomElementTag(tag string) bool {
	if tag == "" || tag[0] < 'a' || tag[0] > 'z' {
		return false
	}
	hyphen := false
	for i := 1; i < len(tag); i++ {
		ch := tag[i]
		switch {
		case ch == '-':
			hyphen = true
		case ch == '.' || ch == '_' || isASCIIDigit(ch) || (ch >= 'a' && ch <= 'z') || ch >= 0x80:
		default:
			return false
		}
	}
	return hyphen && !reservedTagNames[tag]
}

// readOptions lowers the raw <svelte:options> element into its structured
// form. Unknown attributes and malformed values are diagnostics; whatever
// lowered cleanly is kept.
func (p *Parser) readOptions(raw *ast.SvelteOptionsRaw) *ast.SvelteOptions {
	opts := &ast.SvelteOptions{
		Span:       raw.Span,
		Attributes: raw.Attributes,
	}

	for _, node := range raw.Attributes {
		attr, ok := node.(*ast.Attribute)
		if !ok {
			span := node.AttrSpan()
			p.fail(ErrOptionsInvalidAttribute, span.Start, span.End,
				"<svelte:options> can only receive static attributes")
			continue
		}

		switch attr.Name {
		case "runes":
			opts.Runes = p.optionsBool(attr)
		case "immutable":
			opts.Immutable = p.optionsBool(attr)
		case "accessors":
			opts.Accessors = p.optionsBool(attr)
		case "preserveWhitespace":
			opts.PreserveWhitespace = p.optionsBool(attr)
		case "namespace":
			p.optionsNamespace(attr, opts)
		case "css":
			if v, ok := attrTextValue(attr); ok && v == "injected" {
				opts.CSSInjected = true
			} else {
				p.fail(ErrOptionsInvalidAttributeValue, attr.Span.Start, attr.Span.End,
					`"css" must be "injected"`)
			}
		case "customElement":
			opts.CustomElement = p.optionsCustomElement(attr)
		case "tag":
			p.fail(ErrOptionsInvalidAttribute, attr.Span.Start, attr.Span.End,
				`"tag" is no longer valid, use customElement instead`)
		default:
			p.fail(ErrOptionsInvalidAttribute, attr.Span.Start, attr.Span.End,
				fmt.Sprintf("<svelte:options> unknown attribute %q", attr.Name))
		}
	}
	return opts
}

// optionsBool lowers a boolean option: a bare attribute, the literal text
// "true"/"false", or a {true}/{false} expression.
func (p *Parser) optionsBool(attr *ast.Attribute) *bool {
	if attr.Value.True {
		v := true
		return &v
	}
	var src string
	if t, ok := attrTextValue(attr); ok {
		src = t
	} else if attr.Value.Expression != nil && attr.Value.Expression.Expression != nil {
		src = strings.TrimSpace(attr.Value.Expression.Expression.Src)
	}
	switch src {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	p.fail(ErrOptionsInvalidAttributeValue, attr.Span.Start, attr.Span.End,
		fmt.Sprintf("%q must be true or false", attr.Name))
	return nil
}

func (p *Parser) optionsNamespace(attr *ast.Attribute, opts *ast.SvelteOptions) {
	v, ok := attrTextValue(attr)
	if !ok {
		if attr.Value.Expression != nil && attr.Value.Expression.Expression != nil {
			v = strings.Trim(strings.TrimSpace(attr.Value.Expression.Expression.Src), `"'`)
			ok = true
		}
	}
	if ok {
		switch v {
		case "html":
			ns := ast.NamespaceHTML
			opts.Namespace = &ns
			return
		case "svg":
			ns := ast.NamespaceSVG
			opts.Namespace = &ns
			return
		case "mathml":
			ns := ast.NamespaceMathML
			opts.Namespace = &ns
			return
		}
	}
	p.fail(ErrOptionsInvalidAttributeValue, attr.Span.Start, attr.Span.End,
		`"namespace" must be "html", "svg" or "mathml"`)
}

// optionsCustomElement lowers customElement="tag" or the expanded
// customElement={{ tag, shadow, props, extend }} object form.
func (p *Parser) optionsCustomElement(attr *ast.Attribute) *ast.CustomElementOptions {
	if tag, ok := attrTextValue(attr); ok {
		return &ast.CustomElementOptions{Tag: p.checkTag(attr, tag), TagSet: true}
	}

	expr := attr.Value.Expression
	if expr == nil || expr.Expression == nil {
		p.fail(ErrOptionsInvalidAttributeValue, attr.Span.Start, attr.Span.End,
			`"customElement" must be a string or an object`)
		return nil
	}

	span := expr.Expression.Span
	src := strings.TrimSpace(span.Slice(p.template))
	if !strings.HasPrefix(src, "{") {
		p.fail(ErrOptionsInvalidAttributeValue, span.Start, span.End,
			`"customElement" must be a string or an object`)
		return nil
	}

	out := &ast.CustomElementOptions{}
	inner := p.objectEntries(span)
	for _, entry := range inner {
		key, valSpan, ok := splitObjectEntry(p.template, entry)
		if !ok {
			continue
		}
		val := strings.TrimSpace(valSpan.Slice(p.template))
		switch key {
		case "tag":
			out.Tag = p.checkTag(attr, strings.Trim(val, `"'`))
			out.TagSet = true
		case "shadow":
			switch strings.Trim(val, `"'`) {
			case "open":
				m := ast.ShadowOpen
				out.Shadow = &m
			case "none":
				m := ast.ShadowNone
				out.Shadow = &m
			default:
				p.fail(ErrOptionsInvalidAttributeValue, valSpan.Start, valSpan.End,
					`"shadow" must be "open" or "none"`)
			}
		case "props":
			out.Props = p.optionsProps(valSpan)
		case "extend":
			out.Extend = p.engineExpression(trimmedSpan(p.template, valSpan.Start, valSpan.End))
		}
	}
	return out
}

func (p *Parser) checkTag(attr *ast.Attribute, tag string) string {
	if !isValidCustomElementTag(tag) {
		p.fail(ErrOptionsInvalidTagName, attr.Span.Start, attr.Span.End,
			fmt.Sprintf("%q is not a valid custom element name", tag))
	}
	return tag
}

// optionsProps lowers the props object: each entry maps a prop name to
// { attribute, reflect, type }.
func (p *Parser) optionsProps(span ast.Span) map[string]ast.CustomElementProp {
	props := map[string]ast.CustomElementProp{}
	for _, entry := range p.objectEntries(span) {
		key, valSpan, ok := splitObjectEntry(p.template, entry)
		if !ok {
			continue
		}
		var prop ast.CustomElementProp
		for _, field := range p.objectEntries(valSpan) {
			fkey, fval, ok := splitObjectEntry(p.template, field)
			if !ok {
				continue
			}
			raw := strings.TrimSpace(fval.Slice(p.template))
			switch fkey {
			case "attribute":
				prop.Attribute = strings.Trim(raw, `"'`)
			case "reflect":
				switch raw {
				case "true":
					v := true
					prop.Reflect = &v
				case "false":
					v := false
					prop.Reflect = &v
				}
			case "type":
				var t ast.PropType
				switch strings.Trim(raw, `"'`) {
				case "Array":
					t = ast.PropArray
				case "Boolean":
					t = ast.PropBoolean
				case "Number":
					t = ast.PropNumber
				case "Object":
					t = ast.PropObject
				case "String":
					t = ast.PropString
				default:
					p.fail(ErrOptionsInvalidAttributeValue, fval.Start, fval.End,
						`prop type must be "Array", "Boolean", "Number", "Object" or "String"`)
					continue
				}
				prop.Type = &t
			}
		}
		props[key] = prop
	}
	return props
}

// objectEntries splits the interior of an object literal at span into its
// top-level comma-separated entries. An empty slice is returned when span
// is not braced.
func (p *Parser) objectEntries(span ast.Span) []ast.Span {
	start, end := span.Start, span.End
	for start < end && isWhitespaceByte(p.template[start]) {
		start++
	}
	for end > start && isWhitespaceByte(p.template[end-1]) {
		end--
	}
	if start >= end || p.template[start] != '{' || p.template[end-1] != '}' {
		return nil
	}
	inner := p.template[start+1 : end-1]
	var entries []ast.Span
	for _, part := range splitTopLevel(inner, start+1) {
		t := trimmedSpan(p.template, part.Start, part.End)
		if t.Len() > 0 {
			entries = append(entries, t)
		}
	}
	return entries
}

// splitObjectEntry splits "key: value" at the first top-level colon. The
// key is unquoted; entries without a colon are rejected.
func splitObjectEntry(src string, entry ast.Span) (string, ast.Span, bool) {
	s := entry.Slice(src)
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		case '\'', '"':
			if j, ok := skipString(s, i); ok {
				i = j - 1
			}
		case ':':
			if depth == 0 {
				key := strings.Trim(strings.TrimSpace(s[:i]), `"'`)
				val := ast.NewSpan(entry.Start+i+1, entry.End)
				return key, val, key != ""
			}
		}
	}
	return "", ast.Span{}, false
}

// attrTextValue returns the attribute's value when it is a single static
// text chunk.
func attrTextValue(attr *ast.Attribute) (string, bool) {
	if len(attr.Value.Sequence) == 1 && attr.Value.Sequence[0].Text != nil {
		return attr.Value.Sequence[0].Text.Data, true
	}
	return "", false
}
