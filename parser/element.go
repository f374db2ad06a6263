package parser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/levish0/lux-sub001/ast"
)

type elementKind int

const (
	kindRegular elementKind = iota
	kindComponent
	kindSvelteElement
	kindSvelteComponent
	kindSvelteSelf
	kindSlot
	kindTitle
	kindSvelteHead
	kindSvelteBody
	kindSvelteWindow
	kindSvelteDocument
	kindSvelteFragment
	kindSvelteBoundary
	kindSvelteOptions
)

var metaKinds = map[string]elementKind{
	"svelte:element":   kindSvelteElement,
	"svelte:component": kindSvelteComponent,
	"svelte:self":      kindSvelteSelf,
	"svelte:head":      kindSvelteHead,
	"svelte:body":      kindSvelteBody,
	"svelte:window":    kindSvelteWindow,
	"svelte:document":  kindSvelteDocument,
	"svelte:fragment":  kindSvelteFragment,
	"svelte:boundary":  kindSvelteBoundary,
	"svelte:options":   kindSvelteOptions,
}

// element handles a '<': comment, closing tag, or opening tag.
func (p *Parser) element() {
	if p.matchStr("<!--") {
		p.comment()
		return
	}
	if p.matchStr("</") {
		p.closeTag()
		return
	}
	p.openTag()
}

func (p *Parser) comment() {
	start := p.index
	p.index += len("<!--")
	data := p.readUntilStr("-->")
	if !p.eat("-->") {
		p.fail(ErrUnexpectedEOF, start, p.index, "comment was left open")
	}
	p.append(&ast.Comment{Span: ast.NewSpan(start, p.index), Data: data})
}

// closeTag handles '</name>': it may close the innermost element, or an
// ancestor after implicitly closing everything in between.
func (p *Parser) closeTag() {
	closeStart := p.index
	p.index += len("</")
	name := p.readUntilByte(isTagNameEnd)
	p.allowWhitespace()
	p.eatRequired(">")
	end := p.index

	if isVoidElement(name) {
		p.fail(ErrVoidElementContent, closeStart, end,
			fmt.Sprintf("<%s> is a void element and cannot have a closing tag", name))
		return
	}

	// Find the matching open element, crossing only frames whose closing
	// tag may legally be omitted (or any element frame in loose mode).
	match := -1
	for i := len(p.stack) - 1; i >= 0; i-- {
		fr := p.stack[i]
		if fr.kind != frameElement {
			break
		}
		if fr.name == name {
			match = i
			break
		}
		if !closingTagOmitted(fr.name, "") && !p.loose {
			break
		}
	}
	if match < 0 {
		msg := fmt.Sprintf("'</%s>' has no matching opening tag", name)
		if ac := p.lastAutoClosed; ac != nil && ac.tag == name && ac.depth >= len(p.stack) {
			msg = fmt.Sprintf(
				"'</%s>' attempted to close '<%s>' that was already automatically closed by '<%s>'",
				name, name, ac.reason)
		}
		p.fail(ErrElementInvalidClosingTag, closeStart, end, msg)
		return
	}
	for len(p.stack)-1 > match {
		// Implicitly closed ancestors end where the closing tag begins.
		p.popElement(closeStart)
	}
	p.popElement(end)
	if ac := p.lastAutoClosed; ac != nil && len(p.stack) < ac.depth {
		p.lastAutoClosed = nil
	}
}

func (p *Parser) openTag() {
	start := p.index
	p.index++ // '<'
	nameStart := p.index
	name := p.readUntilByte(isTagNameEnd)
	nameEnd := p.index

	if name == "" {
		// A lone '<' is literal text.
		p.append(&ast.Text{Span: ast.NewSpan(start, p.index), Raw: "<", Data: "<"})
		return
	}

	p.validateTagName(name, start, nameEnd)

	// Implicit close of the current element, decided before this sibling
	// is parsed.
	if cur := p.current(); cur != nil && cur.kind == frameElement &&
		closingTagOmitted(cur.name, name) {
		closed := cur.name
		p.popElement(start)
		p.lastAutoClosed = &autoClosedTag{tag: closed, reason: name, depth: len(p.stack)}
	}

	// Top-level raw blocks route to the extractors.
	if len(p.stack) == 0 && (name == "script" || name == "style") {
		attrs := p.readAttributes(true)
		p.allowWhitespace()
		if p.eat("/") {
			p.allowWhitespace()
		}
		p.eatRequired(">")
		if name == "script" {
			p.readScript(start, attrs)
		} else {
			p.readStyle(start, attrs)
		}
		return
	}

	kind := p.classifyElement(name)
	attrs := p.readAttributes(false)
	p.allowWhitespace()
	selfClosing := p.eat("/")
	p.allowWhitespace()
	p.eatRequired(">")

	fr := &frame{
		kind:    frameElement,
		start:   start,
		name:    name,
		nameLoc: ast.SourceLocation{Start: nameStart, End: nameEnd},
		attrs:   attrs,
		elem:    kind,
	}

	switch kind {
	case kindSvelteElement, kindSvelteComponent:
		fr.thisExpr = p.extractThis(fr)
	}

	if selfClosing || isVoidElement(name) {
		p.appendElement(fr, nil, p.index)
		return
	}

	switch {
	case name == "textarea":
		frag := p.readRawSequence(name)
		p.appendElement(fr, frag, p.index)
		return
	case rawTextElements[name] && name != "title":
		// Nested script/style content is raw text.
		frag := p.readRawText(name)
		p.appendElement(fr, frag, p.index)
		return
	}

	p.pushFrame(fr)
}

func (p *Parser) validateTagName(name string, start, nameEnd int) {
	if strings.HasPrefix(name, "svelte:") {
		if metaTagTopLevelOnly[name] {
			if len(p.stack) > 0 {
				p.fail(ErrMetaInvalidPlacement, start, nameEnd,
					fmt.Sprintf("<%s> is only valid at the top level of a component", name))
			}
			if p.metaTags[name] {
				p.fail(ErrMetaDuplicate, start, nameEnd,
					fmt.Sprintf("a component can only have one <%s> element", name))
			}
			p.metaTags[name] = true
			return
		}
		if !metaTagAllowedAnywhere[name] {
			p.fail(ErrMetaInvalidTag, start, nameEnd,
				fmt.Sprintf("<%s> is not a valid reserved element", name))
		}
		return
	}
	if !isComponentName(name) && !isValidElementName(name) {
		p.fail(ErrTagInvalidName, start, nameEnd, fmt.Sprintf("invalid tag name %q", name))
	}
}

func (p *Parser) classifyElement(name string) elementKind {
	if k, ok := metaKinds[name]; ok {
		return k
	}
	if isComponentName(name) {
		return kindComponent
	}
	switch name {
	case "title":
		if p.parentIsHead() {
			return kindTitle
		}
	case "slot":
		if !p.parentIsShadowRootTemplate() {
			return kindSlot
		}
	}
	return kindRegular
}

// parentIsHead reports whether an open ancestor element provides head
// content.
func (p *Parser) parentIsHead() bool {
	for i := len(p.stack) - 1; i >= 0; i-- {
		fr := p.stack[i]
		if fr.kind != frameElement {
			continue
		}
		if fr.name == "head" || fr.name == "svelte:head" {
			return true
		}
		if isComponentName(fr.name) {
			return false
		}
	}
	return false
}

// parentIsShadowRootTemplate reports whether the innermost open element is
// a <template shadowrootmode=...>.
func (p *Parser) parentIsShadowRootTemplate() bool {
	cur := p.current()
	if cur == nil || cur.kind != frameElement || cur.name != "template" {
		return false
	}
	for _, a := range cur.attrs {
		if attr, ok := a.(*ast.Attribute); ok && attr.Name == "shadowrootmode" {
			return true
		}
	}
	return false
}

// extractThis pulls the `this` attribute off a svelte:element or
// svelte:component and returns its expression.
func (p *Parser) extractThis(fr *frame) *ast.Expression {
	for i, a := range fr.attrs {
		attr, ok := a.(*ast.Attribute)
		if !ok || attr.Name != "this" {
			continue
		}
		fr.attrs = append(fr.attrs[:i], fr.attrs[i+1:]...)
		switch {
		case attr.Value.Expression != nil:
			return attr.Value.Expression.Expression
		case fr.elem == kindSvelteElement && len(attr.Value.Sequence) == 1 &&
			attr.Value.Sequence[0].Text != nil:
			// A static tag name is allowed for svelte:element.
			t := attr.Value.Sequence[0].Text
			return &ast.Expression{Span: t.Span, Src: t.Raw}
		default:
			p.fail(ErrSvelteElementMissingThis, attr.Span.Start, attr.Span.End,
				fmt.Sprintf("<%s> 'this' attribute must be an expression", fr.name))
			return nil
		}
	}
	p.fail(ErrSvelteElementMissingThis, fr.start, p.index,
		fmt.Sprintf("<%s> must have a 'this' attribute", fr.name))
	return nil
}

// readRawText consumes content up to the literal case-insensitive closing
// tag of name and returns it as a single text node.
func (p *Parser) readRawText(name string) *ast.Fragment {
	start := p.index
	end := p.findClosingTag(name, start)
	raw := p.template[start:end]
	p.index = end
	p.consumeClosingTag(name)
	if raw == "" {
		return &ast.Fragment{}
	}
	return &ast.Fragment{Nodes: []ast.FragmentNode{&ast.Text{
		Span: ast.NewSpan(start, end),
		Raw:  raw,
		Data: raw,
	}}}
}

// readRawSequence consumes textarea content up to its closing tag, parsed
// as a text/expression sequence.
func (p *Parser) readRawSequence(name string) *ast.Fragment {
	start := p.index
	end := p.findClosingTag(name, start)
	frag := &ast.Fragment{}
	i := start
	flush := func(to int) {
		if to > i {
			raw := p.template[i:to]
			frag.Nodes = append(frag.Nodes, &ast.Text{
				Span: ast.NewSpan(i, to),
				Raw:  raw,
				Data: html.UnescapeString(raw),
			})
		}
	}
	for j := start; j < end; {
		if p.template[j] == '{' {
			closeIdx, ok := MatchBracket(p.template[:end], j+1, '{')
			if !ok {
				break
			}
			flush(j)
			exprSpan := trimmedSpan(p.template, j+1, closeIdx)
			e, err := p.engine.ParseExpression(PadDocument(p.template, exprSpan), exprSpan, p.ts)
			if err != nil {
				p.expressionError(err)
			}
			frag.Nodes = append(frag.Nodes, &ast.ExpressionTag{
				Span:       ast.NewSpan(j, closeIdx+1),
				Expression: e,
			})
			j = closeIdx + 1
			i = j
			continue
		}
		j++
	}
	flush(end)
	p.index = end
	p.consumeClosingTag(name)
	return frag
}

// findClosingTag returns the offset of the literal case-insensitive
// `</name` closing tag at or after from, or EOF. The comparison is done
// in place: lowercasing the template would shift byte offsets for runes
// whose case folding changes length. Unterminated raw content is an
// unclosed-element error.
func (p *Parser) findClosingTag(name string, from int) int {
	for i := from; i+2+len(name) <= len(p.template); i++ {
		if p.template[i] == '<' && p.template[i+1] == '/' &&
			strings.EqualFold(p.template[i+2:i+2+len(name)], name) {
			return i
		}
	}
	p.fail(ErrElementUnclosed, from, len(p.template),
		fmt.Sprintf("'<%s>' was left open", name))
	return len(p.template)
}

// consumeClosingTag eats `</name\s*>` at the cursor, if present.
func (p *Parser) consumeClosingTag(name string) {
	if !p.eat("</") {
		return
	}
	p.index += len(name)
	p.allowWhitespace()
	p.eatRequired(">")
}

// appendElement builds the element node for fr and appends it to the
// fragment under construction.
func (p *Parser) appendElement(fr *frame, frag *ast.Fragment, end int) {
	if frag == nil {
		frag = &ast.Fragment{}
	}
	base := ast.BaseElement{
		Span:       ast.NewSpan(fr.start, end),
		Name:       fr.name,
		NameLoc:    fr.nameLoc,
		Attributes: fr.attrs,
		Fragment:   frag,
	}
	var node ast.FragmentNode
	switch fr.elem {
	case kindComponent:
		node = &ast.Component{BaseElement: base}
	case kindSvelteElement:
		node = &ast.SvelteElement{BaseElement: base, Tag: fr.thisExpr}
	case kindSvelteComponent:
		node = &ast.SvelteComponent{BaseElement: base, Expression: fr.thisExpr}
	case kindSvelteSelf:
		node = &ast.SvelteSelf{BaseElement: base}
	case kindSlot:
		node = &ast.SlotElement{BaseElement: base}
	case kindTitle:
		node = &ast.TitleElement{BaseElement: base}
	case kindSvelteHead:
		node = &ast.SvelteHead{BaseElement: base}
	case kindSvelteBody:
		node = &ast.SvelteBody{BaseElement: base}
	case kindSvelteWindow:
		node = &ast.SvelteWindow{BaseElement: base}
	case kindSvelteDocument:
		node = &ast.SvelteDocument{BaseElement: base}
	case kindSvelteFragment:
		node = &ast.SvelteFragment{BaseElement: base}
	case kindSvelteBoundary:
		node = &ast.SvelteBoundary{BaseElement: base}
	case kindSvelteOptions:
		raw := &ast.SvelteOptionsRaw{BaseElement: base}
		if p.optionsRaw == nil {
			p.optionsRaw = raw
		}
		node = raw
	default:
		node = &ast.RegularElement{BaseElement: base}
	}
	p.append(node)
}

// popElement closes the innermost element frame with the given end offset.
func (p *Parser) popElement(end int) {
	nodes := p.popFragment()
	fr := p.popFrame()
	p.appendElement(fr, &ast.Fragment{Nodes: nodes}, end)
}

// trimmedSpan shrinks [start,end) to exclude surrounding whitespace.
func trimmedSpan(source string, start, end int) ast.Span {
	for start < end && isWhitespaceByte(source[start]) {
		start++
	}
	for end > start && isWhitespaceByte(source[end-1]) {
		end--
	}
	return ast.NewSpan(start, end)
}
