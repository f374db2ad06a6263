package parser

import (
	"github.com/levish0/lux-sub001/ast"
)

// readScript extracts a top-level <script> block. The content is handed
// to the engine inside a padded document so the offsets and line numbers
// it reports match the original file.
func (p *Parser) readScript(start int, attrs []ast.AttributeNode) {
	contentStart := p.index
	contentEnd := p.findClosingTag("script", contentStart)
	p.index = contentEnd
	p.consumeClosingTag("script")

	span := ast.NewSpan(contentStart, contentEnd)
	prog, err := p.engine.ParseProgram(PadDocument(p.template, span), span, p.ts)
	if err != nil {
		p.expressionError(err)
	}
	if prog == nil {
		prog = &ast.Program{Span: span, Src: span.Slice(p.template)}
	}
	p.comments = append(p.comments, prog.Comments...)

	script := &ast.Script{
		Span:       ast.NewSpan(start, p.index),
		Context:    p.scriptContext(attrs),
		Content:    prog,
		Attributes: attrs,
	}

	// A second script in the same context is recorded but not rejected;
	// the first occurrence is retained.
	if script.Context == ast.ScriptContextModule {
		if p.module != nil {
			p.report(ErrScriptDuplicate, start, p.index,
				"a component can have only one module script")
			return
		}
		p.module = script
		return
	}
	if p.instance != nil {
		p.report(ErrScriptDuplicate, start, p.index,
			"a component can have only one instance script")
		return
	}
	p.instance = script
}

// scriptContext derives module vs. instance context from a boolean
// `module` attribute or the legacy context="module" form. A context
// attribute with any other value is reported.
func (p *Parser) scriptContext(attrs []ast.AttributeNode) ast.ScriptContext {
	for _, a := range attrs {
		attr, ok := a.(*ast.Attribute)
		if !ok {
			continue
		}
		if attr.Name == "module" && attr.Value.True {
			return ast.ScriptContextModule
		}
		if attr.Name == "context" {
			value := ""
			if len(attr.Value.Sequence) == 1 {
				if t := attr.Value.Sequence[0].Text; t != nil {
					value = t.Data
				}
			}
			switch value {
			case "module":
				return ast.ScriptContextModule
			case "default":
				return ast.ScriptContextDefault
			default:
				p.report(ErrScriptInvalidContext, attr.Span.Start, attr.Span.End,
					`the context attribute must be "module" or "default"`)
			}
		}
	}
	return ast.ScriptContextDefault
}

// readStyle extracts a top-level <style> block and runs the CSS
// sub-parser over its literal content.
func (p *Parser) readStyle(start int, attrs []ast.AttributeNode) {
	contentStart := p.index
	contentEnd := p.findClosingTag("style", contentStart)
	styles := p.template[contentStart:contentEnd]
	p.index = contentEnd
	p.consumeClosingTag("style")

	children := p.parseCSS(contentStart, contentEnd)

	// Style tags carry only static attributes.
	var plain []*ast.Attribute
	for _, a := range attrs {
		if attr, ok := a.(*ast.Attribute); ok {
			plain = append(plain, attr)
		}
	}

	sheet := &ast.StyleSheet{
		Span:       ast.NewSpan(start, p.index),
		Attributes: plain,
		Children:   children,
		Content: ast.CssContent{
			Start:  contentStart,
			End:    contentEnd,
			Styles: styles,
		},
	}
	if p.css != nil {
		p.report(ErrStyleDuplicate, start, p.index,
			"a component can have only one style element")
		return
	}
	p.css = sheet
}
