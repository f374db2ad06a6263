package parser

import (
	"fmt"

	"github.com/levish0/lux-sub001/ast"
)

// openBlock handles '{#': if/each/await/key/snippet openers.
func (p *Parser) openBlock(start int) {
	word, wordStart, wordEnd := p.readIdentifier()
	switch word {
	case "if":
		p.requireWhitespace()
		test := p.readExpression()
		p.allowWhitespace()
		p.eatRequired("}")
		p.pushFrame(&frame{kind: frameIf, start: start, ifNode: &ast.IfBlock{Test: test}})

	case "each":
		p.eachBlock(start)

	case "await":
		p.awaitBlock(start)

	case "key":
		p.requireWhitespace()
		expr := p.readExpression()
		p.allowWhitespace()
		p.eatRequired("}")
		p.pushFrame(&frame{kind: frameKey, start: start, keyNode: &ast.KeyBlock{Expression: expr}})

	case "snippet":
		p.snippetBlock(start)

	default:
		p.fail(ErrExpectedBlockType, wordStart, wordEnd,
			"expected 'if', 'each', 'await', 'key' or 'snippet'")
		p.skipToClosingBrace(p.index)
	}
}

// eachBlock parses {#each expression as pattern, index (key)}. The
// iterable expression ends at a top-level standalone 'as' keyword or at
// the block's closing brace.
func (p *Parser) eachBlock(start int) {
	p.requireWhitespace()
	exprStart := p.index
	kwIdx, kw := findTopLevelKeyword(p.template, p.index, "as")
	expr := p.engineExpression(trimmedSpan(p.template, exprStart, kwIdx))
	node := &ast.EachBlock{Expression: expr}
	p.index = kwIdx

	if kw == "as" {
		p.index += len("as")
		p.allowWhitespace()
		node.Context = p.readPattern()
	}
	p.allowWhitespace()
	if p.eat(",") {
		p.allowWhitespace()
		idx, s, e := p.readIdentifier()
		if idx == "" {
			p.fail(ErrExpectedExpression, s, e, "expected an index name")
		}
		node.Index = idx
	}
	p.allowWhitespace()
	if p.eat("(") {
		p.allowWhitespace()
		node.Key = p.readExpression()
		p.allowWhitespace()
		p.eatRequired(")")
	}
	p.allowWhitespace()
	p.eatRequired("}")
	p.pushFrame(&frame{kind: frameEach, start: start, eachNode: node})
}

// awaitBlock parses {#await expression}, optionally with an inline then
// or catch clause in the opening tag.
func (p *Parser) awaitBlock(start int) {
	p.requireWhitespace()
	exprStart := p.index
	kwIdx, kw := findTopLevelKeyword(p.template, p.index, "then", "catch")
	expr := p.engineExpression(trimmedSpan(p.template, exprStart, kwIdx))
	node := &ast.AwaitBlock{Expression: expr}
	fr := &frame{kind: frameAwait, start: start, awaitNode: node}
	p.index = kwIdx

	switch kw {
	case "then":
		p.index += len("then")
		p.allowWhitespace()
		if !p.matchStr("}") {
			node.Value = p.readPattern()
		}
		fr.awaitPhase = awaitThen
	case "catch":
		p.index += len("catch")
		p.allowWhitespace()
		if !p.matchStr("}") {
			node.Error = p.readPattern()
		}
		fr.awaitPhase = awaitCatch
	}
	p.allowWhitespace()
	p.eatRequired("}")
	p.pushFrame(fr)
}

// snippetBlock parses {#snippet name<T>(params)}.
func (p *Parser) snippetBlock(start int) {
	p.requireWhitespace()
	name, nameStart, nameEnd := p.readIdentifier()
	if name == "" {
		p.fail(ErrExpectedExpression, nameStart, nameEnd, "expected a snippet name")
	}
	node := &ast.SnippetBlock{
		Expression: p.engineExpression(ast.NewSpan(nameStart, nameEnd)),
	}

	if p.peek() == '<' {
		closeIdx, ok := MatchBracket(p.template, p.index+1, '<')
		if !ok {
			p.fail(ErrUnexpectedEOF, p.index, len(p.template),
				"unterminated type parameter list")
			p.index = len(p.template)
			p.pushFrame(&frame{kind: frameSnippet, start: start, snippetNode: node})
			return
		}
		node.TypeParams = p.template[p.index+1 : closeIdx]
		p.index = closeIdx + 1
	}

	if p.eatRequired("(") {
		closeIdx, ok := MatchBracket(p.template, p.index, '(')
		if !ok {
			p.fail(ErrUnexpectedEOF, p.index, len(p.template),
				"unterminated parameter list")
			p.index = len(p.template)
			p.pushFrame(&frame{kind: frameSnippet, start: start, snippetNode: node})
			return
		}
		for _, part := range splitTopLevel(p.template[p.index:closeIdx], p.index) {
			span := trimmedSpan(p.template, part.Start, part.End)
			if span.Len() == 0 {
				continue
			}
			pat, err := p.engine.ParsePattern(PadDocument(p.template, span), span, p.ts)
			if err != nil {
				p.expressionError(err)
				pat = &ast.Pattern{Span: span, Src: span.Slice(p.template)}
			}
			node.Parameters = append(node.Parameters, pat)
		}
		p.index = closeIdx + 1
	}
	p.allowWhitespace()
	p.eatRequired("}")
	p.pushFrame(&frame{kind: frameSnippet, start: start, snippetNode: node})
}

// blockContinuation handles '{:': else, else if, then, catch.
func (p *Parser) blockContinuation(start int) {
	word, wordStart, wordEnd := p.readIdentifier()

	// Elements still open inside the block arm close here: silently when
	// their closing tag may be omitted, as an error otherwise.
	for cur := p.current(); cur != nil && cur.kind == frameElement; cur = p.current() {
		if !closingTagOmitted(cur.name, "") {
			p.fail(ErrElementUnclosed, cur.start, start,
				fmt.Sprintf("'<%s>' was left open", cur.name))
		}
		p.popElement(start)
	}
	cur := p.current()
	if cur == nil {
		p.fatal(ErrBlockUnexpectedClose, start, p.index,
			fmt.Sprintf("{:%s} has no open block", word))
		return
	}

	switch word {
	case "else":
		p.elseContinuation(start, cur)
	case "then", "catch":
		p.awaitContinuation(cur, word)
	case "elseif":
		p.fail(ErrExpectedBlockType, wordStart, wordEnd, "'elseif' should be 'else if'")
		p.skipToClosingBrace(p.index)
	default:
		p.fail(ErrExpectedBlockType, wordStart, wordEnd,
			"expected 'else', 'else if', 'then' or 'catch'")
		p.skipToClosingBrace(p.index)
	}
}

func (p *Parser) elseContinuation(start int, cur *frame) {
	switch cur.kind {
	case frameIf:
		if cur.ifHasAlternate {
			p.fatal(ErrBlockInvalidPlacement, start, p.index,
				"{:else} cannot follow a previous {:else}")
		}
		p.allowWhitespace()
		if p.eat("if") {
			p.requireWhitespace()
			test := p.readExpression()
			p.allowWhitespace()
			p.eatRequired("}")
			cur.ifNode.Consequent = &ast.Fragment{Nodes: p.popFragment()}
			cur.ifHasAlternate = true
			// The alternate of cur will be a singleton fragment holding
			// the nested block, assembled when the chain closes.
			p.pushFragment()
			p.pushFrame(&frame{
				kind:   frameIf,
				start:  start,
				ifNode: &ast.IfBlock{Elseif: true, Test: test},
			})
			return
		}
		p.eatRequired("}")
		cur.ifNode.Consequent = &ast.Fragment{Nodes: p.popFragment()}
		cur.ifHasAlternate = true
		p.pushFragment()

	case frameEach:
		p.eatRequired("}")
		if cur.eachInFallback {
			p.fatal(ErrBlockInvalidPlacement, start, p.index,
				"{:else} cannot follow a previous {:else}")
		}
		cur.eachNode.Body = &ast.Fragment{Nodes: p.popFragment()}
		cur.eachInFallback = true
		p.pushFragment()

	default:
		p.fatal(ErrBlockInvalidPlacement, start, p.index,
			"{:else} is only valid inside if or each blocks")
	}
}

func (p *Parser) awaitContinuation(cur *frame, word string) {
	if cur.kind != frameAwait {
		p.fatal(ErrBlockInvalidPlacement, p.index, p.index,
			fmt.Sprintf("{:%s} is only valid inside an await block", word))
		return
	}
	node := cur.awaitNode

	if word == "then" {
		if cur.awaitPhase != awaitPending {
			p.fatal(ErrBlockInvalidPlacement, p.index, p.index,
				"{:then} cannot follow an existing then or catch clause")
		}
	} else if cur.awaitPhase == awaitCatch || node.Catch != nil {
		p.fatal(ErrBlockInvalidPlacement, p.index, p.index,
			"{:catch} cannot follow an existing catch clause")
	}

	finished := &ast.Fragment{Nodes: p.popFragment()}
	switch cur.awaitPhase {
	case awaitPending:
		node.Pending = finished
	case awaitThen:
		node.Then = finished
	case awaitCatch:
		node.Catch = finished
	}

	p.allowWhitespace()
	if word == "then" {
		if !p.matchStr("}") {
			node.Value = p.readPattern()
		}
		cur.awaitPhase = awaitThen
	} else {
		if !p.matchStr("}") {
			node.Error = p.readPattern()
		}
		cur.awaitPhase = awaitCatch
	}
	p.allowWhitespace()
	p.eatRequired("}")
	p.pushFragment()
}

// blockClose handles '{/keyword}'. Block closing is never implicit: a
// missing or mismatched closer is fatal in both modes.
func (p *Parser) blockClose(start int) {
	word, wordStart, wordEnd := p.readIdentifier()
	p.allowWhitespace()
	p.eatRequired("}")
	end := p.index

	for cur := p.current(); cur != nil && cur.kind == frameElement; cur = p.current() {
		if !closingTagOmitted(cur.name, "") {
			p.fail(ErrElementUnclosed, cur.start, start,
				fmt.Sprintf("'<%s>' was left open", cur.name))
		}
		p.popElement(start)
	}
	cur := p.current()
	if cur == nil {
		p.fatal(ErrBlockUnexpectedClose, start, end,
			fmt.Sprintf("{/%s} has no open block", word))
		return
	}
	if cur.kind.blockName() != word {
		p.fatal(ErrBlockUnexpectedClose, wordStart, wordEnd,
			fmt.Sprintf("expected {/%s}", cur.kind.blockName()))
		return
	}
	p.closeOpenBlock(end)
}

// closeOpenBlock pops the innermost block frame and assembles its node.
// For an else-if chain the unwind continues until the non-elseif root:
// each nested block becomes the sole child of its parent's alternate
// fragment.
func (p *Parser) closeOpenBlock(end int) {
	for {
		frag := &ast.Fragment{Nodes: p.popFragment()}
		fr := p.popFrame()
		switch fr.kind {
		case frameIf:
			if fr.ifHasAlternate {
				fr.ifNode.Alternate = frag
			} else {
				fr.ifNode.Consequent = frag
			}
			fr.ifNode.Span = ast.NewSpan(fr.start, end)
			p.append(fr.ifNode)
			if fr.ifNode.Elseif {
				continue
			}
		case frameEach:
			if fr.eachInFallback {
				fr.eachNode.Fallback = frag
			} else {
				fr.eachNode.Body = frag
			}
			fr.eachNode.Span = ast.NewSpan(fr.start, end)
			p.append(fr.eachNode)
		case frameAwait:
			switch fr.awaitPhase {
			case awaitPending:
				fr.awaitNode.Pending = frag
			case awaitThen:
				fr.awaitNode.Then = frag
			case awaitCatch:
				fr.awaitNode.Catch = frag
			}
			fr.awaitNode.Span = ast.NewSpan(fr.start, end)
			p.append(fr.awaitNode)
		case frameKey:
			fr.keyNode.Fragment = frag
			fr.keyNode.Span = ast.NewSpan(fr.start, end)
			p.append(fr.keyNode)
		case frameSnippet:
			fr.snippetNode.Body = frag
			fr.snippetNode.Span = ast.NewSpan(fr.start, end)
			p.append(fr.snippetNode)
		}
		return
	}
}

// findTopLevelKeyword scans for one of words as a standalone keyword at
// bracket depth zero (whitespace on both sides), with strings and
// comments skipped. It returns the keyword's offset and the word, or the
// offset of the terminating unmatched '}' and "".
func findTopLevelKeyword(src string, i int, words ...string) (int, string) {
	depth := 0
	for i < len(src) {
		c := src[i]
		if depth == 0 && i > 0 && isWhitespaceByte(src[i-1]) {
			for _, w := range words {
				if len(src)-i >= len(w) && src[i:i+len(w)] == w {
					after := i + len(w)
					if after >= len(src) || isWhitespaceByte(src[after]) || src[after] == '}' || src[after] == '(' {
						return i, w
					}
				}
			}
		}
		switch c {
		case '{', '(', '[':
			depth++
		case '}':
			if depth == 0 {
				return i, ""
			}
			depth--
		case ')', ']':
			if depth > 0 {
				depth--
			}
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
		case '/':
			if i+1 < len(src) && src[i+1] == '/' {
				i = skipLineComment(src, i)
				continue
			}
			if i+1 < len(src) && src[i+1] == '*' {
				if j, ok := skipBlockComment(src, i); ok {
					i = j
					continue
				}
			}
		}
		i++
	}
	return len(src), ""
}
