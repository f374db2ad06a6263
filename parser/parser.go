// Package parser turns a single-file component source into a byte-span
// accurate tree (see the ast package). It is a hand-rolled recursive
// descent parser over a cursor index, with a stack of open element/block
// frames and a parallel stack of fragments under construction.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/levish0/lux-sub001/ast"
)

// maxDepth bounds frame nesting so adversarial input fails with a
// diagnostic instead of exhausting the stack.
const maxDepth = 500

// ParseOptions configures a parse call. The zero value is strict mode
// with TypeScript auto-detection and the default expression engine.
type ParseOptions struct {
	// Loose enables best-effort recovery: errors accumulate and a partial
	// tree is still produced.
	Loose bool
	// TypeScript forces the type-annotation flag; when unset it is
	// detected from <script lang="ts">.
	TypeScript bool
	// Engine overrides the expression engine.
	Engine Engine
}

type frameKind int

const (
	frameElement frameKind = iota
	frameIf
	frameEach
	frameAwait
	frameKey
	frameSnippet
)

func (k frameKind) blockName() string {
	switch k {
	case frameIf:
		return "if"
	case frameEach:
		return "each"
	case frameAwait:
		return "await"
	case frameKey:
		return "key"
	case frameSnippet:
		return "snippet"
	}
	return "element"
}

type awaitPhase int

const (
	awaitPending awaitPhase = iota
	awaitThen
	awaitCatch
)

// frame is one open construct. Element frames hold the pieces needed to
// build the element node at close; block frames hold the partially built
// block node plus continuation state.
type frame struct {
	kind  frameKind
	start int

	// element frames
	name     string
	nameLoc  ast.SourceLocation
	attrs    []ast.AttributeNode
	elem     elementKind
	thisExpr *ast.Expression

	// block frames
	ifNode         *ast.IfBlock
	ifHasAlternate bool
	eachNode       *ast.EachBlock
	eachInFallback bool
	awaitNode      *ast.AwaitBlock
	awaitPhase     awaitPhase
	keyNode        *ast.KeyBlock
	snippetNode    *ast.SnippetBlock
}

// autoClosedTag remembers the most recent implicitly closed element so a
// later stray closing tag can get a useful message.
type autoClosedTag struct {
	tag    string
	reason string
	depth  int
}

// Parser is the mutable state of one in-flight parse. A Parser is used
// for exactly one call and is not safe for concurrent use; independent
// calls share nothing.
type Parser struct {
	template string
	index    int
	loose    bool
	ts       bool
	engine   Engine
	locator  *ast.Locator

	stack     []*frame
	fragments [][]ast.FragmentNode

	instance   *ast.Script
	module     *ast.Script
	css        *ast.StyleSheet
	optionsRaw *ast.SvelteOptionsRaw
	comments   []ast.JsComment
	metaTags   map[string]bool

	lastAutoClosed *autoClosedTag

	errs []*ParseError
}

// parseAbort is the panic sentinel used to unwind on a fatal error in
// strict mode.
type parseAbort struct{ err *ParseError }

// Parse parses one component source. In strict mode the first fatal error
// aborts and only diagnostics are returned; in loose mode a partial tree
// is produced alongside accumulated diagnostics. The returned error joins
// every *ParseError recorded during the parse.
func Parse(source string, opts ParseOptions) (*ast.Root, error) {
	p := newParser(source, opts)
	root, errs := p.run()
	if len(errs) == 0 {
		return root, nil
	}
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return root, errors.Join(joined...)
}

// ParseWithDiagnostics is Parse with the diagnostics list exposed
// directly.
func ParseWithDiagnostics(source string, opts ParseOptions) (*ast.Root, []*ParseError) {
	p := newParser(source, opts)
	return p.run()
}

func newParser(source string, opts ParseOptions) *Parser {
	engine := opts.Engine
	if engine == nil {
		engine = NewExprEngine()
	}
	ts := opts.TypeScript || detectTypeScript(source)
	return &Parser{
		template:  source,
		loose:     opts.Loose,
		ts:        ts,
		engine:    engine,
		locator:   ast.NewLocator(source),
		fragments: [][]ast.FragmentNode{nil},
		metaTags:  map[string]bool{},
	}
}

func (p *Parser) run() (root *ast.Root, errs []*ParseError) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseAbort); !ok {
				panic(r)
			}
			root = nil
			errs = p.errs
		}
	}()

	for p.index < len(p.template) {
		p.fragment()
	}
	p.closeRemaining()

	nodes := p.fragments[0]
	root = &ast.Root{
		Span:     ast.NewSpan(0, len(p.template)),
		Fragment: &ast.Fragment{Nodes: nodes},
		CSS:      p.css,
		Instance: p.instance,
		Module:   p.module,
		Comments: p.comments,
		TS:       p.ts,
	}
	if p.optionsRaw != nil {
		root.Options = p.readOptions(p.optionsRaw)
	}
	return root, p.errs
}

// closeRemaining handles frames still open at EOF: every one is an
// unclosed-construct error; in loose mode partial nodes are still
// assembled with end = len(template).
func (p *Parser) closeRemaining() {
	for len(p.stack) > 0 {
		fr := p.current()
		if fr.kind == frameElement {
			if closingTagOmitted(fr.name, "") {
				p.popElement(len(p.template))
				continue
			}
			p.fail(ErrElementUnclosed, fr.start, p.index,
				fmt.Sprintf("'<%s>' was left open", fr.name))
			p.popElement(len(p.template))
		} else {
			p.fail(ErrBlockUnclosed, fr.start, p.index,
				fmt.Sprintf("block was left open, expected {/%s}", fr.kind.blockName()))
			p.closeOpenBlock(len(p.template))
		}
	}
}

// ─── error sink ───

func (p *Parser) newError(kind ErrorKind, start, end int, msg string) *ParseError {
	return &ParseError{
		Kind:    kind,
		Span:    ast.NewSpan(start, end),
		Message: msg,
		locator: p.locator,
		path:    p.openNames(),
		line:    sourceLine(p.template, start),
	}
}

// sourceLine extracts the line containing offset, trimmed.
func sourceLine(src string, offset int) string {
	if offset > len(src) {
		offset = len(src)
	}
	start := strings.LastIndexByte(src[:offset], '\n') + 1
	end := strings.IndexByte(src[offset:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += offset
	}
	return strings.TrimSpace(src[start:end])
}

// report records a diagnostic without aborting in either mode.
func (p *Parser) report(kind ErrorKind, start, end int, msg string) {
	p.errs = append(p.errs, p.newError(kind, start, end, msg))
}

// fail records a diagnostic; in strict mode it aborts the parse.
func (p *Parser) fail(kind ErrorKind, start, end int, msg string) {
	err := p.newError(kind, start, end, msg)
	p.errs = append(p.errs, err)
	if !p.loose {
		panic(parseAbort{err})
	}
}

// fatal records a diagnostic and aborts regardless of mode.
func (p *Parser) fatal(kind ErrorKind, start, end int, msg string) {
	err := p.newError(kind, start, end, msg)
	p.errs = append(p.errs, err)
	panic(parseAbort{err})
}

// ─── cursor helpers ───

func (p *Parser) matchStr(s string) bool {
	return strings.HasPrefix(p.template[p.index:], s)
}

func (p *Parser) eat(s string) bool {
	if p.matchStr(s) {
		p.index += len(s)
		return true
	}
	return false
}

func (p *Parser) eatRequired(s string) bool {
	if p.eat(s) {
		return true
	}
	p.fail(ErrExpectedToken, p.index, p.index, fmt.Sprintf("expected %q", s))
	return false
}

func (p *Parser) peek() byte {
	if p.index < len(p.template) {
		return p.template[p.index]
	}
	return 0
}

func (p *Parser) allowWhitespace() {
	for p.index < len(p.template) && isWhitespaceByte(p.template[p.index]) {
		p.index++
	}
}

func (p *Parser) requireWhitespace() {
	if p.index >= len(p.template) || !isWhitespaceByte(p.template[p.index]) {
		p.fail(ErrExpectedToken, p.index, p.index, "expected whitespace")
		return
	}
	p.allowWhitespace()
}

// readIdentifier consumes an embedded-language identifier and returns it
// with its byte range.
func (p *Parser) readIdentifier() (string, int, int) {
	start := p.index
	if p.index < len(p.template) && isIdentifierStartByte(p.template[p.index]) {
		p.index++
		for p.index < len(p.template) && isIdentifierByte(p.template[p.index]) {
			p.index++
		}
	}
	return p.template[start:p.index], start, p.index
}

// readUntilByte advances the cursor until stop reports true or EOF and
// returns the consumed slice.
func (p *Parser) readUntilByte(stop func(byte) bool) string {
	start := p.index
	for p.index < len(p.template) && !stop(p.template[p.index]) {
		p.index++
	}
	return p.template[start:p.index]
}

// readUntilStr advances the cursor to the next occurrence of s (or EOF)
// and returns the consumed slice, excluding s itself.
func (p *Parser) readUntilStr(s string) string {
	start := p.index
	if i := strings.Index(p.template[p.index:], s); i >= 0 {
		p.index += i
	} else {
		p.index = len(p.template)
	}
	return p.template[start:p.index]
}

// ─── frame / fragment stacks ───

func (p *Parser) current() *frame {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *Parser) pushFrame(fr *frame) {
	if len(p.stack) >= maxDepth {
		p.fatal(ErrTooDeep, fr.start, p.index, "markup is nested too deeply")
	}
	p.stack = append(p.stack, fr)
	p.pushFragment()
}

func (p *Parser) pushFragment() {
	p.fragments = append(p.fragments, nil)
}

func (p *Parser) popFragment() []ast.FragmentNode {
	nodes := p.fragments[len(p.fragments)-1]
	p.fragments = p.fragments[:len(p.fragments)-1]
	return nodes
}

func (p *Parser) popFrame() *frame {
	fr := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return fr
}

// append adds a finished node to the fragment under construction.
func (p *Parser) append(n ast.FragmentNode) {
	top := len(p.fragments) - 1
	p.fragments[top] = append(p.fragments[top], n)
}

// ─── dispatch ───

// fragment consumes exactly one top-level construct.
func (p *Parser) fragment() {
	switch p.peek() {
	case '<':
		p.element()
	case '{':
		p.tag()
	default:
		p.text()
	}
}

// openNames returns the names of the open constructs, outermost first,
// for diagnostics.
func (p *Parser) openNames() []string {
	names := make([]string, 0, len(p.stack))
	for _, fr := range p.stack {
		if fr.kind == frameElement {
			names = append(names, fr.name)
		} else {
			names = append(names, "#"+fr.kind.blockName())
		}
	}
	return names
}

// detectTypeScript scans for a script tag carrying lang="ts".
func detectTypeScript(source string) bool {
	rest := source
	for {
		i := strings.Index(rest, "<script")
		if i < 0 {
			return false
		}
		rest = rest[i+len("<script"):]
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return false
		}
		attrs := rest[:end]
		if strings.Contains(attrs, `lang="ts"`) || strings.Contains(attrs, `lang='ts'`) {
			return true
		}
		rest = rest[end:]
	}
}
