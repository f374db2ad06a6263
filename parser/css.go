package parser

import (
	"strconv"
	"strings"

	"github.com/levish0/lux-sub001/ast"
)

// cssParser is an independent grammar over the literal text of one style
// block. It shares the outer parser's source and error sink but nothing
// else; in particular it never consults the boundary scanner or the
// expression engine.
type cssParser struct {
	p      *Parser
	src    string
	i      int
	end    int
	failed bool
}

// parseCSS parses the style content in [start, end) into top-level rules
// and at-rules.
func (p *Parser) parseCSS(start, end int) []ast.StyleSheetChild {
	c := &cssParser{p: p, src: p.template, i: start, end: end}
	return c.readBody()
}

// fail reports a CSS diagnostic and terminates the sub-parse; in loose
// mode the sheet is kept with whatever parsed so far.
func (c *cssParser) fail(kind ErrorKind, start, end int, msg string) {
	c.failed = true
	c.p.fail(kind, start, end, msg)
	c.i = c.end
}

func (c *cssParser) eof() bool { return c.i >= c.end }

func (c *cssParser) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.i]
}

func (c *cssParser) match(s string) bool {
	return c.i+len(s) <= c.end && c.src[c.i:c.i+len(s)] == s
}

func (c *cssParser) eat(s string) bool {
	if c.match(s) {
		c.i += len(s)
		return true
	}
	return false
}

func (c *cssParser) eatRequired(s string) bool {
	if c.eat(s) {
		return true
	}
	c.fail(ErrExpectedToken, c.i, c.i, "expected "+strconv.Quote(s))
	return false
}

func (c *cssParser) allowWhitespace() {
	for !c.eof() && isWhitespaceByte(c.src[c.i]) {
		c.i++
	}
}

// allowCommentOrWhitespace also skips /* */ and <!-- --> comments between
// constructs.
func (c *cssParser) allowCommentOrWhitespace() {
	c.allowWhitespace()
	for c.match("/*") || c.match("<!--") {
		if c.eat("/*") {
			for !c.eof() && !c.match("*/") {
				c.i++
			}
			c.eat("*/")
		}
		if c.eat("<!--") {
			for !c.eof() && !c.match("-->") {
				c.i++
			}
			c.eat("-->")
		}
		c.allowWhitespace()
	}
}

func (c *cssParser) readBody() []ast.StyleSheetChild {
	var children []ast.StyleSheetChild
	for {
		c.allowCommentOrWhitespace()
		if c.eof() || c.failed {
			break
		}
		if c.match("@") {
			if at := c.readAtRule(); at != nil {
				children = append(children, at)
			}
		} else {
			if rule := c.readRule(); rule != nil {
				children = append(children, rule)
			}
		}
	}
	return children
}

func (c *cssParser) readAtRule() *ast.CssAtrule {
	start := c.i
	c.eatRequired("@")
	name := c.readIdentifier()
	prelude := c.readValue()
	if c.failed {
		return nil
	}

	var block *ast.CssBlock
	if c.match("{") {
		block = c.readBlock()
	} else {
		c.eatRequired(";")
	}
	if c.failed {
		return nil
	}
	return &ast.CssAtrule{
		Span:    ast.NewSpan(start, c.i),
		Name:    name,
		Prelude: prelude,
		Block:   block,
	}
}

func (c *cssParser) readRule() *ast.CssRule {
	start := c.i
	prelude := c.readSelectorList(false)
	block := c.readBlock()
	if c.failed {
		return nil
	}
	return &ast.CssRule{
		Span:    ast.NewSpan(start, c.i),
		Prelude: prelude,
		Block:   block,
	}
}

func (c *cssParser) readSelectorList(insidePseudoClass bool) *ast.SelectorList {
	var children []*ast.ComplexSelector

	c.allowCommentOrWhitespace()
	start := c.i

	for !c.eof() && !c.failed {
		children = append(children, c.readSelector(insidePseudoClass))
		end := c.i

		c.allowCommentOrWhitespace()

		if insidePseudoClass && c.match(")") {
			return &ast.SelectorList{Span: ast.NewSpan(start, end), Children: children}
		}
		if !insidePseudoClass && c.match("{") {
			return &ast.SelectorList{Span: ast.NewSpan(start, end), Children: children}
		}

		c.eatRequired(",")
		c.allowCommentOrWhitespace()
	}

	if !c.failed {
		c.fail(ErrUnexpectedEOF, c.end, c.end, "unexpected end of style content")
	}
	return &ast.SelectorList{Span: ast.NewSpan(start, c.i), Children: children}
}

func (c *cssParser) readSelector(insidePseudoClass bool) *ast.ComplexSelector {
	listStart := c.i
	var children []*ast.RelativeSelector

	rel := &ast.RelativeSelector{Span: ast.NewSpan(c.i, c.i)}

	for !c.eof() && !c.failed {
		start := c.i

		switch {
		case c.eat("&"):
			rel.Selectors = append(rel.Selectors, &ast.NestingSelector{
				Span: ast.NewSpan(start, c.i), Name: "&",
			})
		case c.eat("*"):
			name := "*"
			if c.eat("|") {
				name = c.readIdentifier()
			}
			rel.Selectors = append(rel.Selectors, &ast.TypeSelector{
				Span: ast.NewSpan(start, c.i), Name: name,
			})
		case c.eat("#"):
			rel.Selectors = append(rel.Selectors, &ast.IdSelector{
				Span: ast.NewSpan(start, c.i), Name: c.readIdentifier(),
			})
		case c.eat("."):
			rel.Selectors = append(rel.Selectors, &ast.ClassSelector{
				Span: ast.NewSpan(start, c.i), Name: c.readIdentifier(),
			})
		case c.eat("::"):
			name := c.readIdentifier()
			rel.Selectors = append(rel.Selectors, &ast.PseudoElementSelector{
				Span: ast.NewSpan(start, c.i), Name: name,
			})
			// Inner selectors of a pseudo element still need to parse.
			if c.eat("(") {
				c.readSelectorList(true)
				c.eatRequired(")")
			}
		case c.eat(":"):
			name := c.readIdentifier()
			var args *ast.SelectorList
			if c.eat("(") {
				args = c.readSelectorList(true)
				c.eatRequired(")")
			}
			rel.Selectors = append(rel.Selectors, &ast.PseudoClassSelector{
				Span: ast.NewSpan(start, c.i), Name: name, Args: args,
			})
		case c.eat("["):
			c.allowWhitespace()
			name := c.readIdentifier()
			c.allowWhitespace()

			matcher := c.readMatcher()
			var value string
			if matcher != "" {
				c.allowWhitespace()
				value = c.readAttributeValue()
			}

			c.allowWhitespace()
			flags := c.readAttributeFlags()
			c.allowWhitespace()
			c.eatRequired("]")

			rel.Selectors = append(rel.Selectors, &ast.AttributeSelector{
				Span: ast.NewSpan(start, c.i), Name: name,
				Matcher: matcher, Value: value, Flags: flags,
			})
		case insidePseudoClass && c.matchNthOf():
			rel.Selectors = append(rel.Selectors, &ast.Nth{
				Span: ast.NewSpan(start, c.i), Value: c.readNthOf(),
			})
		case c.matchPercentage():
			rel.Selectors = append(rel.Selectors, &ast.Percentage{
				Span: ast.NewSpan(start, c.i), Value: c.readPercentage(),
			})
		case !c.matchCombinator():
			name := c.readIdentifier()
			if c.eat("|") {
				name = c.readIdentifier()
			}
			rel.Selectors = append(rel.Selectors, &ast.TypeSelector{
				Span: ast.NewSpan(start, c.i), Name: name,
			})
		}
		if c.failed {
			break
		}

		index := c.i
		c.allowCommentOrWhitespace()

		atEnd := c.match(",")
		if insidePseudoClass {
			atEnd = atEnd || c.match(")")
		} else {
			atEnd = atEnd || c.match("{")
		}
		if atEnd {
			c.i = index
			rel.Span = ast.NewSpan(rel.Span.Start, index)
			children = append(children, rel)
			return &ast.ComplexSelector{
				Span:     ast.NewSpan(listStart, index),
				Children: children,
			}
		}

		c.i = index
		comb := c.readCombinator()
		if comb != nil {
			if len(rel.Selectors) > 0 {
				rel.Span = ast.NewSpan(rel.Span.Start, index)
				children = append(children, rel)
			}
			rel = &ast.RelativeSelector{
				Span:       ast.NewSpan(comb.Span.Start, comb.Span.Start),
				Combinator: comb,
			}
			c.allowWhitespace()

			bad := c.match(",")
			if insidePseudoClass {
				bad = bad || c.match(")")
			} else {
				bad = bad || c.match("{")
			}
			if bad {
				c.fail(ErrCSSSelectorInvalid, c.i, c.i, "invalid selector")
				break
			}
		}
	}

	if !c.failed {
		c.fail(ErrUnexpectedEOF, c.end, c.end, "unexpected end of style content")
	}
	return &ast.ComplexSelector{Span: ast.NewSpan(listStart, c.i), Children: children}
}

func (c *cssParser) readCombinator() *ast.CssCombinator {
	start := c.i
	c.allowWhitespace()
	index := c.i

	var name string
	switch {
	case c.eat("||"):
		name = "||"
	case !c.eof() && (c.peek() == '+' || c.peek() == '~' || c.peek() == '>'):
		name = string(c.peek())
		c.i++
	}

	if name != "" {
		end := c.i
		c.allowWhitespace()
		return &ast.CssCombinator{Span: ast.NewSpan(index, end), Name: name}
	}

	// Consumed whitespace means a descendant combinator.
	if c.i != start {
		return &ast.CssCombinator{Span: ast.NewSpan(start, c.i), Name: " "}
	}
	return nil
}

func (c *cssParser) readBlock() *ast.CssBlock {
	start := c.i
	c.eatRequired("{")

	var children []ast.CssBlockChild
	for !c.eof() && !c.failed {
		c.allowCommentOrWhitespace()
		if c.match("}") {
			break
		}
		if item := c.readBlockItem(); item != nil {
			children = append(children, item)
		}
	}
	c.eatRequired("}")

	return &ast.CssBlock{Span: ast.NewSpan(start, c.i), Children: children}
}

// readBlockItem reads ahead over the next value to decide between a
// declaration and a nested rule.
func (c *cssParser) readBlockItem() ast.CssBlockChild {
	if c.match("@") {
		if at := c.readAtRule(); at != nil {
			return at
		}
		return nil
	}

	start := c.i
	c.readValue()
	isRule := c.peek() == '{'
	c.i = start
	if c.failed {
		return nil
	}

	if isRule {
		if rule := c.readRule(); rule != nil {
			return rule
		}
		return nil
	}
	if decl := c.readDeclaration(); decl != nil {
		return decl
	}
	return nil
}

func (c *cssParser) readDeclaration() *ast.CssDeclaration {
	start := c.i

	property := c.readPropertyName()
	c.allowWhitespace()
	c.eatRequired(":")
	c.allowWhitespace()

	value := c.readValue()
	if c.failed {
		return nil
	}

	if value == "" && !strings.HasPrefix(property, "--") {
		c.fail(ErrCSSEmptyDeclaration, start, c.i, "declaration value is empty")
		return nil
	}

	end := c.i
	if !c.match("}") {
		c.eatRequired(";")
	}

	return &ast.CssDeclaration{
		Span:     ast.NewSpan(start, end),
		Property: property,
		Value:    value,
	}
}

func (c *cssParser) readPropertyName() string {
	start := c.i
	for !c.eof() {
		ch := c.src[c.i]
		if isWhitespaceByte(ch) || ch == ':' {
			break
		}
		c.i++
	}
	return c.src[start:c.i]
}

// readValue scans a declaration value or at-rule prelude: it stops at
// ';', '{' or '}' outside of url(...) and quoted strings, keeping escapes
// verbatim.
func (c *cssParser) readValue() string {
	var b strings.Builder
	inURL := false
	var quote byte

	for !c.eof() {
		ch := c.src[c.i]
		if ch == '\\' && c.i+1 < c.end {
			b.WriteByte(ch)
			b.WriteByte(c.src[c.i+1])
			c.i += 2
			continue
		}
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == ')':
			inURL = false
		case ch == '(' && strings.HasSuffix(b.String(), "url"):
			inURL = true
		case ch == ';' || ch == '{' || ch == '}':
			if !inURL {
				return strings.TrimSpace(b.String())
			}
		}
		b.WriteByte(ch)
		c.i++
	}

	c.fail(ErrUnexpectedEOF, c.end, c.end, "unexpected end of style content")
	return ""
}

// readAttributeValue reads the value part of an attribute selector,
// quoted or bare.
func (c *cssParser) readAttributeValue() string {
	var b strings.Builder
	escaped := false

	var quote byte
	if c.eat(`"`) {
		quote = '"'
	} else if c.eat("'") {
		quote = '\''
	}

	for !c.eof() {
		ch := c.src[c.i]
		switch {
		case escaped:
			b.WriteByte('\\')
			b.WriteByte(ch)
			escaped = false
			c.i++
			continue
		case ch == '\\':
			escaped = true
			c.i++
			continue
		}
		if quote != 0 {
			if ch == quote {
				c.i++
				return strings.TrimSpace(b.String())
			}
			b.WriteByte(ch)
			c.i++
			continue
		}
		if isWhitespaceByte(ch) || ch == ']' {
			return strings.TrimSpace(b.String())
		}
		b.WriteByte(ch)
		c.i++
	}

	c.fail(ErrUnexpectedEOF, c.end, c.end, "unexpected end of style content")
	return ""
}

// readIdentifier scans a CSS identifier, resolving \ + 1-6 hex digits
// (plus optional trailing whitespace) to the literal code point and
// keeping any other escape verbatim. Non-ASCII characters are accepted.
func (c *cssParser) readIdentifier() string {
	start := c.i
	var b strings.Builder

	if c.matchLeadingHyphenOrDigit() {
		c.fail(ErrCSSExpectedIdentifier, start, c.i, "expected a valid CSS identifier")
		return ""
	}

	for !c.eof() {
		ch := c.src[c.i]
		if ch == '\\' {
			if hex, n := c.matchUnicodeSequence(); n > 0 {
				if cp, err := strconv.ParseUint(hex, 16, 32); err == nil {
					b.WriteRune(rune(cp))
				}
				c.i += n
				continue
			}
			b.WriteByte('\\')
			c.i++
			if !c.eof() {
				b.WriteByte(c.src[c.i])
				c.i++
			}
			continue
		}
		if ch >= 0x80 {
			// Multi-byte UTF-8: accept the whole rune.
			r := []rune(c.src[c.i:c.end])[0]
			b.WriteRune(r)
			c.i += len(string(r))
			continue
		}
		if ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' ||
			ch >= '0' && ch <= '9' || ch == '_' || ch == '-' {
			b.WriteByte(ch)
			c.i++
			continue
		}
		break
	}

	if b.Len() == 0 {
		c.fail(ErrCSSExpectedIdentifier, start, c.i, "expected a valid CSS identifier")
	}
	return b.String()
}

func (c *cssParser) matchLeadingHyphenOrDigit() bool {
	if c.eof() {
		return false
	}
	ch := c.src[c.i]
	if isASCIIDigit(ch) {
		return true
	}
	return ch == '-' && c.i+1 < c.end && isASCIIDigit(c.src[c.i+1])
}

// matchUnicodeSequence matches \ + 1-6 hex digits + optional trailing
// whitespace, returning the hex digits and total length.
func (c *cssParser) matchUnicodeSequence() (string, int) {
	i := c.i
	if i >= c.end || c.src[i] != '\\' {
		return "", 0
	}
	i++
	hexStart := i
	for i < c.end && i-hexStart < 6 && isHexDigit(c.src[i]) {
		i++
	}
	if i == hexStart {
		return "", 0
	}
	hex := c.src[hexStart:i]
	if i+1 < c.end && c.src[i] == '\r' && c.src[i+1] == '\n' {
		i += 2
	} else if i < c.end && isWhitespaceByte(c.src[i]) {
		i++
	}
	return hex, i - c.i
}

func isHexDigit(ch byte) bool {
	return isASCIIDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// readMatcher reads an attribute matcher: an optional ~ ^ $ * | prefix
// followed by '='.
func (c *cssParser) readMatcher() string {
	i := c.i
	if i < c.end {
		switch c.src[i] {
		case '~', '^', '$', '*', '|':
			i++
		}
	}
	if i < c.end && c.src[i] == '=' {
		i++
		m := c.src[c.i:i]
		c.i = i
		return m
	}
	return ""
}

// readAttributeFlags reads trailing alphabetic selector flags like "i".
func (c *cssParser) readAttributeFlags() string {
	start := c.i
	for !c.eof() && isASCIIAlpha(c.src[c.i]) {
		c.i++
	}
	return c.src[start:c.i]
}

func (c *cssParser) matchCombinator() bool {
	if c.eof() {
		return false
	}
	switch c.src[c.i] {
	case '+', '~', '>':
		return true
	case '|':
		return c.i+1 < c.end && c.src[c.i+1] == '|'
	}
	return false
}

// matchPercentage matches \d+(\.\d+)?%.
func (c *cssParser) matchPercentage() bool {
	i := c.i
	if i >= c.end || !isASCIIDigit(c.src[i]) {
		return false
	}
	for i < c.end && isASCIIDigit(c.src[i]) {
		i++
	}
	if i < c.end && c.src[i] == '.' {
		i++
		if i >= c.end || !isASCIIDigit(c.src[i]) {
			return false
		}
		for i < c.end && isASCIIDigit(c.src[i]) {
			i++
		}
	}
	return i < c.end && c.src[i] == '%'
}

func (c *cssParser) readPercentage() string {
	start := c.i
	for !c.eof() && isASCIIDigit(c.src[c.i]) {
		c.i++
	}
	if !c.eof() && c.src[c.i] == '.' {
		c.i++
		for !c.eof() && isASCIIDigit(c.src[c.i]) {
			c.i++
		}
	}
	c.eat("%")
	return c.src[start:c.i]
}

func (c *cssParser) matchNthOf() bool {
	return c.nthOfLen() > 0
}

func (c *cssParser) readNthOf() string {
	n := c.nthOfLen()
	start := c.i
	c.i += n
	return c.src[start:c.i]
}

// nthOfLen matches the An+B micro-grammar (even, odd, optional-signed
// aN+B forms) followed either by a lookahead of \s*[,)] or by an
// inclusive " of " tail. It returns the match length, 0 when there is no
// match.
func (c *cssParser) nthOfLen() int {
	src, i, end := c.src, c.i, c.end

	switch {
	case i+4 <= end && src[i:i+4] == "even":
		i += 4
	case i+3 <= end && src[i:i+3] == "odd":
		i += 3
	case i < end && src[i] == '-':
		i++
		for i < end && isASCIIDigit(src[i]) {
			i++
		}
		if i >= end || src[i] != 'n' {
			return 0
		}
		i++
		i = nthTail(src, i, end, false)
	default:
		if i < end && src[i] == '+' {
			i++
		}
		digitStart := i
		for i < end && isASCIIDigit(src[i]) {
			i++
		}
		if i < end && src[i] == 'n' {
			i++
			i = nthTail(src, i, end, true)
		} else if i == digitStart {
			return 0
		}
	}

	matchEnd := i

	// Lookahead: \s*[,)]
	j := matchEnd
	for j < end && isWhitespaceByte(src[j]) {
		j++
	}
	if j < end && (src[j] == ',' || src[j] == ')') {
		return matchEnd - c.i
	}

	// Or an " of " tail, included in the match.
	j = matchEnd
	wsStart := j
	for j < end && isWhitespaceByte(src[j]) {
		j++
	}
	if j > wsStart && j+2 <= end && src[j:j+2] == "of" {
		k := j + 2
		if k < end && isWhitespaceByte(src[k]) {
			for k < end && isWhitespaceByte(src[k]) {
				k++
			}
			return k - c.i
		}
	}
	return 0
}

// nthTail consumes an optional \s*[+-]\s*\d+ suffix after the 'n'.
// allowMinus permits both signs; the -An form only accepts '+'.
func nthTail(src string, i, end int, allowMinus bool) int {
	j := i
	for j < end && isWhitespaceByte(src[j]) {
		j++
	}
	if j < end && (src[j] == '+' || (allowMinus && src[j] == '-')) {
		j++
		for j < end && isWhitespaceByte(src[j]) {
			j++
		}
		if j < end && isASCIIDigit(src[j]) {
			for j < end && isASCIIDigit(src[j]) {
				j++
			}
			return j
		}
	}
	return i
}
