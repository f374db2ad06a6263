package parser

// Expression boundary scanning. Given the position just after an opening
// '{', '(', '[' or '<', MatchBracket finds the matching close delimiter without
// understanding the embedded expression grammar. Strings, template
// literals (including nested ${...} interpolations) and comments are
// skipped so their contents never count as brackets.
//
// Known limitation: '/' is never treated as the start of a regular
// expression literal, so a bracket inside a regex literal can be
// mis-counted.

func closingFor(open byte) byte {
	switch open {
	case '{':
		return '}'
	case '(':
		return ')'
	case '[':
		return ']'
	case '<':
		return '>'
	}
	return 0
}

// MatchBracket scans src from start (the index just after the opening
// delimiter) and returns the index of the matching close delimiter. The
// second result is false when the bracket is unterminated.
func MatchBracket(src string, start int, open byte) (int, bool) {
	closeB := closingFor(open)
	if closeB == 0 {
		return 0, false
	}
	depth := 1
	i := start
	for i < len(src) {
		c := src[i]
		switch {
		case c == open:
			depth++
			i++
		case c == closeB:
			depth--
			if depth == 0 {
				return i, true
			}
			i++
		case c == '\'' || c == '"':
			j, ok := skipString(src, i)
			if !ok {
				return 0, false
			}
			i = j
		case c == '`':
			j, ok := skipTemplateLiteral(src, i)
			if !ok {
				return 0, false
			}
			i = j
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			i = skipLineComment(src, i)
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			j, ok := skipBlockComment(src, i)
			if !ok {
				return 0, false
			}
			i = j
		default:
			i++
		}
	}
	return 0, false
}

// skipString consumes a single- or double-quoted string starting at the
// quote and returns the index just past the closing quote. Backslash
// escapes are honored. An unescaped newline before the closing quote is
// treated as an unterminated string.
func skipString(src string, start int) (int, bool) {
	quote := src[start]
	i := start + 1
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
		case '\n':
			return 0, false
		case quote:
			return i + 1, true
		default:
			i++
		}
	}
	return 0, false
}

// skipTemplateLiteral consumes a backtick string starting at the backtick.
// Each ${...} interpolation re-enters bracket matching so nested template
// literals and brackets are handled.
func skipTemplateLiteral(src string, start int) (int, bool) {
	i := start + 1
	for i < len(src) {
		switch {
		case src[i] == '\\':
			i += 2
		case src[i] == '`':
			return i + 1, true
		case src[i] == '$' && i+1 < len(src) && src[i+1] == '{':
			end, ok := MatchBracket(src, i+2, '{')
			if !ok {
				return 0, false
			}
			i = end + 1
		default:
			i++
		}
	}
	return 0, false
}

// skipLineComment consumes "//" through the next newline (or EOF) and
// returns the index of the newline itself.
func skipLineComment(src string, start int) int {
	i := start + 2
	for i < len(src) && src[i] != '\n' {
		i++
	}
	return i
}

// skipBlockComment consumes "/* ... */" and returns the index just past
// the closing "*/".
func skipBlockComment(src string, start int) (int, bool) {
	i := start + 2
	for i+1 < len(src) {
		if src[i] == '*' && src[i+1] == '/' {
			return i + 2, true
		}
		i++
	}
	return 0, false
}
