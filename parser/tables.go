package parser

import (
	"strings"
	"unicode"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "command": true,
	"embed": true, "hr": true, "img": true, "input": true, "keygen": true,
	"link": true, "meta": true, "param": true, "source": true, "track": true,
	"wbr": true,
}

// isVoidElement reports whether name can never have children or a closing
// tag. The doctype pseudo-tag is treated the same way.
func isVoidElement(name string) bool {
	return voidElements[strings.ToLower(name)] || strings.EqualFold(name, "!doctype")
}

var rawTextElements = map[string]bool{
	"script": true, "style": true, "textarea": true, "title": true,
}

// metaTagAllowedAnywhere lists the reserved-namespace names valid at any
// nesting depth. The remaining reserved names are top-level only.
var metaTagAllowedAnywhere = map[string]bool{
	"svelte:element": true, "svelte:component": true, "svelte:self": true,
	"svelte:fragment": true, "svelte:boundary": true,
}

var metaTagTopLevelOnly = map[string]bool{
	"svelte:head": true, "svelte:options": true, "svelte:window": true,
	"svelte:document": true, "svelte:body": true,
}

// pBlockSiblings is the set of sibling names that implicitly close an open
// <p>.
var pBlockSiblings = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"div": true, "dl": true, "fieldset": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hgroup": true, "hr": true, "main": true, "menu": true,
	"nav": true, "ol": true, "p": true, "pre": true, "section": true,
	"table": true, "ul": true,
}

// closingTagOmitted implements the fixed implicit-close subset of the HTML
// spec. current is the open element; next is the name of the incoming
// sibling open tag, or "" when the parent is closing. It reports whether
// current's closing tag may be omitted at this point.
func closingTagOmitted(current, next string) bool {
	parentClosing := next == ""
	switch current {
	case "li":
		return next == "li" || parentClosing
	case "dt", "dd":
		return next == "dt" || next == "dd" || parentClosing
	case "p":
		return pBlockSiblings[next] || parentClosing
	case "rt", "rp":
		return next == "rt" || next == "rp" || parentClosing
	case "optgroup":
		return next == "optgroup" || parentClosing
	case "option":
		return next == "option" || next == "optgroup" || parentClosing
	case "thead", "tbody":
		return next == "tbody" || next == "tfoot" || parentClosing
	case "tfoot":
		return next == "tbody" || parentClosing
	case "tr":
		return next == "tr" || next == "tbody" || parentClosing
	case "td", "th":
		return next == "td" || next == "th" || next == "tr" || parentClosing
	}
	return false
}

// isComponentName reports whether name refers to a component: it starts
// with an uppercase letter or contains a dot.
func isComponentName(name string) bool {
	if name == "" {
		return false
	}
	if strings.ContainsRune(name, '.') {
		return true
	}
	r := []rune(name)[0]
	return unicode.IsUpper(r)
}

// isValidElementName checks lowercase element names: an ASCII letter
// followed by letters, digits, hyphens or colons is accepted, as are
// custom-element style hyphenated names.
func isValidElementName(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	if !isASCIIAlpha(c) && c != '!' {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if !isASCIIAlpha(c) && !isASCIIDigit(c) && c != '-' && c != ':' && c != '.' && c != '_' {
			return false
		}
	}
	return true
}

func isASCIIAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIDigit(c byte) bool { return c >= '0' && c <= '9' }

// isWhitespaceByte matches the markup whitespace class: space, tab, CR,
// LF, FF.
func isWhitespaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f'
}

// isIdentifierStartByte and isIdentifierByte match the embedded-language
// identifier classes [a-zA-Z_$] and [a-zA-Z0-9_$].
func isIdentifierStartByte(c byte) bool {
	return isASCIIAlpha(c) || c == '_' || c == '$'
}

func isIdentifierByte(c byte) bool {
	return isIdentifierStartByte(c) || isASCIIDigit(c)
}

// isTagNameEnd matches the characters that terminate a tag name:
// whitespace, '/' or '>'.
func isTagNameEnd(c byte) bool {
	return isWhitespaceByte(c) || c == '/' || c == '>'
}

// isTokenEnd matches the characters that terminate an attribute name:
// whitespace, '=', '/', '>', '"' or '\''.
func isTokenEnd(c byte) bool {
	return isWhitespaceByte(c) || c == '=' || c == '/' || c == '>' || c == '"' || c == '\''
}
