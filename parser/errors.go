package parser

import (
	"fmt"

	"github.com/levish0/lux-sub001/ast"
)

// ErrorKind classifies a parse diagnostic.
type ErrorKind int

const (
	ErrUnexpectedEOF ErrorKind = iota
	ErrTooDeep
	ErrExpectedToken
	ErrExpectedTag
	ErrExpectedBlockType
	ErrExpectedExpression
	ErrExpectedAttributeValue
	ErrElementUnclosed
	ErrElementInvalidClosingTag
	ErrVoidElementContent
	ErrTagInvalidName
	ErrTagInvalidPlacement
	ErrBlockUnclosed
	ErrBlockUnexpectedClose
	ErrBlockInvalidPlacement
	ErrAttributeDuplicate
	ErrAttributeEmptyShorthand
	ErrDirectiveMissingName
	ErrDirectiveInvalidValue
	ErrExpressionSyntax
	ErrConstTagInvalidExpression
	ErrRenderTagInvalidExpression
	ErrMetaInvalidTag
	ErrMetaInvalidPlacement
	ErrMetaDuplicate
	ErrSvelteElementMissingThis
	ErrScriptDuplicate
	ErrScriptInvalidContext
	ErrStyleDuplicate
	ErrCSSSelectorInvalid
	ErrCSSExpectedIdentifier
	ErrCSSEmptyDeclaration
	ErrOptionsInvalidAttribute
	ErrOptionsInvalidAttributeValue
	ErrOptionsInvalidTagName
)

var errorKindNames = map[ErrorKind]string{
	ErrUnexpectedEOF:                "unexpected_eof",
	ErrTooDeep:                      "too_deep",
	ErrExpectedToken:                "expected_token",
	ErrExpectedTag:                  "expected_tag",
	ErrExpectedBlockType:            "expected_block_type",
	ErrExpectedExpression:           "expected_expression",
	ErrExpectedAttributeValue:       "expected_attribute_value",
	ErrElementUnclosed:              "element_unclosed",
	ErrElementInvalidClosingTag:     "element_invalid_closing_tag",
	ErrVoidElementContent:           "void_element_invalid_content",
	ErrTagInvalidName:               "tag_invalid_name",
	ErrTagInvalidPlacement:          "tag_invalid_placement",
	ErrBlockUnclosed:                "block_unclosed",
	ErrBlockUnexpectedClose:         "block_unexpected_close",
	ErrBlockInvalidPlacement:        "block_invalid_placement",
	ErrAttributeDuplicate:           "attribute_duplicate",
	ErrAttributeEmptyShorthand:      "attribute_empty_shorthand",
	ErrDirectiveMissingName:         "directive_missing_name",
	ErrDirectiveInvalidValue:        "directive_invalid_value",
	ErrExpressionSyntax:             "expression_syntax",
	ErrConstTagInvalidExpression:    "const_tag_invalid_expression",
	ErrRenderTagInvalidExpression:   "render_tag_invalid_expression",
	ErrMetaInvalidTag:               "meta_invalid_tag",
	ErrMetaInvalidPlacement:         "meta_invalid_placement",
	ErrMetaDuplicate:                "meta_duplicate",
	ErrSvelteElementMissingThis:     "svelte_element_missing_this",
	ErrScriptDuplicate:              "script_duplicate",
	ErrScriptInvalidContext:         "script_invalid_context",
	ErrStyleDuplicate:               "style_duplicate",
	ErrCSSSelectorInvalid:           "css_selector_invalid",
	ErrCSSExpectedIdentifier:        "css_expected_identifier",
	ErrCSSEmptyDeclaration:          "css_empty_declaration",
	ErrOptionsInvalidAttribute:      "options_invalid_attribute",
	ErrOptionsInvalidAttributeValue: "options_invalid_attribute_value",
	ErrOptionsInvalidTagName:        "options_invalid_tag_name",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("error_kind_%d", int(k))
}

// ParseError is one diagnostic with enough span information to recover a
// line/column for display.
type ParseError struct {
	Kind    ErrorKind
	Span    ast.Span
	Message string

	locator *ast.Locator
	path    []string
	line    string
}

// Path returns the names of the constructs open at the error position,
// outermost first. Block names carry a leading '#'.
func (e *ParseError) Path() []string { return e.path }

func (e *ParseError) Error() string {
	if e.locator != nil {
		pos := e.locator.Locate(e.Span.Start)
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, pos)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Position resolves the error's start offset, if a locator is attached.
func (e *ParseError) Position() (ast.Position, bool) {
	if e.locator == nil {
		return ast.Position{}, false
	}
	return e.locator.Locate(e.Span.Start), true
}
