package parser

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/file"

	"github.com/levish0/lux-sub001/ast"
)

// Engine is the external expression/statement engine. The parser locates
// expression extents itself (see MatchBracket) and hands the engine a
// padded document: every byte before the expression is replaced by a
// space, newlines preserved, so offsets and line numbers the engine
// reports already match the original file.
type Engine interface {
	// ParseExpression parses the padded document's tail span as a single
	// expression. ts disables compilation checks that the engine cannot
	// apply to type-annotated source.
	ParseExpression(padded string, span ast.Span, ts bool) (*ast.Expression, error)

	// ParsePattern parses a binding pattern (identifier or destructuring
	// form) occupying span in the padded document.
	ParsePattern(padded string, span ast.Span, ts bool) (*ast.Pattern, error)

	// ParseProgram receives a whole script body as the padded document's
	// tail span and returns the program value plus any top-level comments.
	ParseProgram(padded string, span ast.Span, ts bool) (*ast.Program, error)
}

// EngineError is returned by the default engine when the embedded source
// does not parse. Span is aligned to the original file.
type EngineError struct {
	Span    ast.Span
	Message string
}

func (e *EngineError) Error() string { return e.Message }

// PadDocument builds the synthetic document handed to the engine: the
// source up to span.Start with every non-newline byte replaced by a space,
// followed by the spanned slice verbatim.
func PadDocument(source string, span ast.Span) string {
	var b strings.Builder
	b.Grow(span.End)
	for i := 0; i < span.Start; i++ {
		if source[i] == '\n' {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString(source[span.Start:span.End])
	return b.String()
}

// exprEngine is the default Engine. Expressions compile through
// expr-lang; binding patterns and script programs are scanned for
// identifiers and comments but otherwise retained as source.
type exprEngine struct{}

// NewExprEngine returns the default expression engine backed by
// github.com/expr-lang/expr.
func NewExprEngine() Engine { return exprEngine{} }

func (exprEngine) ParseExpression(padded string, span ast.Span, ts bool) (*ast.Expression, error) {
	src := padded[span.Start:span.End]
	out := &ast.Expression{Span: span, Src: src}
	if ts {
		// Type-annotated source is validated by boundary only.
		return out, nil
	}
	prog, err := expr.Compile(padded[:span.End], expr.AllowUndefinedVariables())
	if err != nil {
		return out, &EngineError{Span: span, Message: engineErrMessage(err)}
	}
	out.Program = prog
	return out, nil
}

func (exprEngine) ParsePattern(padded string, span ast.Span, _ bool) (*ast.Pattern, error) {
	src := padded[span.Start:span.End]
	names := patternNames(src)
	if len(names) == 0 {
		return nil, &EngineError{Span: span, Message: "expected a binding pattern"}
	}
	return &ast.Pattern{Span: span, Src: src, Names: names}, nil
}

func (exprEngine) ParseProgram(padded string, span ast.Span, _ bool) (*ast.Program, error) {
	src := padded[span.Start:span.End]
	comments := scanComments(padded, span)
	return &ast.Program{Span: span, Src: src, Comments: comments}, nil
}

func engineErrMessage(err error) string {
	if fe, ok := err.(*file.Error); ok {
		return fe.Message
	}
	return err.Error()
}

// patternNames extracts the identifiers a binding pattern introduces, in
// source order. Object keys (identifier followed by ':') and default
// values (everything after '=' up to the next ',' at the same depth) do
// not bind.
func patternNames(src string) []string {
	var names []string
	depth := 0
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '{' || c == '[' || c == '(':
			depth++
			i++
		case c == '}' || c == ']' || c == ')':
			depth--
			i++
		case c == '\'' || c == '"' || c == '`':
			j, ok := skipString(src, i)
			if !ok {
				return names
			}
			i = j
		case c == '=':
			// Skip a default value at the current depth.
			d := depth
			i++
		skipDefault:
			for i < len(src) {
				switch src[i] {
				case '{', '[', '(':
					depth++
				case '}', ']', ')':
					depth--
				case ',':
					if depth == d {
						break skipDefault
					}
				}
				i++
			}
		case c == ':' && i+1 < len(src) && src[i+1] != ':':
			// The preceding identifier was an object key or a type
			// annotation follows; either way the previously recorded name
			// is wrong for a key, handled below.
			i++
		case isIdentifierStartByte(c):
			start := i
			for i < len(src) && isIdentifierByte(src[i]) {
				i++
			}
			word := src[start:i]
			j := i
			for j < len(src) && isWhitespaceByte(src[j]) {
				j++
			}
			if j < len(src) && src[j] == ':' {
				// Object key or annotated identifier: for {key: target}
				// the key does not bind; for a top-level `name: Type`
				// annotation the name does. Depth 0 means annotation.
				if depth > 0 {
					break
				}
				names = append(names, word)
				// Skip the annotation.
				i = j + 1
				for i < len(src) && src[i] != ',' && src[i] != '=' {
					i++
				}
				break
			}
			if word != "true" && word != "false" && word != "null" && word != "undefined" {
				names = append(names, word)
			}
		default:
			i++
		}
	}
	return names
}

// scanComments collects line and block comments at the top level of a
// script body, skipping string contents.
func scanComments(padded string, span ast.Span) []ast.JsComment {
	var comments []ast.JsComment
	i := span.Start
	for i < span.End {
		c := padded[i]
		switch {
		case c == '\'' || c == '"':
			if j, ok := skipString(padded[:span.End], i); ok {
				i = j
			} else {
				i++
			}
		case c == '`':
			if j, ok := skipTemplateLiteral(padded[:span.End], i); ok {
				i = j
			} else {
				i++
			}
		case c == '/' && i+1 < span.End && padded[i+1] == '/':
			end := skipLineComment(padded[:span.End], i)
			comments = append(comments, ast.JsComment{
				Span:  ast.NewSpan(i, end),
				Kind:  ast.JsCommentLine,
				Value: padded[i+2 : end],
			})
			i = end
		case c == '/' && i+1 < span.End && padded[i+1] == '*':
			end, ok := skipBlockComment(padded[:span.End], i)
			if !ok {
				return comments
			}
			comments = append(comments, ast.JsComment{
				Span:  ast.NewSpan(i, end),
				Kind:  ast.JsCommentBlock,
				Value: padded[i+2 : end-2],
			})
			i = end
		default:
			i++
		}
	}
	return comments
}
