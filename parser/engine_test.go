package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/levish0/lux-sub001/ast"
)

func TestPadDocument(t *testing.T) {
	tests := []struct {
		name   string
		source string
		span   ast.Span
		want   string
	}{
		{"start of file", "abc", ast.NewSpan(0, 3), "abc"},
		{"mid file", "abcdef", ast.NewSpan(3, 6), "   def"},
		{"newlines kept", "abc\ndef", ast.NewSpan(5, 7), "   \n ef"},
		{"multiline prefix", "a\nb\ncde", ast.NewSpan(4, 7), " \n \ncde"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PadDocument(tt.source, tt.span)
			require.Equal(t, tt.want, got)

			// The padded document always ends at span.End, with the spanned
			// text verbatim and every line break preserved.
			require.Equal(t, tt.span.End, len(got))
			require.Equal(t, tt.source[tt.span.Start:tt.span.End], got[tt.span.Start:])
			require.Equal(t,
				strings.Count(tt.source[:tt.span.Start], "\n"),
				strings.Count(got[:tt.span.Start], "\n"))
		})
	}
}

func TestExprEngineExpression(t *testing.T) {
	e := NewExprEngine()

	src := "  a + b"
	expr, err := e.ParseExpression(src, ast.NewSpan(2, 7), false)
	require.NoError(t, err)
	require.Equal(t, "a + b", expr.Src)
	require.NotNil(t, expr.Program)
}

func TestExprEngineExpressionError(t *testing.T) {
	e := NewExprEngine()

	_, err := e.ParseExpression("a +", ast.NewSpan(0, 3), false)
	require.Error(t, err)

	var ee *EngineError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, ast.NewSpan(0, 3), ee.Span)
}

func TestExprEngineTypeScriptSkipsCompile(t *testing.T) {
	e := NewExprEngine()

	expr, err := e.ParseExpression("x as number", ast.NewSpan(0, 11), true)
	require.NoError(t, err)
	require.Nil(t, expr.Program)
}

func TestPatternNames(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"item", []string{"item"}},
		{"{a, b}", []string{"a", "b"}},
		{"[first, second]", []string{"first", "second"}},
		{"{key: renamed}", []string{"renamed"}},
		{"{a = 1, b}", []string{"a", "b"}},
		{"{a: {b}}", []string{"b"}},
		{"{a, ...rest}", []string{"a", "rest"}},
		{"item: Item", []string{"item"}},
		{"true", nil},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := patternNames(tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("patternNames(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestParsePatternRejectsEmpty(t *testing.T) {
	e := NewExprEngine()
	_, err := e.ParsePattern("true", ast.NewSpan(0, 4), false)
	require.Error(t, err)
}

func TestScanComments(t *testing.T) {
	src := "let a = 1; // line\nlet s = \"// not\";\n/* block */ let b = 2;"
	comments := scanComments(src, ast.NewSpan(0, len(src)))
	require.Len(t, comments, 2)

	require.Equal(t, ast.JsCommentLine, comments[0].Kind)
	require.Equal(t, " line", comments[0].Value)
	require.Equal(t, ast.JsCommentBlock, comments[1].Kind)
	require.Equal(t, " block ", comments[1].Value)
}
