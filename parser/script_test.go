package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/levish0/lux-sub001/ast"
)

func TestScriptExtraction(t *testing.T) {
	src := "<script>\nlet x = 1; // note\n</script>\n<p>hi</p>"
	root := mustParse(t, src)

	require.NotNil(t, root.Instance)
	require.Nil(t, root.Module)
	require.Equal(t, ast.ScriptContextDefault, root.Instance.Context)

	content := root.Instance.Content
	require.Equal(t, len("<script>"), content.Span.Start)
	require.Equal(t, strings.Index(src, "</script>"), content.Span.End)
	require.Equal(t, content.Src, content.Span.Slice(src))

	// Comments inside the script surface on the root.
	require.Len(t, root.Comments, 1)
	require.Equal(t, ast.JsCommentLine, root.Comments[0].Kind)
	require.Equal(t, " note", root.Comments[0].Value)

	// The markup after the script still parses.
	var sawP bool
	for _, n := range root.Fragment.Nodes {
		if el, ok := n.(*ast.RegularElement); ok && el.Name == "p" {
			sawP = true
		}
	}
	require.True(t, sawP)
}

func TestScriptCommentPositionsMatchSource(t *testing.T) {
	src := "<p>x</p>\n<script>\n/* block */\nlet a = 0;\n</script>"
	root := mustParse(t, src)

	require.Len(t, root.Comments, 1)
	c := root.Comments[0]
	require.Equal(t, ast.JsCommentBlock, c.Kind)
	// Spans are offsets into the original file, not the script body.
	require.Equal(t, strings.Index(src, "/*"), c.Span.Start)
	require.Equal(t, strings.Index(src, "*/")+2, c.Span.End)
	require.Equal(t, " block ", c.Value)
}

func TestModuleScript(t *testing.T) {
	src := `<script module>const shared = 1;</script><script>let local = 2;</script>`
	root := mustParse(t, src)

	require.NotNil(t, root.Module)
	require.NotNil(t, root.Instance)
	require.Equal(t, ast.ScriptContextModule, root.Module.Context)
	require.Contains(t, root.Module.Content.Src, "shared")
	require.Contains(t, root.Instance.Content.Src, "local")
}

func TestLegacyModuleContext(t *testing.T) {
	src := `<script context="module">const shared = 1;</script>`
	root := mustParse(t, src)
	require.NotNil(t, root.Module)
	require.Nil(t, root.Instance)
}

func TestInvalidScriptContext(t *testing.T) {
	src := `<script context="modul">let a = 1;</script>`
	root, errs := ParseWithDiagnostics(src, ParseOptions{Loose: true})
	require.NotEmpty(t, errs)
	require.Equal(t, ErrScriptInvalidContext, errs[0].Kind)

	// The script still parses as an instance script.
	require.NotNil(t, root.Instance)
	require.Nil(t, root.Module)
}

func TestDuplicateScriptKeepsFirst(t *testing.T) {
	src := `<script>let a = 1;</script><script>let b = 2;</script>`

	// Duplicate scripts are recorded but never abort, even in strict mode.
	root, errs := ParseWithDiagnostics(src, ParseOptions{})
	require.NotNil(t, root)
	require.Len(t, errs, 1)
	require.Equal(t, ErrScriptDuplicate, errs[0].Kind)
	require.Contains(t, root.Instance.Content.Src, "let a")
}

func TestStyleExtraction(t *testing.T) {
	src := `<p>hi</p><style>a { color: red; }</style>`
	root := mustParse(t, src)

	require.NotNil(t, root.CSS)
	require.Equal(t, "a { color: red; }", root.CSS.Content.Styles)
	require.Equal(t, strings.Index(src, "a {"), root.CSS.Content.Start)
	require.Len(t, root.CSS.Children, 1)

	rule := root.CSS.Children[0].(*ast.CssRule)
	// CSS spans index into the component source.
	require.Equal(t, src[rule.Span.Start:rule.Span.End], "a { color: red; }")
}

func TestDuplicateStyleKeepsFirst(t *testing.T) {
	src := `<style>a { color: red; }</style><style>b { color: blue; }</style>`
	root, errs := ParseWithDiagnostics(src, ParseOptions{})
	require.NotNil(t, root)
	require.Len(t, errs, 1)
	require.Equal(t, ErrStyleDuplicate, errs[0].Kind)

	rule := root.CSS.Children[0].(*ast.CssRule)
	sel := rule.Prelude.Children[0].Children[0].Selectors[0].(*ast.TypeSelector)
	require.Equal(t, "a", sel.Name)
}

func TestTypeScriptDetection(t *testing.T) {
	src := `<script lang="ts">let x: number = 1;</script>{x}`
	root := mustParse(t, src)
	require.True(t, root.TS)

	// Expressions keep their source but skip compilation in TS mode.
	tag := root.Fragment.Nodes[0].(*ast.ExpressionTag)
	require.Equal(t, "x", tag.Expression.Src)
	require.Nil(t, tag.Expression.Program)
}

func TestRawContentMultibyteRunes(t *testing.T) {
	// Lowercasing "İ" changes its byte length; the closing-tag search must
	// not shift offsets on such content.
	src := "<script>let s = \"İ\";</script><p>x</p>"
	root := mustParse(t, src)

	require.NotNil(t, root.Instance)
	require.Equal(t, `let s = "İ";`, root.Instance.Content.Src)

	el, ok := root.Fragment.Nodes[0].(*ast.RegularElement)
	require.True(t, ok)
	require.Equal(t, "p", el.Name)
}

func TestRawTextMultibyteContent(t *testing.T) {
	src := "<div><script>let İ = \"ẞ\";</script></div>"
	root := mustParse(t, src)

	div := root.Fragment.Nodes[0].(*ast.RegularElement)
	script := div.Fragment.Nodes[0].(*ast.RegularElement)
	text := script.Fragment.Nodes[0].(*ast.Text)
	require.Equal(t, `let İ = "ẞ";`, text.Data)
}

func TestUppercaseClosingTag(t *testing.T) {
	src := `<script>let a = 1;</SCRIPT><p>x</p>`
	root := mustParse(t, src)
	require.NotNil(t, root.Instance)
	require.Equal(t, "let a = 1;", root.Instance.Content.Src)
}

func TestNestedScriptIsRawText(t *testing.T) {
	src := `<div><script>let s = "<span>"</script></div>`
	root := mustParse(t, src)

	require.Nil(t, root.Instance)
	div := root.Fragment.Nodes[0].(*ast.RegularElement)
	script := div.Fragment.Nodes[0].(*ast.RegularElement)
	require.Equal(t, "script", script.Name)

	text := script.Fragment.Nodes[0].(*ast.Text)
	require.Equal(t, `let s = "<span>"`, text.Data)
}

func TestNestedStyleIsRawText(t *testing.T) {
	src := `<div><style>a { color: red; }</style></div>`
	root := mustParse(t, src)
	require.Nil(t, root.CSS)
}

func TestTextareaSequence(t *testing.T) {
	src := `<textarea>before {value} after</textarea>`
	root := mustParse(t, src)

	ta := root.Fragment.Nodes[0].(*ast.RegularElement)
	require.Equal(t, "textarea", ta.Name)
	require.Len(t, ta.Fragment.Nodes, 3)

	require.Equal(t, "before ", ta.Fragment.Nodes[0].(*ast.Text).Data)
	tag := ta.Fragment.Nodes[1].(*ast.ExpressionTag)
	require.Equal(t, "value", tag.Expression.Src)
	require.Equal(t, " after", ta.Fragment.Nodes[2].(*ast.Text).Data)
}

func TestTextareaEntityDecoding(t *testing.T) {
	src := `<textarea>a &lt; b</textarea>`
	root := mustParse(t, src)
	ta := root.Fragment.Nodes[0].(*ast.RegularElement)
	require.Equal(t, "a < b", ta.Fragment.Nodes[0].(*ast.Text).Data)
}

func TestUnclosedScript(t *testing.T) {
	_, errs := parseLoose(t, `<script>let x = 1;`)
	require.NotEmpty(t, errs)
	require.Equal(t, ErrElementUnclosed, errs[0].Kind)
}

func TestTitleInsideHead(t *testing.T) {
	src := `<svelte:head><title>Page</title></svelte:head>`
	root := mustParse(t, src)

	head, ok := root.Fragment.Nodes[0].(*ast.SvelteHead)
	require.True(t, ok)
	_, ok = head.Fragment.Nodes[0].(*ast.TitleElement)
	require.True(t, ok)
}
