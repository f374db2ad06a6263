package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/levish0/lux-sub001/ast"
)

func parseStyles(t *testing.T, src string) []ast.StyleSheetChild {
	t.Helper()
	p := newParser(src, ParseOptions{})
	children := p.parseCSS(0, len(src))
	require.Empty(t, p.errs)
	return children
}

func firstComplex(t *testing.T, children []ast.StyleSheetChild) *ast.ComplexSelector {
	t.Helper()
	require.NotEmpty(t, children)
	rule, ok := children[0].(*ast.CssRule)
	require.True(t, ok)
	require.NotEmpty(t, rule.Prelude.Children)
	return rule.Prelude.Children[0]
}

func TestCSSRule(t *testing.T) {
	src := `a { color: red; }`
	children := parseStyles(t, src)
	require.Len(t, children, 1)

	rule := children[0].(*ast.CssRule)
	require.Equal(t, ast.NewSpan(0, len(src)), rule.Span)

	sel := rule.Prelude.Children[0].Children[0].Selectors[0].(*ast.TypeSelector)
	require.Equal(t, "a", sel.Name)

	require.Len(t, rule.Block.Children, 1)
	decl := rule.Block.Children[0].(*ast.CssDeclaration)
	require.Equal(t, "color", decl.Property)
	require.Equal(t, "red", decl.Value)
	require.Equal(t, ast.NewSpan(4, 14), decl.Span)
}

func TestCSSSelectorForms(t *testing.T) {
	tests := []struct {
		name string
		sel  string
		want func(t *testing.T, cs *ast.ComplexSelector)
	}{
		{"classes", ".foo.bar", func(t *testing.T, cs *ast.ComplexSelector) {
			sels := cs.Children[0].Selectors
			require.Len(t, sels, 2)
			require.Equal(t, "foo", sels[0].(*ast.ClassSelector).Name)
			require.Equal(t, "bar", sels[1].(*ast.ClassSelector).Name)
		}},
		{"id", "#app", func(t *testing.T, cs *ast.ComplexSelector) {
			require.Equal(t, "app", cs.Children[0].Selectors[0].(*ast.IdSelector).Name)
		}},
		{"universal", "*", func(t *testing.T, cs *ast.ComplexSelector) {
			require.Equal(t, "*", cs.Children[0].Selectors[0].(*ast.TypeSelector).Name)
		}},
		{"child and sibling", "div > span + i", func(t *testing.T, cs *ast.ComplexSelector) {
			require.Len(t, cs.Children, 3)
			require.Nil(t, cs.Children[0].Combinator)
			require.Equal(t, ">", cs.Children[1].Combinator.Name)
			require.Equal(t, "+", cs.Children[2].Combinator.Name)
		}},
		{"descendant", "ul li", func(t *testing.T, cs *ast.ComplexSelector) {
			require.Len(t, cs.Children, 2)
			require.Equal(t, " ", cs.Children[1].Combinator.Name)
		}},
		{"pseudo class", "a:hover", func(t *testing.T, cs *ast.ComplexSelector) {
			sels := cs.Children[0].Selectors
			require.Len(t, sels, 2)
			pc := sels[1].(*ast.PseudoClassSelector)
			require.Equal(t, "hover", pc.Name)
			require.Nil(t, pc.Args)
		}},
		{"pseudo class args", ":not(.foo, .bar)", func(t *testing.T, cs *ast.ComplexSelector) {
			pc := cs.Children[0].Selectors[0].(*ast.PseudoClassSelector)
			require.Equal(t, "not", pc.Name)
			require.Len(t, pc.Args.Children, 2)
		}},
		{"pseudo element", "p::before", func(t *testing.T, cs *ast.ComplexSelector) {
			pe := cs.Children[0].Selectors[1].(*ast.PseudoElementSelector)
			require.Equal(t, "before", pe.Name)
		}},
		{"nth child", "li:nth-child(2n+1)", func(t *testing.T, cs *ast.ComplexSelector) {
			pc := cs.Children[0].Selectors[1].(*ast.PseudoClassSelector)
			nth := pc.Args.Children[0].Children[0].Selectors[0].(*ast.Nth)
			require.Equal(t, "2n+1", nth.Value)
		}},
		{"nth even", "li:nth-child(even)", func(t *testing.T, cs *ast.ComplexSelector) {
			pc := cs.Children[0].Selectors[1].(*ast.PseudoClassSelector)
			nth := pc.Args.Children[0].Children[0].Selectors[0].(*ast.Nth)
			require.Equal(t, "even", nth.Value)
		}},
		{"attribute bare", "[data-x]", func(t *testing.T, cs *ast.ComplexSelector) {
			as := cs.Children[0].Selectors[0].(*ast.AttributeSelector)
			require.Equal(t, "data-x", as.Name)
			require.Empty(t, as.Matcher)
		}},
		{"attribute matcher flags", `[data-x^="y" i]`, func(t *testing.T, cs *ast.ComplexSelector) {
			as := cs.Children[0].Selectors[0].(*ast.AttributeSelector)
			require.Equal(t, "^=", as.Matcher)
			require.Equal(t, "y", as.Value)
			require.Equal(t, "i", as.Flags)
		}},
		{"nesting", "&:hover", func(t *testing.T, cs *ast.ComplexSelector) {
			_, ok := cs.Children[0].Selectors[0].(*ast.NestingSelector)
			require.True(t, ok)
		}},
		{"column combinator", "col || td", func(t *testing.T, cs *ast.ComplexSelector) {
			require.Equal(t, "||", cs.Children[1].Combinator.Name)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			children := parseStyles(t, tt.sel+" { color: red; }")
			tt.want(t, firstComplex(t, children))
		})
	}
}

func TestCSSSelectorList(t *testing.T) {
	children := parseStyles(t, "h1, h2, h3 { margin: 0; }")
	rule := children[0].(*ast.CssRule)
	require.Len(t, rule.Prelude.Children, 3)
}

func TestCSSAtRuleWithBlock(t *testing.T) {
	src := `@media (min-width: 600px) { a { color: red; } }`
	children := parseStyles(t, src)

	at := children[0].(*ast.CssAtrule)
	require.Equal(t, "media", at.Name)
	require.Equal(t, "(min-width: 600px)", at.Prelude)
	require.NotNil(t, at.Block)
	require.Len(t, at.Block.Children, 1)
	_, ok := at.Block.Children[0].(*ast.CssRule)
	require.True(t, ok)
}

func TestCSSAtRuleWithoutBlock(t *testing.T) {
	children := parseStyles(t, `@import "base.css";`)
	at := children[0].(*ast.CssAtrule)
	require.Equal(t, "import", at.Name)
	require.Equal(t, `"base.css"`, at.Prelude)
	require.Nil(t, at.Block)
}

func TestCSSKeyframes(t *testing.T) {
	src := `@keyframes fade { 0% { opacity: 0; } 100% { opacity: 1; } }`
	children := parseStyles(t, src)

	at := children[0].(*ast.CssAtrule)
	require.Equal(t, "keyframes", at.Name)
	require.Equal(t, "fade", at.Prelude)
	require.Len(t, at.Block.Children, 2)

	from := at.Block.Children[0].(*ast.CssRule)
	pct := from.Prelude.Children[0].Children[0].Selectors[0].(*ast.Percentage)
	require.Equal(t, "0%", pct.Value)
}

func TestCSSNestedRule(t *testing.T) {
	src := `a { color: red; &:hover { color: blue; } }`
	children := parseStyles(t, src)

	rule := children[0].(*ast.CssRule)
	require.Len(t, rule.Block.Children, 2)
	_, ok := rule.Block.Children[0].(*ast.CssDeclaration)
	require.True(t, ok)
	nested, ok := rule.Block.Children[1].(*ast.CssRule)
	require.True(t, ok)
	_, ok = nested.Prelude.Children[0].Children[0].Selectors[0].(*ast.NestingSelector)
	require.True(t, ok)
}

func TestCSSCustomPropertyEmptyValue(t *testing.T) {
	children := parseStyles(t, `a { --empty: ; color: red; }`)
	rule := children[0].(*ast.CssRule)
	decl := rule.Block.Children[0].(*ast.CssDeclaration)
	require.Equal(t, "--empty", decl.Property)
	require.Equal(t, "", decl.Value)
}

func TestCSSURLValue(t *testing.T) {
	children := parseStyles(t, `a { background: url(img;x.png) no-repeat; }`)
	rule := children[0].(*ast.CssRule)
	decl := rule.Block.Children[0].(*ast.CssDeclaration)
	require.Equal(t, "url(img;x.png) no-repeat", decl.Value)
}

func TestCSSComments(t *testing.T) {
	src := "/* top */ a { /* inner */ color: red; } <!-- legacy --> b { color: blue; }"
	children := parseStyles(t, src)
	require.Len(t, children, 2)
}

func TestCSSErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind ErrorKind
	}{
		{"empty declaration", `a { color: ; }`, ErrCSSEmptyDeclaration},
		{"bad identifier", `1foo { color: red; }`, ErrCSSExpectedIdentifier},
		{"unterminated block", `a { color: red;`, ErrExpectedToken},
		{"unterminated selector", `a, `, ErrUnexpectedEOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParser(tt.src, ParseOptions{Loose: true})
			p.parseCSS(0, len(tt.src))
			require.NotEmpty(t, p.errs)
			require.Equal(t, tt.kind, p.errs[0].Kind)
		})
	}
}
