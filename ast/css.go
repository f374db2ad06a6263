package ast

// StyleSheet is the parsed top-level <style> block.
type StyleSheet struct {
	Span       Span
	Attributes []*Attribute
	Children   []StyleSheetChild
	Content    CssContent
}

// CssContent records the raw style text and its span in the source.
type CssContent struct {
	Start  int
	End    int
	Styles string
}

// StyleSheetChild is a top-level rule or at-rule.
type StyleSheetChild interface{ styleSheetChild() }

func (r *CssRule) styleSheetChild()   {}
func (r *CssAtrule) styleSheetChild() {}

// CssBlockChild is a declaration, nested rule, or at-rule inside a block.
type CssBlockChild interface{ cssBlockChild() }

func (d *CssDeclaration) cssBlockChild() {}
func (r *CssRule) cssBlockChild()        {}
func (r *CssAtrule) cssBlockChild()      {}

// CssRule is selector-list { block }.
type CssRule struct {
	Span    Span
	Prelude *SelectorList
	Block   *CssBlock
}

// CssAtrule is @name prelude followed by a block or a semicolon.
type CssAtrule struct {
	Span    Span
	Name    string
	Prelude string
	Block   *CssBlock
}

// CssBlock is { ...children }.
type CssBlock struct {
	Span     Span
	Children []CssBlockChild
}

// CssDeclaration is property: value. An empty value is only legal for
// custom properties.
type CssDeclaration struct {
	Span     Span
	Property string
	Value    string
}

// SelectorList is a comma-separated list of complex selectors.
type SelectorList struct {
	Span     Span
	Children []*ComplexSelector
}

// ComplexSelector is a combinator-separated chain of relative selectors.
type ComplexSelector struct {
	Span     Span
	Children []*RelativeSelector
}

// RelativeSelector is an optional leading combinator plus a run of simple
// selectors.
type RelativeSelector struct {
	Span       Span
	Combinator *CssCombinator
	Selectors  []SimpleSelector
}

// CssCombinator is one of "+", "~", ">", "||" or a whitespace descendant
// combinator (name " ").
type CssCombinator struct {
	Span Span
	Name string
}

// SimpleSelector is the closed set of atomic selector forms.
type SimpleSelector interface{ simpleSelector() }

func (s *TypeSelector) simpleSelector()          {}
func (s *IdSelector) simpleSelector()            {}
func (s *ClassSelector) simpleSelector()         {}
func (s *AttributeSelector) simpleSelector()     {}
func (s *PseudoClassSelector) simpleSelector()   {}
func (s *PseudoElementSelector) simpleSelector() {}
func (s *NestingSelector) simpleSelector()       {}
func (s *Percentage) simpleSelector()            {}
func (s *Nth) simpleSelector()                   {}

type TypeSelector struct {
	Span Span
	Name string
}

type IdSelector struct {
	Span Span
	Name string
}

type ClassSelector struct {
	Span Span
	Name string
}

// AttributeSelector is [name matcher value flags].
type AttributeSelector struct {
	Span    Span
	Name    string
	Matcher string
	Value   string
	Flags   string
}

// PseudoClassSelector is :name, optionally with a nested selector-list
// argument.
type PseudoClassSelector struct {
	Span Span
	Name string
	Args *SelectorList
}

type PseudoElementSelector struct {
	Span Span
	Name string
}

type NestingSelector struct {
	Span Span
	Name string
}

type Percentage struct {
	Span  Span
	Value string
}

type Nth struct {
	Span  Span
	Value string
}
