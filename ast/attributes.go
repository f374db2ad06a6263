package ast

// AttributeNode is the closed set of constructs that can appear in
// attribute position on an element.
type AttributeNode interface {
	AttrSpan() Span
	attributeNode()
}

func (a *Attribute) attributeNode()           {}
func (a *SpreadAttribute) attributeNode()     {}
func (a *AttachTag) attributeNode()           {}
func (a *BindDirective) attributeNode()       {}
func (a *ClassDirective) attributeNode()      {}
func (a *StyleDirective) attributeNode()      {}
func (a *OnDirective) attributeNode()         {}
func (a *TransitionDirective) attributeNode() {}
func (a *AnimateDirective) attributeNode()    {}
func (a *UseDirective) attributeNode()        {}
func (a *LetDirective) attributeNode()        {}

func (a *AttachTag) AttrSpan() Span { return a.Span }

// AttributeValue is the value of a plain attribute: True for a bare
// boolean attribute, a single expression, or a sequence of text and
// expression chunks.
type AttributeValue struct {
	// True is set for a bare name with no value.
	True bool
	// Expression is set when the value is a single {expr} with no
	// surrounding text.
	Expression *ExpressionTag
	// Sequence holds mixed text/expression chunks of a quoted or unquoted
	// value.
	Sequence []AttributeSequenceValue
}

// AttributeSequenceValue is one chunk of a mixed attribute value: exactly
// one of Text or Expression is set.
type AttributeSequenceValue struct {
	Text       *Text
	Expression *ExpressionTag
}

// Attribute is name, name=value, or the {name} shorthand (whose name is
// taken from the bare identifier expression).
type Attribute struct {
	Span    Span
	Name    string
	NameLoc SourceLocation
	Value   AttributeValue
}

func (a *Attribute) AttrSpan() Span { return a.Span }

// SpreadAttribute is {...expression}.
type SpreadAttribute struct {
	Span       Span
	Expression *Expression
}

func (a *SpreadAttribute) AttrSpan() Span { return a.Span }

// BindDirective is bind:name={expression}; without a value the expression
// is the implicit identifier of the directive name.
type BindDirective struct {
	Span       Span
	Name       string
	NameLoc    SourceLocation
	Expression *Expression
	Modifiers  []string
}

func (a *BindDirective) AttrSpan() Span { return a.Span }

// ClassDirective is class:name={expression}, implicit identifier when the
// value is omitted.
type ClassDirective struct {
	Span       Span
	Name       string
	NameLoc    SourceLocation
	Expression *Expression
	Modifiers  []string
}

func (a *ClassDirective) AttrSpan() Span { return a.Span }

// StyleDirective is style:name[|important]={value}; unlike the other
// directives it keeps its full attribute value.
type StyleDirective struct {
	Span      Span
	Name      string
	NameLoc   SourceLocation
	Value     AttributeValue
	Modifiers []string
}

func (a *StyleDirective) AttrSpan() Span { return a.Span }

// OnDirective is on:name|modifiers={handler}.
type OnDirective struct {
	Span       Span
	Name       string
	NameLoc    SourceLocation
	Expression *Expression
	Modifiers  []string
}

func (a *OnDirective) AttrSpan() Span { return a.Span }

// TransitionDirective covers transition:, in: and out:.
type TransitionDirective struct {
	Span       Span
	Name       string
	NameLoc    SourceLocation
	Expression *Expression
	Modifiers  []string
	Intro      bool
	Outro      bool
}

func (a *TransitionDirective) AttrSpan() Span { return a.Span }

// AnimateDirective is animate:name={params}.
type AnimateDirective struct {
	Span       Span
	Name       string
	NameLoc    SourceLocation
	Expression *Expression
	Modifiers  []string
}

func (a *AnimateDirective) AttrSpan() Span { return a.Span }

// UseDirective is use:action={params}.
type UseDirective struct {
	Span       Span
	Name       string
	NameLoc    SourceLocation
	Expression *Expression
	Modifiers  []string
}

func (a *UseDirective) AttrSpan() Span { return a.Span }

// LetDirective is let:name={expression}.
type LetDirective struct {
	Span       Span
	Name       string
	NameLoc    SourceLocation
	Expression *Expression
	Modifiers  []string
}

func (a *LetDirective) AttrSpan() Span { return a.Span }
