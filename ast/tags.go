package ast

// ExpressionTag is a bare {expression} interpolation.
type ExpressionTag struct {
	Span       Span
	Expression *Expression
}

func (n *ExpressionTag) NodeSpan() Span { return n.Span }

// HtmlTag is {@html expression}.
type HtmlTag struct {
	Span       Span
	Expression *Expression
}

func (n *HtmlTag) NodeSpan() Span { return n.Span }

// ConstTag is {@const pattern = expression}.
type ConstTag struct {
	Span       Span
	Pattern    *Pattern
	Expression *Expression
}

func (n *ConstTag) NodeSpan() Span { return n.Span }

// DebugTag is {@debug a, b}. An empty identifier list means {@debug}.
type DebugTag struct {
	Span        Span
	Identifiers []*Expression
}

func (n *DebugTag) NodeSpan() Span { return n.Span }

// RenderTag is {@render expression}; the expression must be a call.
type RenderTag struct {
	Span       Span
	Expression *Expression
}

func (n *RenderTag) NodeSpan() Span { return n.Span }

// AttachTag is {@attach expression} in attribute position.
type AttachTag struct {
	Span       Span
	Expression *Expression
}

func (n *AttachTag) NodeSpan() Span { return n.Span }
