package ast

// Text is a literal text run. Raw is the source slice; Data is the run
// with HTML character references decoded.
type Text struct {
	Span Span
	Raw  string
	Data string
}

func (n *Text) NodeSpan() Span { return n.Span }

// Comment is a markup comment. Data is the text between <!-- and -->.
type Comment struct {
	Span Span
	Data string
}

func (n *Comment) NodeSpan() Span { return n.Span }

// JsCommentKind distinguishes line and block comments found in scripts.
type JsCommentKind int

const (
	JsCommentLine JsCommentKind = iota
	JsCommentBlock
)

// JsComment is a comment collected from a script block.
type JsComment struct {
	Span  Span
	Kind  JsCommentKind
	Value string
}
