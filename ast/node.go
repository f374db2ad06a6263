// Package ast defines the parse tree produced for a single-file component:
// a fragment of markup nodes interleaved with control-flow blocks and
// expression tags, plus optional scripts, a stylesheet and component
// options. Every node carries a half-open byte span into the original
// source.
package ast

// Fragment is an ordered sequence of sibling nodes sharing one parent
// context. Order is document order and significant.
type Fragment struct {
	Nodes []FragmentNode
}

// FragmentNode is the closed set of nodes that can appear in a Fragment.
// The fragmentNode marker keeps the set closed so that switches over node
// kinds stay exhaustive.
type FragmentNode interface {
	NodeSpan() Span
	fragmentNode()
}

func (n *Text) fragmentNode()          {}
func (n *Comment) fragmentNode()       {}
func (n *ExpressionTag) fragmentNode() {}
func (n *HtmlTag) fragmentNode()       {}
func (n *ConstTag) fragmentNode()      {}
func (n *DebugTag) fragmentNode()      {}
func (n *RenderTag) fragmentNode()     {}

func (n *IfBlock) fragmentNode()      {}
func (n *EachBlock) fragmentNode()    {}
func (n *AwaitBlock) fragmentNode()   {}
func (n *KeyBlock) fragmentNode()     {}
func (n *SnippetBlock) fragmentNode() {}

func (n *RegularElement) fragmentNode()   {}
func (n *Component) fragmentNode()        {}
func (n *SvelteElement) fragmentNode()    {}
func (n *SvelteComponent) fragmentNode()  {}
func (n *SvelteSelf) fragmentNode()       {}
func (n *SlotElement) fragmentNode()      {}
func (n *TitleElement) fragmentNode()     {}
func (n *SvelteHead) fragmentNode()       {}
func (n *SvelteBody) fragmentNode()       {}
func (n *SvelteWindow) fragmentNode()     {}
func (n *SvelteDocument) fragmentNode()   {}
func (n *SvelteFragment) fragmentNode()   {}
func (n *SvelteBoundary) fragmentNode()   {}
func (n *SvelteOptionsRaw) fragmentNode() {}
