package ast

// BaseElement carries the fields shared by every element-like node.
type BaseElement struct {
	Span       Span
	Name       string
	NameLoc    SourceLocation
	Attributes []AttributeNode
	Fragment   *Fragment
}

func (e *BaseElement) NodeSpan() Span { return e.Span }

// RegularElement is a plain lowercase HTML element.
type RegularElement struct {
	BaseElement
}

// Component is a capitalized or dotted component reference.
type Component struct {
	BaseElement
}

// SvelteElement is <svelte:element this={tag}>. Tag is the extracted this
// value.
type SvelteElement struct {
	BaseElement
	Tag *Expression
}

// SvelteComponent is <svelte:component this={expr}>.
type SvelteComponent struct {
	BaseElement
	Expression *Expression
}

// SvelteSelf is <svelte:self>.
type SvelteSelf struct {
	BaseElement
}

// SlotElement is <slot>, except under a shadow-root template.
type SlotElement struct {
	BaseElement
}

// TitleElement is <title> when it appears inside head content.
type TitleElement struct {
	BaseElement
}

// SvelteHead is <svelte:head>, valid only at the top level.
type SvelteHead struct {
	BaseElement
}

// SvelteBody is <svelte:body>, valid only at the top level.
type SvelteBody struct {
	BaseElement
}

// SvelteWindow is <svelte:window>, valid only at the top level.
type SvelteWindow struct {
	BaseElement
}

// SvelteDocument is <svelte:document>, valid only at the top level.
type SvelteDocument struct {
	BaseElement
}

// SvelteFragment is <svelte:fragment>.
type SvelteFragment struct {
	BaseElement
}

// SvelteBoundary is <svelte:boundary>.
type SvelteBoundary struct {
	BaseElement
}

// SvelteOptionsRaw is the unprocessed <svelte:options> element; the
// structured form lives on Root.Options.
type SvelteOptionsRaw struct {
	BaseElement
}
