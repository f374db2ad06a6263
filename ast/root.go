package ast

// ScriptContext distinguishes instance scripts from module scripts.
type ScriptContext int

const (
	ScriptContextDefault ScriptContext = iota
	ScriptContextModule
)

func (c ScriptContext) String() string {
	if c == ScriptContextModule {
		return "module"
	}
	return "default"
}

// Script is a top-level <script> block.
type Script struct {
	Span       Span
	Context    ScriptContext
	Content    *Program
	Attributes []AttributeNode
}

// Root is the result of parsing one component file.
type Root struct {
	Span     Span
	Options  *SvelteOptions
	Fragment *Fragment
	CSS      *StyleSheet
	Instance *Script
	Module   *Script
	Comments []JsComment
	TS       bool
}

// Namespace is the markup namespace selected via component options.
type Namespace int

const (
	NamespaceHTML Namespace = iota
	NamespaceSVG
	NamespaceMathML
)

// ShadowMode is the custom-element shadow DOM mode.
type ShadowMode int

const (
	ShadowOpen ShadowMode = iota
	ShadowNone
)

// PropType is the declared type of a custom-element property.
type PropType int

const (
	PropArray PropType = iota
	PropBoolean
	PropNumber
	PropObject
	PropString
)

// CustomElementProp configures one custom-element property.
type CustomElementProp struct {
	Attribute string
	Reflect   *bool
	Type      *PropType
}

// CustomElementOptions configures custom-element compilation.
type CustomElementOptions struct {
	Tag    string
	TagSet bool
	Shadow *ShadowMode
	Props  map[string]CustomElementProp
	Extend *Expression
}

// SvelteOptions is the structured form of the <svelte:options> element.
type SvelteOptions struct {
	Span               Span
	Runes              *bool
	Immutable          *bool
	Accessors          *bool
	PreserveWhitespace *bool
	Namespace          *Namespace
	CSSInjected        bool
	CustomElement      *CustomElementOptions
	Attributes         []AttributeNode
}
