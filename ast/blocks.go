package ast

// IfBlock is {#if test}...{:else if}...{:else}...{/if}. An {:else if}
// continuation is represented as a nested IfBlock with Elseif set, wrapped
// in a singleton alternate fragment.
type IfBlock struct {
	Span       Span
	Elseif     bool
	Test       *Expression
	Consequent *Fragment
	Alternate  *Fragment
}

func (n *IfBlock) NodeSpan() Span { return n.Span }

// EachBlock is {#each expression as context, index (key)}...{:else}...{/each}.
// Context, Index and Key are all optional.
type EachBlock struct {
	Span       Span
	Expression *Expression
	Context    *Pattern
	Body       *Fragment
	Fallback   *Fragment
	Index      string
	Key        *Expression
}

func (n *EachBlock) NodeSpan() Span { return n.Span }

// AwaitBlock is {#await expression}...{:then value}...{:catch error}...{/await}.
// The then/catch clauses may also be supplied inline in the opening tag, in
// which case the corresponding continuation may not appear again.
type AwaitBlock struct {
	Span       Span
	Expression *Expression
	Value      *Pattern
	Error      *Pattern
	Pending    *Fragment
	Then       *Fragment
	Catch      *Fragment
}

func (n *AwaitBlock) NodeSpan() Span { return n.Span }

// KeyBlock is {#key expression}...{/key}.
type KeyBlock struct {
	Span       Span
	Expression *Expression
	Fragment   *Fragment
}

func (n *KeyBlock) NodeSpan() Span { return n.Span }

// SnippetBlock is {#snippet name<T>(params)}...{/snippet}.
type SnippetBlock struct {
	Span       Span
	Expression *Expression
	Parameters []*Pattern
	TypeParams string
	Body       *Fragment
}

func (n *SnippetBlock) NodeSpan() Span { return n.Span }
