package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/levish0/lux-sub001/ast"
)

func TestIfBlock(t *testing.T) {
	src := `{#if visible}<p>yes</p>{/if}`
	root := mustParse(t, src)

	block, ok := root.Fragment.Nodes[0].(*ast.IfBlock)
	require.True(t, ok)
	require.Equal(t, ast.NewSpan(0, len(src)), block.Span)
	require.False(t, block.Elseif)
	require.Equal(t, "visible", block.Test.Src)
	require.Len(t, block.Consequent.Nodes, 1)
	require.Nil(t, block.Alternate)
}

func TestIfElseBlock(t *testing.T) {
	src := `{#if a}x{:else}y{/if}`
	root := mustParse(t, src)

	block := root.Fragment.Nodes[0].(*ast.IfBlock)
	require.Len(t, block.Consequent.Nodes, 1)
	require.Len(t, block.Alternate.Nodes, 1)
	require.Equal(t, "x", block.Consequent.Nodes[0].(*ast.Text).Data)
	require.Equal(t, "y", block.Alternate.Nodes[0].(*ast.Text).Data)
}

func TestElseIfChain(t *testing.T) {
	src := `{#if a}x{:else if b}y{:else}z{/if}`
	root := mustParse(t, src)

	outer := root.Fragment.Nodes[0].(*ast.IfBlock)
	require.Equal(t, "a", outer.Test.Src)
	require.Equal(t, "x", outer.Consequent.Nodes[0].(*ast.Text).Data)

	// The alternate is a singleton fragment holding the nested block.
	require.Len(t, outer.Alternate.Nodes, 1)
	inner, ok := outer.Alternate.Nodes[0].(*ast.IfBlock)
	require.True(t, ok)
	require.True(t, inner.Elseif)
	require.Equal(t, "b", inner.Test.Src)
	require.Equal(t, "y", inner.Consequent.Nodes[0].(*ast.Text).Data)
	require.Equal(t, "z", inner.Alternate.Nodes[0].(*ast.Text).Data)

	// Both blocks close at the shared {/if}.
	require.Equal(t, len(src), outer.Span.End)
	require.Equal(t, len(src), inner.Span.End)
}

func TestDoubleElse(t *testing.T) {
	root, errs := ParseWithDiagnostics(`{#if a}x{:else}y{:else}z{/if}`, ParseOptions{Loose: true})
	require.Nil(t, root)
	require.NotEmpty(t, errs)
	require.Equal(t, ErrBlockInvalidPlacement, errs[len(errs)-1].Kind)
}

func TestEachBlock(t *testing.T) {
	src := `{#each items as item, i (item.id)}<li>{item.name}</li>{/each}`
	root := mustParse(t, src)

	block, ok := root.Fragment.Nodes[0].(*ast.EachBlock)
	require.True(t, ok)
	require.Equal(t, "items", block.Expression.Src)
	require.NotNil(t, block.Context)
	require.Equal(t, []string{"item"}, block.Context.Names)
	require.Equal(t, "i", block.Index)
	require.NotNil(t, block.Key)
	require.Equal(t, "item.id", block.Key.Src)
	require.Len(t, block.Body.Nodes, 1)
	require.Nil(t, block.Fallback)
}

func TestEachBlockDestructuring(t *testing.T) {
	src := `{#each pairs as [key, value]}{key}{/each}`
	root := mustParse(t, src)

	block := root.Fragment.Nodes[0].(*ast.EachBlock)
	require.Equal(t, []string{"key", "value"}, block.Context.Names)
}

func TestEachBlockWithoutContext(t *testing.T) {
	src := `{#each items}<hr>{/each}`
	root := mustParse(t, src)

	block := root.Fragment.Nodes[0].(*ast.EachBlock)
	require.Equal(t, "items", block.Expression.Src)
	require.Nil(t, block.Context)
}

func TestEachBlockFallback(t *testing.T) {
	src := `{#each items as item}{item}{:else}empty{/each}`
	root := mustParse(t, src)

	block := root.Fragment.Nodes[0].(*ast.EachBlock)
	require.Len(t, block.Body.Nodes, 1)
	require.Len(t, block.Fallback.Nodes, 1)
	require.Equal(t, "empty", block.Fallback.Nodes[0].(*ast.Text).Data)
}

func TestEachBlockBadPatternLoose(t *testing.T) {
	root, errs := ParseWithDiagnostics(`{#each items as true}{/each}`, ParseOptions{Loose: true})
	require.NotNil(t, root)
	require.NotEmpty(t, errs)
	require.Equal(t, ErrExpressionSyntax, errs[0].Kind)

	// The diagnostic is recorded and the block still assembled with the
	// raw pattern source.
	block := root.Fragment.Nodes[0].(*ast.EachBlock)
	require.Equal(t, "true", block.Context.Src)
	require.Nil(t, block.Context.Names)
}

func TestEachBlockUnterminatedPatternLoose(t *testing.T) {
	root, errs := ParseWithDiagnostics(`{#each items as {a`, ParseOptions{Loose: true})
	require.NotNil(t, root)
	require.NotEmpty(t, errs)
	require.Equal(t, ErrUnexpectedEOF, errs[0].Kind)

	block := root.Fragment.Nodes[0].(*ast.EachBlock)
	require.Equal(t, "items", block.Expression.Src)
	require.Nil(t, block.Context)
}

func TestSnippetUnterminatedParamsLoose(t *testing.T) {
	root, errs := ParseWithDiagnostics(`{#snippet row(item`, ParseOptions{Loose: true})
	require.NotNil(t, root)
	require.NotEmpty(t, errs)
	require.Equal(t, ErrUnexpectedEOF, errs[0].Kind)

	block := root.Fragment.Nodes[0].(*ast.SnippetBlock)
	require.Equal(t, "row", block.Expression.Src)
}

func TestAwaitBlockPhases(t *testing.T) {
	src := `{#await promise}w{:then value}t{:catch err}c{/await}`
	root := mustParse(t, src)

	block, ok := root.Fragment.Nodes[0].(*ast.AwaitBlock)
	require.True(t, ok)
	require.Equal(t, "promise", block.Expression.Src)
	require.Equal(t, []string{"value"}, block.Value.Names)
	require.Equal(t, []string{"err"}, block.Error.Names)
	require.Equal(t, "w", block.Pending.Nodes[0].(*ast.Text).Data)
	require.Equal(t, "t", block.Then.Nodes[0].(*ast.Text).Data)
	require.Equal(t, "c", block.Catch.Nodes[0].(*ast.Text).Data)
}

func TestAwaitBlockInlineThen(t *testing.T) {
	src := `{#await promise then value}{value}{/await}`
	root := mustParse(t, src)

	block := root.Fragment.Nodes[0].(*ast.AwaitBlock)
	require.Equal(t, "promise", block.Expression.Src)
	require.Equal(t, []string{"value"}, block.Value.Names)
	require.Nil(t, block.Pending)
	require.Len(t, block.Then.Nodes, 1)
}

func TestAwaitBlockInlineCatch(t *testing.T) {
	src := `{#await promise catch err}{err}{/await}`
	root := mustParse(t, src)

	block := root.Fragment.Nodes[0].(*ast.AwaitBlock)
	require.Equal(t, []string{"err"}, block.Error.Names)
	require.Len(t, block.Catch.Nodes, 1)
}

func TestAwaitThenAfterCatch(t *testing.T) {
	root, errs := ParseWithDiagnostics(
		`{#await p}x{:catch e}y{:then v}z{/await}`, ParseOptions{Loose: true})
	require.Nil(t, root)
	require.Equal(t, ErrBlockInvalidPlacement, errs[len(errs)-1].Kind)
}

func TestKeyBlock(t *testing.T) {
	src := `{#key id}<span>{id}</span>{/key}`
	root := mustParse(t, src)

	block, ok := root.Fragment.Nodes[0].(*ast.KeyBlock)
	require.True(t, ok)
	require.Equal(t, "id", block.Expression.Src)
	require.Len(t, block.Fragment.Nodes, 1)
}

func TestSnippetBlock(t *testing.T) {
	src := `{#snippet row(item, index)}<td>{item.name}</td>{/snippet}`
	root := mustParse(t, src)

	block, ok := root.Fragment.Nodes[0].(*ast.SnippetBlock)
	require.True(t, ok)
	require.Equal(t, "row", block.Expression.Src)
	require.Len(t, block.Parameters, 2)
	require.Equal(t, []string{"item"}, block.Parameters[0].Names)
	require.Equal(t, []string{"index"}, block.Parameters[1].Names)
	require.Len(t, block.Body.Nodes, 1)
}

func TestSnippetBlockTypeParams(t *testing.T) {
	src := `{#snippet row<T>(item)}{/snippet}`
	root, err := Parse(src, ParseOptions{TypeScript: true})
	require.NoError(t, err)

	block := root.Fragment.Nodes[0].(*ast.SnippetBlock)
	require.Equal(t, "T", block.TypeParams)
	require.Len(t, block.Parameters, 1)
}

func TestUnknownBlockType(t *testing.T) {
	_, errs := parseLoose(t, `{#loop items}{/loop}`)
	require.NotEmpty(t, errs)
	require.Equal(t, ErrExpectedBlockType, errs[0].Kind)
}

func TestMismatchedBlockClose(t *testing.T) {
	root, errs := ParseWithDiagnostics(`{#if a}x{/each}`, ParseOptions{Loose: true})
	require.Nil(t, root)
	require.Equal(t, ErrBlockUnexpectedClose, errs[len(errs)-1].Kind)
}

func TestBlockCloseWithoutOpen(t *testing.T) {
	root, errs := ParseWithDiagnostics(`{/if}`, ParseOptions{Loose: true})
	require.Nil(t, root)
	require.Equal(t, ErrBlockUnexpectedClose, errs[len(errs)-1].Kind)
}

func TestUnclosedBlock(t *testing.T) {
	_, errs := parseLoose(t, `{#if a}x`)
	require.NotEmpty(t, errs)
	require.Equal(t, ErrBlockUnclosed, errs[0].Kind)
}

func TestElementAutoClosesAtContinuation(t *testing.T) {
	src := `{#if a}<p>text{:else}b{/if}`
	root := mustParse(t, src)

	block := root.Fragment.Nodes[0].(*ast.IfBlock)
	p := block.Consequent.Nodes[0].(*ast.RegularElement)
	// The open p closes where the continuation starts.
	require.Equal(t, 14, p.Span.End)
}

func TestElementLeftOpenAtContinuation(t *testing.T) {
	_, errs := parseLoose(t, `{#if a}<span>x{:else}b{/if}`)
	require.NotEmpty(t, errs)
	require.Equal(t, ErrElementUnclosed, errs[0].Kind)
}
