package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchange(t *testing.T) {
	old := Leaf(TokLE, "<=")
	guard := NewComparison(true, NewID("x"), TokLE, NewIntLit(5))
	tree := New(KindExpr, NewAtomicExpr(guard))

	got, err := Exchange(tree, old, Leaf(TokGT, ">"), 0)
	require.NoError(t, err)

	want := New(KindExpr, NewAtomicExpr(NewComparison(true, NewID("x"), TokGT, NewIntLit(5))))
	assert.True(t, want.Equal(got), "Diff:\n%s", Diff(want, got))

	// The original tree must be untouched.
	assert.True(t, guard.Children[1].Equal(Leaf(TokLE, "<=")))
}

func TestExchange_OccurrenceSelectsCorrectMatch(t *testing.T) {
	x := NewID("x")
	tree := New(KindExpr, x.Clone(), x.Clone(), x.Clone())

	got, err := Exchange(tree, x, NewID("y"), 1)
	require.NoError(t, err)

	want := New(KindExpr, NewID("x"), NewID("y"), NewID("x"))
	assert.True(t, want.Equal(got), "Diff:\n%s", Diff(want, got))
}

func TestExchange_OccurrenceOutOfRange(t *testing.T) {
	tree := New(KindExpr, NewID("x"))
	_, err := Exchange(tree, NewID("x"), NewID("y"), 3)
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	// Remove splices out exactly the one matching child; it does not
	// also clean up a now-dangling separator. Colon bookkeeping around
	// an attribute list is the calling operator's responsibility (see
	// package mutate's invert_committed_location/invert_urgent_location,
	// which splice the attribute list directly for that reason).
	initial := New(KindInitialAttr, Leaf(TokKeyword, "initial"))
	urgent := New(KindUrgentAttr, Leaf(TokKeyword, "urgent"))
	tree := NewAttributes(initial, urgent)

	got, err := Remove(tree, initial, 0)
	require.NoError(t, err)

	want := New(KindAttributes, Leaf(TokLBrace, "{"), Leaf(TokColon, ":"), urgent, Leaf(TokRBrace, "}"))
	assert.True(t, want.Equal(got), "Diff:\n%s", Diff(want, got))
}

func TestRemove_DoesNotDescendIntoItsOwnMatch(t *testing.T) {
	// A node nested inside a matching subtree must not itself be
	// counted: removing the outer atomic_expr must not also try to
	// remove the inner id it wraps.
	inner := NewID("x")
	outer := NewAtomicExpr(New(KindID, Leaf(TokIdent, "x")))
	tree := New(KindExpr, outer.Clone(), inner.Clone())

	got, err := Remove(tree, outer, 0)
	require.NoError(t, err)

	want := New(KindExpr, NewID("x"))
	assert.True(t, want.Equal(got), "Diff:\n%s", Diff(want, got))
}

func TestCountOccurrences(t *testing.T) {
	x := NewID("x")
	tree := New(KindExpr, x.Clone(), NewAtomicExpr(x.Clone()), x.Clone())

	assert.Equal(t, 3, CountOccurrences(tree, x))
	assert.Equal(t, 0, CountOccurrences(tree, NewID("y")))
}
