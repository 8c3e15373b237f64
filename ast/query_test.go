package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func exampleSystem() *Node {
	// clock:1:x  clock:2:y
	// location:P:l0{initial:}
	// edge:P:l0:l0:a{provided: x<=5 && y[1]>2}
	clockX := New(KindClockDecl, Leaf(TokKeyword, "clock"), Leaf(TokColon, ":"), NewIntLit(1), Leaf(TokColon, ":"), NewID("x"))
	clockY := New(KindClockDecl, Leaf(TokKeyword, "clock"), Leaf(TokColon, ":"), NewIntLit(2), Leaf(TokColon, ":"), NewID("y"))

	guard := NewConjunction(
		NewAtomicExpr(NewComparison(true, NewID("x"), TokLE, NewIntLit(5))),
		NewAtomicExpr(NewComparison(true, NewIndexedClock("y", 1), TokGT, NewIntLit(2))),
	)
	edge := New(KindEdgeDecl,
		Leaf(TokKeyword, "edge"), Leaf(TokColon, ":"), NewID("P"), Leaf(TokColon, ":"),
		NewID("l0"), Leaf(TokColon, ":"), NewID("l0"), Leaf(TokColon, ":"), NewID("a"),
		NewAttributes(New(KindProvidedAttr, Leaf(TokKeyword, "provided"), Leaf(TokColon, ":"), guard)),
	)

	return New(KindSystemDecl, clockX, clockY, edge)
}

func TestAllClocks(t *testing.T) {
	sys := exampleSystem()
	clocks := AllClocks(sys)

	want := []*Node{
		NewIndexedClock("x", 0),
		NewIndexedClock("y", 0),
		NewIndexedClock("y", 1),
	}
	if assert.Len(t, clocks, len(want)) {
		for i := range want {
			assert.True(t, want[i].Equal(clocks[i]), "clock %d: Diff:\n%s", i, Diff(want[i], clocks[i]))
		}
	}
}

func TestIsClockExpr(t *testing.T) {
	sys := exampleSystem()

	clockExpr := NewComparison(true, NewID("x"), TokLE, NewIntLit(5))
	nonClockExpr := NewComparison(false, NewID("n"), TokLE, NewIntLit(5))

	assert.True(t, IsClockExpr(sys, clockExpr))
	assert.False(t, IsClockExpr(sys, nonClockExpr))
}

func TestIsClockExpr_IndexedForm(t *testing.T) {
	sys := exampleSystem()
	expr := NewComparison(true, NewIndexedClock("y", 1), TokGT, NewIntLit(2))
	assert.True(t, IsClockExpr(sys, expr))
}

func TestContains(t *testing.T) {
	x := NewID("x")
	tree := New(KindExpr, NewAtomicExpr(x.Clone()))

	assert.True(t, Contains(tree, x))
	assert.False(t, Contains(tree, NewID("z")))
	assert.True(t, Contains(tree, tree))
}

func TestIsDiagonal(t *testing.T) {
	diag := NewIntTermOp(NewID("x"), "-", NewID("y"))
	bare := NewIntLit(3)

	assert.True(t, IsDiagonal(diag))
	assert.False(t, IsDiagonal(bare))
	assert.False(t, IsDiagonal(nil))
}

func TestIsInitial(t *testing.T) {
	withInitial := New(KindLocationDecl,
		Leaf(TokKeyword, "location"), Leaf(TokColon, ":"), NewID("P"), Leaf(TokColon, ":"), NewID("l0"),
		NewAttributes(New(KindInitialAttr, Leaf(TokKeyword, "initial"))),
	)
	without := New(KindLocationDecl,
		Leaf(TokKeyword, "location"), Leaf(TokColon, ":"), NewID("P"), Leaf(TokColon, ":"), NewID("l1"),
		NewAttributes(),
	)

	assert.True(t, IsInitial(withInitial))
	assert.False(t, IsInitial(without))
}
