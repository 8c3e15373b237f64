package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tamut/tamut/ast"
)

func chainedGuard() *ast.Node {
	// provided: x<=5<=y   (chained form: a<=b<=c)
	chain := ast.New(ast.KindAtomicExpr, ast.New(ast.KindClockExpr,
		ast.NewID("x"), ast.Leaf(ast.TokLE, "<="), ast.NewIntLit(5),
		ast.Leaf(ast.TokLE, "<="), ast.NewID("y"),
	))
	return ast.New(ast.KindExpr, chain)
}

func TestSimplify_SplitsChain(t *testing.T) {
	got := Simplify(chainedGuard())
	exprs := ast.FindAll(got, ast.KindExpr)
	if !assert.Len(t, exprs, 1) {
		return
	}
	atoms := ast.FindAll(exprs[0], ast.KindAtomicExpr)
	assert.Len(t, atoms, 2, "a chained a<=b<=c splits into two atomic_exprs")

	for _, a := range atoms {
		inner := a.Child(0)
		assert.Len(t, inner.Children, 3, "every atomic_expr has at most one comparator after Simplify")
	}
}

func TestSimplify_LeavesSingleComparisonsAlone(t *testing.T) {
	guard := ast.New(ast.KindExpr,
		ast.New(ast.KindAtomicExpr, ast.New(ast.KindClockExpr, ast.NewID("x"), ast.Leaf(ast.TokLE, "<="), ast.NewIntLit(5))),
	)
	got := Simplify(guard)
	assert.True(t, guard.Equal(got))
}

func TestBreakUpEquals(t *testing.T) {
	guard := ast.New(ast.KindExpr,
		ast.New(ast.KindAtomicExpr, ast.New(ast.KindClockExpr, ast.NewID("x"), ast.Leaf(ast.TokEQ, "=="), ast.NewIntLit(5))),
	)
	got := BreakUpEquals(guard)

	want := ast.New(ast.KindExpr,
		ast.New(ast.KindAtomicExpr, ast.New(ast.KindClockExpr, ast.NewID("x"), ast.Leaf(ast.TokLE, "<="), ast.NewIntLit(5))),
		ast.Leaf(ast.TokAnd, "&&"),
		ast.New(ast.KindAtomicExpr, ast.New(ast.KindClockExpr, ast.NewID("x"), ast.Leaf(ast.TokGE, ">="), ast.NewIntLit(5))),
	)
	assert.True(t, want.Equal(got), "Diff:\n%s", ast.Diff(want, got))
}

func edgeWithTwoGuards() *ast.Node {
	g1 := ast.New(ast.KindProvidedAttr, ast.Leaf(ast.TokKeyword, "provided"), ast.Leaf(ast.TokColon, ":"),
		ast.New(ast.KindExpr, ast.NewAtomicExpr(ast.NewComparison(true, ast.NewID("x"), ast.TokLE, ast.NewIntLit(5)))))
	g2 := ast.New(ast.KindProvidedAttr, ast.Leaf(ast.TokKeyword, "provided"), ast.Leaf(ast.TokColon, ":"),
		ast.New(ast.KindExpr, ast.NewAtomicExpr(ast.NewComparison(true, ast.NewID("y"), ast.TokGT, ast.NewIntLit(2)))))

	return ast.New(ast.KindEdgeDecl,
		ast.Leaf(ast.TokKeyword, "edge"), ast.Leaf(ast.TokColon, ":"), ast.NewID("P"), ast.Leaf(ast.TokColon, ":"),
		ast.NewID("l0"), ast.Leaf(ast.TokColon, ":"), ast.NewID("l1"), ast.Leaf(ast.TokColon, ":"), ast.NewID("a"),
		ast.NewAttributes(g1, g2),
	)
}

func TestCombineGuards(t *testing.T) {
	edge := edgeWithTwoGuards()
	sys := ast.New(ast.KindSystemDecl, edge)

	got := CombineGuards(sys)
	edges := ast.FindAll(got, ast.KindEdgeDecl)
	if !assert.Len(t, edges, 1) {
		return
	}

	guards := ast.FindAll(edges[0], ast.KindProvidedAttr)
	assert.Len(t, guards, 1, "the two provided_attributes fold into one")

	atoms := ast.FindAll(guards[0], ast.KindAtomicExpr)
	assert.Len(t, atoms, 2, "the combined guard conjoins both original atoms")
}
