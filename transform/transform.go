// Package transform implements the three normalizing AST rewriters of
// spec.md §4.2: Simplify, BreakUpEquals, and CombineGuards. Each
// returns a fresh tree; the argument is never mutated, consistent with
// package ast's deep-copy-on-write discipline.
package transform

import "github.com/tamut/tamut/ast"

// Simplify rewrites every chained comparison `a cmp1 b cmp2 c` (a
// predicate_expr or clock_expr with exactly two comparator tokens,
// both "<=" or "<") into two atomic_exprs joined by "&&": `a cmp1 b &&
// b cmp2 c`. Applied once, globally, immediately after parsing (spec.md
// §4.2 SimplifyExpressions). Afterwards every atomic expression has at
// most one comparator.
func Simplify(root *ast.Node) *ast.Node {
	return rewriteExprs(root, simplifyExprNode)
}

// simplifyExprNode rewrites one expr node's list of atomic_expr/"&&"
// children, splitting any chained comparison it finds.
func simplifyExprNode(expr *ast.Node) *ast.Node {
	var out []*ast.Node
	for _, c := range expr.Children {
		if c.Rule != ast.KindAtomicExpr {
			out = append(out, c.Clone())
			continue
		}
		out = append(out, splitChain(c)...)
	}
	return ast.New(ast.KindExpr, out...)
}

// splitChain returns the one or two atomic_exprs atom should become.
func splitChain(atom *ast.Node) []*ast.Node {
	inner := atom.Child(0)
	if inner == nil || len(inner.Children) != 5 {
		return []*ast.Node{atom.Clone()}
	}
	cmp1 := inner.Child(1)
	cmp2 := inner.Child(3)
	if !isChainable(cmp1) || !isChainable(cmp2) {
		return []*ast.Node{atom.Clone()}
	}

	a, b, c := inner.Child(0), inner.Child(2), inner.Child(4)
	first := ast.New(ast.KindAtomicExpr, ast.New(inner.Rule, a.Clone(), cmp1.Clone(), b.Clone()))
	second := ast.New(ast.KindAtomicExpr, ast.New(inner.Rule, b.Clone(), cmp2.Clone(), c.Clone()))
	return []*ast.Node{first, ast.Leaf(ast.TokAnd, "&&"), second}
}

func isChainable(cmp *ast.Node) bool {
	return cmp != nil && cmp.IsLeaf() && (cmp.TokKind == ast.TokLE || cmp.TokKind == ast.TokLT)
}

// BreakUpEquals rewrites `a == b` to `a <= b && a >= b` wherever it
// occurs inside an expr node, required before negate_guard since `!=`
// is not a legal clock-constraint comparator (spec.md §4.2).
func BreakUpEquals(root *ast.Node) *ast.Node {
	return rewriteExprs(root, breakUpEqualsNode)
}

func breakUpEqualsNode(expr *ast.Node) *ast.Node {
	var out []*ast.Node
	for _, c := range expr.Children {
		if c.Rule != ast.KindAtomicExpr {
			out = append(out, c.Clone())
			continue
		}
		inner := c.Child(0)
		if inner == nil || len(inner.Children) != 3 || !isEquals(inner.Child(1)) {
			out = append(out, c.Clone())
			continue
		}
		a, b := inner.Child(0), inner.Child(2)
		le := ast.New(ast.KindAtomicExpr, ast.New(inner.Rule, a.Clone(), ast.Leaf(ast.TokLE, "<="), b.Clone()))
		ge := ast.New(ast.KindAtomicExpr, ast.New(inner.Rule, a.Clone(), ast.Leaf(ast.TokGE, ">="), b.Clone()))
		out = append(out, le, ast.Leaf(ast.TokAnd, "&&"), ge)
	}
	return ast.New(ast.KindExpr, out...)
}

func isEquals(cmp *ast.Node) bool {
	return cmp != nil && cmp.IsLeaf() && cmp.TokKind == ast.TokEQ
}

// CombineGuards folds every edge_declaration's multiple
// provided_attribute entries into a single provided_attribute whose
// inner expr is the "&&"-conjunction of the originals, removing the
// surplus attributes and their separating colons. Used only inside
// negate_guard (spec.md §4.2).
func CombineGuards(root *ast.Node) *ast.Node {
	clone := root.Clone()
	for _, edge := range ast.FindAll(clone, ast.KindEdgeDecl) {
		combineEdgeGuards(edge)
	}
	return clone
}

func combineEdgeGuards(edge *ast.Node) {
	attrs := edge.EdgeAttributes()
	if attrs == nil {
		return
	}
	list := attrs.AttributeList()
	var guards []*ast.Node
	for _, a := range list {
		if a.Rule == ast.KindProvidedAttr {
			guards = append(guards, a)
		}
	}
	if len(guards) < 2 {
		return
	}

	var atoms []*ast.Node
	for i, g := range guards {
		if i > 0 {
			atoms = append(atoms, ast.Leaf(ast.TokAnd, "&&"))
		}
		atoms = append(atoms, g.Child(2).Children...)
	}
	combined := ast.New(ast.KindProvidedAttr,
		guards[0].Child(0).Clone(), guards[0].Child(1).Clone(),
		ast.New(ast.KindExpr, cloneAll(atoms)...),
	)

	var kept []*ast.Node
	first := true
	for _, a := range list {
		if a.Rule == ast.KindProvidedAttr {
			if first {
				kept = append(kept, combined)
				first = false
			}
			continue
		}
		kept = append(kept, a)
	}
	attrs.Children = rebuildAttributes(kept)
}

func cloneAll(nodes []*ast.Node) []*ast.Node {
	out := make([]*ast.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// rebuildAttributes re-wraps a bare attribute list with the "{" ":" "}"
// separators AttributeList expects to find.
func rebuildAttributes(attrs []*ast.Node) []*ast.Node {
	children := []*ast.Node{ast.Leaf(ast.TokLBrace, "{")}
	for i, a := range attrs {
		if i > 0 {
			children = append(children, ast.Leaf(ast.TokColon, ":"))
		}
		children = append(children, a)
	}
	children = append(children, ast.Leaf(ast.TokRBrace, "}"))
	return children
}

// rewriteExprs clones root and replaces every expr node's children
// with rewrite(expr)'s children, leaving everything else untouched.
func rewriteExprs(root *ast.Node, rewrite func(*ast.Node) *ast.Node) *ast.Node {
	clone := root.Clone()
	for _, expr := range ast.FindAll(clone, ast.KindExpr) {
		rewritten := rewrite(expr)
		expr.Children = rewritten.Children
	}
	return clone
}
