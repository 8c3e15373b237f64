package ast

// Walk calls visit on n and every descendant, pre-order. It snapshots
// nothing itself; callers that intend to build mutants while walking
// must collect into a slice first (spec.md §9 "Iterator re-enumeration
// vs. list snapshots" — every Find* helper below returns a []*Node,
// never a lazy iterator, for exactly that reason).
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// FindAll returns every node of the given rule kind under n, in
// document order.
func FindAll(n *Node, kind Kind) []*Node {
	var out []*Node
	Walk(n, func(c *Node) {
		if c.Rule == kind {
			out = append(out, c)
		}
	})
	return out
}

// FindFirst returns the first node of the given rule kind under n, or
// nil.
func FindFirst(n *Node, kind Kind) *Node {
	all := FindAll(n, kind)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// Contains reports whether tree contains node anywhere in its subtree,
// tree itself included (spec.md §4.1 "contains").
func Contains(tree, node *Node) bool {
	if tree.Equal(node) {
		return true
	}
	for _, c := range tree.Children {
		if Contains(c, node) {
			return true
		}
	}
	return false
}

// AllClocks enumerates the canonical indexed clock ids declared in
// root, across every clock_declaration, in declaration order (spec.md
// §3.2 "get_all_clocks yields the canonical indexed list over all
// declarations"). A clock declared as `clock:N:x` contributes
// x[0..N-1].
func AllClocks(root *Node) []*Node {
	var out []*Node
	for _, decl := range FindAll(root, KindClockDecl) {
		name := decl.ClockName().IdentText()
		n := atoiOr(decl.ClockSize().Child(0).LeafText(), 1)
		for i := 0; i < n; i++ {
			out = append(out, NewIndexedClock(name, i))
		}
	}
	return out
}

// IsClockExpr decides whether expr is a clock expression: its subtree
// contains the identifier child of at least one clock_declaration in
// root (spec.md §3.3 "is_clock_expr"). This is the sole arbiter; the
// parser's own clock_expr/predicate_expr labelling is not trusted
// (spec.md §3.3: "disambiguation is unreliable").
func IsClockExpr(root, expr *Node) bool {
	for _, decl := range FindAll(root, KindClockDecl) {
		if Contains(expr, decl.ClockName()) {
			return true
		}
	}
	return false
}

// ClockExprsIn enumerates the atomic clock expressions (predicate_expr
// or clock_expr nodes that IsClockExpr accepts) nested inside guard,
// in document order.
func ClockExprsIn(root, guard *Node) []*Node {
	var out []*Node
	Walk(guard, func(e *Node) {
		if (e.Rule == KindPredicateExpr || e.Rule == KindClockExpr) && IsClockExpr(root, e) {
			out = append(out, e)
		}
	})
	return out
}

// IsDiagonal reports whether a clock-constraint operand `x - y` (a
// 2-operand int_term) rather than a bare clock reference (spec.md
// §4.3 change_constraint_clock: "Diagonal detection: the operand
// sub-tree has length > 1").
func IsDiagonal(operand *Node) bool {
	return operand != nil && operand.Rule == KindIntTerm && len(operand.Children) > 1
}

// ClockRefs returns every canonical or bare clock-id node nested
// directly in operand (not descending into a diagonal subtraction's
// own operands beyond one level, since diagonal int_terms are built
// from exactly two clock operands plus an operator).
func ClockRefs(operand *Node) []*Node {
	var refs []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		switch n.Rule {
		case KindIntOrClockID, KindID:
			refs = append(refs, n)
			return
		case KindOp:
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(operand)
	return refs
}

// IsInitial reports whether a location_declaration carries the
// initial_attribute.
func IsInitial(loc *Node) bool {
	attrs := loc.Attributes()
	if attrs == nil {
		return false
	}
	for _, a := range attrs.AttributeList() {
		if a.Rule == KindInitialAttr {
			return true
		}
	}
	return false
}

func atoiOr(s string, def int) int {
	n := 0
	any := false
	for _, r := range s {
		if r < '0' || r > '9' {
			return def
		}
		n = n*10 + int(r-'0')
		any = true
	}
	if !any {
		return def
	}
	return n
}
