package ast

import "strconv"

// This file collects small constructors the mutation operators and
// the parser both need repeatedly, analogous to vartan's
// grammar/lexical/parser/tree.go newXxxNode helpers.

// NewID wraps a bare identifier as an "id" node.
func NewID(name string) *Node {
	return New(KindID, Leaf(TokIdent, name))
}

// NewIndexedClock builds the canonical indexed clock-id form
// int_or_clock_id(id(name), '[', int_term(i), ']') of spec.md §3.2. The
// name is wrapped in the same "id" node a bare clock_declaration
// identifier uses, so that is_clock_expr's Contains-based arbiter
// matches a declaration's identifier whether the reference in the
// guard is bare (x) or indexed (x[i]): both subtrees nest the
// identical "id" node somewhere inside them.
func NewIndexedClock(name string, index int) *Node {
	return New(KindIntOrClockID,
		NewID(name),
		Leaf(TokLBracket, "["),
		NewIntLit(index),
		Leaf(TokRBracket, "]"),
	)
}

// NewIntLit wraps an integer literal as an atomic int_term.
func NewIntLit(v int) *Node {
	return New(KindIntTerm, Leaf(TokInt, strconv.Itoa(v)))
}

// NewIntTermOp builds a binary int_term: left <op> right, where op is
// "+" or "-". Used by decrease/increase_constraint_constant to replace
// a constant k with k-v or k+v (spec.md §4.3).
func NewIntTermOp(left *Node, opText string, right *Node) *Node {
	var opKind TokenKind = TokPlus
	if opText == "-" {
		opKind = TokMinus
	}
	return New(KindIntTerm, left, New(KindOp, Leaf(opKind, opText)), right)
}

// NewComparison builds a predicate_expr or clock_expr: left cmp right.
func NewComparison(clock bool, left *Node, cmp TokenKind, right *Node) *Node {
	k := KindPredicateExpr
	if clock {
		k = KindClockExpr
	}
	return New(k, left, Leaf(cmp, string(cmp)), right)
}

// NewAtomicExpr wraps a predicate_expr/clock_expr as an atomic_expr.
func NewAtomicExpr(inner *Node) *Node {
	return New(KindAtomicExpr, inner)
}

// NewConjunction joins atoms with "&&" into a single expr node.
func NewConjunction(atoms ...*Node) *Node {
	if len(atoms) == 0 {
		return New(KindExpr)
	}
	children := make([]*Node, 0, len(atoms)*2-1)
	for i, a := range atoms {
		if i > 0 {
			children = append(children, Leaf(TokAnd, "&&"))
		}
		children = append(children, a)
	}
	return New(KindExpr, children...)
}

// NewAssignment builds one do_attribute statement slot: id = value.
func NewAssignment(clock string, value *Node) *Node {
	return New(KindAssignment, NewID(clock), Leaf(TokAssign, "="), value)
}

// NewNop builds a no-op statement slot for a do_attribute, matching the
// shape the parser builds for a literal "nop" keyword.
func NewNop() *Node {
	return New(KindNop, Leaf(TokKeyword, "nop"))
}

// NewAttributes wraps a list of attribute nodes in braces, colon-
// separated (spec.md §3.1).
func NewAttributes(attrs ...*Node) *Node {
	children := []*Node{Leaf(TokLBrace, "{")}
	for i, a := range attrs {
		if i > 0 {
			children = append(children, Leaf(TokColon, ":"))
		}
		children = append(children, a)
	}
	children = append(children, Leaf(TokRBrace, "}"))
	return New(KindAttributes, children...)
}
