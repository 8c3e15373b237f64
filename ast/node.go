package ast

import (
	"fmt"
	"strings"

	"github.com/tamut/tamut/tckerr"
)

// Node is the single tagged-union type every AST node in this package
// instantiates: either an internal node (Rule set, Children holding
// the ordered child list: spec.md §3.1's "grammar rule name + ordered
// list of child nodes") or a leaf token (Rule empty, TokKind and Text
// set: spec.md §3.1's "token kind + literal text").
//
// Position is informational only; it is never consulted by Equal,
// so two subtrees read from different places in the source, or built
// fresh by a mutation operator, compare equal whenever their shape and
// text agree. That is the only identity Exchange, Remove and Contains
// use (spec.md §3.1 "Structural equality").
type Node struct {
	Rule     Kind
	Children []*Node

	TokKind TokenKind
	Text    string

	Pos tckerr.Position
}

// Leaf builds a token node.
func Leaf(kind TokenKind, text string) *Node {
	return &Node{TokKind: kind, Text: text}
}

// LeafAt builds a token node carrying a source position.
func LeafAt(kind TokenKind, text string, pos tckerr.Position) *Node {
	return &Node{TokKind: kind, Text: text, Pos: pos}
}

// New builds an internal node.
func New(rule Kind, children ...*Node) *Node {
	return &Node{Rule: rule, Children: children}
}

// IsLeaf reports whether n is a token rather than a grammar rule.
func (n *Node) IsLeaf() bool {
	return n.Rule == ""
}

// Equal implements the structural equality of spec.md §3.1: same kind
// (same Rule for internal nodes, same TokKind+Text for leaves) and,
// for internal nodes, recursively equal children in the same order.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.IsLeaf() != other.IsLeaf() {
		return false
	}
	if n.IsLeaf() {
		return n.TokKind == other.TokKind && n.Text == other.Text
	}
	if n.Rule != other.Rule || len(n.Children) != len(other.Children) {
		return false
	}
	for i, c := range n.Children {
		if !c.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of n. Every mutation operator and tree
// edit primitive in this repository builds its result by cloning the
// subject once and editing the clone, never the original (spec.md
// §3.1 "Lifetime", §5 "Resource sharing").
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Rule:    n.Rule,
		TokKind: n.TokKind,
		Text:    n.Text,
		Pos:     n.Pos,
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, ch := range n.Children {
			c.Children[i] = ch.Clone()
		}
	}
	return c
}

// String renders n for debugging/test-failure output; it is not the
// reconstructor (see package parse).
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.IsLeaf() {
		return fmt.Sprintf("%s(%q)", n.TokKind, n.Text)
	}
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s[%s]", n.Rule, strings.Join(parts, " "))
}

// Child returns n.Children[i], or nil if i is out of range. Operators
// use this instead of raw indexing at the positions spec.md §3.1 fixes
// as contracts (e.g. EdgeEvent, ClockName), so an out-of-shape
// tree fails loudly via a nil dereference at the call site rather than
// a silent wraparound.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}
