package ast

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// diffOpts ignores source position, which is irrelevant to the question
// "did the shape or text change", mirroring Equal's own blindness to Pos.
var diffOpts = []cmp.Option{
	cmpopts.IgnoreFields(Node{}, "Pos"),
}

// Diff renders a human-readable structural difference between a and b,
// empty when they are Equal. Tests use this to assert the "single
// point of change" property of spec.md §8: a mutant and its parent
// differ in exactly one subtree.
func Diff(a, b *Node) string {
	return cmp.Diff(a, b, diffOpts...)
}

// SinglePointOfChange reports whether original and mutant differ in
// exactly one place: walking both trees in lock-step, every node pair
// is Equal except along a single root-to-node path. It is the
// property every operator in package mutate is expected to satisfy
// (spec.md §8, testable property 2).
func SinglePointOfChange(original, mutant *Node) bool {
	return countDivergences(original, mutant) == 1
}

// countDivergences counts maximal differing subtrees between a and b:
// wherever the two nodes are unequal, that counts as one divergence
// and neither subtree is descended into further (a nested difference
// inside an already-differing subtree is not counted again).
func countDivergences(a, b *Node) int {
	if a.Equal(b) {
		return 0
	}
	if a == nil || b == nil || a.IsLeaf() || b.IsLeaf() || a.Rule != b.Rule || len(a.Children) != len(b.Children) {
		return 1
	}
	total := 0
	for i := range a.Children {
		total += countDivergences(a.Children[i], b.Children[i])
	}
	if total == 0 {
		// Shapes and lengths matched at this level but Equal still
		// failed: a leaf text/kind mismatch below was already
		// counted, so this branch is unreachable in practice; kept
		// as a defensive fallback.
		return 1
	}
	return total
}
