package ast

import "fmt"

// Exchange and Remove are the two tree-edit primitives every mutation
// operator builds on (spec.md §4.1 "Tree-edit primitives"), grounded
// on the occurrence-counted exchange_node_helper/remove_node_helper
// pair in the distillation's AST_tools.py.
//
// Both scan the tree top-down node by node. At the first node whose
// OWN immediate children contain at least k+1 (0-indexed) matches of
// the target, the k-th such child is replaced/removed in place and
// the scan stops there — descendants of that node are never visited.
// At a node whose immediate children contain fewer matches, the scan
// continues into each child in order. This is what lets an edge
// declaration whose source and target name the same location (spec.md
// §4.1 "Why occurrence counting") be edited at exactly one of the two
// identical slots: the match count is taken among SIBLINGS of one
// parent, not across the whole tree, so an unrelated identically-named
// node elsewhere never competes for the same occurrence index.
//
// Both copy the subject once at entry and edit the copy; tree is never
// mutated (spec.md §3.1 "Lifetime").

// Exchange returns a copy of tree with the k-th (0-indexed) child
// structurally equal to old, found at the first qualifying node,
// replaced by a clone of replacement. It errors if no node in tree has
// at least k+1 immediate children equal to old.
func Exchange(tree, old, replacement *Node, k int) (*Node, error) {
	clone := tree.Clone()
	if !exchangeAt(clone, old, replacement, k) {
		return nil, fmt.Errorf("exchange: no node has %d occurrences of node among its children", k+1)
	}
	return clone, nil
}

func exchangeAt(n, old, replacement *Node, k int) bool {
	if n == nil || n.IsLeaf() {
		return false
	}
	if idx := matchIndex(n.Children, old, k); idx >= 0 {
		n.Children[idx] = replacement.Clone()
		return true
	}
	for _, c := range n.Children {
		if exchangeAt(c, old, replacement, k) {
			return true
		}
	}
	return false
}

// Remove returns a copy of tree with the k-th (0-indexed) child
// structurally equal to target, found at the first qualifying node,
// spliced out of that node's child list. It errors if no node in tree
// has at least k+1 immediate children equal to target.
func Remove(tree, target *Node, k int) (*Node, error) {
	clone := tree.Clone()
	if !removeAt(clone, target, k) {
		return nil, fmt.Errorf("remove: no node has %d occurrences of node among its children", k+1)
	}
	return clone, nil
}

func removeAt(n, target *Node, k int) bool {
	if n == nil || n.IsLeaf() {
		return false
	}
	if idx := matchIndex(n.Children, target, k); idx >= 0 {
		n.Children = append(append([]*Node{}, n.Children[:idx]...), n.Children[idx+1:]...)
		return true
	}
	for _, c := range n.Children {
		if removeAt(c, target, k) {
			return true
		}
	}
	return false
}

// matchIndex returns the index of the k-th (0-indexed) child of
// children structurally equal to target, or -1 if fewer than k+1
// exist.
func matchIndex(children []*Node, target *Node, k int) int {
	count := 0
	for i, c := range children {
		if c.Equal(target) {
			if count == k {
				return i
			}
			count++
		}
	}
	return -1
}

// OccurrenceInParent returns the 0-indexed rank, among parent's own
// children structurally equal to parent.Children[index], of the child
// actually at index — the k to pass to Exchange/Remove to retarget
// that exact slot even when sibling children collide (e.g. an edge
// whose source and target name the same location).
func OccurrenceInParent(parent *Node, index int) int {
	target := parent.Children[index]
	count := 0
	for i := 0; i < index; i++ {
		if parent.Children[i].Equal(target) {
			count++
		}
	}
	return count
}

// CountOccurrences reports, over the whole tree, how many nodes appear
// as an immediate child of some node and are structurally equal to
// target — i.e. how many distinct (parent, index) slots Exchange/
// Remove could address for this target, summed across every node's own
// children.
func CountOccurrences(tree, target *Node) int {
	if tree == nil || tree.IsLeaf() {
		return 0
	}
	n := 0
	for _, c := range tree.Children {
		if c.Equal(target) {
			n++
		}
		n += CountOccurrences(c, target)
	}
	return n
}
