package ast

// This file names the positional child contracts spec.md §3.1 fixes,
// so the rest of the codebase addresses fields like edge.Target()
// instead of edge.Children[6]. The indices themselves are exactly the
// ones spec.md specifies; nothing here changes the contract, it only
// gives it a name.

// ClockDecl accessors. Shape: clock ":" size ":" id
func (n *Node) ClockSize() *Node { return n.Child(2) }
func (n *Node) ClockName() *Node { return n.Child(4) }

// IntDecl accessors. Shape: int ":" size ":" lo ":" hi ":" init ":" id
func (n *Node) IntSize() *Node { return n.Child(2) }
func (n *Node) IntLo() *Node   { return n.Child(4) }
func (n *Node) IntHi() *Node   { return n.Child(6) }
func (n *Node) IntInit() *Node { return n.Child(8) }
func (n *Node) IntName() *Node { return n.Child(10) }

// ProcessDecl / EventDecl accessors. Shape: process|event ":" id
func (n *Node) DeclName() *Node { return n.Child(2) }

// LocationDecl accessors. Shape: location ":" process ":" loc [attrs]
func (n *Node) LocProcess() *Node    { return n.Child(2) }
func (n *Node) LocName() *Node       { return n.Child(4) }
func (n *Node) LocAttributes() *Node { return n.Child(5) }

// EdgeDecl accessors. Shape: edge ":" process ":" src ":" dst ":" event [attrs]
func (n *Node) EdgeProcess() *Node    { return n.Child(2) }
func (n *Node) EdgeSource() *Node     { return n.Child(4) }
func (n *Node) EdgeTarget() *Node     { return n.Child(6) }
func (n *Node) EdgeEvent() *Node      { return n.Child(8) }
func (n *Node) EdgeAttributes() *Node { return n.Child(9) }

// SyncDecl accessors. Shape: sync ":" sync_constraints
func (n *Node) SyncConstraints() *Node { return n.Child(2) }

// SyncConstraint accessors. Shape: process "@" event ["?"]
func (n *Node) ConstraintProcess() *Node { return n.Child(0) }
func (n *Node) ConstraintEvent() *Node   { return n.Child(2) }
func (n *Node) ConstraintWeak() *Node    { return n.Child(3) }

// IsWeak reports whether a sync_constraint carries the trailing "?".
func (n *Node) IsWeak() bool {
	return n.ConstraintWeak() != nil
}

// Attributes returns the attributes node attached to a location or
// edge declaration, or nil if none is present.
func (n *Node) Attributes() *Node {
	switch n.Rule {
	case KindLocationDecl:
		return n.LocAttributes()
	case KindEdgeDecl:
		return n.EdgeAttributes()
	}
	return nil
}

// AttributeList returns the individual attribute nodes inside an
// "attributes" node, skipping the wrapping braces and the ":"
// separators between siblings (spec.md §3.1: "Attribute lists:
// attributes (colon-separated list wrapped in braces)").
func (n *Node) AttributeList() []*Node {
	if n == nil || n.Rule != KindAttributes {
		return nil
	}
	var out []*Node
	for i := 1; i < len(n.Children)-1; i += 2 {
		out = append(out, n.Children[i])
	}
	return out
}

// LeafText returns the literal text of a leaf, or "" for an internal node.
func (n *Node) LeafText() string {
	if n == nil || !n.IsLeaf() {
		return ""
	}
	return n.Text
}

// IdentText returns the identifier text wrapped by an "id" node.
func (n *Node) IdentText() string {
	if n == nil || n.Rule != KindID || len(n.Children) != 1 {
		return ""
	}
	return n.Children[0].LeafText()
}
