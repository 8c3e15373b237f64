package mutate

import "github.com/tamut/tamut/ast"

// insertAt returns a copy of children with n inserted at index idx.
func insertAt(children []*ast.Node, idx int, n *ast.Node) []*ast.Node {
	out := make([]*ast.Node, 0, len(children)+1)
	out = append(out, children[:idx]...)
	out = append(out, n)
	out = append(out, children[idx:]...)
	return out
}

// AddLocation emits, for each process and each of its existing edges, a
// mutant with a fresh empty-attribute location inserted directly after
// the process_declaration and that edge's target redirected to it
// (spec.md §4.3).
func AddLocation(root *ast.Node, val int) []*ast.Node {
	var mutants []*ast.Node
	for _, proc := range ast.FindAll(root, ast.KindProcessDecl) {
		name := proc.DeclName().IdentText()
		procIdx := indexInParent(root, proc)
		fresh := ast.New(ast.KindLocationDecl,
			ast.Leaf(ast.TokKeyword, "location"), ast.Leaf(ast.TokColon, ":"),
			ast.NewID(name), ast.Leaf(ast.TokColon, ":"),
			ast.NewID(freshLocation(root, name)),
		)

		var edges []*ast.Node
		for _, e := range ast.FindAll(root, ast.KindEdgeDecl) {
			if e.EdgeProcess().IdentText() == name {
				edges = append(edges, e)
			}
		}
		for _, edge := range edges {
			edgeIdx := indexInParent(root, edge)
			clone := root.Clone()
			clone.Children = insertAt(clone.Children, procIdx+1, fresh.Clone())
			adjusted := edgeIdx
			if edgeIdx > procIdx {
				adjusted++
			}
			clone.Children[adjusted].Children[6] = fresh.LocName().Clone()
			mutants = append(mutants, clone)
		}
	}
	return dedupe(root, mutants)
}

// AddTransition emits, for each process and each ordered pair (s, t) of
// its locations, a mutant appending a clone of the file's first edge
// declaration retargeted to (process, s, t); mutants identical to the
// untouched template edge are skipped (spec.md §4.3).
func AddTransition(root *ast.Node, val int) []*ast.Node {
	edges := ast.FindAll(root, ast.KindEdgeDecl)
	if len(edges) == 0 {
		return nil
	}
	template := edges[0]

	var mutants []*ast.Node
	for _, proc := range processes(root) {
		locs := locationsOf(root, proc)
		for _, s := range locs {
			for _, t := range locs {
				clone := template.Clone()
				clone.Children[2] = ast.NewID(proc)
				clone.Children[4] = ast.NewID(s)
				clone.Children[6] = ast.NewID(t)
				if clone.Equal(template) {
					continue
				}
				rootClone := root.Clone()
				rootClone.Children = append(rootClone.Children, clone)
				mutants = append(mutants, rootClone)
			}
		}
	}
	return dedupe(root, mutants)
}

// ChangeTransitionSource emits, for each edge and each of its process's
// locations distinct from the current source, the edge with its source
// replaced (spec.md §4.3). The endpoint is addressed by field index
// rather than by occurrence-counted structural match, so a source equal
// to the target is never ambiguous (DESIGN NOTES §9 "explicit field
// addressing").
func ChangeTransitionSource(root *ast.Node, val int) []*ast.Node {
	var mutants []*ast.Node
	for _, edge := range ast.FindAll(root, ast.KindEdgeDecl) {
		proc := edge.EdgeProcess().IdentText()
		cur := edge.EdgeSource().IdentText()
		for _, loc := range locationsOf(root, proc) {
			if loc == cur {
				continue
			}
			clone := edge.Clone()
			clone.Children[4] = ast.NewID(loc)
			if m, err := spliceDecl(root, edge, clone); err == nil {
				mutants = append(mutants, m)
			}
		}
	}
	return dedupe(root, mutants)
}

// ChangeTransitionTarget is ChangeTransitionSource's counterpart for the
// edge's target endpoint (spec.md §4.3).
func ChangeTransitionTarget(root *ast.Node, val int) []*ast.Node {
	var mutants []*ast.Node
	for _, edge := range ast.FindAll(root, ast.KindEdgeDecl) {
		proc := edge.EdgeProcess().IdentText()
		cur := edge.EdgeTarget().IdentText()
		for _, loc := range locationsOf(root, proc) {
			if loc == cur {
				continue
			}
			clone := edge.Clone()
			clone.Children[6] = ast.NewID(loc)
			if m, err := spliceDecl(root, edge, clone); err == nil {
				mutants = append(mutants, m)
			}
		}
	}
	return dedupe(root, mutants)
}

// RemoveLocation emits, for each non-initial location, a mutant with
// that location and every edge of the same process mentioning it as
// source or target removed (spec.md §4.3).
func RemoveLocation(root *ast.Node, val int) []*ast.Node {
	var mutants []*ast.Node
	for _, loc := range ast.FindAll(root, ast.KindLocationDecl) {
		if ast.IsInitial(loc) {
			continue
		}
		proc := loc.LocProcess().IdentText()
		name := loc.LocName().IdentText()

		clone := root.Clone()
		var kept []*ast.Node
		for _, child := range clone.Children {
			switch {
			case child.Rule == ast.KindLocationDecl &&
				child.LocProcess().IdentText() == proc && child.LocName().IdentText() == name:
				continue
			case child.Rule == ast.KindEdgeDecl &&
				child.EdgeProcess().IdentText() == proc &&
				(child.EdgeSource().IdentText() == name || child.EdgeTarget().IdentText() == name):
				continue
			}
			kept = append(kept, child)
		}
		clone.Children = kept
		mutants = append(mutants, clone)
	}
	return dedupe(root, mutants)
}

// RemoveTransition emits, for each edge, the mutant with that edge
// removed (spec.md §4.3).
func RemoveTransition(root *ast.Node, val int) []*ast.Node {
	var mutants []*ast.Node
	for _, edge := range ast.FindAll(root, ast.KindEdgeDecl) {
		if m, err := removeDecl(root, edge); err == nil {
			mutants = append(mutants, m)
		}
	}
	return dedupe(root, mutants)
}
