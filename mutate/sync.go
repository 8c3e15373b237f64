package mutate

import "github.com/tamut/tamut/ast"

// constraintList returns the sync_constraint children of a
// sync_constraints node, skipping the ":" separators between them
// (spec.md §4.3 "A sync_declaration holds a colon-separated list of
// constraints" — unlike attributes, this list carries no wrapping
// braces).
func constraintList(n *ast.Node) []*ast.Node {
	var out []*ast.Node
	for i := 0; i < len(n.Children); i += 2 {
		out = append(out, n.Children[i])
	}
	return out
}

// wrapConstraintList re-joins constraints with ":" separators into a
// fresh sync_constraints node.
func wrapConstraintList(constraints []*ast.Node) *ast.Node {
	var children []*ast.Node
	for i, c := range constraints {
		if i > 0 {
			children = append(children, ast.Leaf(ast.TokColon, ":"))
		}
		children = append(children, c)
	}
	return ast.New(ast.KindSyncConstraints, children...)
}

func buildSync(constraints []*ast.Node) *ast.Node {
	return ast.New(ast.KindSyncDecl,
		ast.Leaf(ast.TokKeyword, "sync"), ast.Leaf(ast.TokColon, ":"),
		wrapConstraintList(constraints),
	)
}

func syncAlreadyPresent(existing []*ast.Node, candidate *ast.Node) bool {
	for _, e := range existing {
		if e.Equal(candidate) {
			return true
		}
	}
	return false
}

// AddSync enumerates every non-empty subset of processes of size >= 2
// and every per-process event choice, producing one candidate
// sync_declaration per combination; any candidate already present in
// root is skipped. Enumeration is recursive, extending a partial
// constraint list in process order, so each subset is visited exactly
// once and every event assignment for it is explored before the
// recursion returns (spec.md §4.3).
func AddSync(root *ast.Node, val int) []*ast.Node {
	procs := processes(root)
	evts := events(root)
	existing := ast.FindAll(root, ast.KindSyncDecl)
	if len(evts) == 0 {
		return nil
	}

	var mutants []*ast.Node
	var recurse func(start int, partial []*ast.Node)
	recurse = func(start int, partial []*ast.Node) {
		if len(partial) >= 2 {
			candidate := buildSync(partial)
			if !syncAlreadyPresent(existing, candidate) {
				clone := root.Clone()
				clone.Children = append(clone.Children, candidate.Clone())
				mutants = append(mutants, clone)
			}
		}
		for i := start; i < len(procs); i++ {
			for _, e := range evts {
				constraint := ast.New(ast.KindSyncConstraint, ast.NewID(procs[i]), ast.Leaf(ast.TokAt, "@"), ast.NewID(e))
				recurse(i+1, append(partial, constraint))
			}
		}
	}
	recurse(0, nil)
	return dedupe(root, mutants)
}

// ChangeSyncEvent emits, for each sync, each constraint within it, and
// each event distinct from that constraint's current one, the sync
// with the event replaced (spec.md §4.3).
func ChangeSyncEvent(root *ast.Node, val int) []*ast.Node {
	var mutants []*ast.Node
	evts := events(root)
	for _, sync := range ast.FindAll(root, ast.KindSyncDecl) {
		cs := constraintList(sync.SyncConstraints())
		for ci, c := range cs {
			cur := c.ConstraintEvent().IdentText()
			for _, e := range evts {
				if e == cur {
					continue
				}
				clone := sync.Clone()
				constraintClone := constraintList(clone.SyncConstraints())[ci]
				constraintClone.Children[2] = ast.NewID(e)
				if m, err := spliceDecl(root, sync, clone); err == nil {
					mutants = append(mutants, m)
				}
			}
		}
	}
	return dedupe(root, mutants)
}

// InvertSyncWeakness emits, for each sync and each constraint within
// it, the sync with that constraint's trailing "?" toggled (spec.md
// §4.3).
func InvertSyncWeakness(root *ast.Node, val int) []*ast.Node {
	var mutants []*ast.Node
	for _, sync := range ast.FindAll(root, ast.KindSyncDecl) {
		cs := constraintList(sync.SyncConstraints())
		for ci := range cs {
			clone := sync.Clone()
			constraintClone := constraintList(clone.SyncConstraints())[ci]
			if len(constraintClone.Children) == 4 {
				constraintClone.Children = constraintClone.Children[:3]
			} else {
				constraintClone.Children = append(constraintClone.Children, ast.Leaf(ast.TokQuery, "?"))
			}
			if m, err := spliceDecl(root, sync, clone); err == nil {
				mutants = append(mutants, m)
			}
		}
	}
	return dedupe(root, mutants)
}

// RemoveSync emits, for each sync, the mutant with that sync removed
// (spec.md §4.3).
func RemoveSync(root *ast.Node, val int) []*ast.Node {
	var mutants []*ast.Node
	for _, sync := range ast.FindAll(root, ast.KindSyncDecl) {
		if m, err := removeDecl(root, sync); err == nil {
			mutants = append(mutants, m)
		}
	}
	return dedupe(root, mutants)
}

// RemoveSyncConstraint emits, for each sync whose constraint list has
// at least 2 entries, and each constraint within it, the mutant with
// that constraint and its adjacent ":" removed (spec.md §4.3).
func RemoveSyncConstraint(root *ast.Node, val int) []*ast.Node {
	var mutants []*ast.Node
	for _, sync := range ast.FindAll(root, ast.KindSyncDecl) {
		cs := constraintList(sync.SyncConstraints())
		if len(cs) < 2 {
			continue
		}
		for ci := range cs {
			var kept []*ast.Node
			for j, c := range cs {
				if j != ci {
					kept = append(kept, c.Clone())
				}
			}
			clone := sync.Clone()
			clone.Children[2] = wrapConstraintList(kept)
			if m, err := spliceDecl(root, sync, clone); err == nil {
				mutants = append(mutants, m)
			}
		}
	}
	return dedupe(root, mutants)
}
