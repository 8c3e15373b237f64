// Package mutate implements the 21 mutation operators of spec.md
// §4.3 (minus add_sync_constraint; see DESIGN.md's Open Question 1
// decision), each enumerating every syntactically valid mutant its
// kind of edit can produce from a system declaration.
package mutate

import "github.com/tamut/tamut/ast"

// Operator is the uniform signature every mutation operator
// implements: given the system declaration and an integer parameter
// (only decrease_constraint_constant/increase_constraint_constant
// consult it; every other operator ignores it), return the complete,
// duplicate-free enumeration of mutants.
type Operator func(root *ast.Node, val int) []*ast.Node

// Registry lists every operator by its spec.md §6 CLI name, in the
// fixed order "--op all" iterates.
var Registry = []struct {
	Name string
	Op   Operator
}{
	{"change_event", ChangeEvent},
	{"change_constraint_cmp", ChangeConstraintCmp},
	{"change_constraint_clock", ChangeConstraintClock},
	{"decrease_constraint_constant", DecreaseConstraintConstant},
	{"increase_constraint_constant", IncreaseConstraintConstant},
	{"invert_reset", InvertReset},
	{"invert_committed_location", InvertCommittedLocation},
	{"invert_urgent_location", InvertUrgentLocation},
	{"negate_guard", NegateGuard},
	{"add_location", AddLocation},
	{"add_transition", AddTransition},
	{"change_transition_source", ChangeTransitionSource},
	{"change_transition_target", ChangeTransitionTarget},
	{"remove_location", RemoveLocation},
	{"remove_transition", RemoveTransition},
	{"add_sync", AddSync},
	{"change_sync_event", ChangeSyncEvent},
	{"invert_sync_weakness", InvertSyncWeakness},
	{"remove_sync", RemoveSync},
	{"remove_sync_constraint", RemoveSyncConstraint},
}

// Lookup returns the operator registered under name, or nil.
func Lookup(name string) Operator {
	for _, e := range Registry {
		if e.Name == name {
			return e.Op
		}
	}
	return nil
}

// Names returns every registered operator name, in registry order.
func Names() []string {
	out := make([]string, len(Registry))
	for i, e := range Registry {
		out[i] = e.Name
	}
	return out
}

// dedupe drops any mutant structurally equal to original or to an
// earlier mutant in the slice, implementing the "duplicates identical
// to the original are skipped" clause common to every operator
// (spec.md §4.3).
func dedupe(original *ast.Node, mutants []*ast.Node) []*ast.Node {
	var out []*ast.Node
	for _, m := range mutants {
		if m.Equal(original) {
			continue
		}
		dup := false
		for _, kept := range out {
			if m.Equal(kept) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, m)
		}
	}
	return out
}

// events returns every declared event name, in declaration order.
func events(root *ast.Node) []string {
	var out []string
	for _, e := range ast.FindAll(root, ast.KindEventDecl) {
		out = append(out, e.DeclName().IdentText())
	}
	return out
}

// locationsOf returns every location id declared for process, in
// declaration order.
func locationsOf(root *ast.Node, process string) []string {
	var out []string
	for _, l := range ast.FindAll(root, ast.KindLocationDecl) {
		if l.LocProcess().IdentText() == process {
			out = append(out, l.LocName().IdentText())
		}
	}
	return out
}

// processes returns every declared process name, in declaration order.
func processes(root *ast.Node) []string {
	var out []string
	for _, p := range ast.FindAll(root, ast.KindProcessDecl) {
		out = append(out, p.DeclName().IdentText())
	}
	return out
}

// freshLocation returns the first name in "new_loc", "new_loc_0",
// "new_loc_1", ... not already a location of process (spec.md §4.3
// add_location).
func freshLocation(root *ast.Node, process string) string {
	existing := map[string]bool{}
	for _, name := range locationsOf(root, process) {
		existing[name] = true
	}
	if !existing["new_loc"] {
		return "new_loc"
	}
	for i := 0; ; i++ {
		name := suffixed("new_loc", i)
		if !existing[name] {
			return name
		}
	}
}

func suffixed(base string, i int) string {
	digits := []byte{}
	n := i
	if n == 0 {
		digits = []byte{'0'}
	}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return base + "_" + string(digits)
}
