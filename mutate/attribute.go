package mutate

import (
	"fmt"
	"strconv"

	"github.com/tamut/tamut/ast"
	"github.com/tamut/tamut/transform"
)

// clockIdentity returns the declared clock name and index a clock
// operand refers to. A canonical int_or_clock_id(x, "[", i, "]") names
// index i directly; a bare id(x) names index 0, the only index a
// source-text bare reference can legally mean (spec.md §3.2: the
// un-indexed form is allowed only when the declaration's size is 1,
// i.e. the clock's sole canonical index is 0).
func clockIdentity(n *ast.Node) (name string, index int, ok bool) {
	if n == nil {
		return "", 0, false
	}
	switch n.Rule {
	case ast.KindID:
		return n.IdentText(), 0, true
	case ast.KindIntOrClockID:
		idx, err := strconv.Atoi(n.Child(2).Child(0).LeafText())
		if err != nil {
			return "", 0, false
		}
		return n.Child(0).IdentText(), idx, true
	}
	return "", 0, false
}

// sameClock reports whether a and b name the same canonical clock
// (spec.md §3.2: a bare reference and its canonical indexed form are
// "the same clock" even though they are not structurally Equal).
func sameClock(a, b *ast.Node) bool {
	an, ai, aok := clockIdentity(a)
	bn, bi, bok := clockIdentity(b)
	return aok && bok && an == bn && ai == bi
}

// clockKey is sameClock's comparable-string counterpart, used to key
// maps of canonical clocks.
func clockKey(n *ast.Node) string {
	name, index, ok := clockIdentity(n)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s[%d]", name, index)
}

// indexInParent returns the index of child within parent.Children,
// found by pointer identity (child must be one of the actual node
// instances FindAll returned against parent's own tree, not a clone).
func indexInParent(parent, child *ast.Node) int {
	for i, c := range parent.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// spliceDecl clones old in root (old must be a direct child of root,
// e.g. an edge/location/sync declaration) and returns a copy of root
// with it replaced by replacement, occurrence-aware so a structurally
// identical sibling declaration is never retargeted by mistake.
func spliceDecl(root, old, replacement *ast.Node) (*ast.Node, error) {
	idx := indexInParent(root, old)
	k := ast.OccurrenceInParent(root, idx)
	return ast.Exchange(root, old, replacement, k)
}

// removeDecl is spliceDecl's counterpart for the operators that drop a
// whole top-level declaration outright.
func removeDecl(root, old *ast.Node) (*ast.Node, error) {
	idx := indexInParent(root, old)
	k := ast.OccurrenceInParent(root, idx)
	return ast.Remove(root, old, k)
}

// guardSite names one provided_attribute (on an edge) or
// invariant_attribute (on a location) in the tree, by the position of
// its declaration and its index in that declaration's attribute list.
type guardSite struct {
	decl      *ast.Node
	attrIndex int
	attr      *ast.Node
}

func guardSites(root *ast.Node) []guardSite {
	var sites []guardSite
	for _, edge := range ast.FindAll(root, ast.KindEdgeDecl) {
		attrs := edge.EdgeAttributes()
		if attrs == nil {
			continue
		}
		for i, a := range attrs.Children {
			if a.Rule == ast.KindProvidedAttr {
				sites = append(sites, guardSite{decl: edge, attrIndex: i, attr: a})
			}
		}
	}
	for _, loc := range ast.FindAll(root, ast.KindLocationDecl) {
		attrs := loc.Attributes()
		if attrs == nil {
			continue
		}
		for i, a := range attrs.Children {
			if a.Rule == ast.KindInvariantAttr {
				sites = append(sites, guardSite{decl: loc, attrIndex: i, attr: a})
			}
		}
	}
	return sites
}

// atomSite names one atomic_expr within a guardSite's expr.
type atomSite struct {
	guardSite
	atomIndex int
}

// clockAtomSites enumerates every atomic_expr that ast.IsClockExpr
// accepts, across every guard and invariant in root.
func clockAtomSites(root *ast.Node) []atomSite {
	var sites []atomSite
	for _, g := range guardSites(root) {
		expr := g.attr.Child(2)
		for i := 0; i < len(expr.Children); i += 2 {
			atom := expr.Children[i]
			if ast.IsClockExpr(root, atom) {
				sites = append(sites, atomSite{guardSite: g, atomIndex: i})
			}
		}
	}
	return sites
}

// buildAtomMutant clones site's declaration, locates the same atom
// inside the clone, runs edit over the cloned atomic_expr's inner
// comparison node, and splices the edited declaration back into root.
func buildAtomMutant(root *ast.Node, site atomSite, edit func(inner *ast.Node)) (*ast.Node, error) {
	declClone := site.decl.Clone()
	attrsClone := declClone.Attributes()
	attrClone := attrsClone.Children[site.attrIndex]
	exprClone := attrClone.Child(2)
	atomClone := exprClone.Children[site.atomIndex]
	edit(atomClone.Child(0))
	return spliceDecl(root, site.decl, declClone)
}

// ChangeEvent emits, for each edge and each declared event distinct
// from its current one, the edge with its event id replaced (spec.md
// §4.3).
func ChangeEvent(root *ast.Node, val int) []*ast.Node {
	var mutants []*ast.Node
	evts := events(root)
	for _, edge := range ast.FindAll(root, ast.KindEdgeDecl) {
		cur := edge.EdgeEvent().IdentText()
		for _, e := range evts {
			if e == cur {
				continue
			}
			clone := edge.Clone()
			clone.Children[8] = ast.NewID(e)
			if m, err := spliceDecl(root, edge, clone); err == nil {
				mutants = append(mutants, m)
			}
		}
	}
	return dedupe(root, mutants)
}

// constraintComparators are the candidate comparators change_constraint_cmp
// enumerates; "!=" is excluded because clock constraints disallow it
// (spec.md §4.3).
var constraintComparators = []ast.TokenKind{ast.TokEQ, ast.TokLE, ast.TokLT, ast.TokGE, ast.TokGT}

// ChangeConstraintCmp emits, for each atomic clock expression inside a
// guard or invariant and each comparator distinct from the current
// one, the mutant with that comparator substituted (spec.md §4.3).
func ChangeConstraintCmp(root *ast.Node, val int) []*ast.Node {
	var mutants []*ast.Node
	for _, site := range clockAtomSites(root) {
		inner := site.attr.Child(2).Children[site.atomIndex].Child(0)
		cur := inner.Child(1).TokKind
		for _, cmp := range constraintComparators {
			if cmp == cur {
				continue
			}
			m, err := buildAtomMutant(root, site, func(innerClone *ast.Node) {
				innerClone.Children[1] = ast.Leaf(cmp, string(cmp))
			})
			if err == nil {
				mutants = append(mutants, m)
			}
		}
	}
	return dedupe(root, mutants)
}

// clockSlot names one clock-bearing operand position within an atomic
// clock expression's inner comparison node: side selects the
// comparator's left (0) or right (2) child; sub, when >= 0, further
// selects one operand (0 or 2) of a diagonal int_term `x - y` nested at
// that side (spec.md §4.3 change_constraint_clock "Diagonal detection:
// the operand sub-tree has length > 1"), or the sole operand (0) of the
// one-operand int_term the parser wraps around a clock reference.
type clockSlot struct {
	side int
	sub  int
}

func (s clockSlot) get(inner *ast.Node) *ast.Node {
	operand := inner.Children[s.side]
	if s.sub < 0 {
		return operand
	}
	return operand.Children[s.sub]
}

func (s clockSlot) set(inner *ast.Node, v *ast.Node) {
	if s.sub < 0 {
		inner.Children[s.side] = v
		return
	}
	inner.Children[s.side].Children[s.sub] = v
}

func clockSlots(inner *ast.Node) []clockSlot {
	var slots []clockSlot
	for _, side := range []int{0, 2} {
		operand := inner.Children[side]
		if ast.IsDiagonal(operand) {
			slots = append(slots, clockSlot{side: side, sub: 0}, clockSlot{side: side, sub: 2})
			continue
		}
		if operand.Rule == ast.KindID || operand.Rule == ast.KindIntOrClockID {
			slots = append(slots, clockSlot{side: side, sub: -1})
			continue
		}
		if operand.Rule == ast.KindIntTerm && len(operand.Children) == 1 {
			if c := operand.Children[0]; c.Rule == ast.KindID || c.Rule == ast.KindIntOrClockID {
				slots = append(slots, clockSlot{side: side, sub: 0})
			}
		}
	}
	return slots
}

// ChangeConstraintClock emits, for each atomic clock expression, each
// clock-bearing operand slot, and each canonical clock distinct from
// the slot's current clock, the mutant with that clock substituted
// (spec.md §4.3).
func ChangeConstraintClock(root *ast.Node, val int) []*ast.Node {
	var mutants []*ast.Node
	clocks := ast.AllClocks(root)
	for _, site := range clockAtomSites(root) {
		inner := site.attr.Child(2).Children[site.atomIndex].Child(0)
		for _, slot := range clockSlots(inner) {
			current := slot.get(inner)
			for _, c := range clocks {
				if sameClock(current, c) {
					continue
				}
				m, err := buildAtomMutant(root, site, func(innerClone *ast.Node) {
					slot.set(innerClone, c.Clone())
				})
				if err == nil {
					mutants = append(mutants, m)
				}
			}
		}
	}
	return dedupe(root, mutants)
}

// constantSlot, for a clock constraint `x ◇ k` or `k ◇ x`, returns the
// index (0 or 2) of the side that does not contain a clock identifier
// — the constant spec.md §4.3 decrease/increase_constraint_constant
// edits — or -1 if neither or both sides qualify.
func constantSlot(inner *ast.Node) int {
	leftIsClock := len(ast.ClockRefs(inner.Children[0])) > 0
	rightIsClock := len(ast.ClockRefs(inner.Children[2])) > 0
	switch {
	case leftIsClock && !rightIsClock:
		return 2
	case rightIsClock && !leftIsClock:
		return 0
	}
	return -1
}

func shiftConstraintConstant(root *ast.Node, val int, opText string) []*ast.Node {
	var mutants []*ast.Node
	for _, site := range clockAtomSites(root) {
		inner := site.attr.Child(2).Children[site.atomIndex].Child(0)
		pos := constantSlot(inner)
		if pos < 0 {
			continue
		}
		k := inner.Children[pos]
		m, err := buildAtomMutant(root, site, func(innerClone *ast.Node) {
			innerClone.Children[pos] = ast.NewIntTermOp(k.Clone(), opText, ast.NewIntLit(val))
		})
		if err == nil {
			mutants = append(mutants, m)
		}
	}
	return dedupe(root, mutants)
}

// DecreaseConstraintConstant emits, for each atomic clock constraint, a
// mutant with its constant operand replaced by k-val (spec.md §4.3).
func DecreaseConstraintConstant(root *ast.Node, val int) []*ast.Node {
	return shiftConstraintConstant(root, normalizeVal(val), "-")
}

// IncreaseConstraintConstant emits, for each atomic clock constraint, a
// mutant with its constant operand replaced by k+val (spec.md §4.3).
func IncreaseConstraintConstant(root *ast.Node, val int) []*ast.Node {
	return shiftConstraintConstant(root, normalizeVal(val), "+")
}

func normalizeVal(val int) int {
	if val < 1 {
		return 1
	}
	return val
}

func isZeroLiteral(v *ast.Node) bool {
	return v != nil && v.Rule == ast.KindIntTerm && len(v.Children) == 1 &&
		v.Children[0].IsLeaf() && v.Children[0].Text == "0"
}

func findDoAttr(attrs *ast.Node) *ast.Node {
	if attrs == nil {
		return nil
	}
	for _, a := range attrs.AttributeList() {
		if a.Rule == ast.KindDoAttr {
			return a
		}
	}
	return nil
}

// resetsOf returns, for an edge's do_attribute (if any), the set of
// canonical clocks reset to the literal 0 there, keyed by clockKey so
// a bare assignment target (the only form the parser can produce, per
// §3.2 valid only when the clock's size is 1) matches its canonical
// index-0 form — spec.md §4.3 "Only resets with literal 0 are
// inspected".
func resetsOf(doAttr *ast.Node) map[string]bool {
	resets := map[string]bool{}
	if doAttr == nil {
		return resets
	}
	for i := 2; i < len(doAttr.Children); i += 2 {
		stmt := doAttr.Children[i]
		if stmt.Rule == ast.KindAssignment && isZeroLiteral(stmt.Children[2]) {
			resets[clockKey(stmt.Children[0])] = true
		}
	}
	return resets
}

func replaceResetWithNop(attrs *ast.Node, key string) {
	doAttr := findDoAttr(attrs)
	if doAttr == nil {
		return
	}
	for i := 2; i < len(doAttr.Children); i += 2 {
		stmt := doAttr.Children[i]
		if stmt.Rule == ast.KindAssignment && clockKey(stmt.Children[0]) == key && isZeroLiteral(stmt.Children[2]) {
			doAttr.Children[i] = ast.NewNop()
			return
		}
	}
}

// appendReset adds the assignment `c = 0` to edgeClone's do_attribute,
// creating the attribute block and/or the do_attribute itself if
// neither yet exists (spec.md §4.3 "adding an empty attribute block and
// trailing colons as necessary"). c is spliced in verbatim so a clock
// declared with size > 1 gets its full canonical indexed target
// (`y[1] = 0`), not a bare name the parser's own assignment grammar
// cannot re-derive an index from.
func appendReset(edgeClone *ast.Node, c *ast.Node) {
	assign := ast.New(ast.KindAssignment, c.Clone(), ast.Leaf(ast.TokAssign, "="), ast.NewIntLit(0))
	attrs := edgeClone.EdgeAttributes()
	if attrs == nil {
		doAttr := ast.New(ast.KindDoAttr, ast.Leaf(ast.TokKeyword, "do"), ast.Leaf(ast.TokColon, ":"), assign)
		edgeClone.Children = append(edgeClone.Children, ast.NewAttributes(doAttr))
		return
	}
	list := attrs.AttributeList()
	for _, a := range list {
		if a.Rule == ast.KindDoAttr {
			a.Children = append(a.Children, ast.Leaf(ast.TokComma, ","), assign)
			return
		}
	}
	doAttr := ast.New(ast.KindDoAttr, ast.Leaf(ast.TokKeyword, "do"), ast.Leaf(ast.TokColon, ":"), assign)
	attrs.Children = ast.NewAttributes(append(append([]*ast.Node{}, list...), doAttr)...).Children
}

// InvertReset emits, for each edge and each canonical clock, a mutant
// toggling that clock's reset on the edge: a literal-0 reset becomes a
// nop, and a clock not reset gets a new `do:` assignment appended
// (spec.md §4.3 "for each canonical clock c"; a `clock:N:x` declaration
// with N > 1 must enumerate the N canonical clocks `x[0], …, x[N-1]`,
// not the single bare declaration name, so `ast.AllClocks` is the
// correct source here, matching change_constraint_clock).
func InvertReset(root *ast.Node, val int) []*ast.Node {
	var mutants []*ast.Node
	for _, edge := range ast.FindAll(root, ast.KindEdgeDecl) {
		resets := resetsOf(findDoAttr(edge.EdgeAttributes()))
		for _, c := range ast.AllClocks(root) {
			key := clockKey(c)
			clone := edge.Clone()
			if resets[key] {
				replaceResetWithNop(clone.EdgeAttributes(), key)
			} else {
				appendReset(clone, c)
			}
			if m, err := spliceDecl(root, edge, clone); err == nil {
				mutants = append(mutants, m)
			}
		}
	}
	return dedupe(root, mutants)
}

// toggleLocationFlag emits, for each location, a mutant toggling the
// presence of the no-value attribute kind/keyword: removed (with its
// separating colon) if present, inserted at the head of the attribute
// block otherwise (spec.md §4.3 invert_committed_location /
// invert_urgent_location).
func toggleLocationFlag(root *ast.Node, kind ast.Kind, keyword string) []*ast.Node {
	var mutants []*ast.Node
	for _, loc := range ast.FindAll(root, ast.KindLocationDecl) {
		clone := loc.Clone()
		attrs := clone.Attributes()
		if attrs == nil {
			clone.Children = append(clone.Children, ast.NewAttributes(ast.New(kind, ast.Leaf(ast.TokKeyword, keyword))))
		} else {
			list := attrs.AttributeList()
			present := -1
			for i, a := range list {
				if a.Rule == kind {
					present = i
					break
				}
			}
			var newList []*ast.Node
			if present >= 0 {
				newList = append(append([]*ast.Node{}, list[:present]...), list[present+1:]...)
			} else {
				newList = append([]*ast.Node{ast.New(kind, ast.Leaf(ast.TokKeyword, keyword))}, list...)
			}
			attrs.Children = ast.NewAttributes(newList...).Children
		}
		if m, err := spliceDecl(root, loc, clone); err == nil {
			mutants = append(mutants, m)
		}
	}
	return dedupe(root, mutants)
}

// InvertCommittedLocation toggles the committed attribute on every
// location (spec.md §4.3).
func InvertCommittedLocation(root *ast.Node, val int) []*ast.Node {
	return toggleLocationFlag(root, ast.KindCommittedAttr, "committed")
}

// InvertUrgentLocation toggles the urgent attribute on every location
// (spec.md §4.3).
func InvertUrgentLocation(root *ast.Node, val int) []*ast.Node {
	return toggleLocationFlag(root, ast.KindUrgentAttr, "urgent")
}

// cloneNodes returns an independent clone of every node in nodes, in
// order.
func cloneNodes(nodes []*ast.Node) []*ast.Node {
	out := make([]*ast.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// NegateGuard emits, for each edge whose guard (after CombineGuards
// and BreakUpEquals) carries at least one clock-constraint atom, one
// new edge per such atom: the atom is replaced by its negation and
// every other clock atom is dropped, the non-clock part of the guard
// is kept conjoined unchanged, the original edge is removed from the
// tree, and the new edge(s) are appended at the end (spec.md §4.3: "the
// original edge is removed and the new edges are appended"). Unlike
// change_constraint_cmp/change_constraint_clock/the constant-shift
// operators, this one never touches location invariants — spec.md's
// negate_guard is phrased strictly in terms of "each edge's guard".
func NegateGuard(root *ast.Node, val int) []*ast.Node {
	prepared := transform.BreakUpEquals(transform.CombineGuards(root))

	var mutants []*ast.Node
	for _, edge := range ast.FindAll(prepared, ast.KindEdgeDecl) {
		attrs := edge.EdgeAttributes()
		if attrs == nil {
			continue
		}
		list := attrs.AttributeList()
		attrIdx := -1
		for i, a := range list {
			if a.Rule == ast.KindProvidedAttr {
				attrIdx = i
				break
			}
		}
		if attrIdx < 0 {
			continue
		}
		guardAttr := list[attrIdx]
		expr := guardAttr.Child(2)

		var clockAtoms, otherAtoms []*ast.Node
		for i := 0; i < len(expr.Children); i += 2 {
			atom := expr.Children[i]
			if ast.IsClockExpr(prepared, atom) {
				clockAtoms = append(clockAtoms, atom)
			} else {
				otherAtoms = append(otherAtoms, atom)
			}
		}
		if len(clockAtoms) == 0 {
			continue
		}

		for _, atom := range clockAtoms {
			inner := atom.Child(0)
			neg, ok := ast.NegatedComparator(inner.Child(1).TokKind)
			if !ok {
				continue
			}
			negated := ast.New(ast.KindAtomicExpr,
				ast.New(inner.Rule, inner.Child(0).Clone(), ast.Leaf(neg, string(neg)), inner.Child(2).Clone()),
			)
			newGuard := ast.New(ast.KindProvidedAttr,
				guardAttr.Child(0).Clone(), guardAttr.Child(1).Clone(),
				ast.NewConjunction(append([]*ast.Node{negated}, cloneNodes(otherAtoms)...)...),
			)

			newEdge := edge.Clone()
			newAttrs := newEdge.EdgeAttributes()
			newList := newAttrs.AttributeList()
			newList[attrIdx] = newGuard
			newAttrs.Children = ast.NewAttributes(newList...).Children

			tree, err := removeDecl(prepared, edge)
			if err != nil {
				continue
			}
			tree.Children = append(tree.Children, newEdge)
			mutants = append(mutants, tree)
		}
	}
	return dedupe(root, mutants)
}
