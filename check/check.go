// Package check defines the three external decision procedures the
// driver consults (spec.md §6 "opaque services") and a null
// implementation that lets the driver run without a real TChecker
// toolchain installed.
package check

// Checker decides the three semantic questions the driver needs about
// a TChecker system declaration, without itself implementing TChecker's
// semantics (spec.md §1 Non-goals).
type Checker interface {
	// CheckSyntax reports whether ta is syntactically valid TChecker
	// input.
	CheckSyntax(ta string) bool
	// CheckReachability reports whether ta's initial state set is
	// reachability-consistent; a non-nil error means ta is
	// semantically faulty (spec.md §4.4 step 5 "if checkReachability
	// raises").
	CheckReachability(ta string) (bool, error)
	// CheckBisimilarity reports whether first and second describe
	// bisimilar systems.
	CheckBisimilarity(first, second string) bool
}

// NullChecker is a total, always-succeeding stand-in: every syntax and
// reachability check passes, and no two systems are ever reported
// bisimilar. Grounded on original_source/src/helpers.py's "stud"
// check_syntax/check_bisimilarity, which the distillation's driver
// snapshot used in place of a real TChecker installation (spec.md §1
// Non-goals: "no implementing the bisimilarity decision procedure
// itself").
type NullChecker struct{}

func (NullChecker) CheckSyntax(ta string) bool { return true }

func (NullChecker) CheckReachability(ta string) (bool, error) { return true, nil }

func (NullChecker) CheckBisimilarity(first, second string) bool { return false }
