package mutate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamut/tamut/ast"
)

func TestAddSync_SkipsAlreadyPresent(t *testing.T) {
	sys := sampleSystem()
	mutants := AddSync(sys, 0)
	// Only subset {P1, P2} has size >= 2; of its 4 event combinations,
	// (a, a) reproduces the sync already in sampleSystem.
	assert.Len(t, mutants, 3)
}

func TestChangeSyncEvent(t *testing.T) {
	sys := sampleSystem()
	mutants := ChangeSyncEvent(sys, 0)
	require.Len(t, mutants, 2, "one alternative event ('b') per constraint")

	for _, m := range mutants {
		syncs := ast.FindAll(m, ast.KindSyncDecl)
		require.Len(t, syncs, 1)
		cs := constraintList(syncs[0].SyncConstraints())
		bCount := 0
		for _, c := range cs {
			if c.ConstraintEvent().IdentText() == "b" {
				bCount++
			}
		}
		assert.Equal(t, 1, bCount, "exactly one constraint changed to event b")
	}
}

func TestInvertSyncWeakness(t *testing.T) {
	sys := sampleSystem()
	mutants := InvertSyncWeakness(sys, 0)
	require.Len(t, mutants, 2)

	for _, m := range mutants {
		syncs := ast.FindAll(m, ast.KindSyncDecl)
		require.Len(t, syncs, 1)
		weakCount := 0
		for _, c := range constraintList(syncs[0].SyncConstraints()) {
			if c.IsWeak() {
				weakCount++
			}
		}
		assert.Equal(t, 1, weakCount)
	}
}

func TestRemoveSync(t *testing.T) {
	sys := sampleSystem()
	mutants := RemoveSync(sys, 0)
	require.Len(t, mutants, 1)
	assert.Len(t, ast.FindAll(mutants[0], ast.KindSyncDecl), 0)
}

func TestRemoveSyncConstraint(t *testing.T) {
	sys := sampleSystem()
	mutants := RemoveSyncConstraint(sys, 0)
	require.Len(t, mutants, 2, "one mutant per constraint, each removed in turn")

	for _, m := range mutants {
		syncs := ast.FindAll(m, ast.KindSyncDecl)
		require.Len(t, syncs, 1)
		assert.Len(t, constraintList(syncs[0].SyncConstraints()), 1)
	}
}
