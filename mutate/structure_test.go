package mutate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamut/tamut/ast"
)

func TestAddLocation(t *testing.T) {
	sys := sampleSystem()
	mutants := AddLocation(sys, 0)
	require.Len(t, mutants, 1, "P1 has one edge; P2 has none")

	locs := ast.FindAll(mutants[0], ast.KindLocationDecl)
	require.Len(t, locs, 3)
	assert.Equal(t, "new_loc", locs[0].LocName().IdentText(), "inserted directly after process:P1, ahead of the original locations")

	edges := ast.FindAll(mutants[0], ast.KindEdgeDecl)
	require.Len(t, edges, 1)
	assert.Equal(t, "new_loc", edges[0].EdgeTarget().IdentText())
}

func TestAddTransition_SkipsTemplateItself(t *testing.T) {
	sys := sampleSystem()
	mutants := AddTransition(sys, 0)
	// P1 has locations {l0, l1}: 4 ordered pairs, one of which (P1,l0,l1)
	// reproduces the template edge's own (process, source, target) and
	// is skipped. P2 has no locations, contributing nothing.
	assert.Len(t, mutants, 3)

	for _, m := range mutants {
		assert.Len(t, ast.FindAll(m, ast.KindEdgeDecl), 2)
	}
}

func TestChangeTransitionSource(t *testing.T) {
	sys := sampleSystem()
	mutants := ChangeTransitionSource(sys, 0)
	require.Len(t, mutants, 1, "only l1 is a distinct source for the l0->l1 edge")

	edges := ast.FindAll(mutants[0], ast.KindEdgeDecl)
	require.Len(t, edges, 1)
	assert.Equal(t, "l1", edges[0].EdgeSource().IdentText())
	assert.Equal(t, "l1", edges[0].EdgeTarget().IdentText())
}

func TestChangeTransitionTarget(t *testing.T) {
	sys := sampleSystem()
	mutants := ChangeTransitionTarget(sys, 0)
	require.Len(t, mutants, 1, "only l0 is a distinct target for the l0->l1 edge")

	edges := ast.FindAll(mutants[0], ast.KindEdgeDecl)
	require.Len(t, edges, 1)
	assert.Equal(t, "l0", edges[0].EdgeSource().IdentText())
	assert.Equal(t, "l0", edges[0].EdgeTarget().IdentText())
}

func TestRemoveLocation_OnlyNonInitial(t *testing.T) {
	sys := sampleSystem()
	mutants := RemoveLocation(sys, 0)
	require.Len(t, mutants, 1, "l0 is initial and is skipped; only l1 qualifies")

	locs := ast.FindAll(mutants[0], ast.KindLocationDecl)
	require.Len(t, locs, 1)
	assert.Equal(t, "l0", locs[0].LocName().IdentText())

	assert.Len(t, ast.FindAll(mutants[0], ast.KindEdgeDecl), 0, "the edge mentioning l1 is removed with it")
}

func TestRemoveTransition(t *testing.T) {
	sys := sampleSystem()
	mutants := RemoveTransition(sys, 0)
	require.Len(t, mutants, 1)
	assert.Len(t, ast.FindAll(mutants[0], ast.KindEdgeDecl), 0)
}
