package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamut/tamut/ast"
)

const sampleSystem = `system:S
process:P1
process:P2
event:a
event:b
clock:1:x
int:1:0:10:0:n
location:P1:l0{initial}
location:P1:l1{invariant: x<=10}
edge:P1:l0:l1:a{provided: x>=2:do: x=0}
sync:P1@a:P2@a?
`

func TestParse_WellFormedSystem(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleSystem))
	require.NoError(t, err)
	require.NotNil(t, root)

	assert.Equal(t, ast.KindSystemDecl, root.Rule)
	assert.Equal(t, "S", root.Child(2).IdentText())

	procs := ast.FindAll(root, ast.KindProcessDecl)
	require.Len(t, procs, 2)
	assert.Equal(t, "P1", procs[0].DeclName().IdentText())
	assert.Equal(t, "P2", procs[1].DeclName().IdentText())

	clocks := ast.FindAll(root, ast.KindClockDecl)
	require.Len(t, clocks, 1)
	assert.Equal(t, "x", clocks[0].ClockName().IdentText())

	ints := ast.FindAll(root, ast.KindIntDecl)
	require.Len(t, ints, 1)
	assert.Equal(t, "n", ints[0].IntName().IdentText())

	edges := ast.FindAll(root, ast.KindEdgeDecl)
	require.Len(t, edges, 1)
	edge := edges[0]
	assert.Equal(t, "P1", edge.EdgeProcess().IdentText())
	assert.Equal(t, "l0", edge.EdgeSource().IdentText())
	assert.Equal(t, "l1", edge.EdgeTarget().IdentText())
	assert.Equal(t, "a", edge.EdgeEvent().IdentText())
	require.NotNil(t, edge.EdgeAttributes())
	assert.Len(t, edge.EdgeAttributes().AttributeList(), 2)

	locs := ast.FindAll(root, ast.KindLocationDecl)
	require.Len(t, locs, 2)
	assert.True(t, ast.IsInitial(locs[0]))
	assert.False(t, ast.IsInitial(locs[1]))

	syncs := ast.FindAll(root, ast.KindSyncDecl)
	require.Len(t, syncs, 1)
	constraints := syncs[0].SyncConstraints().Children
	// Two sync_constraint children plus one separating colon.
	require.Len(t, constraints, 3)
	assert.True(t, constraints[2].IsWeak())
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse(strings.NewReader("system:S\nprocess\n"))
	require.Error(t, err)

	list, ok := err.(interface{ Error() string })
	require.True(t, ok)
	assert.NotEmpty(t, list.Error())
}

func TestParse_MissingSystemHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("process:P1\n"))
	require.Error(t, err)
}

func TestParse_UnexpectedCharacter(t *testing.T) {
	_, err := Parse(strings.NewReader("system:S\nlocation:P1:l0{provided: x ~ 3}\n"))
	require.Error(t, err)
}
