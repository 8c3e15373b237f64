package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstruct_RoundTrips(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleSystem))
	require.NoError(t, err)

	out := Reconstruct(root)

	reparsed, err := Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.True(t, root.Equal(reparsed), "reconstructed text parses back to an equal tree")
}

func TestReconstruct_OneDeclPerLine(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleSystem))
	require.NoError(t, err)

	out := Reconstruct(root)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// system header + 2 process + 2 event + 1 clock + 1 int + 2 location + 1 edge + 1 sync
	assert.Len(t, lines, 11)
}
