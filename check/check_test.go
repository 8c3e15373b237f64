package check

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNullChecker(t *testing.T) {
	var c Checker = NullChecker{}

	assert.True(t, c.CheckSyntax("anything"))

	ok, err := c.CheckReachability("anything")
	assert.True(t, ok)
	assert.NoError(t, err)

	assert.False(t, c.CheckBisimilarity("a", "b"))
}

func TestCommandChecker_MissingBinary(t *testing.T) {
	c := &CommandChecker{
		SyntaxBin:  "tamut-nonexistent-binary",
		ReachBin:   "tamut-nonexistent-binary",
		CompareBin: "tamut-nonexistent-binary",
		Timeout:    time.Second,
	}

	assert.False(t, c.CheckSyntax("system:S"))

	_, err := c.CheckReachability("system:S")
	assert.Error(t, err)

	assert.False(t, c.CheckBisimilarity("system:S", "system:S"))
}
