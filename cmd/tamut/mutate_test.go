package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMutateFlags(t *testing.T) {
	assert.NoError(t, validateMutateFlags("all", 1))
	assert.NoError(t, validateMutateFlags("negate_guard", 3))

	assert.Error(t, validateMutateFlags("all", 0))
	assert.Error(t, validateMutateFlags("all", -1))
	assert.Error(t, validateMutateFlags("not_a_real_operator", 1))
}
