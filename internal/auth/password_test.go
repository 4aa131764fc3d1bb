package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.NoError(t, ComparePassword(hash, "hunter2"))
	assert.Error(t, ComparePassword(hash, "hunter3"))
}

func TestPasswordHashCostOutOfRange(t *testing.T) {
	hash, err := HashPassword("hunter2", 99)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "hunter2"))
}
