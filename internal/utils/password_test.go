package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdverse/vidtube_backend/internal/utils"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("secret123", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, utils.CheckPasswordHash("secret123", hash))
	assert.False(t, utils.CheckPasswordHash("wrongpass", hash))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	hash1, err := utils.HashPassword("secret123", 4)
	require.NoError(t, err)
	hash2, err := utils.HashPassword("secret123", 4)
	require.NoError(t, err)

	// Same plaintext, different digests, both independently verifiable.
	assert.NotEqual(t, hash1, hash2)
	assert.True(t, utils.CheckPasswordHash("secret123", hash1))
	assert.True(t, utils.CheckPasswordHash("secret123", hash2))
}

func TestHashPassword_InvalidCostFallsBackToDefault(t *testing.T) {
	hash, err := utils.HashPassword("secret123", 99)
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("secret123", hash))
}

func TestCheckPasswordHash_MalformedDigest(t *testing.T) {
	assert.False(t, utils.CheckPasswordHash("secret123", "not-a-bcrypt-digest"))
}
