package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_SeededAdminRoundTrip(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)

	assert.NotEqual(t, "admin123", hash)
	assert.True(t, CheckPasswordHash("admin123", hash))
	assert.False(t, CheckPasswordHash("Admin123", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestHashPassword_IsSalted(t *testing.T) {
	first, err := HashPassword("senha-da-linha")
	require.NoError(t, err)
	second, err := HashPassword("senha-da-linha")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPasswordHash("senha-da-linha", first))
	assert.True(t, CheckPasswordHash("senha-da-linha", second))
}

func TestCheckPasswordHash_UnusableStoredHash(t *testing.T) {
	for _, stored := range []string{"", "admin123", "$2a$10$truncated"} {
		assert.False(t, CheckPasswordHash("admin123", stored), "stored hash %q", stored)
	}
}
