package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", hash)
	assert.NoError(t, ComparePassword(hash, "secret123"))
	assert.ErrorIs(t, ComparePassword(hash, "secret124"), ErrPasswordMismatch)
}

func TestHashPassword_IsSalted(t *testing.T) {
	first, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashPassword_InvalidCostFallsBack(t *testing.T) {
	hash, err := HashPassword("pw", 99)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestComparePassword_MalformedHash(t *testing.T) {
	assert.ErrorIs(t, ComparePassword("", "pw"), ErrPasswordMismatch)
	assert.ErrorIs(t, ComparePassword("pbkdf2:sha256:260000$salt$deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef", "pw"), ErrPasswordMismatch)
}

func TestComparePassword_RejectsOverlongInput(t *testing.T) {
	base := strings.Repeat("a", MaxPasswordBytes)
	hash, err := HashPassword(base, bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, base))
	assert.ErrorIs(t, ComparePassword(hash, base+"b"), ErrPasswordMismatch)
}
