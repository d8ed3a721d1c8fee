package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/talos-api/internal/domain"
)

func newTestManager() *TokenManager {
	return NewTokenManager(TokenOptions{
		Secret:     "test-secret",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	})
}

func TestTokenManager_IssuePair(t *testing.T) {
	tm := newTestManager()

	pair, err := tm.IssuePair(42)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(pair.AccessToken, "Bearer "))
	assert.True(t, strings.HasPrefix(pair.RefreshToken, "Bearer "))
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := tm.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenTypeAccess, access.Type)
	idx, err := access.SubjectIdx()
	require.NoError(t, err)
	assert.Equal(t, int64(42), idx)

	refresh, err := tm.ParseToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenTypeRefresh, refresh.Type)
	assert.Equal(t, "42", refresh.Subject)

	assert.True(t, refresh.ExpiresAt.After(access.ExpiresAt.Time))
	assert.NotEqual(t, access.ID, refresh.ID)
}

func TestTokenManager_PairsAreIndependent(t *testing.T) {
	tm := newTestManager()

	first, err := tm.IssuePair(7)
	require.NoError(t, err)
	second, err := tm.IssuePair(7)
	require.NoError(t, err)

	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	for _, tok := range []string{first.AccessToken, first.RefreshToken, second.AccessToken, second.RefreshToken} {
		_, err := tm.ParseToken(tok)
		assert.NoError(t, err)
	}
}

func TestTokenManager_ParseWithoutScheme(t *testing.T) {
	tm := newTestManager()
	pair, err := tm.IssuePair(1)
	require.NoError(t, err)

	claims, err := tm.ParseToken(strings.TrimPrefix(pair.AccessToken, "Bearer "))
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)
}

func TestTokenManager_CustomScheme(t *testing.T) {
	tm := NewTokenManager(TokenOptions{Secret: "s", Scheme: "JWT"})
	pair, err := tm.IssuePair(3)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(pair.AccessToken, "JWT "))
	_, err = tm.ParseToken(pair.AccessToken)
	assert.NoError(t, err)
}

func TestTokenManager_RejectsOtherSecret(t *testing.T) {
	pair, err := newTestManager().IssuePair(1)
	require.NoError(t, err)

	other := NewTokenManager(TokenOptions{Secret: "another-secret"})
	_, err = other.ParseToken(pair.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm := newTestManager()
	issued := time.Now().Add(-time.Hour)
	tm.now = func() time.Time { return issued }

	pair, err := tm.IssuePair(1)
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.ParseToken(pair.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = tm.ParseToken(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestTokenManager_RejectsOtherAlgorithm(t *testing.T) {
	tm := newTestManager()
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		Type: domain.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tm.ParseToken(signed)
	assert.Error(t, err)
}

func TestTokenManager_Defaults(t *testing.T) {
	tm := NewTokenManager(TokenOptions{Secret: "s"})
	assert.Equal(t, defaultAccessTTL, tm.accessTTL)
	assert.Equal(t, defaultRefreshTTL, tm.refreshTTL)
	assert.Equal(t, defaultScheme, tm.scheme)
}
