package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/talos-api/internal/domain"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 30 * 24 * time.Hour
	defaultScheme     = "Bearer"
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	scheme     string
	now        func() time.Time
}

// TokenOptions configures a TokenManager.
type TokenOptions struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Scheme     string
}

// NewTokenManager builds a new manager.
func NewTokenManager(opts TokenOptions) *TokenManager {
	if opts.AccessTTL <= 0 {
		opts.AccessTTL = defaultAccessTTL
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = defaultRefreshTTL
	}
	if opts.Scheme == "" {
		opts.Scheme = defaultScheme
	}
	return &TokenManager{
		secret:     []byte(opts.Secret),
		accessTTL:  opts.AccessTTL,
		refreshTTL: opts.RefreshTTL,
		scheme:     opts.Scheme,
		now:        time.Now,
	}
}

// Claims describes JWT payload.
type Claims struct {
	Type domain.TokenType `json:"type"`
	jwt.RegisteredClaims
}

// SubjectIdx returns the account surrogate key carried in sub.
func (c *Claims) SubjectIdx() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// IssuePair mints an access and a refresh token for the account surrogate key.
func (tm *TokenManager) IssuePair(subjectIdx int64) (domain.TokenPair, error) {
	access, err := tm.sign(subjectIdx, domain.TokenTypeAccess, tm.accessTTL)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := tm.sign(subjectIdx, domain.TokenTypeRefresh, tm.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return domain.TokenPair{
		AccessToken:  tm.withScheme(access),
		RefreshToken: tm.withScheme(refresh),
	}, nil
}

func (tm *TokenManager) sign(subjectIdx int64, tokenType domain.TokenType, ttl time.Duration) (string, error) {
	issuedAt := tm.now()
	claims := &Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(subjectIdx, 10),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

func (tm *TokenManager) withScheme(token string) string {
	return tm.scheme + " " + token
}

// ParseToken validates and returns claims. The scheme prefix is optional.
func (tm *TokenManager) ParseToken(raw string) (*Claims, error) {
	tokenStr := strings.TrimSpace(raw)
	if parts := strings.SplitN(tokenStr, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], tm.scheme) {
		tokenStr = strings.TrimSpace(parts[1])
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Type != domain.TokenTypeAccess && claims.Type != domain.TokenTypeRefresh {
		return nil, errors.New("unknown token type")
	}
	return claims, nil
}
