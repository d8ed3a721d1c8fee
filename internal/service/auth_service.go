package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/talos-api/internal/auth"
	"github.com/spec-kit/talos-api/internal/config"
	"github.com/spec-kit/talos-api/internal/domain"
	"github.com/spec-kit/talos-api/internal/repository"
	apperrors "github.com/spec-kit/talos-api/pkg/util"
)

// AuthService verifies credentials and issues token pairs.
type AuthService struct {
	accounts   repository.AccountRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts: deps.AccountRepo,
		tokenMgr: auth.NewTokenManager(auth.TokenOptions{
			Secret:     cfg.JWTSecret,
			AccessTTL:  cfg.AccessTokenTTL(),
			RefreshTTL: cfg.RefreshTokenTTL(),
			Scheme:     cfg.TokenScheme,
		}),
		bcryptCost: cfg.BcryptCost,
	}
}

// Signin authenticates an account by login identifier and password.
// Failures are *apperrors.DomainError values of kind AccountNotFound,
// InvalidCredentials, BadRequest or Internal.
func (s *AuthService) Signin(ctx context.Context, identifier, password string) (domain.TokenPair, error) {
	if identifier == "" || password == "" {
		return domain.TokenPair{}, apperrors.NewValidationError(nil)
	}
	if len(password) > auth.MaxPasswordBytes {
		return domain.TokenPair{}, apperrors.NewValidationError(map[string]any{"password": "the length must be no more than 72"})
	}

	account, err := s.accounts.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TokenPair{}, apperrors.NewAccountNotFound()
		}
		return domain.TokenPair{}, apperrors.NewInternalError(err)
	}

	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return domain.TokenPair{}, apperrors.NewInvalidCredentials()
		}
		return domain.TokenPair{}, apperrors.NewInternalError(err)
	}

	pair, err := s.tokenMgr.IssuePair(account.Idx)
	if err != nil {
		return domain.TokenPair{}, apperrors.NewInternalError(err)
	}
	return pair, nil
}

// HashPassword produces a storable hash with the configured cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	if password == "" {
		return "", apperrors.NewValidationError(map[string]any{"password": "cannot be blank"})
	}
	if len(password) > auth.MaxPasswordBytes {
		return "", apperrors.NewValidationError(map[string]any{"password": "the length must be no more than 72"})
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return hash, nil
}

// TokenManager exposes the underlying token manager.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
