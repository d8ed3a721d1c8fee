package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/talos-api/internal/domain"
)

// DBTX is the subset of pgxpool.Pool used by the repositories.
type DBTX interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepository defines read access to login accounts.
type AccountRepository interface {
	// GetByIdentifier returns pgx.ErrNoRows when no account uses the identifier.
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Account, error)
}

type accountRepository struct {
	db DBTX
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(db DBTX) AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `idx, id, password, email, name, phone, status, access, preset_ip, COALESCE(expiry, 0), created_at`

func (r *accountRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.Account, error) {
	const query = `
        SELECT ` + accountColumns + `
        FROM users WHERE id=$1`

	return scanAccount(r.db.QueryRow(ctx, query, identifier))
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.Idx,
		&account.ID,
		&account.PasswordHash,
		&account.Email,
		&account.Name,
		&account.Phone,
		&account.Status,
		&account.Access,
		&account.PresetIP,
		&account.Expiry,
		&account.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}
