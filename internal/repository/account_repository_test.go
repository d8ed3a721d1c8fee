package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/talos-api/internal/domain"
)

func newAccountTestFixture(t *testing.T) (AccountRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewAccountRepository(mock), mock
}

func sampleAccount() *domain.Account {
	return &domain.Account{
		Idx:          7,
		ID:           "alice",
		PasswordHash: "$2a$04$abcdefghijklmnopqrstuu",
		Email:        "alice@example.com",
		Name:         "Alice",
		Phone:        "01012345678",
		Status:       domain.AccountStatusActive,
		Access:       domain.AccountAccessAdmin,
		PresetIP:     "127.0.0.1",
		Expiry:       0,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func accountRow(a *domain.Account) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"idx", "id", "password", "email", "name", "phone",
		"status", "access", "preset_ip", "expiry", "created_at",
	}).AddRow(
		a.Idx, a.ID, a.PasswordHash, a.Email, a.Name, a.Phone,
		a.Status, a.Access, a.PresetIP, a.Expiry, a.CreatedAt,
	)
}

func TestAccountRepository_GetByIdentifier_Found(t *testing.T) {
	repo, mock := newAccountTestFixture(t)
	defer mock.Close()

	want := sampleAccount()
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id=\$1`).
		WithArgs("alice").
		WillReturnRows(accountRow(want))

	got, err := repo.GetByIdentifier(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByIdentifier_NotFound(t *testing.T) {
	repo, mock := newAccountTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id=\$1`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByIdentifier(context.Background(), "ghost")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByIdentifier_DBError(t *testing.T) {
	repo, mock := newAccountTestFixture(t)
	defer mock.Close()

	dbErr := errors.New("connection reset")
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id=\$1`).
		WithArgs("alice").
		WillReturnError(dbErr)

	_, err := repo.GetByIdentifier(context.Background(), "alice")
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
