package persistence

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/talos-api/internal/config"
)

func TestNewPostgres_WithoutDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)

	assert.Nil(t, pg.PoolHandle())
	assert.ErrorIs(t, pg.Ping(context.Background()), ErrNotConfigured)
	assert.NotPanics(t, pg.Close)
}

func TestNewPostgres_InvalidDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), config.PostgresConfig{DSN: "::not a dsn::"}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse postgres dsn")
}

func TestPoolConfig_AppliesLimits(t *testing.T) {
	poolCfg, err := poolConfig(config.PostgresConfig{
		DSN:            "postgres://talos:pw@db.internal:5432/talos",
		MaxConns:       8,
		MinConns:       2,
		ConnMaxIdleSec: 30,
		ConnMaxLifeSec: 600,
	})
	require.NoError(t, err)

	assert.Equal(t, "db.internal", poolCfg.ConnConfig.Host)
	assert.Equal(t, "talos", poolCfg.ConnConfig.Database)
	assert.Equal(t, int32(8), poolCfg.MaxConns)
	assert.Equal(t, int32(2), poolCfg.MinConns)
	assert.Equal(t, 30*time.Second, poolCfg.MaxConnIdleTime)
	assert.Equal(t, 10*time.Minute, poolCfg.MaxConnLifetime)
}

func TestPoolConfig_RejectsMinAboveMax(t *testing.T) {
	_, err := poolConfig(config.PostgresConfig{
		DSN:      "postgres://talos:pw@localhost:5432/talos",
		MaxConns: 2,
		MinConns: 5,
	})
	assert.Error(t, err)
}

func TestRunMigrations_NoPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestMigrations_AreEmbeddedInOrder(t *testing.T) {
	entries, err := fs.ReadDir(migrationFS, migrationsDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "00001_create_users.sql", entries[0].Name())
	assert.Equal(t, "00002_create_user_logs.sql", entries[1].Name())

	for _, entry := range entries {
		body, err := fs.ReadFile(migrationFS, migrationsDir+"/"+entry.Name())
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), "-- +goose Up"), entry.Name())
		assert.True(t, strings.Contains(string(body), "-- +goose Down"), entry.Name())
	}
}
