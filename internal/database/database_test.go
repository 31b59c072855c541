package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yukikurage/ticket-tracker/internal/config"
	"github.com/yukikurage/ticket-tracker/internal/models"
)

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(&config.Config{DBDriver: "oracle"}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestBootstrapper_EnsureIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bootstrap.db")
	db, err := Connect(&config.Config{DBDriver: "sqlite", DBPath: dbPath}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	b := NewBootstrapper(db, zap.NewNop())
	assert.False(t, b.Ready())

	require.NoError(t, b.Ensure(context.Background()))
	require.NoError(t, b.Ensure(context.Background()))
	assert.True(t, b.Ready())

	for _, model := range []any{&models.User{}, &models.Ticket{}, &models.AdminClaim{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}

	// A second process against the same file must not fail either.
	require.NoError(t, Migrate(db))
}

func TestBootstrapper_RetriesAfterFailure(t *testing.T) {
	db, err := Connect(&config.Config{DBDriver: "sqlite", DBPath: ":memory:"}, zap.NewNop())
	require.NoError(t, err)

	b := NewBootstrapper(db, zap.NewNop())
	require.NoError(t, Close(db))

	assert.Error(t, b.Ensure(context.Background()))
	assert.False(t, b.Ready())
}
