package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"davazen/internal/storage"
	"davazen/internal/storage/adapters/sqlite"
	"davazen/internal/storage/storagetest"
	"davazen/migrations"
	dbsqlite "davazen/pkg/db/sqlite"
)

func newStore(t *testing.T) storage.Store {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "entities.db")

	require.NoError(t, dbsqlite.Migrate(ctx, path, migrations.SQLite()))

	db, err := dbsqlite.Open(ctx, path)
	require.NoError(t, err)

	store := sqlite.New(db.DB())
	t.Cleanup(func() { _ = store.Close(ctx) })
	return store
}

func TestStoreContract(t *testing.T) {
	storagetest.Run(t, newStore)
}
