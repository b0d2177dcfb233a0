package credstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/surveydesk/go-console/credstore"
)

func openStore(t *testing.T) *credstore.SQLiteStore {
	t.Helper()
	store, err := credstore.OpenSQLite(filepath.Join(t.TempDir(), "credentials.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLoadEmptyStore(t *testing.T) {
	store := openStore(t)

	tok, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestSaveAndLoad(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "first-token"))

	tok, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "first-token", tok)

	// Saving again overwrites the single slot.
	require.NoError(t, store.Save(ctx, "second-token"))

	tok, err = store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "second-token", tok)
}

func TestClear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "token"))
	require.NoError(t, store.Clear(ctx))

	tok, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	// Clearing an empty store is fine.
	require.NoError(t, store.Clear(ctx))
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")
	ctx := context.Background()

	store, err := credstore.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "durable-token"))
	require.NoError(t, store.Close())

	reopened, err := credstore.OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	tok, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "durable-token", tok)
}
