package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"entitysearch/cmd/internal/history"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func createTestStorage(t *testing.T) *Storage {
	dbPath := filepath.Join(t.TempDir(), "history_test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestNew_CreatesFileAndBucket(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	err = store.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketPreferences) == nil {
			return os.ErrNotExist
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "db"))
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.Get(ctx, history.StorageKey)
	assert.ErrorIs(t, err, history.ErrNotFound)

	require.NoError(t, store.Put(ctx, history.StorageKey, []byte(`[]`)))
	got, err := store.Get(ctx, history.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	require.NoError(t, store.Put(ctx, history.StorageKey, []byte(`[{"id":"1"}]`)))
	got, err = store.Get(ctx, history.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), got)

	require.NoError(t, store.Delete(ctx, history.StorageKey))
	_, err = store.Get(ctx, history.StorageKey)
	assert.ErrorIs(t, err, history.ErrNotFound)

	// deleting twice is fine
	assert.NoError(t, store.Delete(ctx, history.StorageKey))
}

func TestGet_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketPreferences)
	})
	require.NoError(t, err)

	_, err = store.Get(ctx, history.StorageKey)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "preferences bucket not found")

	err = store.Put(ctx, history.StorageKey, []byte(`[]`))
	assert.Error(t, err)
}

func TestStorage_BacksHistoryAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	first, err := New(ctx, dbPath)
	require.NoError(t, err)

	n := 0
	newID := func() string { n++; return string(rune('a' + n)) }

	hs := history.NewStore(first, newID)
	hs.Load(ctx)
	_, err = hs.Add(ctx, history.AddParams{Type: "nome", Value: "João"})
	require.NoError(t, err)
	want := hs.List()
	require.NoError(t, first.Close())

	second, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer second.Close()

	reloaded := history.NewStore(second, newID)
	reloaded.Load(ctx)
	assert.Equal(t, want, reloaded.List())
}
