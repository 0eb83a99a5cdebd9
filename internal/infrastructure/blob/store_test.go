package blob

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "uploads.db"), "uploads")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutGetDelete(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Put("a.png", []byte("png-bytes")))

	data, err := store.Get("a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	require.NoError(t, store.Delete("a.png"))
	_, err = store.Get("a.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get("nope.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNamesAndSize(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Put("a.png", []byte("a")))
	require.NoError(t, store.Put("b.jpg", []byte("b")))

	names, err := store.Names()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.png", "b.jpg"}, names)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}

func TestDeleteMissingIsNoop(t *testing.T) {
	store := openTestStore(t)
	assert.NoError(t, store.Delete("ghost.png"))
}
