package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)
	ctx := context.Background()

	err = store.Save(ctx, "images/2026/08/test.jpg", strings.NewReader("payload"), "image/jpeg")
	require.NoError(t, err)

	exists, err := store.Exists(ctx, "images/2026/08/test.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	reader, err := store.Get(ctx, "images/2026/08/test.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	assert.Equal(t, "payload", string(data))

	require.NoError(t, store.Delete(ctx, "images/2026/08/test.jpg"))
	exists, err = store.Exists(ctx, "images/2026/08/test.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing blob is not an error.
	assert.NoError(t, store.Delete(ctx, "images/2026/08/test.jpg"))
}

func TestLocalStorageURL(t *testing.T) {
	ctx := context.Background()

	plain, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)
	url, err := plain.URL(ctx, "a/b.png")
	require.NoError(t, err)
	assert.Equal(t, "/files/a/b.png", url)

	cdn, err := NewLocalStorage(t.TempDir(), "https://cdn.example.com")
	require.NoError(t, err)
	url, err = cdn.URL(ctx, "a/b.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a/b.png", url)
}
