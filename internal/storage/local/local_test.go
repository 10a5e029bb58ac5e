package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPut_WritesFileAndReturnsURL(t *testing.T) {
	root := t.TempDir()
	store, err := New(root, "http://localhost:8080/")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "photos/7/bafkreiabc.jpg", "image/jpeg", []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/blobs/photos/7/bafkreiabc.jpg", url)

	data, err := os.ReadFile(filepath.Join(root, "photos", "7", "bafkreiabc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)
}

func TestPut_OverwritesSameKey(t *testing.T) {
	store, err := New(t.TempDir(), "")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "a.jpg", "image/jpeg", []byte("one"))
	require.NoError(t, err)
	_, err = store.Put(context.Background(), "a.jpg", "image/jpeg", []byte("two"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(store.Root(), "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestPut_RejectsEscapingKeys(t *testing.T) {
	store, err := New(t.TempDir(), "")
	require.NoError(t, err)

	for _, key := range []string{"../etc/passwd", "photos/../../x", "/abs.jpg", "", "photos//x.jpg"} {
		_, err := store.Put(context.Background(), key, "image/jpeg", []byte("x"))
		assert.Error(t, err, key)
	}
}

func TestPut_CanceledContext(t *testing.T) {
	store, err := New(t.TempDir(), "")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Put(ctx, "a.jpg", "image/jpeg", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
