package storage

import (
	"context"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T) *LocalStorage {
	store, err := NewLocalStorage(t.TempDir(), "http://localhost:3000/", NewSignedURLSigner("secret"))
	require.NoError(t, err)
	return store
}

func TestLocalStorageSaveURLOpen(t *testing.T) {
	ctx := context.Background()
	store := newTestLocalStorage(t)

	require.NoError(t, store.Save(ctx, "lectures/id_notes one.pdf", []byte("%PDF-1.4"), "application/pdf"))

	raw, err := store.URL(ctx, "lectures/id_notes one.pdf")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(raw, "http://localhost:3000/files/lectures/id_notes%20one.pdf?token="))

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	file, err := store.Open("lectures/id_notes one.pdf", parsed.Query().Get("token"))
	require.NoError(t, err)
	defer file.Close()
	body, err := io.ReadAll(file)
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.4", string(body))

	_, err = store.Open("lectures/id_notes one.pdf", "1.bad")
	require.Error(t, err)
}

func TestLocalStorageDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestLocalStorage(t)

	require.NoError(t, store.Save(ctx, "covers/c.png", []byte{1}, "image/png"))
	require.NoError(t, store.Delete(ctx, "covers/c.png"))
	require.ErrorIs(t, store.Delete(ctx, "covers/c.png"), ErrObjectNotExist)
}

func TestLocalStorageConfinesPaths(t *testing.T) {
	store := newTestLocalStorage(t)
	resolved, err := store.resolve("../../etc/passwd")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(resolved, store.baseDir))

	_, err = store.resolve("")
	require.Error(t, err)
}
