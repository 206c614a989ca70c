package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSave(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(dir, 1)

	content := []byte("not really a png")
	stored, err := store.Save(bytes.NewReader(content), "photo.png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.URL, URLPrefix), "url %q", stored.URL)
	assert.True(t, strings.HasSuffix(stored.URL, ".png"), "url %q", stored.URL)
	assert.Equal(t, URLPrefix+stored.Name, stored.URL)
	assert.Equal(t, filepath.Join(dir, stored.Name), stored.Path)

	onDisk, err := os.ReadFile(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, content, onDisk)
}

func TestLocalSaveCreatesRoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store := NewLocal(dir, 1)

	_, err := store.Save(strings.NewReader("x"), "a.txt")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLocalSaveTooLargeLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(dir, 1) // 1 MB cap

	big := bytes.Repeat([]byte("a"), 1024*1024+1)
	_, err := store.Save(bytes.NewReader(big), "big.bin")
	require.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial file left behind")
}

func TestLocalSaveConcurrentDistinctFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(dir, 1)

	const n = 20
	urls := make(chan string, n)
	for i := 0; i < n; i++ {
		go func() {
			stored, err := store.Save(strings.NewReader("payload"), "img.png")
			assert.NoError(t, err)
			urls <- stored.URL
		}()
	}

	seen := map[string]bool{}
	for i := 0; i < n; i++ {
		u := <-urls
		assert.False(t, seen[u], "duplicate url %q", u)
		seen[u] = true
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, n)
}
