package util

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEntries(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.png", "a.jpg", "b.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "deep.jpg"), []byte("x"), 0o644))

	entries, err := ListEntries(dir)
	require.NoError(t, err)
	require.Len(t, entries, 4, "listing must not descend into subdirectories")

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
		assert.Equal(t, filepath.Join(dir, e.Name), e.Path)
	}
	assert.Equal(t, []string{"a.jpg", "b.txt", "c.png", "nested"}, names)
	assert.True(t, entries[3].IsDir)
	assert.False(t, entries[0].IsDir)
}

func TestListEntriesNotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.jpg")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := ListEntries(filepath.Join(dir, "missing"))
	assert.True(t, errors.Is(err, ErrNotADirectory), "missing path: %v", err)

	_, err = ListEntries(file)
	assert.True(t, errors.Is(err, ErrNotADirectory), "regular file: %v", err)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	err := WriteFileAtomic(path, func(w io.Writer) error {
		_, err := w.Write([]byte("hello"))
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, FileMode, info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file should have been renamed")
}

func TestWriteFileAtomicFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")
	boom := errors.New("boom")

	err := WriteFileAtomic(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return boom
	})
	assert.Equal(t, boom, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
