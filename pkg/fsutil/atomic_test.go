package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexa-assets/nexa/pkg/fsutil"
)

func TestAtomicWrite_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nexa-assets-v3.json")
	data := []byte(`[{"id":"asset-1"}]`)

	err := fsutil.AtomicWrite(path, data, 0600)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, content)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestAtomicWrite_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	os.WriteFile(path, []byte("old"), 0644)

	err := fsutil.AtomicWrite(path, []byte("new"), 0644)
	require.NoError(t, err)

	content, _ := os.ReadFile(path)
	assert.Equal(t, "new", string(content))
}

func TestAtomicWrite_NoTmpLeftOnSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, fsutil.AtomicWrite(path, []byte("data"), 0644))

	entries, _ := os.ReadDir(dir)
	assert.Len(t, entries, 1, "only the target file should exist")

	orphans, err := fsutil.OrphanTmpFiles(dir)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestAtomicWrite_MissingDir(t *testing.T) {
	err := fsutil.AtomicWrite(filepath.Join(t.TempDir(), "missing", "doc.json"), []byte("x"), 0644)
	assert.Error(t, err)
}

func TestOrphanTmpFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, fsutil.TmpPrefix+"42"), nil, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.json"), nil, 0600))

	orphans, err := fsutil.OrphanTmpFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{fsutil.TmpPrefix + "42"}, orphans)
	assert.True(t, fsutil.IsTmp(orphans[0]))
	assert.False(t, fsutil.IsTmp("doc.json"))
}

func TestFsyncDir(t *testing.T) {
	dir := t.TempDir()
	err := fsutil.FsyncDir(dir)
	assert.NoError(t, err)
}
