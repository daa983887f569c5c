package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("# test"), 0o644))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "b.hcl", "a.hcl", "nested/c.yaml", "notes.txt")

	files, err := FindFilesByExtension(root, ".hcl", ".yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "c.yaml"),
	}, files)
}

func TestExpandPaths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "profile.hcl", "params/one.hcl", "params/two.yml")

	single := filepath.Join(root, "profile.hcl")
	dir := filepath.Join(root, "params")

	files, err := ExpandPaths([]string{single, dir, single}, ".hcl", ".yml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		single,
		filepath.Join(dir, "one.hcl"),
		filepath.Join(dir, "two.yml"),
	}, files)
}

func TestExpandPaths_Errors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "notes.txt")

	_, err := ExpandPaths([]string{filepath.Join(root, "missing.hcl")}, ".hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error accessing path")

	_, err = ExpandPaths([]string{filepath.Join(root, "notes.txt")}, ".hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}
