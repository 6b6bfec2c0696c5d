package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirectory(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "a", "b", "state.db")

	require.NoError(t, EnsureParentDir(path))

	fi, err := os.Stat(filepath.Join(tmp, "a", "b"))
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	require.NoError(t, EnsureParentDir(path), "second call must be a no-op")
}

func TestEnsureParentDir_BareFileName(t *testing.T) {
	require.NoError(t, EnsureParentDir("state.db"))
}

func TestEnsureParentDir_FailsIfFileBlocksPath(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	require.Error(t, EnsureParentDir(filepath.Join(blocker, "state.db")))
}

func TestReadLimited(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "img.png")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o600))

	data, err := ReadLimited(path, 5)
	require.NoError(t, err)
	require.Equal(t, []byte("12345"), data)

	_, err = ReadLimited(path, 4)
	require.ErrorIs(t, err, ErrTooLarge)

	_, err = ReadLimited(filepath.Join(tmp, "missing"), 5)
	require.ErrorIs(t, err, os.ErrNotExist)
}
