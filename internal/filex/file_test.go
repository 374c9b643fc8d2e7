package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "state", "nested", "sk.db")

	require.NoError(t, EnsureParentDir(path))
	fi, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	require.NoError(t, EnsureParentDir(path), "idempotent")
	require.NoError(t, EnsureParentDir("sk.db"), "bare file name needs nothing")
}

func TestEnsureParentDir_ParentIsFile(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	require.Error(t, EnsureParentDir(filepath.Join(blocker, "sk.db")))
}

func TestReadUpload(t *testing.T) {
	tmp := t.TempDir()
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	path := filepath.Join(tmp, "bolt.png")
	require.NoError(t, os.WriteFile(path, png, 0o600))

	u, err := ReadUpload(path)
	require.NoError(t, err)
	assert.Equal(t, "bolt.png", u.Name)
	assert.Equal(t, "image/png", u.ContentType)
	assert.Equal(t, png, u.Data)
}

func TestReadUpload_Refuses(t *testing.T) {
	tmp := t.TempDir()

	_, err := ReadUpload(filepath.Join(tmp, "missing.jpg"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = ReadUpload(tmp)
	require.Error(t, err)

	big := filepath.Join(tmp, "big.bin")
	f, err := os.Create(big)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(MaxUploadSize+1))
	require.NoError(t, f.Close())

	_, err = ReadUpload(big)
	require.ErrorIs(t, err, ErrTooLarge)
}
