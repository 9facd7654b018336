package fsutil

import (
	"os"
	"os/user"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceTildeInDir(t *testing.T) {
	usr, err := user.Current()
	require.NoError(t, err)

	got, err := ReplaceTildeInDir("~/tmp/mnist")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(usr.HomeDir, "tmp/mnist"), got)

	got, err = ReplaceTildeInDir("~")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(usr.HomeDir), got)

	got, err = ReplaceTildeInDir("/data/mnist")
	require.NoError(t, err)
	assert.Equal(t, "/data/mnist", got)

	_, err = ReplaceTildeInDir("~no_such_user_for_sure_1234/x")
	require.Error(t, err)
}

func TestResolveVariant(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "labels")

	resolved, found, err := ResolveVariant(plain, ".gz")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, plain, resolved)

	require.NoError(t, os.WriteFile(plain+".gz", nil, 0644))
	resolved, found, err = ResolveVariant(plain, ".gz")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, plain+".gz", resolved)

	// Uncompressed file takes precedence.
	require.NoError(t, os.WriteFile(plain, nil, 0644))
	resolved, found, err = ResolveVariant(plain, ".gz")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, plain, resolved)

	exists, err := FileExists(filepath.Join(dir, "nothing"))
	require.NoError(t, err)
	assert.False(t, exists)
}
