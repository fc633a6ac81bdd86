package vcs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/staticrender/internal/testutil"
)

func TestRevision_NotARepository(t *testing.T) {
	info, err := Revision(t.TempDir())
	require.NoError(t, err)
	require.Nil(t, info)
}

func TestRevision_DetectsParentRepository(t *testing.T) {
	root := t.TempDir()
	hash := testutil.InitGitRepo(t, root)
	sub := filepath.Join(root, "site")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	info, err := Revision(sub)
	require.NoError(t, err)
	require.NotNil(t, info)
	require.Equal(t, hash.String(), info.Commit)
	require.Equal(t, "master", info.Branch)
	require.False(t, info.Dirty)
	require.Len(t, info.Short(), 8)

	require.NoError(t, os.WriteFile(filepath.Join(root, "README"), []byte("changed\n"), 0o600))
	info, err = Revision(sub)
	require.NoError(t, err)
	require.True(t, info.Dirty)
}
