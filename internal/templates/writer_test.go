package templates

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	out := t.TempDir()

	path, err := OutputPath(out, "a/b.html")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(out, "a", "b.html"), path)

	for _, rel := range []string{"../outside.html", "", "a/../../x.html"} {
		_, err := OutputPath(out, rel)
		require.True(t, stderrors.Is(err, ErrInvalidOutputPath), rel)
	}
}

func TestWriteFile_ReplacesContent(t *testing.T) {
	out := t.TempDir()
	path := filepath.Join(out, "deep", "page.html")
	require.NoError(t, EnsureDir(path))

	require.NoError(t, WriteFile(path, "first version, longer"))
	require.NoError(t, WriteFile(path, "second"))

	// #nosec G304 -- path is controlled by test.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "nope", "page.html"), "x")
	require.Error(t, err)
}
