package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
)

const sampleConfig = `[general]
suffix = .txt

[markdown]
safe = Yes
addons = tables, ,footnote,

[navigation]
2-about = about.html
1-index = index.html
contact = contact.html#form
`

func TestParse_FullConfig(t *testing.T) {
	s, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	require.Equal(t, ".txt", s.Suffix)
	require.True(t, s.Markdown.Safe)
	require.Equal(t, []string{"tables", "footnote"}, s.Markdown.Addons)
	require.Equal(t, []byte(sampleConfig), s.Raw)
	require.Equal(t, []NavEntry{
		{Key: "1-index", Name: "index", Target: "index.html"},
		{Key: "2-about", Name: "about", Target: "about.html"},
		{Key: "contact", Name: "contact", Target: "contact.html#form"},
	}, s.Navigation)
}

func TestParse_SafeModeValues(t *testing.T) {
	cases := map[string]bool{
		"true": true, "YES": true, "on": true,
		"false": false, "no": false, "1": false, "": false,
	}
	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			s, err := Parse([]byte("[general]\nsuffix=.md\n[markdown]\nsafe=" + raw + "\naddons=\n"))
			require.NoError(t, err)
			require.Equal(t, want, s.Markdown.Safe)
			require.Empty(t, s.Markdown.Addons)
		})
	}
}

func TestParse_MarkdownAndNavigationOptional(t *testing.T) {
	s, err := Parse([]byte("[general]\nsuffix = .page\n"))
	require.NoError(t, err)
	require.False(t, s.Markdown.Safe)
	require.Empty(t, s.Markdown.Addons)
	require.Empty(t, s.Navigation)
}

func TestParse_MissingSuffixIsConfigError(t *testing.T) {
	for name, input := range map[string]string{
		"no general section": "[markdown]\nsafe = true\n",
		"no suffix key":      "[general]\nother = x\n",
		"empty suffix":       "[general]\nsuffix =\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(input))
			require.Error(t, err)
			require.True(t, errors.HasCategory(err, errors.CategoryConfig))
			require.True(t, errors.IsFatal(err))
		})
	}
}

func TestLoad_MissingFileMentionsProject(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
	require.Contains(t, err.Error(), "an sr project")
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, WriteDefault(path, false))

	s, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, path, s.Path)
	require.Equal(t, DefaultSuffix, s.Suffix)
	require.False(t, s.Markdown.Safe)
	require.Empty(t, s.Markdown.Addons)
	require.Equal(t, DefaultNavigation, s.Navigation)

	err = WriteDefault(path, false)
	require.Error(t, err)
	require.NoError(t, WriteDefault(path, true))
}

func TestLoadEnv_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".env", []byte("SR_LOG_LEVEL=debug\nSR_TEST_ONLY=from-file\n"), 0o600))
	t.Setenv("SR_LOG_LEVEL", "error")
	t.Setenv("SR_TEST_ONLY", "")
	require.NoError(t, os.Unsetenv("SR_TEST_ONLY"))

	loaded, err := LoadEnv()
	require.NoError(t, err)
	require.Equal(t, []string{".env"}, loaded)
	require.Equal(t, "error", os.Getenv("SR_LOG_LEVEL"))
	require.Equal(t, "from-file", os.Getenv("SR_TEST_ONLY"))
}
