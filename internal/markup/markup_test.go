package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
)

func TestConvert_Basic(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)

	html, err := c.Convert([]byte("# Title\n\nSome *text*.\n"))
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<em>text</em>")
}

func TestConvert_SafeModeDropsRawHTML(t *testing.T) {
	input := []byte("<div class=\"box\">raw</div>\n")

	unsafe, err := New(Options{Safe: false})
	require.NoError(t, err)
	out, err := unsafe.Convert(input)
	require.NoError(t, err)
	assert.Contains(t, out, `<div class="box">raw</div>`)

	safe, err := New(Options{Safe: true})
	require.NoError(t, err)
	out, err = safe.Convert(input)
	require.NoError(t, err)
	assert.NotContains(t, out, "<div")
}

func TestNew_Addons(t *testing.T) {
	table := []byte("| a | b |\n|---|---|\n| 1 | 2 |\n")

	plain, err := New(Options{})
	require.NoError(t, err)
	out, err := plain.Convert(table)
	require.NoError(t, err)
	assert.NotContains(t, out, "<table>")

	for _, addon := range []string{"tables", "Tables", "markdown.extensions.tables", "extra", "gfm"} {
		t.Run(addon, func(t *testing.T) {
			c, err := New(Options{Extensions: []string{addon, " "}})
			require.NoError(t, err)
			out, err := c.Convert(table)
			require.NoError(t, err)
			assert.Contains(t, out, "<table>")
		})
	}
}

func TestNew_AliasesResolve(t *testing.T) {
	c, err := New(Options{Extensions: []string{"toc", "def_list", "footnotes", "smarty", "footnote"}})
	require.NoError(t, err)

	out, err := c.Convert([]byte("## Section One\n"))
	require.NoError(t, err)
	assert.Contains(t, out, `id="section-one"`)
}

func TestNew_UnknownAddon(t *testing.T) {
	_, err := New(Options{Extensions: []string{"tables", "wikilinks"}})
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))

	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	addon, _ := classified.Context().GetString("addon")
	require.Equal(t, "wikilinks", addon)
}
