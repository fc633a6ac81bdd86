package templates

import (
	stderrors "errors"
	"html/template"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
)

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestEngine_Render(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "standard.html", `<title>{{.title}}</title>{{range .nav}}<a href="{{.Target}}">{{.Name}}</a>{{end}}<main>{{.content}}</main>`)

	e := NewEngine(dir)
	out, err := e.Render("standard.html", map[string]any{
		"title":   "A & B",
		"content": template.HTML("<p>hi</p>"),
		"nav":     []struct{ Name, Target string }{{"index", "index.html"}},
	})
	require.NoError(t, err)
	require.Equal(t, `<title>A &amp; B</title><a href="index.html">index</a><main><p>hi</p></main>`, out)
}

func TestEngine_CachesParsedTemplates(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "t.html", "one")
	e := NewEngine(dir)

	out, err := e.Render("t.html", nil)
	require.NoError(t, err)
	require.Equal(t, "one", out)

	writeTemplate(t, dir, "t.html", "two")
	out, err = e.Render("t.html", nil)
	require.NoError(t, err)
	require.Equal(t, "one", out)

	out, err = NewEngine(dir).Render("t.html", nil)
	require.NoError(t, err)
	require.Equal(t, "two", out)
}

func TestEngine_NotFound(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "templates")
	writeTemplate(t, dir, "nested/page.html", "ok")
	writeTemplate(t, root, "secret.html", "outside")
	e := NewEngine(dir)

	_, err := e.Render("nested/page.html", nil)
	require.NoError(t, err)

	for _, name := range []string{"missing.html", "../secret.html", "", "nested", "/etc/passwd"} {
		t.Run(name, func(t *testing.T) {
			_, err := e.Render(name, nil)
			require.Error(t, err)
			require.True(t, stderrors.Is(err, ErrTemplateNotFound))
			require.True(t, errors.HasCategory(err, errors.CategoryTemplate))
		})
	}
}

func TestEngine_ParseAndExecErrors(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "broken.html", "{{if}")
	writeTemplate(t, dir, "badcall.html", "{{.missing.field}}")
	e := NewEngine(dir)

	_, err := e.Render("broken.html", nil)
	require.True(t, errors.HasCategory(err, errors.CategoryTemplate))
	require.False(t, stderrors.Is(err, ErrTemplateNotFound))

	_, err = e.Render("badcall.html", 42)
	require.True(t, errors.HasCategory(err, errors.CategoryTemplate))
}

func TestEngine_Funcs(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "f.html", `{{title .name}} {{upper .name}} {{lower "ABC"}}`)
	out, err := NewEngine(dir).Render("f.html", map[string]string{"name": "page"})
	require.NoError(t, err)
	require.Equal(t, "Page PAGE abc", out)
}

func TestEngine_TitleMultibyte(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "f.html", `{{title .a}}|{{title .b}}|{{title .c}}`)
	out, err := NewEngine(dir).Render("f.html", map[string]string{"a": "élan", "b": "ünter uns", "c": ""})
	require.NoError(t, err)
	require.Equal(t, "Élan|Ünter uns|", out)
}
