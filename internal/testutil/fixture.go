// Package testutil builds throwaway sr projects on disk for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// DefaultConfig is the config.ini written by NewFixture.
const DefaultConfig = `[general]
suffix = .txt

[markdown]
safe = false
addons =

[navigation]
2-about = about.html
1-index = index.html
`

// DefaultTemplate renders content and navigation with a title header.
const DefaultTemplate = `<title>{{.title}}</title>
<nav>{{range .nav}}<a href="{{.Target}}">{{.Name}}</a>{{end}}</nav>
<main>{{.content}}</main>
`

// Fixture is a project directory under t.TempDir.
type Fixture struct {
	t    *testing.T
	Root string
}

// NewFixture creates a project with DefaultConfig, DefaultTemplate as
// standard.html and an empty source directory.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	f := &Fixture{t: t, Root: t.TempDir()}
	f.WriteConfig(DefaultConfig)
	f.WriteTemplate("standard.html", DefaultTemplate)
	f.mkdir("source")
	return f
}

// WriteConfig replaces config.ini.
func (f *Fixture) WriteConfig(body string) {
	f.t.Helper()
	f.write("config.ini", body)
}

// WriteTemplate writes templates/name.
func (f *Fixture) WriteTemplate(name, body string) {
	f.t.Helper()
	f.write(filepath.Join("templates", name), body)
}

// WritePage writes source/<id>.txt.
func (f *Fixture) WritePage(id, body string) string {
	f.t.Helper()
	rel := filepath.Join("source", filepath.FromSlash(id)+".txt")
	f.write(rel, body)
	return filepath.Join(f.Root, rel)
}

// RemovePage deletes source/<id>.txt.
func (f *Fixture) RemovePage(id string) {
	f.t.Helper()
	if err := os.Remove(filepath.Join(f.Root, "source", filepath.FromSlash(id)+".txt")); err != nil {
		f.t.Fatalf("remove page %s: %v", id, err)
	}
}

// OutputPath returns the absolute path of output/<id>.html.
func (f *Fixture) OutputPath(id string) string {
	return filepath.Join(f.Root, "output", filepath.FromSlash(id)+".html")
}

// ReadOutput returns the rendered document for id.
func (f *Fixture) ReadOutput(id string) string {
	f.t.Helper()
	// #nosec G304 -- test helper, paths are controlled by test code
	data, err := os.ReadFile(f.OutputPath(id))
	if err != nil {
		f.t.Fatalf("read output %s: %v", id, err)
	}
	return string(data)
}

// Files returns a FileAssertions rooted at the project.
func (f *Fixture) Files() *FileAssertions {
	return NewFileAssertions(f.t, f.Root)
}

func (f *Fixture) write(rel, body string) {
	f.t.Helper()
	path := filepath.Join(f.Root, rel)
	f.mkdir(filepath.Dir(rel))
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		f.t.Fatalf("write %s: %v", rel, err)
	}
}

func (f *Fixture) mkdir(rel string) {
	f.t.Helper()
	if err := os.MkdirAll(filepath.Join(f.Root, rel), 0o750); err != nil {
		f.t.Fatalf("mkdir %s: %v", rel, err)
	}
}
