// Package templates loads page layouts from a project's templates directory,
// renders them with html/template and writes the resulting documents.
package templates

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
)

// Engine renders named templates from a single directory. Parsed templates are
// cached per name for the lifetime of the Engine; a project opens a new one
// for every build.
type Engine struct {
	dir   string
	funcs template.FuncMap

	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewEngine returns an Engine reading templates from dir.
func NewEngine(dir string) *Engine {
	return &Engine{
		dir:   dir,
		funcs: funcMap(),
		cache: make(map[string]*template.Template),
	}
}

// Render executes the template called name with data.
func (e *Engine) Render(name string, data any) (string, error) {
	tpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", errors.WrapError(err, errors.CategoryTemplate, "render template").
			NextBuild().
			WithContext("template", name).
			Build()
	}
	return buf.String(), nil
}

func (e *Engine) lookup(name string) (*template.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tpl, ok := e.cache[name]; ok {
		return tpl, nil
	}

	path, ok := e.resolve(name)
	if !ok {
		return nil, ErrTemplateNotFound.WithContext("template", name)
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, ErrTemplateNotFound.WithContext("template", name)
	}

	// #nosec G304 -- path is confined to the templates directory by resolve
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryTemplate, "read template").
			WithContext("template", name).
			Build()
	}
	tpl, err := template.New(filepath.Base(path)).Funcs(e.funcs).Parse(string(src))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryTemplate, "parse template").
			NextBuild().
			WithContext("template", name).
			Build()
	}

	e.cache[name] = tpl
	return tpl, nil
}

// resolve maps a template name to a path under the templates directory,
// rejecting names that are absolute or climb out of it.
func (e *Engine) resolve(name string) (string, bool) {
	if strings.TrimSpace(name) == "" {
		return "", false
	}
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.Join(e.dir, clean), true
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"title": func(s string) string {
			if s == "" {
				return s
			}
			r, size := utf8.DecodeRuneInString(s)
			return string(unicode.ToUpper(r)) + s[size:]
		},
	}
}
