package project

import (
	"context"
	"time"

	"git.home.luguber.info/inful/staticrender/internal/config"
	"git.home.luguber.info/inful/staticrender/internal/content"
	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
	"git.home.luguber.info/inful/staticrender/internal/logfields"
	"git.home.luguber.info/inful/staticrender/internal/templates"
	"git.home.luguber.info/inful/staticrender/internal/tracker"
)

// Page is a single source document. Its file is read on first use and the
// bytes are kept for the lifetime of the Page, so the hash recorded after a
// render is the hash of exactly what was rendered.
type Page struct {
	project *Project
	id      string
	path    string

	// invalid is set for pages that must never be rendered or recorded.
	invalid error

	loaded bool
	raw    []byte
	doc    content.Document
	hash   string
	err    error
}

func (p *Project) newPage(id, path string) *Page {
	pg := &Page{project: p, id: id, path: path}
	if id == tracker.ConfigKey {
		pg.invalid = errors.ValidationError("page name is reserved by the hash database").
			NextBuild().
			WithContext("page", id).
			Build()
	}
	return pg
}

// Identifier returns the page name: the source path relative to the source
// directory, without suffix, using forward slashes.
func (pg *Page) Identifier() string { return pg.id }

// SourcePath returns the absolute path of the page source.
func (pg *Page) SourcePath() string { return pg.path }

// OutputPath returns where the rendered document is written. An identifier
// that would place it outside the output directory is an output error.
func (pg *Page) OutputPath() (string, error) {
	out, err := templates.OutputPath(pg.project.OutputRoot(), pg.id+".html")
	if err != nil {
		return "", withPage(err, pg.id)
	}
	return out, nil
}

func (pg *Page) load() error {
	if pg.loaded {
		return pg.err
	}
	pg.loaded = true
	if pg.invalid != nil {
		pg.err = pg.invalid
		return pg.err
	}
	raw, err := content.ReadSource(pg.path)
	if err != nil {
		pg.err = withPage(err, pg.id)
		return pg.err
	}
	pg.raw = raw
	pg.doc = content.Parse(raw)
	pg.hash = content.Fingerprint(raw)
	return nil
}

// Headers returns the page's header block.
func (pg *Page) Headers() (content.Headers, error) {
	if err := pg.load(); err != nil {
		return nil, err
	}
	return pg.doc.Headers, nil
}

// Hash returns the fingerprint of the page source.
func (pg *Page) Hash() (string, error) {
	if err := pg.load(); err != nil {
		return "", err
	}
	return pg.hash, nil
}

// TemplateName returns the template header, or the default template when the
// header is missing or blank.
func (pg *Page) TemplateName() (string, error) {
	if err := pg.load(); err != nil {
		return "", err
	}
	if name, ok := pg.doc.Template(); ok {
		return name, nil
	}
	return config.DefaultTemplate, nil
}

// HasChanged reports whether the page needs rendering: it was never recorded
// or its source no longer matches the recorded hash. A page that cannot be
// read counts as changed and the read error is returned alongside.
func (pg *Page) HasChanged() (bool, error) {
	if pg.invalid != nil {
		return true, pg.invalid
	}
	recorded, ok := pg.project.store.Get(pg.id)
	if !ok {
		return true, nil
	}
	hash, err := pg.Hash()
	if err != nil {
		return true, err
	}
	return hash != recorded, nil
}

// Markup converts the page body to HTML.
func (pg *Page) Markup() (string, error) {
	if err := pg.load(); err != nil {
		return "", err
	}
	html, err := pg.project.converter.Convert(pg.doc.Body)
	if err != nil {
		return "", withPage(err, pg.id)
	}
	return html, nil
}

// Context builds the template context for the page.
func (pg *Page) Context() (*RenderContext, error) {
	html, err := pg.Markup()
	if err != nil {
		return nil, err
	}
	headers, err := pg.Headers()
	if err != nil {
		return nil, err
	}
	return NewRenderContext(html, pg.project.Navigation(), headers), nil
}

// Document renders the page to a complete HTML document without writing it
// or touching the hash database.
func (pg *Page) Document(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rc, err := pg.Context()
	if err != nil {
		return "", err
	}
	name, err := pg.TemplateName()
	if err != nil {
		return "", err
	}
	doc, err := pg.project.engine.Render(name, rc.Data())
	if err != nil {
		return "", withPage(err, pg.id)
	}
	return doc, nil
}

// Render writes the page's document to its output path and records the page
// hash once the file is in place. It returns the output path. Any failure
// before the write completes leaves the recorded hash untouched.
func (pg *Page) Render(ctx context.Context) (string, error) {
	start := time.Now()

	if err := pg.load(); err != nil {
		return "", err
	}
	out, err := pg.OutputPath()
	if err != nil {
		return "", err
	}
	if err := templates.EnsureDir(out); err != nil {
		return "", withPage(err, pg.id)
	}
	doc, err := pg.Document(ctx)
	if err != nil {
		return "", err
	}
	if err := templates.WriteFile(out, doc); err != nil {
		return "", withPage(err, pg.id)
	}

	// The document is already in place; cancelling now must not leave it unrecorded.
	pg.project.store.Set(pg.id, pg.hash)
	if err := pg.project.store.Flush(context.WithoutCancel(ctx)); err != nil {
		return "", withPage(storeError(err), pg.id)
	}

	pg.project.logger.Debug("Rendered page",
		logfields.Page(pg.id),
		logfields.Path(pg.SourcePath()),
		logfields.Output(out),
		logfields.Template(pg.templateNameOrDefault()),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return out, nil
}

func (pg *Page) templateNameOrDefault() string {
	name, _ := pg.TemplateName()
	return name
}

// withPage attaches the page identifier to a classified error.
func withPage(err error, id string) error {
	if classified, ok := errors.AsClassified(err); ok {
		return classified.WithContext("page", id)
	}
	return errors.WrapError(err, errors.CategoryInternal, "page render failed").WithContext("page", id).Build()
}
