// Package project implements the incremental build engine: it discovers the
// pages of a project, decides which of them changed since the last build and
// renders those through the markup converter and template engine.
//
// A Project exclusively owns its hash database while open. Opening two Projects
// on the same root at the same time is not supported.
package project

import (
	"context"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/staticrender/internal/config"
	"git.home.luguber.info/inful/staticrender/internal/content"
	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
	"git.home.luguber.info/inful/staticrender/internal/logfields"
	"git.home.luguber.info/inful/staticrender/internal/markup"
	"git.home.luguber.info/inful/staticrender/internal/metrics"
	"git.home.luguber.info/inful/staticrender/internal/templates"
	"git.home.luguber.info/inful/staticrender/internal/tracker"
)

// Project directory layout.
const (
	SourceDir    = "source"
	TemplatesDir = "templates"
	OutputDir    = "output"
)

// Project is an opened sr project.
type Project struct {
	root        string
	settings    *config.Settings
	fingerprint string

	store     tracker.Store
	converter *markup.Converter
	engine    *templates.Engine

	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option configures Open.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	recorder metrics.Recorder
	store    tracker.Store
}

// WithLogger sets the logger used for build progress.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithStore replaces the on-disk hash database. The Project takes ownership
// and closes the store on Close.
func WithStore(s tracker.Store) Option {
	return func(o *options) { o.store = s }
}

// Open loads root/config.ini, prepares the markup converter and template
// engine, and opens the hash database at root/hash.db.
func Open(ctx context.Context, root string, opts ...Option) (*Project, error) {
	o := options{logger: slog.Default(), recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "resolve project root").
			Fatal().
			WithContext("path", root).
			Build()
	}

	settings, err := config.Load(abs)
	if err != nil {
		return nil, err
	}

	converter, err := markup.New(markup.Options{
		Extensions: settings.Markdown.Addons,
		Safe:       settings.Markdown.Safe,
	})
	if err != nil {
		return nil, err
	}

	store := o.store
	if store == nil {
		store, err = tracker.OpenSQLite(ctx, filepath.Join(abs, tracker.FileName))
		if err != nil {
			return nil, err
		}
	}

	p := &Project{
		root:        abs,
		settings:    settings,
		fingerprint: content.Fingerprint(settings.Raw),
		store:       store,
		converter:   converter,
		engine:      templates.NewEngine(filepath.Join(abs, TemplatesDir)),
		logger:      o.logger.With(logfields.Project(abs)),
		recorder:    o.recorder,
	}
	p.logger.Debug("Opened project",
		slog.String("suffix", settings.Suffix),
		slog.Bool("safe", settings.Markdown.Safe),
		slog.Any("addons", settings.Markdown.Addons))
	return p, nil
}

// Root returns the absolute project root.
func (p *Project) Root() string { return p.root }

// SourceRoot returns the directory holding page sources.
func (p *Project) SourceRoot() string { return filepath.Join(p.root, SourceDir) }

// OutputRoot returns the directory rendered documents are written to.
func (p *Project) OutputRoot() string { return filepath.Join(p.root, OutputDir) }

// Fingerprint returns the hash of the configuration file as loaded.
func (p *Project) Fingerprint() string { return p.fingerprint }

// Navigation returns the navigation entries in key order.
func (p *Project) Navigation() []config.NavEntry { return p.settings.Navigation }

// ConfigChanged reports whether the configuration differs from the one the
// recorded pages were rendered with. A project never built counts as changed.
func (p *Project) ConfigChanged() bool {
	recorded, ok := p.store.Get(tracker.ConfigKey)
	return !ok || recorded != p.fingerprint
}

// TrackedPages returns the identifiers recorded in the hash database.
func (p *Project) TrackedPages() []string {
	var ids []string
	for _, key := range p.store.Keys() {
		if key != tracker.ConfigKey {
			ids = append(ids, key)
		}
	}
	return ids
}

// Close flushes and closes the hash database.
func (p *Project) Close() error {
	return p.store.Close()
}

// syncConfig records the current configuration fingerprint. The entries of
// all existing pages are dropped in the same flush, so pages rendered with the
// old configuration stay marked as changed even if the build is interrupted
// later on. Entries of removed pages are left for Prune.
func (p *Project) syncConfig(ctx context.Context) error {
	invalidated := 0
	for page, err := range p.Pages() {
		if err != nil {
			return err
		}
		if page.invalid != nil {
			continue
		}
		if _, ok := p.store.Get(page.id); ok {
			p.store.Delete(page.id)
			invalidated++
		}
	}
	p.store.Set(tracker.ConfigKey, p.fingerprint)
	if err := p.store.Flush(ctx); err != nil {
		return storeError(err)
	}
	p.recorder.IncConfigChange()
	p.logger.Info("Configuration changed, rendering all pages", logfields.Count(invalidated))
	return nil
}

func storeError(err error) error {
	if errors.IsClassified(err) {
		return err
	}
	return errors.WrapError(err, errors.CategoryStore, "failed to flush hash database").Fatal().Build()
}
