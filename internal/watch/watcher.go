// Package watch rebuilds a project when its sources, templates or
// configuration change on disk.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/staticrender/internal/config"
	ferrors "git.home.luguber.info/inful/staticrender/internal/foundation/errors"
	"git.home.luguber.info/inful/staticrender/internal/logfields"
)

// Directory names watched under the project root.
const (
	sourceDir    = "source"
	templatesDir = "templates"
)

// Reasons passed to BuildFunc.
const (
	ReasonStartup  = "startup"
	ReasonSource   = "source"
	ReasonTemplate = "template"
	ReasonConfig   = "config"
	ReasonInterval = "interval"
)

// Config configures a Watcher.
type Config struct {
	Root        string
	QuietWindow time.Duration
	MaxDelay    time.Duration
	// Interval enables a periodic rebuild when > 0.
	Interval time.Duration
	// SkipStartup suppresses the initial build.
	SkipStartup bool
	Logger      *slog.Logger
}

// Defaults for Config fields left zero.
const (
	DefaultQuietWindow = 300 * time.Millisecond
	DefaultMaxDelay    = 5 * time.Second
)

// Watcher turns filesystem events under a project into debounced builds.
type Watcher struct {
	root      string
	cfg       Config
	logger    *slog.Logger
	fsw       *fsnotify.Watcher
	debouncer *Debouncer

	readyOnce sync.Once
	ready     chan struct{}
}

// New creates a Watcher for the project at cfg.Root. build is called for
// every debounced change, one call at a time.
func New(cfg Config, build BuildFunc) (*Watcher, error) {
	if cfg.Root == "" {
		return nil, ferrors.ValidationError("project root is required").Build()
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "resolve project root").
			WithContext("root", cfg.Root).Build()
	}
	if cfg.QuietWindow <= 0 {
		cfg.QuietWindow = DefaultQuietWindow
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = DefaultMaxDelay
	}
	if cfg.Interval < 0 {
		return nil, ferrors.ValidationError("interval must not be negative").Build()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(logfields.Project(root))

	deb, err := NewDebouncer(DebouncerConfig{QuietWindow: cfg.QuietWindow, MaxDelay: cfg.MaxDelay}, build, logger)
	if err != nil {
		return nil, err
	}
	return &Watcher{root: root, cfg: cfg, logger: logger, debouncer: deb, ready: make(chan struct{})}, nil
}

// Ready is closed once Run has registered its watches.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Trigger requests a build as if a file had changed.
func (w *Watcher) Trigger(reason string) {
	w.debouncer.Request(reason)
}

// Builds reports how many builds have started.
func (w *Watcher) Builds() int {
	return w.debouncer.Builds()
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create file watcher").Build()
	}
	w.fsw = fsw
	defer func() {
		if cerr := fsw.Close(); cerr != nil {
			w.logger.Warn("Error closing file watcher", logfields.Error(cerr))
		}
	}()

	// The root is watched for config.ini; editors often replace the file.
	if err := fsw.Add(w.root); err != nil {
		return ferrors.WrapError(err, ferrors.CategorySource, "failed to watch project root").
			WithContext("path", w.root).Build()
	}
	for _, dir := range []string{sourceDir, templatesDir} {
		if err := w.addTree(filepath.Join(w.root, dir)); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var sched *Scheduler
	if w.cfg.Interval > 0 {
		sched, err = NewScheduler(w.cfg.Interval, func() { w.Trigger(ReasonInterval) }, w.logger)
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = w.debouncer.Run(ctx)
	}()

	if !w.cfg.SkipStartup {
		w.Trigger(ReasonStartup)
	}
	w.logger.Info("Watching project for changes",
		slog.Duration("quiet_window", w.cfg.QuietWindow),
		slog.Duration("interval", w.cfg.Interval))
	w.readyOnce.Do(func() { close(w.ready) })

	w.loop(ctx)
	cancel()
	wg.Wait()
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() && w.classify(event.Name) != "" {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
			}
		}
	}
	reason := w.classify(event.Name)
	if reason == "" {
		return
	}
	w.logger.Debug("Change detected", logfields.Path(event.Name), logfields.Reason(reason), slog.String("op", event.Op.String()))
	w.Trigger(reason)
}

// classify maps a changed path to a build reason, or "" when the path does
// not affect rendering.
func (w *Watcher) classify(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	if isScratch(filepath.Base(rel)) {
		return ""
	}
	if rel == config.FileName {
		return ReasonConfig
	}
	first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	switch first {
	case sourceDir:
		return ReasonSource
	case templatesDir:
		return ReasonTemplate
	default:
		return ""
	}
}

// isScratch reports editor swap files and our own temporary outputs.
func isScratch(name string) bool {
	return strings.HasPrefix(name, ".") ||
		strings.HasSuffix(name, "~") ||
		strings.HasSuffix(name, ".swp") ||
		strings.HasSuffix(name, ".tmp")
}

// addTree watches dir and every directory beneath it. A missing dir is not an error.
func (w *Watcher) addTree(dir string) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == dir {
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategorySource, "failed to watch directory").
			WithContext("path", dir).Build()
	}
	return nil
}
