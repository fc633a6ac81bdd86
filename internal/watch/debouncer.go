package watch

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	ferrors "git.home.luguber.info/inful/staticrender/internal/foundation/errors"
	"git.home.luguber.info/inful/staticrender/internal/logfields"
)

// BuildFunc runs one build. reason names what requested it.
type BuildFunc func(ctx context.Context, reason string) error

// DebouncerConfig controls request coalescing.
type DebouncerConfig struct {
	// QuietWindow is how long requests must stop arriving before a build starts.
	QuietWindow time.Duration
	// MaxDelay bounds how long a steady stream of requests can postpone a build.
	MaxDelay time.Duration
}

// Debouncer coalesces bursts of build requests into single builds.
//
// Builds run on the Run goroutine, so they never overlap. Requests that
// arrive while a build runs are queued and produce exactly one follow-up.
type Debouncer struct {
	cfg      DebouncerConfig
	build    BuildFunc
	logger   *slog.Logger
	requests chan string
	builds   atomic.Int64
}

func NewDebouncer(cfg DebouncerConfig, build BuildFunc, logger *slog.Logger) (*Debouncer, error) {
	if build == nil {
		return nil, ferrors.ValidationError("build function is required").Build()
	}
	if cfg.QuietWindow <= 0 {
		return nil, ferrors.ValidationError("quiet window must be > 0").Build()
	}
	if cfg.MaxDelay <= 0 {
		return nil, ferrors.ValidationError("max delay must be > 0").Build()
	}
	if cfg.MaxDelay < cfg.QuietWindow {
		cfg.MaxDelay = cfg.QuietWindow
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Debouncer{cfg: cfg, build: build, logger: logger, requests: make(chan string, 64)}, nil
}

// Request asks for a build. It never blocks; when the queue is full the
// request is dropped because a build is already pending.
func (d *Debouncer) Request(reason string) {
	select {
	case d.requests <- reason:
	default:
	}
}

// Builds reports how many builds Run has started.
func (d *Debouncer) Builds() int {
	return int(d.builds.Load())
}

// Run processes requests until ctx is done.
func (d *Debouncer) Run(ctx context.Context) error {
	if ctx == nil {
		return ferrors.ValidationError("context cannot be nil").Build()
	}

	var (
		quiet, maxWait *time.Timer
		quietC, maxC   <-chan time.Time
		pending        bool
		reason         string
		requestsInWave int
	)
	stop := func() {
		if quiet != nil {
			quiet.Stop()
		}
		if maxWait != nil {
			maxWait.Stop()
		}
		quietC, maxC = nil, nil
	}
	defer stop()

	fire := func(trigger string) {
		stop()
		pending = false
		d.builds.Add(1)
		d.logger.Debug("Debounced build",
			logfields.Reason(reason),
			slog.String("trigger", trigger),
			logfields.Count(requestsInWave))
		if err := d.build(ctx, reason); err != nil {
			d.logger.Error("Build failed", logfields.Reason(reason), logfields.Error(err))
		}
		requestsInWave = 0
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case r := <-d.requests:
			reason = r
			requestsInWave++
			if quiet != nil {
				quiet.Stop()
			}
			quiet = time.NewTimer(d.cfg.QuietWindow)
			quietC = quiet.C
			if !pending {
				pending = true
				maxWait = time.NewTimer(d.cfg.MaxDelay)
				maxC = maxWait.C
			}
		case <-quietC:
			fire("quiet")
		case <-maxC:
			fire("max_delay")
		}
	}
}
