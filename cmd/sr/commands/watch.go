package commands

import (
	"context"
	"log/slog"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
	"git.home.luguber.info/inful/staticrender/internal/logfields"
	"git.home.luguber.info/inful/staticrender/internal/metrics"
	"git.home.luguber.info/inful/staticrender/internal/notify"
	"git.home.luguber.info/inful/staticrender/internal/project"
	"git.home.luguber.info/inful/staticrender/internal/report"
	"git.home.luguber.info/inful/staticrender/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	ProjectArg `embed:""`

	Quiet       time.Duration `help:"Wait this long after the last change before building" default:"300ms"`
	MaxDelay    time.Duration `name:"max-delay" help:"Build at the latest this long after the first change of a burst" default:"5s"`
	Interval    time.Duration `help:"Also rebuild periodically (0 disables)" default:"0s"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9464)" env:"SR_METRICS_ADDR"`
	NATS        string        `name:"nats-url" help:"Publish each build report to this NATS server" env:"SR_NATS_URL"`
	Topic       string        `name:"nats-subject" help:"NATS subject for build reports" default:"sr.builds"`
}

func (w *WatchCmd) Run(g *Global, _ *CLI) error {
	ctx, cancel := context.WithCancel(g.context())
	defer cancel()
	logger := g.logger()

	reg := prom.NewRegistry()
	reg.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(reg)

	errCh := make(chan error, 1)
	if w.MetricsAddr != "" {
		srv, err := watch.ListenMetrics(w.MetricsAddr, reg, logger)
		if err != nil {
			return err
		}
		go func() {
			if err := srv.Serve(ctx); err != nil {
				errCh <- err
				cancel()
			}
		}()
	}

	var notifier *notify.Notifier
	if w.NATS != "" {
		n, err := notify.Connect(w.NATS, w.Topic, logger)
		if err != nil {
			return err
		}
		defer func() { _ = n.Close() }()
		notifier = n
	}

	watcher, err := watch.New(watch.Config{
		Root:        w.Path(),
		QuietWindow: w.Quiet,
		MaxDelay:    w.MaxDelay,
		Interval:    w.Interval,
		Logger:      logger,
	}, w.builder(g, recorder, notifier))
	if err != nil {
		return err
	}

	if err := watcher.Run(ctx); err != nil {
		return err
	}
	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// builder returns the BuildFunc run for every debounced change. The project
// is reopened each time so configuration and template edits take effect.
func (w *WatchCmd) builder(g *Global, recorder metrics.Recorder, notifier *notify.Notifier) watch.BuildFunc {
	return func(ctx context.Context, reason string) error {
		bg := &Global{Ctx: ctx, Out: g.Out, Logger: g.logger().With(logfields.Reason(reason))}
		b, err := RunRender(bg, w.Path(), false, "", project.WithRecorder(recorder))
		if b == nil {
			return err
		}
		if notifier != nil {
			if nerr := notifier.Notify(ctx, b); nerr != nil {
				bg.logger().Warn("Failed to publish build report", logfields.BuildID(b.BuildID), logfields.Error(nerr))
			}
		}
		logBuild(bg.logger(), b)
		if err != nil && errors.IsFatal(err) {
			return err
		}
		return nil
	}
}

func logBuild(logger *slog.Logger, b *report.Build) {
	attrs := []any{
		logfields.BuildID(b.BuildID),
		slog.Int("rendered", len(b.Rendered)),
		slog.Int("skipped", len(b.Skipped)),
		slog.Int("failed", len(b.Failed)),
	}
	for _, f := range b.Failed {
		logger.Warn("Page failed", logfields.Page(f.Page), slog.String("category", f.Category), slog.String("message", f.Message))
	}
	logger.Info("Watch build finished", attrs...)
}
