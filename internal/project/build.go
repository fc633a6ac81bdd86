package project

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
	"git.home.luguber.info/inful/staticrender/internal/logfields"
	"git.home.luguber.info/inful/staticrender/internal/metrics"
)

// PageFailure records a page that could not be rendered.
type PageFailure struct {
	Page string
	Err  error
}

// BuildResult partitions the pages seen by a build pass. Identifiers appear in
// enumeration order.
type BuildResult struct {
	StartedAt     time.Time
	Duration      time.Duration
	Forced        bool
	ConfigChanged bool

	Rendered []string
	Skipped  []string
	Failed   []PageFailure
}

// Err summarizes page failures as a single error, or returns nil when every
// page succeeded. The error carries the category of the first failure.
func (r *BuildResult) Err() error {
	if r == nil || len(r.Failed) == 0 {
		return nil
	}
	first := r.Failed[0]
	return errors.WrapError(first.Err, errors.GetCategory(first.Err), fmt.Sprintf("%d page(s) failed to render", len(r.Failed))).
		NextBuild().
		WithContext("page", first.Page).
		Build()
}

// Render runs a build pass. Pages that changed since they were last recorded
// are rendered; with force, or when the configuration changed, every page is.
//
// Page failures are collected in the result and do not stop the pass. Errors
// from the hash database or the source walk abort it and are returned together
// with the partial result. Cancellation is checked between pages.
func (p *Project) Render(ctx context.Context, force bool) (*BuildResult, error) {
	result := &BuildResult{StartedAt: time.Now(), Forced: force}

	err := p.render(ctx, result)

	result.Duration = time.Since(result.StartedAt)
	p.finish(ctx, result, err)
	return result, err
}

func (p *Project) render(ctx context.Context, result *BuildResult) error {
	force := result.Forced
	if p.ConfigChanged() {
		result.ConfigChanged = true
		force = true
		if err := p.syncConfig(ctx); err != nil {
			return err
		}
	}

	for page, err := range p.Pages() {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.renderOne(ctx, page, force, result); err != nil {
			return err
		}
	}
	return nil
}

// renderOne processes a single page and returns only errors that must stop
// the build.
func (p *Project) renderOne(ctx context.Context, page *Page, force bool, result *BuildResult) error {
	start := time.Now()
	id := page.Identifier()

	if !force {
		// Unreadable pages fall through to Render, which reports the failure.
		if changed, err := page.HasChanged(); err == nil && !changed {
			result.Skipped = append(result.Skipped, id)
			p.recorder.IncPageResult(metrics.PageSkipped)
			p.recorder.ObservePageDuration(metrics.PageSkipped, time.Since(start))
			return nil
		}
	}

	if _, err := page.Render(ctx); err != nil {
		if errors.IsFatal(err) {
			return err
		}
		result.Failed = append(result.Failed, PageFailure{Page: id, Err: err})
		p.recorder.IncPageResult(metrics.PageFailed)
		p.recorder.ObservePageDuration(metrics.PageFailed, time.Since(start))
		p.logger.Warn("Failed to render page", logfields.Page(id), logfields.Error(err))
		return nil
	}

	result.Rendered = append(result.Rendered, id)
	p.recorder.IncPageResult(metrics.PageRendered)
	p.recorder.ObservePageDuration(metrics.PageRendered, time.Since(start))
	return nil
}

// RenderPage renders the page called id. Unless force is set the page is
// skipped when unchanged. A changed configuration is recorded exactly as in
// Render, which leaves every other page marked for rendering.
func (p *Project) RenderPage(ctx context.Context, id string, force bool) (*BuildResult, error) {
	result := &BuildResult{StartedAt: time.Now(), Forced: force}

	err := func() error {
		page, err := p.Page(id)
		if err != nil {
			return err
		}
		forced := force
		if p.ConfigChanged() {
			result.ConfigChanged = true
			forced = true
			if err := p.syncConfig(ctx); err != nil {
				return err
			}
		}
		return p.renderOne(ctx, page, forced, result)
	}()

	result.Duration = time.Since(result.StartedAt)
	p.finish(ctx, result, err)
	return result, err
}

func (p *Project) finish(ctx context.Context, result *BuildResult, err error) {
	outcome := metrics.OutcomeFor(len(result.Failed), err, ctx.Err() != nil)
	p.recorder.ObserveBuildDuration(result.Duration)
	p.recorder.IncBuildOutcome(outcome)
	p.recorder.SetTrackedPages(len(p.TrackedPages()))

	attrs := []any{
		"outcome", string(outcome),
		"rendered", len(result.Rendered),
		"skipped", len(result.Skipped),
		"failed", len(result.Failed),
		logfields.DurationMS(float64(result.Duration.Microseconds()) / 1000),
	}
	if err != nil {
		p.logger.Error("Build aborted", append(attrs, logfields.Error(err))...)
		return
	}
	p.logger.Info("Build complete", attrs...)
}

// ListChanged partitions page identifiers into those a build would render and
// those it would skip, without rendering or recording anything. When the
// configuration changed every page is listed as changed.
func (p *Project) ListChanged() (changed, unchanged []string, err error) {
	all := p.ConfigChanged()
	for page, err := range p.Pages() {
		if err != nil {
			return changed, unchanged, err
		}
		if all {
			changed = append(changed, page.Identifier())
			continue
		}
		// Unreadable pages count as changed.
		if isChanged, _ := page.HasChanged(); isChanged {
			changed = append(changed, page.Identifier())
		} else {
			unchanged = append(unchanged, page.Identifier())
		}
	}
	return changed, unchanged, nil
}
