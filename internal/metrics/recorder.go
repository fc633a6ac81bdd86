package metrics

import "time"

// PageResult enumerates what a build did with a single page.
type PageResult string

const (
	PageRendered PageResult = "rendered"
	PageSkipped  PageResult = "skipped"
	PageFailed   PageResult = "failed"
)

// BuildOutcome enumerates the final status of a build pass.
type BuildOutcome string

const (
	BuildSuccess  BuildOutcome = "success"
	BuildPartial  BuildOutcome = "partial" // some pages failed
	BuildFailed   BuildOutcome = "failed"
	BuildCanceled BuildOutcome = "canceled"
)

// Recorder defines observability hooks for build and page metrics.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	ObservePageDuration(result PageResult, d time.Duration)
	IncPageResult(result PageResult)
	IncBuildOutcome(outcome BuildOutcome)
	IncConfigChange()
	SetTrackedPages(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration)            {}
func (NoopRecorder) ObservePageDuration(PageResult, time.Duration) {}
func (NoopRecorder) IncPageResult(PageResult)                      {}
func (NoopRecorder) IncBuildOutcome(BuildOutcome)                  {}
func (NoopRecorder) IncConfigChange()                              {}
func (NoopRecorder) SetTrackedPages(int)                           {}

// OutcomeFor classifies a finished build from its failure count and error.
func OutcomeFor(failed int, err error, canceled bool) BuildOutcome {
	switch {
	case canceled:
		return BuildCanceled
	case err != nil:
		return BuildFailed
	case failed > 0:
		return BuildPartial
	default:
		return BuildSuccess
	}
}
