package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sr"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	buildDuration prom.Histogram
	pageDuration  *prom.HistogramVec
	pageResults   *prom.CounterVec
	buildOutcome  *prom.CounterVec
	configChanges prom.Counter
	trackedPages  prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total duration of a build pass",
			Buckets:   prom.DefBuckets,
		})
		pr.pageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "page_duration_seconds",
			Help:      "Time spent on a single page, by result",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"result"})
		pr.pageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "page_results_total",
			Help:      "Pages processed by result",
		}, []string{"result"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.configChanges = prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "config_changes_total",
			Help:      "Builds that found a changed configuration and rendered everything",
		})
		pr.trackedPages = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "tracked_pages",
			Help:      "Pages recorded in the hash database after the last build",
		})
		reg.MustRegister(pr.buildDuration, pr.pageDuration, pr.pageResults, pr.buildOutcome, pr.configChanges, pr.trackedPages)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObservePageDuration(result PageResult, d time.Duration) {
	if p == nil || p.pageDuration == nil {
		return
	}
	p.pageDuration.WithLabelValues(string(result)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPageResult(result PageResult) {
	if p == nil || p.pageResults == nil {
		return
	}
	p.pageResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcome) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncConfigChange() {
	if p == nil || p.configChanges == nil {
		return
	}
	p.configChanges.Inc()
}

func (p *PrometheusRecorder) SetTrackedPages(n int) {
	if p == nil || p.trackedPages == nil {
		return
	}
	p.trackedPages.Set(float64(n))
}
