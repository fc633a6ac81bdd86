// Package metrics records build and page metrics for sr.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so one-shot commands pay nothing for metrics:
//
//	p, err := project.Open(root, project.WithRecorder(metrics.NoopRecorder{}))
//
// Watch mode swaps in a PrometheusRecorder and serves its registry through
// HTTPHandler:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
