package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for builds and page renders.
type Recorder interface {
	// ObservePageRender records one page render by the named renderer.
	ObservePageRender(renderer string, d time.Duration, result ResultLabel)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(result ResultLabel)
	// SetRendererPatched reports whether the page render hook is currently substituted.
	SetRendererPatched(patched bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePageRender(string, time.Duration, ResultLabel) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)                   {}
func (NoopRecorder) IncBuildOutcome(ResultLabel)                          {}
func (NoopRecorder) SetRendererPatched(bool)                              {}
