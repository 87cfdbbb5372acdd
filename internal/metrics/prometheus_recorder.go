package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry        *prom.Registry
	renderDuration  *prom.HistogramVec
	renderResults   *prom.CounterVec
	buildDuration   prom.Histogram
	buildOutcome    *prom.CounterVec
	rendererPatched prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg
// (a fresh registry when reg is nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docsite",
			Name:      "page_render_duration_seconds",
			Help:      "Duration of individual page renders by renderer",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"renderer"}),
		renderResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsite",
			Name:      "page_renders_total",
			Help:      "Page renders by renderer and result",
		}, []string{"renderer", "result"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docsite",
			Name:      "build_duration_seconds",
			Help:      "Total site build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsite",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"result"}),
		rendererPatched: prom.NewGauge(prom.GaugeOpts{
			Namespace: "docsite",
			Name:      "renderer_patched",
			Help:      "1 while the page render hook is substituted by a plugin",
		}),
	}
	reg.MustRegister(pr.renderDuration, pr.renderResults, pr.buildDuration, pr.buildOutcome, pr.rendererPatched)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) ObservePageRender(renderer string, d time.Duration, result ResultLabel) {
	if p == nil {
		return
	}
	p.renderDuration.WithLabelValues(renderer).Observe(d.Seconds())
	p.renderResults.WithLabelValues(renderer, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(result ResultLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetRendererPatched(patched bool) {
	if p == nil {
		return
	}
	if patched {
		p.rendererPatched.Set(1)
		return
	}
	p.rendererPatched.Set(0)
}

// WriteTextfile writes the registry in text exposition format to path
// (written to a temp file and renamed).
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.registry)
}
