// Package metrics provides build and render observability for docsite.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics cost nothing unless a site enables them:
//
//	gen := site.NewGenerator(cfg)                                  // NoopRecorder
//	gen = gen.WithRecorder(metrics.NewPrometheusRecorder(registry)) // Prometheus
//
// Builds are one-shot processes, so instead of serving an HTTP endpoint the
// Prometheus registry is written as a node_exporter textfile (see WriteTextfile)
// when metrics_textfile is configured.
package metrics
