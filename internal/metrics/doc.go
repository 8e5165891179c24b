// Package metrics records build and stage metrics.
//
// Components receive a Recorder and never check for nil; NoopRecorder is the
// default when metrics are not requested. PrometheusRecorder registers its
// collectors on a caller supplied registry, which the CLI writes out in the
// node exporter textfile format with WriteTextfile.
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	builder := build.NewBuilder(build.WithRecorder(rec))
//	...
//	err := metrics.WriteTextfile(reg, "blogsmith.prom")
package metrics
