// Package instrument provides reactive.Observer implementations backed by
// Prometheus metrics and OpenTelemetry tracing. Observers attach to a
// runtime at construction:
//
//	rt := reactive.NewRuntime(
//	    reactive.WithObserver(instrument.Multi(
//	        instrument.Prometheus(instrument.WithNamespace("myapp")),
//	        instrument.OpenTelemetry(),
//	    )),
//	)
package instrument
