// Package observability initializes OpenTelemetry metrics and tracing
// for the localstt service and exposes the instruments recorded by the
// transcription pipeline.
//
// Export goes over OTLP HTTP; when telemetry is disabled the pipeline
// simply receives nil instruments and records nothing.
package observability
