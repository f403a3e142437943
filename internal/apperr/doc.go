// Package apperr provides the error taxonomy for the transcription
// pipeline: validation, storage, and engine failures, each carrying a
// machine-readable code, an HTTP status, and the underlying cause.
//
// Error responses embed the underlying failure message in a `detail`
// field. This deliberately leaks diagnostic detail to the client so a
// browser-extension developer can debug without server access; a
// hardened deployment may want to redact it.
package apperr
