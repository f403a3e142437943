// Package transcribe implements the per-request transcription pipeline:
// upload validation against the extension allow-list, scoped ephemeral
// file handling, decoding-option construction from client intent plus a
// named tuning profile, engine invocation, and result assembly.
//
// The recognition engine is an opaque capability behind the Engine
// interface; the default backend is a faster-whisper HTTP sidecar. A
// process-wide Handle owns the engine and its readiness state and is
// read-only once it reaches Ready.
//
// Mixed-language (code-switched) speech is handled by leaving the
// language unset, which lets the engine auto-detect per utterance.
package transcribe
