package transcribe

import (
	"context"
	"iter"
)

// Segment is one contiguous span of recognized text.
type Segment struct {
	// Start is the segment start time in seconds.
	Start float64
	// End is the segment end time in seconds.
	End float64
	// Text is the recognized text for this segment.
	Text string
}

// Info carries summary metadata for one transcription.
type Info struct {
	// Language is the detected or declared language code.
	Language string
	// LanguageProbability is the detection confidence in [0,1]; zero when
	// the language was declared by the caller.
	LanguageProbability float64
	// Duration is the audio duration in seconds, when known.
	Duration float64
}

// Engine is the opaque recognition capability: given an audio file and
// decoding options, produce an ordered sequence of text segments plus
// summary metadata.
//
// The returned sequence is lazy, finite, and single-pass; consuming it
// twice is not guaranteed to reproduce the same result without
// re-invoking the engine. Implementations must not retry internally.
type Engine interface {
	Transcribe(ctx context.Context, path string, opts Options) (iter.Seq[Segment], *Info, error)
}

// pinger is implemented by engines that can verify backend reachability
// before the handle is marked ready.
type pinger interface {
	Ping(ctx context.Context) error
}
