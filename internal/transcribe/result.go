package transcribe

import (
	"iter"
	"math"
	"strings"
)

// Result is the assembled transcription response.
type Result struct {
	// Text is always present: the segments' trimmed text joined by single
	// spaces, in segment order.
	Text string `json:"text"`
	// DetectedLanguage is included verbatim when the engine reported one
	// and the profile exposes detection metadata.
	DetectedLanguage string `json:"detected_language,omitempty"`
	// LanguageProbability is the detection confidence rounded to two
	// decimals, when available.
	LanguageProbability *float64 `json:"language_probability,omitempty"`
}

// JoinSegments consumes the segment sequence once, trimming each
// segment's text and joining with single spaces.
func JoinSegments(segments iter.Seq[Segment]) string {
	var parts []string
	for s := range segments {
		parts = append(parts, strings.TrimSpace(s.Text))
	}
	return strings.Join(parts, " ")
}

// AssembleResult builds the response from the joined text and engine
// metadata. Absence of language metadata is not an error.
func AssembleResult(text string, info *Info, exposeDetection bool) *Result {
	res := &Result{Text: text}
	if info == nil || !exposeDetection {
		return res
	}
	if info.Language != "" {
		res.DetectedLanguage = info.Language
	}
	if info.LanguageProbability > 0 {
		p := RoundProbability(info.LanguageProbability)
		res.LanguageProbability = &p
	}
	return res
}

// RoundProbability rounds a detection confidence to two decimal places.
func RoundProbability(p float64) float64 {
	return math.Round(p*100) / 100
}
