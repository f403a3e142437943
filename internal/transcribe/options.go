package transcribe

import (
	"fmt"
	"strings"
)

// Task values accepted by the engine.
const (
	TaskTranscribe = "transcribe"
	TaskTranslate  = "translate"
)

// LanguageAuto is the client-facing sentinel for auto-detection.
const LanguageAuto = "auto"

// Options is the immutable decoding parameter set passed to the engine.
type Options struct {
	// Task is transcribe or translate.
	Task string
	// Language is an explicit language code, or empty for auto-detection.
	// It is never populated with "auto": omission is what lets the engine
	// detect code-switched speech per utterance.
	Language string
	// BeamSize is the decoding beam width; 1 means greedy.
	BeamSize int
	// BestOf is the number of candidates sampled at nonzero temperature.
	BestOf int
	// Temperatures is the fallback schedule; a single value disables fallback.
	Temperatures []float64
	// VADFilter skips silent regions before decoding.
	VADFilter bool
	// MinSilenceDurationMs is the VAD silence threshold.
	MinSilenceDurationMs int
	// SpeechPadMs is the VAD padding around detected speech.
	SpeechPadMs int
	// InitialPrompt optionally primes decoding.
	InitialPrompt string
}

// Profile is a named deployment-time tuning preset.
type Profile struct {
	Name                 string
	BeamSize             int
	BestOf               int
	Temperatures         []float64
	VADFilter            bool
	MinSilenceDurationMs int
	SpeechPadMs          int
	InitialPrompt        string
	// ForceTask, when set, overrides the client's requested task. Used by
	// the bilingual-normalize profile, which always translates.
	ForceTask string
	// ExposeDetection controls whether detected-language metadata appears
	// in responses.
	ExposeDetection bool
}

// Profile preset names.
const (
	ProfileFast               = "fast"
	ProfileAccurate           = "accurate"
	ProfileBilingualNormalize = "bilingual-normalize"
)

// ProfileByName returns the named preset.
func ProfileByName(name string) (Profile, error) {
	switch name {
	case ProfileFast:
		// Speed-optimized for near real-time transcription: greedy decoding,
		// no temperature fallback, short VAD silence threshold.
		return Profile{
			Name:                 ProfileFast,
			BeamSize:             1,
			BestOf:               1,
			Temperatures:         []float64{0.0},
			VADFilter:            true,
			MinSilenceDurationMs: 300,
			SpeechPadMs:          200,
			ExposeDetection:      true,
		}, nil
	case ProfileAccurate:
		return Profile{
			Name:                 ProfileAccurate,
			BeamSize:             5,
			BestOf:               5,
			Temperatures:         []float64{0.0, 0.2, 0.4, 0.6, 0.8, 1.0},
			VADFilter:            true,
			MinSilenceDurationMs: 500,
			SpeechPadMs:          400,
			ExposeDetection:      true,
		}, nil
	case ProfileBilingualNormalize:
		// Always translates regardless of the requested task, normalizing
		// bilingual input into one language. Selectable, never the default.
		return Profile{
			Name:                 ProfileBilingualNormalize,
			BeamSize:             1,
			BestOf:               1,
			Temperatures:         []float64{0.0},
			VADFilter:            true,
			MinSilenceDurationMs: 300,
			SpeechPadMs:          200,
			ForceTask:            TaskTranslate,
			ExposeDetection:      true,
		}, nil
	default:
		return Profile{}, fmt.Errorf("unknown profile %q (valid: %s, %s, %s)",
			name, ProfileFast, ProfileAccurate, ProfileBilingualNormalize)
	}
}

// BuildOptions maps client intent plus the tuning profile into the options
// value passed to the engine.
//
// Task values other than transcribe/translate silently fall back to
// transcribe. A language of "" or "auto" is omitted so the engine
// auto-detects; any other code is passed through verbatim — language codes
// are never validated here, the engine rejects unknown ones itself.
func BuildOptions(task, language string, p Profile) Options {
	if task != TaskTranscribe && task != TaskTranslate {
		task = TaskTranscribe
	}
	if p.ForceTask != "" {
		task = p.ForceTask
	}

	language = strings.TrimSpace(language)
	if language == LanguageAuto {
		language = ""
	}

	return Options{
		Task:                 task,
		Language:             language,
		BeamSize:             p.BeamSize,
		BestOf:               p.BestOf,
		Temperatures:         append([]float64(nil), p.Temperatures...),
		VADFilter:            p.VADFilter,
		MinSilenceDurationMs: p.MinSilenceDurationMs,
		SpeechPadMs:          p.SpeechPadMs,
		InitialPrompt:        p.InitialPrompt,
	}
}
