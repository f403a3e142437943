package transcribe

import (
	"iter"
	"testing"
)

func seqOf(texts ...string) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for _, t := range texts {
			if !yield(Segment{Text: t}) {
				return
			}
		}
	}
}

func TestJoinSegments_TrimsAndJoins(t *testing.T) {
	got := JoinSegments(seqOf(" Namaste, ", "how are you"))
	if got != "Namaste, how are you" {
		t.Errorf("expected %q, got %q", "Namaste, how are you", got)
	}
}

func TestJoinSegments_Empty(t *testing.T) {
	if got := JoinSegments(seqOf()); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestAssembleResult_DetectionExposed(t *testing.T) {
	info := &Info{Language: "hi", LanguageProbability: 0.8267}
	res := AssembleResult("Namaste", info, true)
	if res.Text != "Namaste" {
		t.Errorf("expected text, got %q", res.Text)
	}
	if res.DetectedLanguage != "hi" {
		t.Errorf("expected detected language hi, got %q", res.DetectedLanguage)
	}
	if res.LanguageProbability == nil || *res.LanguageProbability != 0.83 {
		t.Errorf("expected probability 0.83, got %v", res.LanguageProbability)
	}
}

func TestAssembleResult_DetectionHidden(t *testing.T) {
	info := &Info{Language: "hi", LanguageProbability: 0.9}
	res := AssembleResult("Namaste", info, false)
	if res.DetectedLanguage != "" || res.LanguageProbability != nil {
		t.Errorf("expected no detection metadata, got %+v", res)
	}
}

func TestAssembleResult_NoMetadataIsNotAnError(t *testing.T) {
	res := AssembleResult("hello", &Info{}, true)
	if res.DetectedLanguage != "" || res.LanguageProbability != nil {
		t.Errorf("expected absent metadata fields, got %+v", res)
	}
	res = AssembleResult("hello", nil, true)
	if res.Text != "hello" {
		t.Errorf("expected text with nil info, got %+v", res)
	}
}

func TestRoundProbability(t *testing.T) {
	cases := map[float64]float64{
		0.8267: 0.83,
		0.825:  0.83,
		0.8249: 0.82,
		1.0:    1.0,
		0:      0,
	}
	for in, want := range cases {
		if got := RoundProbability(in); got != want {
			t.Errorf("RoundProbability(%v): expected %v, got %v", in, want, got)
		}
	}
}
