package transcribe

import "testing"

func TestBuildOptions_TaskNormalization(t *testing.T) {
	p, _ := ProfileByName(ProfileFast)
	cases := map[string]string{
		"transcribe": TaskTranscribe,
		"translate":  TaskTranslate,
		"summarize":  TaskTranscribe,
		"":           TaskTranscribe,
		"TRANSLATE":  TaskTranscribe,
	}
	for task, want := range cases {
		opts := BuildOptions(task, "", p)
		if opts.Task != want {
			t.Errorf("BuildOptions(task=%q): expected %q, got %q", task, want, opts.Task)
		}
	}
}

func TestBuildOptions_LanguageAutoDetect(t *testing.T) {
	p, _ := ProfileByName(ProfileFast)
	for _, lang := range []string{"", "auto", "  auto  ", "   "} {
		opts := BuildOptions(TaskTranscribe, lang, p)
		if opts.Language != "" {
			t.Errorf("BuildOptions(language=%q): expected omitted language, got %q", lang, opts.Language)
		}
	}
}

func TestBuildOptions_LanguagePassthrough(t *testing.T) {
	p, _ := ProfileByName(ProfileFast)
	// Codes are never validated here; the engine rejects unknown ones.
	for _, lang := range []string{"hi", "en", "zz-not-a-language"} {
		opts := BuildOptions(TaskTranscribe, lang, p)
		if opts.Language != lang {
			t.Errorf("BuildOptions(language=%q): expected verbatim pass-through, got %q", lang, opts.Language)
		}
	}
}

func TestBuildOptions_FastProfileDecoding(t *testing.T) {
	p, _ := ProfileByName(ProfileFast)
	opts := BuildOptions(TaskTranscribe, "", p)
	if opts.BeamSize != 1 || opts.BestOf != 1 {
		t.Errorf("fast profile should decode greedily, got beam=%d best_of=%d", opts.BeamSize, opts.BestOf)
	}
	if len(opts.Temperatures) != 1 || opts.Temperatures[0] != 0.0 {
		t.Errorf("fast profile should use a single zero temperature, got %v", opts.Temperatures)
	}
	if !opts.VADFilter || opts.MinSilenceDurationMs != 300 || opts.SpeechPadMs != 200 {
		t.Errorf("fast profile VAD settings wrong: %+v", opts)
	}
}

func TestBuildOptions_AccurateProfileFallbackSchedule(t *testing.T) {
	p, _ := ProfileByName(ProfileAccurate)
	opts := BuildOptions(TaskTranscribe, "", p)
	if opts.BeamSize != 5 {
		t.Errorf("expected beam 5, got %d", opts.BeamSize)
	}
	if len(opts.Temperatures) != 6 {
		t.Errorf("expected 6-step temperature fallback, got %v", opts.Temperatures)
	}
}

func TestBuildOptions_ForceTaskOverridesClient(t *testing.T) {
	p, _ := ProfileByName(ProfileBilingualNormalize)
	opts := BuildOptions(TaskTranscribe, "hi", p)
	if opts.Task != TaskTranslate {
		t.Errorf("bilingual-normalize must force translate, got %q", opts.Task)
	}
}

func TestProfileByName_Unknown(t *testing.T) {
	if _, err := ProfileByName("turbo"); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestProfileConfig_ResolveOverrides(t *testing.T) {
	no := false
	cfg := ProfileConfig{Name: ProfileAccurate, InitialPrompt: "Namaste, yaar", ExposeDetection: &no}
	p, err := cfg.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if p.InitialPrompt != "Namaste, yaar" {
		t.Errorf("expected prompt override, got %q", p.InitialPrompt)
	}
	if p.ExposeDetection {
		t.Error("expected detection metadata disabled by override")
	}
}
