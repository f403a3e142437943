package transcribe

import (
	"context"
	"fmt"
	"iter"
	"os"

	"github.com/skillsenselab/localstt/internal/logger"
)

// StubEngine produces deterministic transcripts without a recognition
// backend. It is selectable via engine.use_stub for development and is
// the substitution point for pipeline tests.
type StubEngine struct {
	log *logger.Logger
}

// NewStubEngine returns an Engine that generates placeholder transcripts.
func NewStubEngine(log *logger.Logger) *StubEngine {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &StubEngine{log: log.WithComponent("engine.stub")}
}

// Transcribe implements the Engine interface. The transcript reports the
// byte count of the audio file so callers can verify plumbing end to end.
func (e *StubEngine) Transcribe(ctx context.Context, path string, opts Options) (iter.Seq[Segment], *Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	st, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}

	text := fmt.Sprintf("[stub] received %d bytes", st.Size())
	e.log.Debug("stub transcript", logger.Fields(
		"bytes", st.Size(),
		logger.FieldTask, opts.Task,
		logger.FieldLanguage, opts.Language,
	))

	seq := func(yield func(Segment) bool) {
		yield(Segment{Start: 0, End: 0, Text: text})
	}
	info := &Info{}
	if opts.Language == "" {
		info.Language = "en"
		info.LanguageProbability = 1.0
	} else {
		info.Language = opts.Language
	}
	return seq, info, nil
}
