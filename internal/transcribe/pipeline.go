package transcribe

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/skillsenselab/localstt/internal/apperr"
	"github.com/skillsenselab/localstt/internal/logger"
	"github.com/skillsenselab/localstt/internal/observability"
	"github.com/skillsenselab/localstt/internal/resilience"
)

// Request is one client transcription request: the uploaded audio plus
// the caller's intent. It exists only for the duration of the request.
type Request struct {
	// Filename is the declared upload filename; may be empty.
	Filename string
	// Data is the raw audio bytes.
	Data []byte
	// Task is transcribe or translate; anything else falls back to transcribe.
	Task string
	// Language is a language code, "auto", or empty for auto-detection.
	Language string
}

// Pipeline executes the per-request transcription flow: validation,
// ephemeral file acquisition, option construction, bounded engine
// invocation, and result assembly. Cleanup of the ephemeral file runs on
// every exit path once acquisition succeeded.
type Pipeline struct {
	handle    *Handle
	validator *Validator
	profile   Profile
	tempDir   string
	limiter   *resilience.Bulkhead
	timeout   time.Duration
	log       *logger.Logger
	metrics   *observability.Metrics
}

// NewPipeline wires the pipeline. metrics may be nil when telemetry is
// disabled.
func NewPipeline(handle *Handle, engineCfg EngineConfig, uploadCfg UploadConfig, profile Profile, log *logger.Logger, metrics *observability.Metrics) *Pipeline {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	limiter := resilience.NewBulkhead(resilience.BulkheadConfig{
		Name:          "engine",
		MaxConcurrent: engineCfg.MaxConcurrency,
		MaxWait:       engineCfg.AcquireWait,
	})
	return &Pipeline{
		handle:    handle,
		validator: NewValidator(uploadCfg.AllowedExtensions),
		profile:   profile,
		tempDir:   uploadCfg.TempDir,
		limiter:   limiter,
		timeout:   engineCfg.RequestTimeout,
		log:       log.WithComponent("pipeline"),
		metrics:   metrics,
	}
}

// Profile returns the active tuning profile.
func (p *Pipeline) Profile() Profile {
	return p.profile
}

// Handle returns the engine handle serving this pipeline.
func (p *Pipeline) Handle() *Handle {
	return p.handle
}

// Transcribe runs one request through the pipeline. Every failure is
// returned as an *apperr.AppError; none are retried.
func (p *Pipeline) Transcribe(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	opts := BuildOptions(req.Task, req.Language, p.profile)

	p.metrics.RecordStart(ctx)
	res, err := p.run(ctx, req, opts)
	duration := time.Since(start)

	if err != nil {
		appErr := asAppError(err)
		p.metrics.RecordEnd(ctx, opts.Task, "error", duration)
		p.metrics.RecordError(ctx, string(appErr.Code))
		p.log.Warn("transcription failed", logger.Fields(
			logger.FieldTask, opts.Task,
			logger.FieldError, appErr.Error(),
			logger.FieldDuration, duration.Milliseconds(),
		))
		return nil, appErr
	}

	p.metrics.RecordEnd(ctx, opts.Task, "ok", duration)
	p.log.Info("transcription complete", logger.Fields(
		logger.FieldTask, opts.Task,
		logger.FieldLanguage, res.DetectedLanguage,
		logger.FieldDuration, duration.Milliseconds(),
	))
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, req Request, opts Options) (*Result, error) {
	if !p.handle.Ready() {
		return nil, apperr.EngineNotReady(p.handle.State().String())
	}

	// Validation happens before any side effect: a rejected extension
	// never creates a temp file or touches the engine.
	ext, err := p.validator.Validate(req.Filename)
	if err != nil {
		return nil, err
	}

	tmp, err := CreateTempFile(p.tempDir, req.Data, ext)
	if err != nil {
		return nil, err
	}
	defer func() {
		if relErr := tmp.Release(); relErr != nil {
			p.log.Error("temp file release failed", logger.ErrorFields("release", relErr))
		}
	}()

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	var text string
	var info *Info
	invoke := func() error {
		spanCtx, span := observability.Tracer().Start(ctx, "engine.transcribe")
		span.SetAttributes(
			attribute.String("task", opts.Task),
			attribute.String("language", opts.Language),
			attribute.String("profile", p.profile.Name),
		)
		defer span.End()

		segments, engineInfo, err := p.handle.Engine().Transcribe(spanCtx, tmp.Path(), opts)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		// The segment sequence is single-pass; it is consumed exactly once,
		// inside the engine slot, since iteration may still drive the engine.
		text = JoinSegments(segments)
		info = engineInfo
		return nil
	}

	if err := p.limiter.Execute(ctx, invoke); err != nil {
		if errors.Is(err, resilience.ErrBulkheadFull) || errors.Is(err, resilience.ErrBulkheadTimeout) {
			return nil, apperr.EngineBusy()
		}
		return nil, err
	}

	return AssembleResult(text, info, p.profile.ExposeDetection), nil
}

// asAppError classifies a pipeline failure: AppErrors pass through,
// anything else (engine faults, context cancellation) is wrapped as an
// engine failure with the underlying message preserved.
func asAppError(err error) *apperr.AppError {
	if appErr, ok := apperr.AsAppError(err); ok {
		return appErr
	}
	return apperr.EngineFailed(err)
}
