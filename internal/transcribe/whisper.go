package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/skillsenselab/localstt/internal/apperr"
	"github.com/skillsenselab/localstt/internal/logger"
)

// WhisperEngine invokes a faster-whisper HTTP sidecar. It performs no
// retries: every failure is wrapped as an engine error with the
// underlying message preserved for diagnostics.
type WhisperEngine struct {
	cfg    EngineConfig
	client *http.Client
	log    *logger.Logger
}

// NewWhisperEngine creates the sidecar-backed engine.
func NewWhisperEngine(cfg EngineConfig, log *logger.Logger) *WhisperEngine {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &WhisperEngine{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		log: log.WithComponent("whisper"),
	}
}

// Ping checks that the sidecar is reachable and healthy.
func (e *WhisperEngine) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.cfg.BaseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("creating health request: %w", err)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("whisper sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("whisper sidecar unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// Transcribe sends the audio file and decoding options to the sidecar and
// returns its segments as a lazy single-pass sequence.
func (e *WhisperEngine) Transcribe(ctx context.Context, path string, opts Options) (iter.Seq[Segment], *Info, error) {
	body, contentType, err := e.buildRequestBody(path, opts)
	if err != nil {
		return nil, nil, apperr.EngineFailed(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.BaseURL+"/transcribe", body)
	if err != nil {
		return nil, nil, apperr.EngineFailed(fmt.Errorf("creating request: %w", err))
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, nil, apperr.EngineFailed(fmt.Errorf("whisper request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, nil, apperr.EngineFailed(fmt.Errorf("whisper error (status %d): %s",
			resp.StatusCode, strings.TrimSpace(string(detail))))
	}

	var result whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, nil, apperr.EngineFailed(fmt.Errorf("decoding whisper response: %w", err))
	}

	info := &Info{
		Language:            result.Language,
		LanguageProbability: result.LanguageProbability,
		Duration:            result.Duration,
	}

	segments := result.Segments
	seq := func(yield func(Segment) bool) {
		for _, s := range segments {
			if !yield(Segment{Start: s.Start, End: s.End, Text: s.Text}) {
				return
			}
		}
	}
	return seq, info, nil
}

// buildRequestBody assembles the multipart form: the audio file plus the
// decoding fields. The language field is written only when explicitly set;
// its absence is what enables per-utterance auto-detection.
func (e *WhisperEngine) buildRequestBody(path string, opts Options) (*bytes.Buffer, string, error) {
	audio, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading audio file: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, "", fmt.Errorf("writing audio data: %w", err)
	}

	fields := map[string]string{
		"model":        e.cfg.Model,
		"task":         opts.Task,
		"beam_size":    strconv.Itoa(opts.BeamSize),
		"best_of":      strconv.Itoa(opts.BestOf),
		"temperature":  joinTemperatures(opts.Temperatures),
		"vad_filter":   strconv.FormatBool(opts.VADFilter),
		"compute_type": e.cfg.ComputeType,
	}
	if opts.Language != "" {
		fields["language"] = opts.Language
	}
	if opts.VADFilter {
		fields["min_silence_duration_ms"] = strconv.Itoa(opts.MinSilenceDurationMs)
		fields["speech_pad_ms"] = strconv.Itoa(opts.SpeechPadMs)
	}
	if opts.InitialPrompt != "" {
		fields["initial_prompt"] = opts.InitialPrompt
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("writing field %s: %w", k, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

func joinTemperatures(temps []float64) string {
	parts := make([]string, len(temps))
	for i, t := range temps {
		parts[i] = strconv.FormatFloat(t, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// --- sidecar API response types ---

type whisperResponse struct {
	Text                string           `json:"text"`
	Segments            []whisperSegment `json:"segments"`
	Language            string           `json:"language"`
	LanguageProbability float64          `json:"language_probability"`
	Duration            float64          `json:"duration"`
}

type whisperSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}
