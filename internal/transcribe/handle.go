package transcribe

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/skillsenselab/localstt/internal/logger"
)

// HandleState is the engine handle lifecycle state.
type HandleState int32

// Handle states. The only legal transitions are
// Uninitialized → Loading → Ready and Loading → Failed.
const (
	StateUninitialized HandleState = iota
	StateLoading
	StateReady
	StateFailed
)

// String returns the lowercase state name.
func (s HandleState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Handle is the process-wide, read-only-after-load handle to the
// recognition engine. It is created once at startup, shared by all
// concurrent requests without locking (no field mutates after the Ready
// transition), and destroyed only at process shutdown.
type Handle struct {
	engine      Engine
	model       string
	device      string
	computeType string

	state   atomic.Int32
	loadErr error
	log     *logger.Logger
}

// NewHandle builds an uninitialized handle from config, selecting the
// stub engine or the sidecar backend. Call Load before serving requests.
func NewHandle(cfg EngineConfig, log *logger.Logger) *Handle {
	var engine Engine
	if cfg.UseStub {
		engine = NewStubEngine(log)
	} else {
		engine = NewWhisperEngine(cfg, log)
	}
	return newHandle(engine, cfg, log)
}

// NewHandleWithEngine builds a handle around an explicit engine. Used by
// tests to substitute a stub.
func NewHandleWithEngine(engine Engine, cfg EngineConfig, log *logger.Logger) *Handle {
	return newHandle(engine, cfg, log)
}

func newHandle(engine Engine, cfg EngineConfig, log *logger.Logger) *Handle {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Handle{
		engine:      engine,
		model:       cfg.Model,
		device:      cfg.Device,
		computeType: cfg.ComputeType,
		log:         log.WithComponent("engine"),
	}
}

// Load transitions the handle Uninitialized → Loading → Ready, probing
// the backend when it supports readiness checks. On probe failure the
// handle goes to Failed, which is fatal: a failed handle never serves.
func (h *Handle) Load(ctx context.Context) error {
	if !h.state.CompareAndSwap(int32(StateUninitialized), int32(StateLoading)) {
		return fmt.Errorf("engine handle load from state %s", h.State())
	}

	h.log.Info("loading recognition engine", logger.Fields(
		logger.FieldModel, h.model,
		logger.FieldDevice, h.device,
		"compute_type", h.computeType,
	))

	if p, ok := h.engine.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			h.loadErr = err
			h.state.Store(int32(StateFailed))
			h.log.Error("engine load failed", logger.ErrorFields("load", err))
			return fmt.Errorf("engine load: %w", err)
		}
	}

	h.state.Store(int32(StateReady))
	h.log.Info("recognition engine ready", logger.Fields(
		logger.FieldModel, h.model,
		logger.FieldDevice, h.device,
		"compute_type", h.computeType,
	))
	return nil
}

// State returns the current lifecycle state.
func (h *Handle) State() HandleState {
	return HandleState(h.state.Load())
}

// Ready reports whether the handle may serve transcribe calls.
func (h *Handle) Ready() bool {
	return h.State() == StateReady
}

// LoadErr returns the load failure, if any.
func (h *Handle) LoadErr() error {
	return h.loadErr
}

// Engine returns the underlying engine.
func (h *Handle) Engine() Engine {
	return h.engine
}

// Model returns the configured model identifier.
func (h *Handle) Model() string { return h.model }

// Device returns the configured device.
func (h *Handle) Device() string { return h.device }

// ComputeType returns the configured compute precision.
func (h *Handle) ComputeType() string { return h.computeType }
