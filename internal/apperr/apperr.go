package apperr

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode is a machine-readable error code.
type ErrorCode string

const (
	// ErrCodeUnsupportedFileType indicates the uploaded file extension is not allowed.
	ErrCodeUnsupportedFileType ErrorCode = "UNSUPPORTED_FILE_TYPE"
	// ErrCodeStorageFailed indicates the upload could not be persisted to ephemeral storage.
	ErrCodeStorageFailed ErrorCode = "STORAGE_FAILED"
	// ErrCodeEngineFailed indicates the recognition engine failed during transcription.
	ErrCodeEngineFailed ErrorCode = "ENGINE_FAILED"
	// ErrCodeEngineBusy indicates all engine slots are occupied.
	ErrCodeEngineBusy ErrorCode = "ENGINE_BUSY"
	// ErrCodeEngineNotReady indicates the engine handle has not reached the ready state.
	ErrCodeEngineNotReady ErrorCode = "ENGINE_NOT_READY"
	// ErrCodeInternal indicates an unclassified server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is the human-readable message surfaced in the `detail` field.
	Message string `json:"message"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for logging.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// --- Constructors ---

// UnsupportedFileType creates the validation error for a rejected upload
// extension. The message names the offending extension and the allowed set.
func UnsupportedFileType(ext string, allowed []string) *AppError {
	return &AppError{
		Code:       ErrCodeUnsupportedFileType,
		Message:    fmt.Sprintf("Unsupported file type '%s'. Allowed: %s", ext, strings.Join(allowed, ", ")),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"extension": ext, "allowed": allowed},
	}
}

// StorageFailed creates the error for a failed ephemeral-file write or removal.
func StorageFailed(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeStorageFailed,
		Message:    fmt.Sprintf("Failed to save file: %v", cause),
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// EngineFailed wraps a recognition-engine failure, preserving the underlying
// message for diagnostics.
func EngineFailed(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeEngineFailed,
		Message:    fmt.Sprintf("Transcription failed: %v", cause),
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// EngineBusy creates the error returned when no engine slot frees up within
// the acquire window.
func EngineBusy() *AppError {
	return &AppError{
		Code:       ErrCodeEngineBusy,
		Message:    "Engine is busy. Please retry.",
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// EngineNotReady creates the error returned while the engine handle is not in
// the ready state.
func EngineNotReady(state string) *AppError {
	return &AppError{
		Code:       ErrCodeEngineNotReady,
		Message:    fmt.Sprintf("Engine is not ready (state: %s)", state),
		HTTPStatus: http.StatusServiceUnavailable,
		Details:    map[string]any{"state": state},
	}
}

// Internal wraps an unclassified failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeInternal,
		Message:    fmt.Sprintf("Internal error: %v", cause),
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}
