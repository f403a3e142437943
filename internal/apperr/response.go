package apperr

import (
	stderrors "errors"
)

// DetailResponse is the JSON error body returned to clients.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// ToResponse converts an AppError to the client-facing error body.
func (e *AppError) ToResponse() DetailResponse {
	return DetailResponse{Detail: e.Message}
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
