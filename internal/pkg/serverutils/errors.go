package serverutils

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ApiError carries an HTTP status alongside the message returned to the
// client. The wrapped error, when present, is the underlying cause and is
// kept for logging only.
type ApiError struct {
	Code    int
	Message string
	Err     error
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

// NewValidationError reports malformed or empty input (400).
func NewValidationError(message string) *ApiError {
	return &ApiError{Code: fiber.StatusBadRequest, Message: message}
}

// NewUnsupportedMediaError reports an upload with an extension outside the
// accepted set (422).
func NewUnsupportedMediaError(message string) *ApiError {
	return &ApiError{Code: fiber.StatusUnprocessableEntity, Message: message}
}

// NewPreconditionError reports a request that cannot proceed given current
// store state, detected before any mutation (400).
func NewPreconditionError(message string) *ApiError {
	return &ApiError{Code: fiber.StatusBadRequest, Message: message}
}

// NewUpstreamError reports a failed embedding or generation model call (500).
func NewUpstreamError(message string, err error) *ApiError {
	return &ApiError{Code: fiber.StatusInternalServerError, Message: message, Err: err}
}

// NewPersistenceError reports a failed store write after rollback (500).
func NewPersistenceError(message string, err error) *ApiError {
	return &ApiError{Code: fiber.StatusInternalServerError, Message: message, Err: err}
}
