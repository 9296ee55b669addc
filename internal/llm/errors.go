package llm

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/saulo-duarte/smart-quiz/internal/apperror"
)

// CompletionError is the only error type providers return. StatusCode is the
// upstream HTTP status when one was received, zero otherwise.
type CompletionError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *CompletionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion failed (status %d): %s", e.StatusCode, e.Message)
	}
	return "completion failed: " + e.Message
}

func (e *CompletionError) Unwrap() error { return e.Err }

func (e *CompletionError) Kind() apperror.Kind { return apperror.CompletionError }

// Transient reports whether the failure is worth retrying: rate limits,
// server errors, and failures that never got a status back.
func (e *CompletionError) Transient() bool {
	return e.StatusCode == 0 ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError
}

func wrapError(err error, status int) *CompletionError {
	var ce *CompletionError
	if errors.As(err, &ce) {
		return ce
	}
	return &CompletionError{Message: err.Error(), StatusCode: status, Err: err}
}
