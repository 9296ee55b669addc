// Package apperror defines the error kinds shared by the quiz pipeline and their
// mapping onto HTTP status codes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	Internal            Kind = "internal"
	InvalidInput        Kind = "invalid_input"
	EmptyInput          Kind = "empty_input"
	FetchFailed         Kind = "fetch_failed"
	ContentTooLarge     Kind = "content_too_large"
	InsufficientContent Kind = "insufficient_content"
	CompletionError     Kind = "completion_error"
	ParseError          Kind = "parse_error"
	NotFound            Kind = "not_found"
	Unauthorized        Kind = "unauthorized"
)

// Kinder is implemented by errors from other packages that belong to a Kind.
type Kinder interface {
	Kind() Kind
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports a match for any *Error of the same kind, so a bare
// apperror.New(kind, "") works as a sentinel with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k Kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return Internal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case InvalidInput, EmptyInput:
		return http.StatusBadRequest
	case ContentTooLarge:
		return http.StatusRequestEntityTooLarge
	case InsufficientContent, ParseError:
		return http.StatusUnprocessableEntity
	case FetchFailed, CompletionError:
		return http.StatusBadGateway
	case NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
