// Package apperror defines the error kinds handlers hand to the boundary
// error mapper instead of writing failure responses themselves.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/stemsi/elearning-backend/internal/response"
)

// Kind classifies a failure for status-code mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindInvalidPayload
	KindInvalidID
	KindIDMismatch
	KindNotFound
)

// Error is an HTTP-facing failure. Err holds the cause for server-side
// logging and is never written to the client.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindInvalidPayload, KindInvalidID, KindIDMismatch:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Code maps the kind to the envelope error code.
func (e *Error) Code() response.ErrCode {
	switch e.Kind {
	case KindValidation:
		return response.ErrValidation
	case KindInvalidPayload:
		return response.ErrInvalidPayload
	case KindInvalidID:
		return response.ErrInvalidID
	case KindIDMismatch:
		return response.ErrIDMismatch
	case KindNotFound:
		return response.ErrNotFound
	default:
		return response.ErrInternal
	}
}

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: response.GetMessage(response.ErrValidation), Fields: fields}
}

func InvalidPayload(err error) *Error {
	return &Error{
		Kind:    KindInvalidPayload,
		Message: response.GetMessage(response.ErrInvalidPayload),
		Fields:  map[string]string{"detail": err.Error()},
		Err:     err,
	}
}

func InvalidID(raw string) *Error {
	return &Error{Kind: KindInvalidID, Message: response.GetMessage(response.ErrInvalidID), Fields: map[string]string{"id": raw}}
}

func IDMismatch() *Error {
	return &Error{Kind: KindIDMismatch, Message: response.GetMessage(response.ErrIDMismatch)}
}

// CourseNotFound names the missing id in the message.
func CourseNotFound(id int) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("Course with ID %d was not found", id)}
}

// Internal wraps a storage or unexpected failure behind a generic message.
func Internal(err error, message string) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// From returns err as an *Error, treating anything untyped as internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err, response.GetMessage(response.ErrInternal))
}
