package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound   = errors.New("resource not found")
	ErrBadRequest = errors.New("bad request")
)

// Error carries the message shown to clients. Kind is one of the sentinels
// above and is what errors.Is matches against.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NotFound creates a not-found error with the given client message.
func NotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// BadRequest creates a bad-request error with the given client message.
func BadRequest(message string) *Error {
	return &Error{Kind: ErrBadRequest, Message: message}
}

// StatusFor maps an error to the HTTP status code it should be reported with.
func StatusFor(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
