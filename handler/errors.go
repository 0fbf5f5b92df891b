package handler

import (
	"errors"
	"net/http"
)

var (
	ErrNilResponse      = errors.New("handler returned nil response")
	ErrNotFound         = NewHTTPError(http.StatusNotFound, "Route not found", nil)
	ErrMethodNotAllowed = NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed", nil)
)

// HTTPError pins a status code and a user-facing message to an error.
// Err is the cause, shown only in debug responses and logs.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

func NewHTTPError(code int, message string, err error) *HTTPError {
	return &HTTPError{Code: code, Message: message, Err: err}
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error { return e.Err }
