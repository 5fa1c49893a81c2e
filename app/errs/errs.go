// Package errs defines the domain errors the API surfaces to clients.
//
// An *HTTPError carries the status and message that reach the client as-is.
// Any other error is treated as an infrastructure failure and reported as a
// generic 500 by the controllers.
package errs

import (
	"errors"
	"net/http"
	"strings"
)

// HTTPError is a domain error with a client-facing status and message.
type HTTPError struct {
	Code    string
	Message string
	Status  int
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewBadRequestError creates a 400 HTTPError.
func NewBadRequestError(message string) *HTTPError {
	return newHTTPError(http.StatusBadRequest, message)
}

// NewNotFoundError creates a 404 HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message)
}

// NewInternalServerError creates a 500 HTTPError with the given client message.
func NewInternalServerError(message string) *HTTPError {
	return newHTTPError(http.StatusInternalServerError, message)
}

// AsHTTPError extracts a domain error from err. ok is false for
// infrastructure errors.
func AsHTTPError(err error) (httpErr *HTTPError, ok bool) {
	ok = errors.As(err, &httpErr)
	return httpErr, ok
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

func newHTTPError(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}
