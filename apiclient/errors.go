package apiclient

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
)

// ErrNetwork matches every transport-level failure: refused connections, DNS errors, timeouts,
// cancelled contexts.
var ErrNetwork = errors.New("network failure")

// APIError is returned for any non-2xx response. Fields holds the response object's fields
// merged with "status"; the response status wins over a "status" field in the body.
type APIError struct {
	Status int
	Fields map[string]any
	body   Body
}

func newAPIError(status int, body Body) *APIError {
	fields := body.Map()
	fields["status"] = status
	return &APIError{Status: status, Fields: fields, body: body}
}

func (e *APIError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// Map returns a copy of the merged error object.
func (e *APIError) Map() map[string]any {
	return maps.Clone(e.Fields)
}

// Message returns the backend's "msg" field, which every error payload of the quiz API carries.
func (e *APIError) Message() string {
	return e.body.Get("msg").String()
}

// Body returns the raw response document.
func (e *APIError) Body() Body {
	return e.body
}

type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() []error {
	return []error{ErrNetwork, e.Err}
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == code
}

func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}
