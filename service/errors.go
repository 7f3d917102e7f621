package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned when the registration API responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	// Message is the server's {"error": ...} text, when it sent one.
	Message string
	Body    string
}

func (e *APIError) Error() string {
	if e == nil {
		return "registration api error"
	}
	if e.Message != "" {
		return fmt.Sprintf("registration api error: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("registration api error: %s: %s", e.Status, e.Body)
}

// TransportError wraps a request that never produced an HTTP response.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func newAPIError(res *http.Response, endpoint string, snippet []byte) *APIError {
	apiErr := &APIError{
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Endpoint:   endpoint,
		Body:       strings.TrimSpace(string(snippet)),
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(snippet, &payload); err == nil {
		apiErr.Message = strings.TrimSpace(payload.Error)
	}
	return apiErr
}

// IsNotFound reports whether the error represents a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsTransport reports whether the request failed before any response arrived.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// ServerMessage returns the server-provided error text verbatim, or fallback
// when the error carries none.
func ServerMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
