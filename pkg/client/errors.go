package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorPayload mirrors the JSON body the API returns for every failed request.
type ErrorPayload struct {
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Status    string    `json:"status"`
	Error     string    `json:"error"`
	Details   []string  `json:"details"`
}

// APIError is returned when the API answers with a 4xx or 5xx status.
type APIError struct {
	StatusCode int
	Payload    ErrorPayload
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Payload.Details) == 0 {
		return fmt.Sprintf("api error (%d): %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, strings.Join(e.Payload.Details, "; "))
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
