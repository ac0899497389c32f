package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/generic-crud/internal/api/apierror"
	"github.com/phrazzld/generic-crud/internal/domain"
	"github.com/phrazzld/generic-crud/internal/platform/logger"
	"github.com/phrazzld/generic-crud/internal/redact"
	"github.com/phrazzld/generic-crud/internal/store"
)

// now is replaced in tests.
var now = time.Now

// uriPrefix is the diagnostic prefix some request descriptions carry.
const uriPrefix = "uri="

// ErrorPayload is the body of every failed response.
type ErrorPayload struct {
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Details   []string  `json:"details"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		RespondWithError(w, r, apierror.MessageNotWritable(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		logger.FromContext(r.Context()).Debug("failed to write JSON response",
			slog.String("error", err.Error()))
	}
}

// NormalizeError classifies any error raised while serving a request into an
// *apierror.Error. Errors that are already classified pass through; known
// sentinel and library errors map to their kinds; anything else becomes an
// internal error whose cause is never shown to the client.
func NormalizeError(err error) *apierror.Error {
	if apiErr, ok := apierror.As(err); ok {
		return apiErr
	}

	var (
		validationErrs validator.ValidationErrors
		maxBytesErr    *http.MaxBytesError
	)

	switch {
	case err == nil:
		return apierror.Internal(errors.New("nil error"))
	case errors.As(err, &validationErrs):
		return apierror.ArgumentNotValid(FieldViolations(validationErrs), nil)
	case errors.As(err, &maxBytesErr):
		return apierror.MaxUploadSizeExceeded(maxBytesErr.Limit, err)
	case errors.Is(err, context.DeadlineExceeded):
		return apierror.AsyncTimeout(err)
	case store.IsIntegrityError(err):
		return apierror.IntegrityViolation(err)
	case errors.Is(err, store.ErrUnknownSortField):
		return apierror.Binding(sortFieldMessage(err), err)
	case errors.Is(err, domain.ErrInvalidID):
		return apierror.InvalidID(domain.InvalidIDMessage, err)
	case errors.Is(err, domain.ErrNoContent):
		return apierror.NoContent(domain.NoContentMessage)
	default:
		return apierror.Internal(err)
	}
}

func sortFieldMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, store.ErrUnknownSortField.Error()); i >= 0 {
		msg = msg[i:]
	}
	return "Invalid sort: " + msg
}

// RequestPath returns the bare request path for error payloads, never the
// scheme, host, query or a "uri=" diagnostic prefix.
func RequestPath(r *http.Request) string {
	path := r.URL.Path
	if path == "" {
		path = r.RequestURI
		if i := strings.IndexByte(path, '?'); i >= 0 {
			path = path[:i]
		}
	}
	return strings.TrimPrefix(path, uriPrefix)
}

// NewErrorPayload builds the payload for a classified error.
func NewErrorPayload(r *http.Request, apiErr *apierror.Error) ErrorPayload {
	return ErrorPayload{
		Timestamp: now().UTC(),
		Path:      RequestPath(r),
		Status:    apiErr.Status(),
		Error:     apiErr.Label(),
		Details:   apiErr.Messages(),
	}
}

// RespondWithError classifies err, logs it and writes the error payload.
//
// Log level strategy:
//   - 5xx errors: ERROR level
//   - everything else: DEBUG level
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := NormalizeError(err)
	payload := NewErrorPayload(r, apiErr)

	logAttrs := []slog.Attr{
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("path", payload.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", payload.Status),
		slog.String("kind", apiErr.Kind.String()),
	}
	if apiErr.Err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(apiErr.Err)),
			slog.String("error_type", fmt.Sprintf("%T", apiErr.Err)))
	}

	logLevel := slog.LevelDebug
	if payload.Status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	logger.FromContext(r.Context()).LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	for key, values := range apiErr.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}

	body, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		// The payload is plain data; this only fires if the encoder is broken.
		http.Error(w, apierror.InternalMessage, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(payload.Status)
	// 204 responses carry no body on the wire; net/http drops it.
	_, _ = w.Write(append(body, '\n'))
}
