package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/generic-crud/internal/api/shared"
	"github.com/phrazzld/generic-crud/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequireJSON(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		contentType string
		wantStatus  int
	}{
		{name: "json", method: http.MethodPost, contentType: "application/json", wantStatus: http.StatusOK},
		{name: "json with charset", method: http.MethodPut, contentType: "application/json; charset=utf-8", wantStatus: http.StatusOK},
		{name: "json suffix", method: http.MethodPost, contentType: "application/merge-patch+json", wantStatus: http.StatusOK},
		{name: "text", method: http.MethodPost, contentType: "text/plain", wantStatus: http.StatusUnsupportedMediaType},
		{name: "missing", method: http.MethodPost, contentType: "", wantStatus: http.StatusUnsupportedMediaType},
		{name: "malformed", method: http.MethodPost, contentType: "application/", wantStatus: http.StatusUnsupportedMediaType},
		{name: "GET is not checked", method: http.MethodGet, contentType: "text/plain", wantStatus: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/api/items", strings.NewReader("{}"))
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}
			w := httptest.NewRecorder()

			RequireJSON(okHandler).ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestRequireJSONMissingContentTypeDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader("{}"))
	w := httptest.NewRecorder()

	RequireJSON(okHandler).ServeHTTP(w, req)

	var payload shared.ErrorPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, []string{
		"Unsupported content type : application/octet-stream",
		"Supported content type : application/json",
	}, payload.Details)
}

func TestAcceptJSON(t *testing.T) {
	tests := []struct {
		accept     string
		wantStatus int
	}{
		{accept: "", wantStatus: http.StatusOK},
		{accept: "application/json", wantStatus: http.StatusOK},
		{accept: "*/*", wantStatus: http.StatusOK},
		{accept: "application/*", wantStatus: http.StatusOK},
		{accept: "text/html, application/json;q=0.9", wantStatus: http.StatusOK},
		{accept: "application/problem+json", wantStatus: http.StatusOK},
		{accept: "text/html", wantStatus: http.StatusNotAcceptable},
		{accept: "application/json;q=0", wantStatus: http.StatusNotAcceptable},
		{accept: "application/xml, text/csv", wantStatus: http.StatusNotAcceptable},
	}

	for _, tc := range tests {
		t.Run(tc.accept, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
			if tc.accept != "" {
				req.Header.Set("Accept", tc.accept)
			}
			w := httptest.NewRecorder()

			AcceptJSON(okHandler).ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestTimeout(t *testing.T) {
	var deadline time.Time
	var hasDeadline bool
	h := Timeout(time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, hasDeadline = r.Context().Deadline()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestTimeoutDisabled(t *testing.T) {
	var hasDeadline bool
	h := Timeout(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, hasDeadline)
}

func TestMaxBodyBytes(t *testing.T) {
	var readErr error
	h := MaxBodyBytes(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("too long")))

	var maxErr *http.MaxBytesError
	require.ErrorAs(t, readErr, &maxErr)
	assert.Equal(t, int64(4), maxErr.Limit)
}

func TestRecoverer(t *testing.T) {
	t.Run("panic becomes error payload", func(t *testing.T) {
		h := Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("secret connection string")
		}))
		w := httptest.NewRecorder()

		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/items", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "secret")
	})

	t.Run("abort handler is re-raised", func(t *testing.T) {
		h := Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var traceID string
	var ctxLogger *slog.Logger
	h := Trace(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		ctxLogger = logger.FromContext(r.Context())
	}))
	w := httptest.NewRecorder()

	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/items", nil))

	require.NotEmpty(t, traceID)
	assert.Equal(t, traceID, w.Header().Get(TraceHeader))

	buf.Reset()
	ctxLogger.Info("inside handler")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, traceID, entry["trace_id"])
}

func TestFallbacks(t *testing.T) {
	r := chi.NewRouter()
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed(r))
	r.Route("/items", func(r chi.Router) {
		r.Get("/", okHandler)
		r.Post("/", okHandler)
		r.Get("/{id}", okHandler)
		r.Delete("/{id}", okHandler)
	})

	t.Run("allowed methods", func(t *testing.T) {
		assert.Equal(t, []string{http.MethodGet, http.MethodPost}, AllowedMethods(r, "/items"))
		assert.Equal(t, []string{http.MethodGet, http.MethodDelete}, AllowedMethods(r, "/items/1"))
		assert.Empty(t, AllowedMethods(r, "/nothing"))
	})

	t.Run("method not allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/items/1", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "GET, DELETE", w.Header().Get("Allow"))
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		var payload shared.ErrorPayload
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		assert.Equal(t, []string{"No endpoint GET /missing."}, payload.Details)
	})

	t.Run("missing static resource", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		var payload shared.ErrorPayload
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		assert.Equal(t, "404 NOT_FOUND", payload.Error)
		assert.Equal(t, []string{"No static resource favicon.ico."}, payload.Details)
	})

	t.Run("post to a file path has no endpoint", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload.txt", nil))

		var payload shared.ErrorPayload
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		assert.Equal(t, []string{"No endpoint POST /upload.txt."}, payload.Details)
	})
}

func TestTraceKeepsExistingContextLogger(t *testing.T) {
	var buf bytes.Buffer
	outer := slog.New(slog.NewJSONHandler(&buf, nil)).With(slog.String("origin", "outer"))
	base := slog.New(slog.NewJSONHandler(io.Discard, nil))

	h := Trace(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("hello")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logger.WithLogger(context.Background(), outer))

	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"origin":"outer"`)
}
