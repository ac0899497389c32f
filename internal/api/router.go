package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	apimiddleware "github.com/phrazzld/generic-crud/internal/api/middleware"
	"github.com/phrazzld/generic-crud/internal/api/shared"
)

// Resource is a group of routes mounted under Pattern, e.g. "/items".
type Resource struct {
	Pattern  string
	Register func(chi.Router)
}

// RouterOptions configures the middleware applied to every request.
type RouterOptions struct {
	// RequestTimeout bounds the work done for one request. Zero disables it.
	RequestTimeout time.Duration
	// MaxBodyBytes caps request bodies. Zero disables it.
	MaxBodyBytes int64
	// AccessLog enables chi's per-request access log.
	AccessLog bool
}

// NewRouter creates the application router: the standard middleware, the
// error-payload fallbacks for unknown routes and methods, a health check and
// each resource under /api.
func NewRouter(logger *slog.Logger, opts RouterOptions, resources ...Resource) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if opts.AccessLog {
		r.Use(chimiddleware.Logger)
	}
	r.Use(apimiddleware.Trace(logger))
	r.Use(apimiddleware.Recoverer)
	r.Use(apimiddleware.Timeout(opts.RequestTimeout))
	r.Use(apimiddleware.MaxBodyBytes(opts.MaxBodyBytes))
	r.Use(apimiddleware.AcceptJSON)

	// Fallbacks must be set before routes so mounted subrouters inherit them.
	r.NotFound(apimiddleware.NotFound)
	r.MethodNotAllowed(apimiddleware.MethodNotAllowed(r))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		for _, res := range resources {
			r.Route(res.Pattern, res.Register)
		}
	})

	return r
}
