package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/generic-crud/internal/api/apierror"
	apimiddleware "github.com/phrazzld/generic-crud/internal/api/middleware"
	"github.com/phrazzld/generic-crud/internal/api/shared"
	"github.com/phrazzld/generic-crud/internal/domain"
	"github.com/phrazzld/generic-crud/internal/platform/logger"
	"github.com/phrazzld/generic-crud/internal/service"
)

// DeletedMessage is the body of a successful delete.
const DeletedMessage = "Data deleted successfully!"

// idParam is the path parameter holding an entity key.
const idParam = "id"

// EntityHandler handles CRUD requests for one entity type.
type EntityHandler[T domain.Entity] struct {
	service     service.EntityService[T]
	logger      *slog.Logger
	maxPageSize int
}

// HandlerOption configures an EntityHandler.
type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	maxPageSize int
}

// WithMaxPageSize caps the size query parameter of paged list requests.
// Values below 1 keep DefaultMaxPageSize.
func WithMaxPageSize(n int) HandlerOption {
	return func(o *handlerOptions) {
		if n > 0 {
			o.maxPageSize = n
		}
	}
}

// NewEntityHandler creates a new EntityHandler.
func NewEntityHandler[T domain.Entity](svc service.EntityService[T], logger *slog.Logger, opts ...HandlerOption) *EntityHandler[T] {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("service cannot be nil for EntityHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for EntityHandler")
	}

	o := handlerOptions{maxPageSize: DefaultMaxPageSize}
	for _, opt := range opts {
		opt(&o)
	}

	return &EntityHandler[T]{
		service:     svc,
		logger:      logger.With(slog.String("component", "entity_handler")),
		maxPageSize: o.maxPageSize,
	}
}

// Register mounts the handler's routes on r:
//
//	GET    /      list, flat or paged
//	GET    /{id}  fetch one
//	POST   /      create (JSON body)
//	PUT    /      update (JSON body)
//	DELETE /{id}  delete
func (h *EntityHandler[T]) Register(r chi.Router) {
	r.Get("/", h.ListAll)
	r.Get("/{id}", h.GetOne)
	r.With(apimiddleware.RequireJSON).Post("/", h.Create)
	r.With(apimiddleware.RequireJSON).Put("/", h.Update)
	r.Delete("/{id}", h.Delete)
}

// ListAll handles GET / requests. With isList=true it returns every entity;
// otherwise one page of them. An empty result is reported as no content.
func (h *EntityHandler[T]) ListAll(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	params, err := parseListParams(r, h.maxPageSize)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	if params.isList {
		entities, err := h.service.FindAll(r.Context())
		if err != nil {
			shared.RespondWithError(w, r, err)
			return
		}
		if len(entities) == 0 {
			shared.RespondWithError(w, r, apierror.NoContent(domain.NoContentMessage))
			return
		}
		log.Debug("listed entities", slog.Int("count", len(entities)))
		shared.RespondWithJSON(w, r, http.StatusOK, entities)
		return
	}

	page, err := h.service.FindPage(r.Context(), params.page)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}
	if len(page.Content) == 0 {
		shared.RespondWithError(w, r, apierror.NoContent(domain.NoContentMessage))
		return
	}

	log.Debug("listed page",
		slog.Int("page", page.Page),
		slog.Int("size", page.Size),
		slog.Int64("total", page.TotalElements))
	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// GetOne handles GET /{id} requests.
func (h *EntityHandler[T]) GetOne(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, idParam)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	entity, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entity)
}

// Create handles POST / requests. Any id in the body is ignored.
func (h *EntityHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var entity T
	if err := shared.BindJSON(r, &entity); err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	saved, err := h.service.Create(r.Context(), entity)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Debug("entity created", slog.Int64("id", saved.GetID()))
	shared.RespondWithJSON(w, r, http.StatusOK, saved)
}

// Update handles PUT / requests. The body's id must name an existing entity.
func (h *EntityHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	var entity T
	if err := shared.BindJSON(r, &entity); err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	saved, err := h.service.Update(r.Context(), entity)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Debug("entity updated", slog.Int64("id", saved.GetID()))
	shared.RespondWithJSON(w, r, http.StatusOK, saved)
}

// Delete handles DELETE /{id} requests.
func (h *EntityHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, idParam)
	if err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		shared.RespondWithError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("entity deleted", slog.Int64("id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, DeletedMessage)
}
