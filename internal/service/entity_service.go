package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/generic-crud/internal/domain"
	"github.com/phrazzld/generic-crud/internal/store"
)

// EntityService provides the CRUD use cases for one entity type.
type EntityService[T domain.Entity] interface {
	// FindAll returns every entity. An empty result is not an error.
	FindAll(ctx context.Context) ([]T, error)

	// FindPage returns one page of entities. The request's page is zero-based.
	FindPage(ctx context.Context, req store.PageRequest) (store.Page[T], error)

	// FindByID returns the entity with the given key, or an error matching
	// domain.ErrInvalidID if there is none.
	FindByID(ctx context.Context, id int64) (T, error)

	// Save stores the entity as given, inserting or replacing by key.
	Save(ctx context.Context, entity T) (T, error)

	// Create inserts the entity under a newly assigned key.
	Create(ctx context.Context, entity T) (T, error)

	// Update replaces an existing entity. The entity's key must exist.
	Update(ctx context.Context, entity T) (T, error)

	// Delete removes the entity with the given key. The key must exist.
	Delete(ctx context.Context, id int64) error
}

// entityServiceImpl implements EntityService on top of a store.Repository.
type entityServiceImpl[T domain.Entity] struct {
	name   string
	repo   store.Repository[T]
	logger *slog.Logger
}

// NewEntityService creates an EntityService for the entity called name.
// It returns an error if repo is nil.
func NewEntityService[T domain.Entity](
	name string,
	repo store.Repository[T],
	logger *slog.Logger,
) (EntityService[T], error) {
	if repo == nil {
		return nil, &EntityServiceError{
			Entity:    name,
			Operation: "create_service",
			Message:   "repo cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &entityServiceImpl[T]{
		name:   name,
		repo:   repo,
		logger: logger.With(slog.String("component", name+"_service")),
	}, nil
}

func (s *entityServiceImpl[T]) FindAll(ctx context.Context) ([]T, error) {
	entities, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list entities", slog.String("error", err.Error()))
		return nil, NewEntityServiceError(s.name, "find_all", "failed to list entities", err)
	}
	return entities, nil
}

func (s *entityServiceImpl[T]) FindPage(ctx context.Context, req store.PageRequest) (store.Page[T], error) {
	page, err := s.repo.FindPage(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch page",
			slog.String("error", err.Error()),
			slog.Int("page", req.Page),
			slog.Int("size", req.Size),
			slog.String("sort", req.Sort.Field))
		return store.Page[T]{}, NewEntityServiceError(s.name, "find_page", "failed to fetch page", err)
	}
	return page, nil
}

func (s *entityServiceImpl[T]) FindByID(ctx context.Context, id int64) (T, error) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		var zero T
		if store.IsNotFoundError(err) {
			s.logger.DebugContext(ctx, "entity not found", slog.Int64("id", id))
		} else {
			s.logger.ErrorContext(ctx, "failed to fetch entity",
				slog.String("error", err.Error()),
				slog.Int64("id", id))
		}
		return zero, NewEntityServiceError(s.name, "find_by_id", "failed to fetch entity", err)
	}
	return entity, nil
}

func (s *entityServiceImpl[T]) Save(ctx context.Context, entity T) (T, error) {
	saved, err := s.repo.Save(ctx, entity)
	if err != nil {
		var zero T
		s.logger.ErrorContext(ctx, "failed to save entity",
			slog.String("error", err.Error()),
			slog.Int64("id", entity.GetID()))
		return zero, NewEntityServiceError(s.name, "save", "failed to save entity", err)
	}
	return saved, nil
}

func (s *entityServiceImpl[T]) Create(ctx context.Context, entity T) (T, error) {
	entity.SetID(0)
	return s.Save(ctx, entity)
}

func (s *entityServiceImpl[T]) Update(ctx context.Context, entity T) (T, error) {
	if _, err := s.FindByID(ctx, entity.GetID()); err != nil {
		var zero T
		return zero, err
	}
	return s.Save(ctx, entity)
}

func (s *entityServiceImpl[T]) Delete(ctx context.Context, id int64) error {
	entity, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, entity); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete entity",
			slog.String("error", err.Error()),
			slog.Int64("id", id))
		return NewEntityServiceError(s.name, "delete", "failed to delete entity", err)
	}

	s.logger.DebugContext(ctx, "entity deleted", slog.Int64("id", id))
	return nil
}
