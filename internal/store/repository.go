package store

import (
	"context"

	"github.com/phrazzld/generic-crud/internal/domain"
)

// Repository defines the data access operations every entity type supports.
// It is the only capability the generic service needs from an instantiation.
type Repository[T domain.Entity] interface {
	// FindByID retrieves the entity with the given key.
	// Returns ErrNotFound if no such entity exists.
	FindByID(ctx context.Context, id int64) (T, error)

	// FindAll retrieves every entity, ordered by key. An empty store yields an
	// empty slice and no error.
	FindAll(ctx context.Context) ([]T, error)

	// FindPage retrieves one page of entities. The request's page index is
	// zero-based. Returns ErrUnknownSortField if the sort field does not map
	// to a sortable column.
	FindPage(ctx context.Context, req PageRequest) (Page[T], error)

	// Save inserts the entity when its key is zero and otherwise inserts or
	// replaces the record with that key. The returned entity carries the
	// stored key and timestamps.
	// Returns ErrIntegrityViolation if a constraint rejects the write.
	Save(ctx context.Context, entity T) (T, error)

	// Delete removes the entity.
	// Returns ErrNotFound if the entity no longer exists and
	// ErrIntegrityViolation if other records still reference it.
	Delete(ctx context.Context, entity T) error
}
