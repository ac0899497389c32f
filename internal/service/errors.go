package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/generic-crud/internal/domain"
	"github.com/phrazzld/generic-crud/internal/store"
)

// EntityServiceError wraps errors from the entity service with context.
type EntityServiceError struct {
	// Entity names the entity type, e.g. "item".
	Entity string
	// Operation is the operation that failed (e.g., "find_by_id", "delete")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for EntityServiceError.
func (e *EntityServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Entity, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Entity, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *EntityServiceError) Unwrap() error {
	return e.Err
}

// NewEntityServiceError creates a new EntityServiceError. A store.ErrNotFound
// cause is recorded together with domain.ErrInvalidID, since to callers an
// unknown key is an invalid one.
func NewEntityServiceError(entity, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if store.IsNotFoundError(err) && !errors.Is(err, domain.ErrInvalidID) {
		err = fmt.Errorf("%w: %w", domain.ErrInvalidID, err)
	}

	return &EntityServiceError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
