package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrIntegrityViolation is returned when a write or delete is rejected by
	// a database constraint (unique, foreign key, check or not null).
	ErrIntegrityViolation = errors.New("integrity constraint violation")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity. It always accompanies ErrIntegrityViolation.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when the database rejects an entity's data,
	// for example a dangling foreign key. It always accompanies
	// ErrIntegrityViolation.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUnknownSortField is returned when a page is requested with a sort
	// field that has no corresponding column.
	ErrUnknownSortField = errors.New("unknown sort field")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsIntegrityError checks if the error stems from a constraint violation.
func IsIntegrityError(err error) bool {
	return errors.Is(err, ErrIntegrityViolation)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "items", "categories")
	Operation string // The operation that failed (e.g., "save", "delete")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
