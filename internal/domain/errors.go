package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrInvalidID is returned when an ID does not identify an existing entity.
	ErrInvalidID = errors.New("invalid ID")

	// ErrNoContent is returned when a listing produced no entities.
	ErrNoContent = errors.New("no content")
)

// Messages surfaced to clients for the application errors above.
const (
	InvalidIDMessage = "Invalid Id!"
	NoContentMessage = "No content found!"
)
