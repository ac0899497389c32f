// Package apierror classifies request failures into a fixed set of kinds.
// Each kind maps to one HTTP status, one way of labelling that status, and a
// rule for building the client-facing detail lines. Handlers and middleware
// return *Error values; the response layer renders them as error payloads.
package apierror
