// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the internal application services, translating HTTP concerns to
// business operations.
//
// EntityHandler serves list, get, create, update and delete endpoints for any
// entity type. Every failure is written through shared.RespondWithError, so
// clients always receive the same error payload.
package api
