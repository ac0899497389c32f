// Package service contains the application layer between the HTTP handlers
// and the repositories in internal/store.
//
// EntityService is generic over the entity type: one implementation serves
// every entity. It adds the rules the repositories do not know about:
//
//   - a lookup by an unknown key fails with domain.ErrInvalidID, which the API
//     layer reports as 400 "Invalid Id!"
//   - Create always inserts, discarding any client-supplied key
//   - Update and Delete require the key to exist first
//
// Repository errors that are not lookups pass through wrapped, so callers can
// still match store sentinels such as store.ErrIntegrityViolation.
package service
