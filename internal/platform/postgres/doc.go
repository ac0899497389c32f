// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces (repositories) defined in the internal/store package.
// It handles the details of database connections, query execution, and data
// mapping between domain entities and database records.
//
// A single generic Repository serves every entity; what differs per entity is
// described by a Table (ItemsTable, CategoriesTable). Schema changes live in
// the embedded migrations directory and are applied with goose.
package postgres
