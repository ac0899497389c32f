// Package testdb opens real databases for integration tests. Tests call
// Postgres or MySQL and are skipped unless the matching environment variable
// names a disposable database. The schema is migrated on open and every table
// is emptied when the test ends.
package testdb
