// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config file and CRUD_-prefixed environment
// variables. It provides type-safe access to application settings.
package config
