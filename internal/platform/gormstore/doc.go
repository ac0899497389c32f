// Package gormstore implements the store.Repository interface on gorm with
// the MySQL driver. It is the alternative to package postgres, selected with
// database.driver = "mysql"; the schema is created with gorm's AutoMigrate.
package gormstore
