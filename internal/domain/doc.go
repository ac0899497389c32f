// Package domain contains the entities served by the API and the application
// errors their services report. Entities carry their own validation rules as
// struct tags plus an optional Validate method for rules spanning fields.
package domain
