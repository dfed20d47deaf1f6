// Package store defines the persistence contracts used by the service layer.
//
// Implementations live in internal/platform/postgres. Every store returns the
// sentinel errors declared in errors.go so that callers can classify failures
// with errors.Is without depending on a database driver.
package store
