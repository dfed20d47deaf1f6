package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// Entity-specific variants below wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a professional with the same username).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or references a row that does not exist.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpdateFailed is returned when a conditional update matched no rows
	// even though the target exists.
	ErrUpdateFailed = errors.New("update failed")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	ErrProfessionalNotFound   = fmt.Errorf("%w: professional", ErrNotFound)
	ErrCompanyNotFound        = fmt.Errorf("%w: company", ErrNotFound)
	ErrJobAdNotFound          = fmt.Errorf("%w: job ad", ErrNotFound)
	ErrJobApplicationNotFound = fmt.Errorf("%w: job application", ErrNotFound)
	ErrMatchNotFound          = fmt.Errorf("%w: match", ErrNotFound)
	ErrCategoryNotFound       = fmt.Errorf("%w: category", ErrNotFound)
	ErrSkillNotFound          = fmt.Errorf("%w: skill", ErrNotFound)
	ErrCityNotFound           = fmt.Errorf("%w: city", ErrNotFound)
	ErrRequirementNotFound    = fmt.Errorf("%w: requirement", ErrNotFound)
	ErrLinkNotFound           = fmt.Errorf("%w: link", ErrNotFound)

	// Entity-specific "duplicate" errors

	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)
	ErrEmailExists    = fmt.Errorf("%w: email", ErrDuplicate)
	ErrPhoneExists    = fmt.Errorf("%w: phone number", ErrDuplicate)
	ErrNameExists     = fmt.Errorf("%w: name", ErrDuplicate)
	ErrLinkExists     = fmt.Errorf("%w: link", ErrDuplicate)

	// ErrStatusChanged is returned by compare-and-set status updates when the
	// row exists but no longer holds the expected status.
	ErrStatusChanged = fmt.Errorf("%w: status changed concurrently", ErrUpdateFailed)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "match", "job ad")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
