package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors
	// (e.g., ErrUserNotFound, ErrWordNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same username).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpdateFailed is returned when an update operation fails, for example
	// because the entity does not exist or the update violates constraints.
	ErrUpdateFailed = errors.New("update failed")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrProfileNotFound indicates that the requested profile does not exist in the store.
	ErrProfileNotFound = fmt.Errorf("%w: profile", ErrNotFound)

	// ErrWordNotFound indicates that the requested word does not exist in the store.
	ErrWordNotFound = fmt.Errorf("%w: word", ErrNotFound)

	// ErrGroupNotFound indicates that the requested word group does not exist in the store.
	ErrGroupNotFound = fmt.Errorf("%w: word group", ErrNotFound)

	// ErrSessionNotFound indicates that the requested study session does not exist in the store.
	ErrSessionNotFound = fmt.Errorf("%w: session", ErrNotFound)

	// ErrProgressNotFound indicates that the requested word progress row does not exist.
	ErrProgressNotFound = fmt.Errorf("%w: word progress", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrUsernameExists indicates that a user with the given username already
	// exists. This is returned when registering a display name that's taken.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
// This includes the generic ErrNotFound and all entity-specific not found errors.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
// This includes the generic ErrDuplicate and all entity-specific duplicate errors.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
