package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/hellenika/hellenika-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// It handles domain validation and password hashing internally.
	// Returns ErrUsernameExists if the username is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains all fields except the plaintext password.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by their normalized display name.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains all fields except the plaintext password.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}

// ProfileStore defines the interface for profile persistence.
type ProfileStore interface {
	// Create saves a new profile row for a registered user.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, profile *domain.Profile) error

	// GetByUserID retrieves the profile belonging to the given user.
	// Returns ErrProfileNotFound if no profile exists.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// UsernameExists reports whether a profile with the given normalized
	// username is already present.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// WithTx returns a new ProfileStore instance bound to the transaction.
	WithTx(tx *sql.Tx) ProfileStore
}
