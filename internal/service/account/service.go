// Package account implements registration and profile lookup on top of
// the user and profile stores.
package account

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hellenika/hellenika-api/internal/domain"
	"github.com/hellenika/hellenika-api/internal/store"
)

// Service creates accounts and serves profiles. Registration writes the
// user row and its profile row in one transaction so a half-registered
// account can never exist.
type Service struct {
	db           *sql.DB
	userStore    store.UserStore
	profileStore store.ProfileStore
}

// NewService creates an account service. Panics if any dependency is nil.
func NewService(db *sql.DB, userStore store.UserStore, profileStore store.ProfileStore) *Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if profileStore == nil {
		panic("profileStore cannot be nil")
	}
	return &Service{
		db:           db,
		userStore:    userStore,
		profileStore: profileStore,
	}
}

// UsernameAvailable reports whether the normalized name is free to claim.
func (s *Service) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	exists, err := s.profileStore.UsernameExists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return !exists, nil
}

// Register creates a user and their profile atomically. The username is
// normalized by the domain constructor; the database unique constraints
// back up the availability check, so a racing duplicate still surfaces
// as store.ErrUsernameExists.
func (s *Service) Register(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := domain.NewUser(username, password)
	if err != nil {
		return nil, err
	}

	profile, err := domain.NewProfile(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.userStore.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.profileStore.WithTx(tx).Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Profile returns the profile belonging to the user.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return s.profileStore.GetByUserID(ctx, userID)
}
