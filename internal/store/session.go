package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/hellenika/hellenika-api/internal/domain"
)

// SessionStore defines the interface for study session persistence.
//
// A session row is created when a run starts and written again exactly once
// at completion; there are no mid-session partial writes.
type SessionStore interface {
	// Create saves a new in-progress session.
	// Returns validation errors from the domain Session if data is invalid.
	Create(ctx context.Context, session *domain.Session) error

	// GetByID retrieves a session by its unique ID.
	// Returns ErrSessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)

	// Complete stamps the session's completion time and stores the final
	// tallies. Last write wins; prior tallies are not consulted.
	// Returns ErrSessionNotFound if the session does not exist.
	Complete(ctx context.Context, id uuid.UUID, correct, wrong int) error

	// ListByUser retrieves all sessions belonging to the user, ordered by
	// start time descending. Consumers re-sort and paginate the slice.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error)

	// WithTx returns a new SessionStore instance bound to the transaction.
	WithTx(tx *sql.Tx) SessionStore
}
