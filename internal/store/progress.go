package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/hellenika/hellenika-api/internal/domain"
)

// ProgressStore defines the interface for per-user word progress persistence.
type ProgressStore interface {
	// Upsert records one answer for the (user, word) pair: the row is
	// created on first answer and exactly one counter is incremented on
	// every call, with last_reviewed_at set to reviewedAt. Calls are real
	// increments - the store provides no idempotency, so callers must
	// ensure at-most-once delivery per answer event.
	Upsert(ctx context.Context, userID uuid.UUID, wordID string, isCorrect bool, reviewedAt time.Time) error

	// Get retrieves the progress row for the (user, word) pair.
	// Returns ErrProgressNotFound if no answer has been recorded yet.
	Get(ctx context.Context, userID uuid.UUID, wordID string) (*domain.WordProgress, error)

	// ListByUser retrieves all progress rows belonging to the user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WordProgress, error)

	// WithTx returns a new ProgressStore instance bound to the transaction.
	WithTx(tx *sql.Tx) ProgressStore
}
