package store

import (
	"context"

	"github.com/hellenika/hellenika-api/internal/domain"
)

// WordStore defines the interface for vocabulary catalog persistence.
//
// The catalog is seeded by migrations; the only runtime mutation is the
// aggregate counter increment applied by the progress tracker.
type WordStore interface {
	// List retrieves the full word catalog with group memberships attached,
	// ordered by word ID.
	List(ctx context.Context) ([]*domain.Word, error)

	// GetByID retrieves a word by its identifier.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id string) (*domain.Word, error)

	// ListByGroup retrieves the words belonging to the given group,
	// ordered by word ID. An unknown group yields an empty slice; the
	// caller decides whether the group itself must exist.
	ListByGroup(ctx context.Context, groupID string) ([]*domain.Word, error)

	// IncrementCounters bumps exactly one of the word's aggregate
	// correctness counters. Returns ErrWordNotFound if the word does
	// not exist.
	IncrementCounters(ctx context.Context, id string, isCorrect bool) error
}

// GroupStore defines the interface for word group persistence.
type GroupStore interface {
	// List retrieves all word groups ordered by name.
	List(ctx context.Context) ([]*domain.WordGroup, error)

	// GetByID retrieves a group by its identifier.
	// Returns ErrGroupNotFound if the group does not exist.
	GetByID(ctx context.Context, id string) (*domain.WordGroup, error)
}
