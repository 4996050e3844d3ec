package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WordProgress tracks one user's cumulative record for one word.
//
// A row is created lazily on the first answer for the (user, word) pair and
// updated in place thereafter; there is exactly one row per pair. Each
// recorded answer is a real increment - replaying an answer event
// double-counts, so callers must ensure at-most-once delivery.
type WordProgress struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	WordID         string     `json:"word_id"`
	CorrectCount   int        `json:"correct_count"`
	WrongCount     int        `json:"wrong_count"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
}

// NewWordProgress creates the first progress row for a (user, word) pair,
// seeded from a single answer outcome.
func NewWordProgress(userID uuid.UUID, wordID string, isCorrect bool, now time.Time) (*WordProgress, error) {
	p := &WordProgress{
		ID:             uuid.New(),
		UserID:         userID,
		WordID:         wordID,
		LastReviewedAt: &now,
	}
	if isCorrect {
		p.CorrectCount = 1
	} else {
		p.WrongCount = 1
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks if the WordProgress has valid data.
func (p *WordProgress) Validate() error {
	if p.ID == uuid.Nil {
		return fmt.Errorf("%w: progress ID cannot be empty", ErrInvalidID)
	}
	if p.UserID == uuid.Nil {
		return fmt.Errorf("%w: progress must belong to a user", ErrInvalidID)
	}
	if p.WordID == "" {
		return fmt.Errorf("%w: progress must reference a word", ErrInvalidID)
	}
	if p.CorrectCount < 0 || p.WrongCount < 0 {
		return ErrNegativeCount
	}
	return nil
}
