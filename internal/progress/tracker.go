// Package progress implements the progress tracker: it persists per-user
// answer outcomes, maintains the catalog's aggregate counters, and
// derives the dashboard statistics.
package progress

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hellenika/hellenika-api/internal/domain"
	"github.com/hellenika/hellenika-api/internal/domain/mastery"
	"github.com/hellenika/hellenika-api/internal/store"
)

// Stats is the aggregate view shown on the dashboard.
type Stats struct {
	TotalSessions     int `json:"total_sessions"`
	CompletedSessions int `json:"completed_sessions"`
	TotalCorrect      int `json:"total_correct"`
	TotalWrong        int `json:"total_wrong"`
	Accuracy          int `json:"accuracy"`
	WordsStudied      int `json:"words_studied"`
	WordsMastered     int `json:"words_mastered"`
}

// WordStatus pairs a progress row with its derived mastery state.
type WordStatus struct {
	WordID       string     `json:"word_id"`
	CorrectCount int        `json:"correct_count"`
	WrongCount   int        `json:"wrong_count"`
	Accuracy     int        `json:"accuracy"`
	Mastered     bool       `json:"mastered"`
	LastReviewed *time.Time `json:"last_reviewed_at,omitempty"`
}

// Tracker records answers and computes per-user statistics.
type Tracker struct {
	progressStore store.ProgressStore
	wordStore     store.WordStore
	sessionStore  store.SessionStore
	params        mastery.Params
	now           func() time.Time
}

// NewTracker creates a progress tracker using the given mastery
// parameters. Panics if any store is nil.
func NewTracker(
	progressStore store.ProgressStore,
	wordStore store.WordStore,
	sessionStore store.SessionStore,
	params mastery.Params,
) *Tracker {
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if wordStore == nil {
		panic("wordStore cannot be nil")
	}
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if err := params.Validate(); err != nil {
		panic("invalid mastery params: " + err.Error())
	}
	return &Tracker{
		progressStore: progressStore,
		wordStore:     wordStore,
		sessionStore:  sessionStore,
		params:        params,
		now:           time.Now,
	}
}

// RecordAnswer persists one graded answer: the per-user progress row is
// upserted and the word's catalog-wide counter bumped. The two writes
// are independent; a failure of the second leaves the first in place.
func (t *Tracker) RecordAnswer(ctx context.Context, userID uuid.UUID, wordID string, isCorrect bool) error {
	if err := t.progressStore.Upsert(ctx, userID, wordID, isCorrect, t.now()); err != nil {
		return err
	}
	return t.wordStore.IncrementCounters(ctx, wordID, isCorrect)
}

// ComputeStats derives the user's dashboard statistics from the session
// ledger and the per-word progress rows. Only completed sessions count
// toward the session total; accuracy covers every recorded answer.
func (t *Tracker) ComputeStats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	sessions, err := t.sessionStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, err := t.progressStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalSessions: len(sessions)}
	for _, s := range sessions {
		if s.IsCompleted() {
			stats.CompletedSessions++
			stats.TotalCorrect += s.CorrectCount
			stats.TotalWrong += s.WrongCount
		}
	}
	stats.Accuracy = mastery.Accuracy(stats.TotalCorrect, stats.TotalWrong)

	stats.WordsStudied = len(rows)
	for _, row := range rows {
		if mastery.IsMastered(row.CorrectCount, row.WrongCount, t.params) {
			stats.WordsMastered++
		}
	}
	return stats, nil
}

// ListWordStatuses returns the user's per-word progress with derived
// accuracy and mastery. Words never answered have no entry.
func (t *Tracker) ListWordStatuses(ctx context.Context, userID uuid.UUID) ([]*WordStatus, error) {
	rows, err := t.progressStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*WordStatus, len(rows))
	for i, row := range rows {
		out[i] = t.status(row)
	}
	return out, nil
}

// WordStatus returns the derived status for a single word, or
// ErrProgressNotFound if the user has never answered it.
func (t *Tracker) WordStatus(ctx context.Context, userID uuid.UUID, wordID string) (*WordStatus, error) {
	row, err := t.progressStore.Get(ctx, userID, wordID)
	if err != nil {
		return nil, err
	}
	return t.status(row), nil
}

func (t *Tracker) status(row *domain.WordProgress) *WordStatus {
	return &WordStatus{
		WordID:       row.WordID,
		CorrectCount: row.CorrectCount,
		WrongCount:   row.WrongCount,
		Accuracy:     mastery.Accuracy(row.CorrectCount, row.WrongCount),
		Mastered:     mastery.IsMastered(row.CorrectCount, row.WrongCount, t.params),
		LastReviewed: row.LastReviewedAt,
	}
}
