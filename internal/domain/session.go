package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session records one study run by a user.
//
// A session is created when the user starts an activity and updated exactly
// once at completion; there are no mid-session partial writes in the
// persisted form. CompletedAt is nil while the run is in progress. A session
// is owned exclusively by the user who started it.
type Session struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	ActivityType string     `json:"activity_type"`
	ActivityName string     `json:"activity_name"`
	GroupID      *string    `json:"group_id"`
	GroupName    *string    `json:"group_name"`
	CorrectCount int        `json:"correct_count"`
	WrongCount   int        `json:"wrong_count"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}

// NewSession creates an in-progress Session for the given user and activity.
// Group references are optional; a nil groupID means the session drew from
// the whole catalog.
func NewSession(userID uuid.UUID, activityType, activityName string, groupID, groupName *string) (*Session, error) {
	s := &Session{
		ID:           uuid.New(),
		UserID:       userID,
		ActivityType: activityType,
		ActivityName: activityName,
		GroupID:      groupID,
		GroupName:    groupName,
		StartedAt:    time.Now().UTC(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks if the Session has valid data.
func (s *Session) Validate() error {
	if s.ID == uuid.Nil {
		return fmt.Errorf("%w: session ID cannot be empty", ErrInvalidID)
	}
	if s.UserID == uuid.Nil {
		return fmt.Errorf("%w: session must belong to a user", ErrInvalidID)
	}
	if s.ActivityType == "" {
		return fmt.Errorf("%w: activity type cannot be empty", ErrEmptyContent)
	}
	if s.ActivityName == "" {
		return fmt.Errorf("%w: activity name cannot be empty", ErrEmptyContent)
	}
	if s.CorrectCount < 0 || s.WrongCount < 0 {
		return ErrNegativeCount
	}
	return nil
}

// IsCompleted reports whether the session has a completion timestamp.
func (s *Session) IsCompleted() bool {
	return s.CompletedAt != nil
}

// Duration returns the elapsed time between start and completion.
// It returns zero and false while the session is still in progress.
func (s *Session) Duration() (time.Duration, bool) {
	if s.CompletedAt == nil {
		return 0, false
	}
	return s.CompletedAt.Sub(s.StartedAt), true
}
