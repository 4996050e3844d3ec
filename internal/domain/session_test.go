package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenika/hellenika-api/internal/domain"
)

func TestNewSession(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	groupID := "philosophy"
	groupName := "Philosophy Terms"

	s, err := domain.NewSession(userID, "flashcard", "Flashcards", &groupID, &groupName)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, userID, s.UserID)
	assert.Equal(t, "flashcard", s.ActivityType)
	assert.Equal(t, "Flashcards", s.ActivityName)
	require.NotNil(t, s.GroupID)
	assert.Equal(t, groupID, *s.GroupID)
	assert.Zero(t, s.CorrectCount)
	assert.Zero(t, s.WrongCount)
	assert.Nil(t, s.CompletedAt)
	assert.False(t, s.IsCompleted())
	assert.False(t, s.StartedAt.IsZero())
}

func TestNewSessionWithoutGroup(t *testing.T) {
	t.Parallel()

	s, err := domain.NewSession(uuid.New(), "quiz", "Multiple Choice", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, s.GroupID)
	assert.Nil(t, s.GroupName)
}

func TestNewSessionRequiresUser(t *testing.T) {
	t.Parallel()

	_, err := domain.NewSession(uuid.Nil, "quiz", "Multiple Choice", nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestSessionValidate(t *testing.T) {
	t.Parallel()

	base := func() *domain.Session {
		return &domain.Session{
			ID:           uuid.New(),
			UserID:       uuid.New(),
			ActivityType: "typing",
			ActivityName: "Typing Practice",
			StartedAt:    time.Now().UTC(),
		}
	}

	t.Run("valid session", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, base().Validate())
	})

	t.Run("missing activity type", func(t *testing.T) {
		t.Parallel()
		s := base()
		s.ActivityType = ""
		assert.ErrorIs(t, s.Validate(), domain.ErrEmptyContent)
	})

	t.Run("negative tally", func(t *testing.T) {
		t.Parallel()
		s := base()
		s.CorrectCount = -1
		assert.ErrorIs(t, s.Validate(), domain.ErrNegativeCount)
	})
}

func TestSessionDuration(t *testing.T) {
	t.Parallel()

	s, err := domain.NewSession(uuid.New(), "flashcard", "Flashcards", nil, nil)
	require.NoError(t, err)

	_, ok := s.Duration()
	assert.False(t, ok, "in-progress session has no duration")

	done := s.StartedAt.Add(25 * time.Minute)
	s.CompletedAt = &done
	d, ok := s.Duration()
	require.True(t, ok)
	assert.Equal(t, 25*time.Minute, d)
}
