package browse

import (
	"sort"
	"time"

	"github.com/hellenika/hellenika-api/internal/domain"
)

// SessionSortField names a sortable column of the session history view.
type SessionSortField string

// Sortable session fields.
const (
	SessionSortDate     SessionSortField = "started_at"
	SessionSortActivity SessionSortField = "activity_name"
	SessionSortCorrect  SessionSortField = "correct_count"
	SessionSortWrong    SessionSortField = "wrong_count"
	SessionSortDuration SessionSortField = "duration"
)

// SortSessions sorts the slice in place by the given field and direction,
// keeping the fetch order of sessions that compare equal. In-progress
// sessions sort as zero duration. An unknown field leaves the slice
// untouched.
func SortSessions(sessions []*domain.Session, field SessionSortField, dir Direction) {
	var less func(a, b *domain.Session) int

	switch field {
	case SessionSortDate:
		less = func(a, b *domain.Session) int { return a.StartedAt.Compare(b.StartedAt) }
	case SessionSortActivity:
		c := greekCollator()
		less = func(a, b *domain.Session) int { return c.CompareString(a.ActivityName, b.ActivityName) }
	case SessionSortCorrect:
		less = func(a, b *domain.Session) int { return a.CorrectCount - b.CorrectCount }
	case SessionSortWrong:
		less = func(a, b *domain.Session) int { return a.WrongCount - b.WrongCount }
	case SessionSortDuration:
		less = func(a, b *domain.Session) int {
			da := sessionDuration(a)
			db := sessionDuration(b)
			switch {
			case da < db:
				return -1
			case da > db:
				return 1
			default:
				return 0
			}
		}
	default:
		return
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		cmp := less(sessions[i], sessions[j])
		if dir == Descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

func sessionDuration(s *domain.Session) time.Duration {
	d, ok := s.Duration()
	if !ok {
		return 0
	}
	return d
}
