package study

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hellenika/hellenika-api/internal/browse"
	"github.com/hellenika/hellenika-api/internal/domain"
)

// quizOptionCount is the number of choices shown per multiple-choice
// prompt, the correct gloss included.
const quizOptionCount = 4

// Prompt is a single item presented to the learner. Which fields the
// client renders depends on the activity modality: flashcards show the
// Greek side first, multiple choice shows the Greek text with Options,
// and typing practice shows the English gloss.
type Prompt struct {
	Index           int      `json:"index"`
	Total           int      `json:"total"`
	WordID          string   `json:"word_id"`
	Greek           string   `json:"greek"`
	Transliteration string   `json:"transliteration"`
	English         string   `json:"english"`
	Options         []string `json:"options,omitempty"`
}

// Answer carries the learner's response to the current prompt. Exactly
// one field applies, matching the session's modality: Correct for
// flashcard self-report, OptionIndex for multiple choice, TypedText for
// typing practice.
type Answer struct {
	Correct     *bool   `json:"correct,omitempty"`
	OptionIndex *int    `json:"option_index,omitempty"`
	TypedText   *string `json:"typed_text,omitempty"`
}

// Outcome is the graded result of one answer, including the next prompt
// when the session continues.
type Outcome struct {
	Correct       bool    `json:"correct"`
	CorrectAnswer string  `json:"correct_answer"`
	CorrectCount  int     `json:"correct_count"`
	WrongCount    int     `json:"wrong_count"`
	Done          bool    `json:"done"`
	Next          *Prompt `json:"next,omitempty"`
}

// State is a read-only snapshot of a running session.
type State struct {
	SessionID    uuid.UUID `json:"session_id"`
	ActivityID   string    `json:"activity_id"`
	ActivityName string    `json:"activity_name"`
	GroupID      *string   `json:"group_id,omitempty"`
	CorrectCount int       `json:"correct_count"`
	WrongCount   int       `json:"wrong_count"`
	Done         bool      `json:"done"`
	Prompt       *Prompt   `json:"prompt,omitempty"`
}

// run is the in-memory state of one active session. A run exists from
// Start (or Restart) until its last answer is graded; the database only
// sees the opening row and the single completion write.
type run struct {
	mu sync.Mutex

	sessionID uuid.UUID
	userID    uuid.UUID
	activity  domain.StudyActivity
	groupID   *string
	groupName *string

	// words is the drawn subset in presentation order; catalog is the full
	// word list kept for multiple-choice distractor selection.
	words   []*domain.Word
	catalog []*domain.Word

	// options holds the choices shown for each position, filled in when
	// the position is first presented so grading sees the same ordering.
	options [][]string

	// rng is run-local so option drawing under r.mu never races with
	// other runs.
	rng *rand.Rand

	pos     int
	correct int
	wrong   int
	done    bool
}

// snapshot captures the run's externally visible state. Caller holds r.mu.
func (r *run) snapshot() *State {
	return &State{
		SessionID:    r.sessionID,
		ActivityID:   r.activity.ID,
		ActivityName: r.activity.Name,
		GroupID:      r.groupID,
		CorrectCount: r.correct,
		WrongCount:   r.wrong,
		Done:         r.done,
		Prompt:       r.prompt(),
	}
}

// prompt builds the Prompt for the run's current position. Multiple
// choice options are drawn once per position and memoized on the run.
// Caller holds r.mu.
func (r *run) prompt() *Prompt {
	if r.done || r.pos >= len(r.words) {
		return nil
	}

	w := r.words[r.pos]
	p := &Prompt{
		Index:           r.pos,
		Total:           len(r.words),
		WordID:          w.ID,
		Greek:           w.Greek,
		Transliteration: w.Transliteration,
		English:         w.English,
	}

	if r.activity.Modality == domain.ModalityQuiz {
		if r.options[r.pos] == nil {
			r.options[r.pos] = drawOptions(r.rng, r.catalog, w)
		}
		p.Options = r.options[r.pos]
	}
	return p
}

// grade scores an answer against the run's current word. Caller holds r.mu.
func (r *run) grade(ans Answer) (bool, error) {
	w := r.words[r.pos]

	switch r.activity.Modality {
	case domain.ModalityFlashcard:
		if ans.Correct == nil {
			return false, ErrMissingAnswer
		}
		return *ans.Correct, nil

	case domain.ModalityQuiz:
		if ans.OptionIndex == nil {
			return false, ErrMissingAnswer
		}
		opts := r.options[r.pos]
		idx := *ans.OptionIndex
		if idx < 0 || idx >= len(opts) {
			return false, ErrInvalidOption
		}
		return opts[idx] == w.English, nil

	case domain.ModalityTyping:
		if ans.TypedText == nil {
			return false, ErrMissingAnswer
		}
		typed := browse.NormalizeQuery(*ans.TypedText)
		if typed == "" {
			return false, nil
		}
		return typed == strings.ToLower(w.Greek) ||
			typed == strings.ToLower(w.Transliteration), nil

	default:
		return false, ErrMissingAnswer
	}
}

// correctAnswer is the text revealed to the learner after grading.
func (r *run) correctAnswer() string {
	w := r.words[r.pos]
	if r.activity.Modality == domain.ModalityQuiz {
		return w.English
	}
	return w.Greek
}

// drawOptions picks distractor glosses for a multiple-choice prompt:
// the correct gloss plus up to three others drawn from the full catalog,
// excluding the target word itself, shuffled together. A small catalog
// simply yields fewer options.
func drawOptions(rng *rand.Rand, catalog []*domain.Word, target *domain.Word) []string {
	pool := make([]*domain.Word, 0, len(catalog))
	for _, w := range catalog {
		if w.ID != target.ID {
			pool = append(pool, w)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	n := quizOptionCount - 1
	if n > len(pool) {
		n = len(pool)
	}

	opts := make([]string, 0, n+1)
	opts = append(opts, target.English)
	for _, w := range pool[:n] {
		opts = append(opts, w.English)
	}
	rng.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	return opts
}
