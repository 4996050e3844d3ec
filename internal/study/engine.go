// Package study implements the activity engine: it draws a word subset,
// walks the learner through it prompt by prompt, grades answers per
// modality, and records the results.
package study

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hellenika/hellenika-api/internal/catalog"
	"github.com/hellenika/hellenika-api/internal/domain"
	"github.com/hellenika/hellenika-api/internal/platform/logger"
	"github.com/hellenika/hellenika-api/internal/store"
)

// DefaultSessionSize is the number of words drawn per session when the
// configured size is absent.
const DefaultSessionSize = 10

// ProgressRecorder receives the per-word outcome of each graded answer.
// Recording is best-effort from the engine's point of view: a failure is
// logged and the session continues.
type ProgressRecorder interface {
	RecordAnswer(ctx context.Context, userID uuid.UUID, wordID string, isCorrect bool) error
}

// Engine runs study sessions. Session state between the opening ledger
// write and the completion write lives in memory only; a process restart
// abandons in-flight runs, leaving their ledger rows without a
// completion stamp.
type Engine struct {
	wordStore    store.WordStore
	groupStore   store.GroupStore
	sessionStore store.SessionStore
	recorder     ProgressRecorder
	sessionSize  int

	mu   sync.Mutex
	runs map[uuid.UUID]*run

	// rngMu guards rng, which only seeds the per-run generators.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewEngine creates a study engine. A nil rng gets a time-seeded one;
// tests inject a fixed seed for reproducible draws. Panics if any store
// or the recorder is nil.
func NewEngine(
	wordStore store.WordStore,
	groupStore store.GroupStore,
	sessionStore store.SessionStore,
	recorder ProgressRecorder,
	sessionSize int,
	rng *rand.Rand,
) *Engine {
	if wordStore == nil {
		panic("wordStore cannot be nil")
	}
	if groupStore == nil {
		panic("groupStore cannot be nil")
	}
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if recorder == nil {
		panic("recorder cannot be nil")
	}
	if sessionSize <= 0 {
		sessionSize = DefaultSessionSize
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		wordStore:    wordStore,
		groupStore:   groupStore,
		sessionStore: sessionStore,
		recorder:     recorder,
		sessionSize:  sessionSize,
		runs:         make(map[uuid.UUID]*run),
		rng:          rng,
	}
}

// Start opens a new session for the user: it resolves the activity and
// optional group, draws a shuffled subset of the word pool, writes the
// opening ledger row, and returns the state with the first prompt.
func (e *Engine) Start(ctx context.Context, userID uuid.UUID, activityID string, groupID *string) (*State, error) {
	activity, ok := catalog.ActivityByID(activityID)
	if !ok {
		return nil, ErrActivityNotFound
	}

	fullCatalog, err := e.wordStore.List(ctx)
	if err != nil {
		return nil, err
	}

	pool := fullCatalog
	var groupName *string
	if groupID != nil {
		group, err := e.groupStore.GetByID(ctx, *groupID)
		if err != nil {
			return nil, err
		}
		groupName = &group.Name
		pool, err = e.wordStore.ListByGroup(ctx, *groupID)
		if err != nil {
			return nil, err
		}
	}
	if len(pool) == 0 {
		return nil, ErrNoWords
	}

	rng := e.newRunRand()
	words := drawSubset(rng, pool, e.sessionSize)

	session, err := domain.NewSession(userID, activity.ID, activity.Name, groupID, groupName)
	if err != nil {
		return nil, err
	}
	if err := e.sessionStore.Create(ctx, session); err != nil {
		return nil, err
	}

	r := &run{
		sessionID: session.ID,
		userID:    userID,
		activity:  activity,
		groupID:   groupID,
		groupName: groupName,
		words:     words,
		catalog:   fullCatalog,
		options:   make([][]string, len(words)),
		rng:       rng,
	}

	e.mu.Lock()
	e.runs[session.ID] = r
	e.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(), nil
}

// Get returns the current state of an active session, including the
// pending prompt. Completed or unknown sessions yield ErrSessionNotFound.
func (e *Engine) Get(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) (*State, error) {
	r, err := e.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(), nil
}

// SubmitAnswer grades the learner's response to the current prompt,
// updates the tallies, forwards the outcome to the progress recorder,
// and advances the session. Answering the last prompt completes the
// session: the ledger row is stamped and the run is discarded.
func (e *Engine) SubmitAnswer(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, ans Answer) (*Outcome, error) {
	r, err := e.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return nil, ErrSessionNotActive
	}

	// The answer may arrive before the client ever fetched the prompt;
	// build it so multiple choice has its options drawn.
	r.prompt()

	correct, err := r.grade(ans)
	if err != nil {
		return nil, err
	}

	if correct {
		r.correct++
	} else {
		r.wrong++
	}

	word := r.words[r.pos]
	if recErr := e.recorder.RecordAnswer(ctx, userID, word.ID, correct); recErr != nil {
		log := logger.FromContext(ctx)
		log.Warn("failed to record answer progress",
			slog.String("session_id", sessionID.String()),
			slog.String("word_id", word.ID),
			slog.String("error", recErr.Error()))
	}

	outcome := &Outcome{
		Correct:       correct,
		CorrectAnswer: r.correctAnswer(),
	}

	r.pos++
	if r.pos >= len(r.words) {
		r.done = true
		if err := e.sessionStore.Complete(ctx, r.sessionID, r.correct, r.wrong); err != nil {
			return nil, err
		}
		e.mu.Lock()
		delete(e.runs, r.sessionID)
		e.mu.Unlock()
	}

	outcome.CorrectCount = r.correct
	outcome.WrongCount = r.wrong
	outcome.Done = r.done
	outcome.Next = r.prompt()
	return outcome, nil
}

// Restart opens a fresh session over the same drawn words: the subset is
// reshuffled rather than redrawn, tallies reset to zero, and a new
// ledger row is written. The old run is discarded; if it never finished
// its ledger row stays open.
func (e *Engine) Restart(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) (*State, error) {
	old, err := e.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}

	old.mu.Lock()
	words := make([]*domain.Word, len(old.words))
	copy(words, old.words)
	activity := old.activity
	groupID := old.groupID
	groupName := old.groupName
	fullCatalog := old.catalog
	old.mu.Unlock()

	rng := e.newRunRand()
	rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})

	session, err := domain.NewSession(userID, activity.ID, activity.Name, groupID, groupName)
	if err != nil {
		return nil, err
	}
	if err := e.sessionStore.Create(ctx, session); err != nil {
		return nil, err
	}

	r := &run{
		sessionID: session.ID,
		userID:    userID,
		activity:  activity,
		groupID:   groupID,
		groupName: groupName,
		words:     words,
		catalog:   fullCatalog,
		options:   make([][]string, len(words)),
		rng:       rng,
	}

	e.mu.Lock()
	delete(e.runs, sessionID)
	e.runs[session.ID] = r
	e.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(), nil
}

// lookup finds an active run and checks ownership. A run belonging to a
// different user reports not-found rather than revealing it exists.
func (e *Engine) lookup(userID uuid.UUID, sessionID uuid.UUID) (*run, error) {
	e.mu.Lock()
	r, ok := e.runs[sessionID]
	e.mu.Unlock()
	if !ok || r.userID != userID {
		return nil, store.ErrSessionNotFound
	}
	return r, nil
}

// newRunRand derives an independent generator for one run from the
// engine's seed source.
func (e *Engine) newRunRand() *rand.Rand {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return rand.New(rand.NewSource(e.rng.Int63()))
}

// drawSubset shuffles a copy of the pool and takes at most size words.
func drawSubset(rng *rand.Rand, pool []*domain.Word, size int) []*domain.Word {
	shuffled := make([]*domain.Word, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if size > len(shuffled) {
		size = len(shuffled)
	}
	return shuffled[:size]
}
