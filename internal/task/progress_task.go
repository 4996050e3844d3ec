package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// AnswerRecorder is the part of the progress tracker the task needs.
type AnswerRecorder interface {
	RecordAnswer(ctx context.Context, userID uuid.UUID, wordID string, isCorrect bool) error
}

// ProgressRecordTask writes one graded answer to the progress tracker in
// the background so grading latency never includes the database writes.
type ProgressRecordTask struct {
	id        uuid.UUID
	recorder  AnswerRecorder
	userID    uuid.UUID
	wordID    string
	isCorrect bool
}

// NewProgressRecordTask creates a task recording a single answer.
func NewProgressRecordTask(recorder AnswerRecorder, userID uuid.UUID, wordID string, isCorrect bool) (*ProgressRecordTask, error) {
	if recorder == nil {
		return nil, errors.New("recorder cannot be nil")
	}
	if userID == uuid.Nil {
		return nil, errors.New("userID cannot be nil")
	}
	if wordID == "" {
		return nil, errors.New("wordID cannot be empty")
	}
	return &ProgressRecordTask{
		id:        uuid.New(),
		recorder:  recorder,
		userID:    userID,
		wordID:    wordID,
		isCorrect: isCorrect,
	}, nil
}

// ID returns the task's unique identifier.
func (t *ProgressRecordTask) ID() uuid.UUID { return t.id }

// Type returns the task type identifier.
func (t *ProgressRecordTask) Type() string { return TaskTypeProgressRecord }

// Execute records the answer.
func (t *ProgressRecordTask) Execute(ctx context.Context) error {
	if err := t.recorder.RecordAnswer(ctx, t.userID, t.wordID, t.isCorrect); err != nil {
		return fmt.Errorf("failed to record answer for word %s: %w", t.wordID, err)
	}
	return nil
}

// AsyncRecorder adapts the runner to the engine's recorder interface:
// each answer becomes a queued ProgressRecordTask.
type AsyncRecorder struct {
	runner  *Runner
	tracker AnswerRecorder
}

// NewAsyncRecorder creates a recorder that queues answer writes on the
// runner. Panics if either dependency is nil.
func NewAsyncRecorder(runner *Runner, tracker AnswerRecorder) *AsyncRecorder {
	if runner == nil {
		panic("runner cannot be nil")
	}
	if tracker == nil {
		panic("tracker cannot be nil")
	}
	return &AsyncRecorder{runner: runner, tracker: tracker}
}

// RecordAnswer queues the write. The returned error only reports queue
// admission; execution happens later on a worker.
func (a *AsyncRecorder) RecordAnswer(ctx context.Context, userID uuid.UUID, wordID string, isCorrect bool) error {
	t, err := NewProgressRecordTask(a.tracker, userID, wordID, isCorrect)
	if err != nil {
		return err
	}
	return a.runner.Submit(ctx, t)
}
