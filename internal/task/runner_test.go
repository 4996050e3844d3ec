package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTask is a controllable Task implementation.
type testTask struct {
	id      uuid.UUID
	execute func(ctx context.Context) error
}

func newTestTask(execute func(ctx context.Context) error) *testTask {
	return &testTask{id: uuid.New(), execute: execute}
}

func (t *testTask) ID() uuid.UUID { return t.id }
func (t *testTask) Type() string  { return "test_task" }
func (t *testTask) Execute(ctx context.Context) error {
	if t.execute != nil {
		return t.execute(ctx)
	}
	return nil
}

func TestRunnerExecutesSubmittedTasks(t *testing.T) {
	t.Parallel()

	runner := NewRunner(RunnerConfig{WorkerCount: 3, QueueSize: 10}, nil)
	runner.Start()

	var mu sync.Mutex
	executed := make(map[uuid.UUID]bool)

	const n = 8
	for i := 0; i < n; i++ {
		task := newTestTask(nil)
		task.execute = func(_ context.Context) error {
			mu.Lock()
			executed[task.id] = true
			mu.Unlock()
			return nil
		}
		require.NoError(t, runner.Submit(context.Background(), task))
	}

	runner.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, executed, n, "every queued task ran before Stop returned")
}

func TestRunnerQueueFull(t *testing.T) {
	t.Parallel()

	// No workers started, so the queue never drains.
	runner := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 2}, nil)

	require.NoError(t, runner.Submit(context.Background(), newTestTask(nil)))
	require.NoError(t, runner.Submit(context.Background(), newTestTask(nil)))

	err := runner.Submit(context.Background(), newTestTask(nil))
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestRunnerSubmitAfterStop(t *testing.T) {
	t.Parallel()

	runner := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 2}, nil)
	runner.Start()
	runner.Stop()

	err := runner.Submit(context.Background(), newTestTask(nil))
	assert.ErrorIs(t, err, ErrRunnerStopped)
}

func TestRunnerErrorHandler(t *testing.T) {
	t.Parallel()

	runner := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 2}, nil)

	handled := make(chan error, 1)
	runner.SetErrorHandler(func(_ Task, err error) {
		handled <- err
	})
	runner.Start()

	boom := errors.New("boom")
	require.NoError(t, runner.Submit(context.Background(), newTestTask(func(_ context.Context) error {
		return boom
	})))

	select {
	case err := <-handled:
		assert.ErrorIs(t, err, boom)
	case <-time.After(2 * time.Second):
		t.Fatal("error handler never called")
	}

	runner.Stop()
}

type recordCall struct {
	userID    uuid.UUID
	wordID    string
	isCorrect bool
}

type fakeAnswerRecorder struct {
	mu    sync.Mutex
	calls []recordCall
	err   error
}

func (f *fakeAnswerRecorder) RecordAnswer(_ context.Context, userID uuid.UUID, wordID string, isCorrect bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordCall{userID: userID, wordID: wordID, isCorrect: isCorrect})
	return f.err
}

func TestAsyncRecorder(t *testing.T) {
	t.Parallel()

	t.Run("queued answer reaches the tracker", func(t *testing.T) {
		t.Parallel()
		runner := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 4}, nil)
		runner.Start()

		tracker := &fakeAnswerRecorder{}
		recorder := NewAsyncRecorder(runner, tracker)

		userID := uuid.New()
		require.NoError(t, recorder.RecordAnswer(context.Background(), userID, "3", true))
		runner.Stop()

		tracker.mu.Lock()
		defer tracker.mu.Unlock()
		require.Len(t, tracker.calls, 1)
		assert.Equal(t, recordCall{userID: userID, wordID: "3", isCorrect: true}, tracker.calls[0])
	})

	t.Run("rejects empty word ID", func(t *testing.T) {
		t.Parallel()
		runner := NewRunner(DefaultRunnerConfig(), nil)
		recorder := NewAsyncRecorder(runner, &fakeAnswerRecorder{})

		err := recorder.RecordAnswer(context.Background(), uuid.New(), "", true)
		assert.Error(t, err)
	})
}

func TestProgressRecordTaskValidation(t *testing.T) {
	t.Parallel()

	_, err := NewProgressRecordTask(nil, uuid.New(), "1", true)
	assert.Error(t, err)

	_, err = NewProgressRecordTask(&fakeAnswerRecorder{}, uuid.Nil, "1", true)
	assert.Error(t, err)

	task, err := NewProgressRecordTask(&fakeAnswerRecorder{}, uuid.New(), "1", true)
	require.NoError(t, err)
	assert.Equal(t, TaskTypeProgressRecord, task.Type())
	assert.NotEqual(t, uuid.Nil, task.ID())
}
