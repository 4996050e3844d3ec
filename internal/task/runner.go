package task

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrQueueFull indicates the in-memory queue has no room for another
// task. Callers decide whether that is fatal; progress recording treats
// it as a dropped write.
var ErrQueueFull = errors.New("task queue is full")

// RunnerConfig holds configuration for the task runner.
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks.
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue.
	QueueSize int
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// Runner manages background task processing. Tasks live only in memory:
// a queued task lost to a crash is gone, which is acceptable for the
// best-effort work this runner carries.
type Runner struct {
	taskChan   chan Task
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger
	errHandler func(task Task, err error)

	// closeMu serializes Submit against Stop so a task is never sent on
	// the closed channel.
	closeMu sync.RWMutex
	closed  bool
}

// ErrRunnerStopped indicates a task was submitted after Stop.
var ErrRunnerStopped = errors.New("task runner is stopped")

// NewRunner creates a new Runner. Zero or negative config values fall
// back to the defaults.
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	defaults := DefaultRunnerConfig()
	if config.WorkerCount <= 0 {
		config.WorkerCount = defaults.WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		taskChan:   make(chan Task, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With(slog.String("component", "task_runner")),
		errHandler: func(task Task, err error) {
			logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler allows setting a custom error handler function.
func (r *Runner) SetErrorHandler(handler func(task Task, err error)) {
	r.errHandler = handler
}

// Submit adds a new task to the queue. Returns ErrQueueFull rather than
// blocking when the queue has no room.
func (r *Runner) Submit(_ context.Context, task Task) error {
	r.closeMu.RLock()
	defer r.closeMu.RUnlock()
	if r.closed {
		return ErrRunnerStopped
	}

	select {
	case r.taskChan <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start launches the worker pool.
func (r *Runner) Start() {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
}

// Stop drains the queue and shuts the workers down: submission stops
// immediately, already-queued tasks still run.
func (r *Runner) Stop() {
	r.closeMu.Lock()
	if !r.closed {
		r.closed = true
		close(r.taskChan)
	}
	r.closeMu.Unlock()

	r.wg.Wait()
	r.cancelFunc()
}

// worker processes tasks from the queue until it is closed and drained.
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for task := range r.taskChan {
		r.processTask(task, id)
	}

	r.logger.Debug("task channel closed, stopping worker", "worker_id", id)
}

// processTask handles execution of a single task.
func (r *Runner) processTask(task Task, workerID int) {
	logger := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
		"worker_id", workerID,
	)

	logger.Debug("processing task")

	if err := task.Execute(r.ctx); err != nil {
		logger.Error("task execution failed", "error", err)
		r.errHandler(task, err)
		return
	}

	logger.Debug("task completed")
}
