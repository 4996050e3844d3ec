// Package task provides in-process background task execution for work
// that must not block a request, such as recording answer progress.
package task

import (
	"context"

	"github.com/google/uuid"
)

// Task type identifiers.
const (
	// TaskTypeProgressRecord records one graded answer against the
	// progress tracker.
	TaskTypeProgressRecord = "progress_record"
)

// Task represents a unit of background work to be processed.
type Task interface {
	// ID returns the task's unique identifier.
	ID() uuid.UUID

	// Type returns the task type identifier.
	Type() string

	// Execute runs the task logic.
	Execute(ctx context.Context) error
}
