package tracker

import (
	"context"

	"github.com/rezkam/upkeep/internal/domain"
)

// Repository defines storage operations for the task tracker.
// Implementations translate backend-specific failures into domain errors.
type Repository interface {
	// CreateTask persists a new task.
	// Returns domain.ErrTaskExists if the ID is already taken.
	CreateTask(ctx context.Context, task *domain.Task) error

	// FindTaskByID retrieves a single task by its ID.
	// Returns domain.ErrTaskNotFound if the task doesn't exist.
	FindTaskByID(ctx context.Context, id string) (*domain.Task, error)

	// UpdateTask overwrites an existing task's mutable state.
	// Returns domain.ErrTaskNotFound if the task doesn't exist.
	UpdateTask(ctx context.Context, task *domain.Task) error

	// DeleteTask removes a task permanently.
	// Returns domain.ErrTaskNotFound if the task doesn't exist; the
	// service layer treats that as a no-op.
	DeleteTask(ctx context.Context, id string) error

	// ListTasks returns all tasks in the store.
	ListTasks(ctx context.Context) ([]*domain.Task, error)
}
