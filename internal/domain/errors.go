package domain

import "errors"

// Domain errors returned by the task aggregate, the scheduling engine,
// and repository implementations.

var (
	// ErrTaskNotFound indicates the requested task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskExists indicates a task with the same ID already exists.
	ErrTaskExists = errors.New("task already exists")

	// ErrNameRequired indicates the task name is empty.
	ErrNameRequired = errors.New("task name is required")

	// ErrNameTooLong indicates the task name exceeds the maximum length.
	ErrNameTooLong = errors.New("task name must be 255 characters or less")

	// ErrInvalidFrequency indicates a non-positive recurrence interval.
	ErrInvalidFrequency = errors.New("frequency must be a positive number of days")

	// ErrInvalidDate indicates a malformed calendar date.
	ErrInvalidDate = errors.New("invalid calendar date")

	// ErrOneTimeSkip indicates a skip was attempted on a one-time task.
	ErrOneTimeSkip = errors.New("one-time tasks cannot be skipped")

	// ErrUnschedulable indicates the task has no computable due date to
	// advance from (no completion recorded).
	ErrUnschedulable = errors.New("task has no due date to advance")
)
