package domain

import "fmt"

// Recurrence describes how a task repeats. It is an explicit two-variant
// value: either a fixed interval in days, or one-time. One-time
// exhaustion is derived from the task's completion history, never stored
// here, so undo can restore a completed one-time task without any state
// repair.
type Recurrence struct {
	// OneTime marks a task with at most one occurrence.
	OneTime bool

	// IntervalDays is the number of days between occurrences.
	// Always >= 1 for recurring tasks; 0 for one-time tasks.
	IntervalDays int
}

// NewIntervalRecurrence creates a fixed-interval recurrence, validating
// that the interval is at least one day.
func NewIntervalRecurrence(days int) (Recurrence, error) {
	if days < 1 {
		return Recurrence{}, fmt.Errorf("%w: got %d", ErrInvalidFrequency, days)
	}
	return Recurrence{IntervalDays: days}, nil
}

// OneTimeRecurrence creates a one-time recurrence.
func OneTimeRecurrence() Recurrence {
	return Recurrence{OneTime: true}
}

// CycleDays returns the length of one scheduling cycle in days.
// For one-time tasks the cycle is a single day: the anchor sits one day
// before the sole due date.
func (r Recurrence) CycleDays() int {
	if r.OneTime {
		return 1
	}
	return r.IntervalDays
}
