package domain

import (
	"time"
)

// Completion is a single completion event in a task's history.
type Completion struct {
	// CompletedAt is the wall-clock moment the completion was recorded (UTC).
	CompletedAt time.Time

	// Date is the local calendar date the completion counts for.
	Date Date
}

// Task is the aggregate root for a tracked maintenance task.
//
// The scheduling fields obey one hard rule: AnchorDate and TargetDueDate
// are fixed at creation and never change afterwards. Completion, undo,
// and skip only ever move LastCompleted and CompletionHistory. Calendar
// occurrence enumeration derives solely from the anchor, so the
// recurrence phase cannot drift as completions accumulate.
type Task struct {
	ID          string
	Name        string
	Category    string
	Description string

	Recurrence Recurrence

	// AnchorDate is the fixed reference point of the recurrence: the
	// date one cycle before the first intended due date.
	AnchorDate Date

	// TargetDueDate is the user's intended first due date. It acts as a
	// floor below which no occurrence is ever reported.
	TargetDueDate *Date

	// LastCompleted is the calendar date of the most recent completion,
	// nil when the task has never been completed (or all completions
	// were undone).
	LastCompleted *Date

	// CompletionHistory is append-only and chronological. It is the
	// source of truth for undo.
	CompletionHistory []Completion

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Exhausted reports whether a one-time task has been completed.
// Recurring tasks are never exhausted. Exhaustion is derived from the
// completion history rather than stored, so undoing the completion
// automatically revives the task.
func (t *Task) Exhausted() bool {
	return t.Recurrence.OneTime && len(t.CompletionHistory) > 0
}

// CompletedOn reports whether the task has a completion recorded for the
// given calendar date. The history is the source of truth here, not
// LastCompleted: a skip moves LastCompleted without recording anything.
func (t *Task) CompletedOn(date Date) bool {
	for i := len(t.CompletionHistory) - 1; i >= 0; i-- {
		if t.CompletionHistory[i].Date.Equal(date) {
			return true
		}
	}
	return false
}

// MarkDone records a completion for the given calendar date. Calling it
// twice with the same date is a no-op: the history never gains duplicate
// entries from repeated clicks. LastCompleted only ever moves forward
// here, so backfilling an older date cannot pull the schedule backwards.
// Returns true if the task state changed.
func (t *Task) MarkDone(date Date, now time.Time) bool {
	if t.CompletedOn(date) {
		return false
	}

	t.CompletionHistory = append(t.CompletionHistory, Completion{
		CompletedAt: now.UTC(),
		Date:        date,
	})
	if t.LastCompleted == nil || t.LastCompleted.Before(date) {
		last := date
		t.LastCompleted = &last
	}
	t.UpdatedAt = now.UTC()
	return true
}

// MarkUndone removes the completion recorded for the given date, if any,
// and reverts LastCompleted to the latest remaining entry (or nil when
// the history empties). The entry is located by date rather than popped
// from the tail, since backfilled entries are not appended in date
// order. Returns true if the task state changed.
func (t *Task) MarkUndone(date Date, now time.Time) bool {
	idx := -1
	for i, c := range t.CompletionHistory {
		if c.Date.Equal(date) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	t.CompletionHistory = append(t.CompletionHistory[:idx], t.CompletionHistory[idx+1:]...)

	t.LastCompleted = nil
	for _, c := range t.CompletionHistory {
		if t.LastCompleted == nil || t.LastCompleted.Before(c.Date) {
			last := c.Date
			t.LastCompleted = &last
		}
	}
	t.UpdatedAt = now.UTC()
	return true
}

// Skip advances LastCompleted to the given due date without recording a
// completion: "not doing this cycle, schedule the next one". Only valid
// for recurring tasks; the service rejects skips on one-time tasks
// before calling this.
func (t *Task) Skip(due Date, now time.Time) {
	last := due
	t.LastCompleted = &last
	t.UpdatedAt = now.UTC()
}
