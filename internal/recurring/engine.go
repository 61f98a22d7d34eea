// Package recurring computes due dates and calendar occurrences for
// tracked tasks. All functions are pure: the caller captures "today"
// once per logical operation and passes it in, so results are
// deterministic and testable without clock mocking.
package recurring

import (
	"github.com/rezkam/upkeep/internal/domain"
)

// Occurrence is a single due-date instance produced by a task's
// recurrence rule.
type Occurrence struct {
	Date domain.Date

	// Overdue is true when the occurrence date is strictly before today.
	Overdue bool
}

// NextDue returns the task's single next due date, or nil when the task
// has none:
//   - a completed one-time task is exhausted and never becomes due again;
//   - a task with no completion on record has no last-completed date to
//     advance from. This is deliberately not defaulted to the anchor:
//     callers must surface the task as unscheduled instead.
func NextDue(t *domain.Task) *domain.Date {
	if t.Exhausted() {
		return nil
	}
	if t.LastCompleted == nil {
		return nil
	}

	due := t.LastCompleted.AddDays(t.Recurrence.CycleDays())
	return &due
}

// OccurrencesInRange enumerates the task's occurrence dates that fall
// inside [start, end], inclusive. Enumeration is fixed-phase from the
// immutable anchor: occurrences are anchor + k*interval for k >= 1,
// regardless of completion state, so the calendar never shifts as
// completions accumulate. The target due date, when set, is a hard
// floor; phase arithmetic can never surface an occurrence before it.
//
// The result is deterministic for a given task state and window, and
// never errors: exhausted or out-of-range tasks yield an empty slice.
func OccurrencesInRange(t *domain.Task, start, end, today domain.Date) []Occurrence {
	if end.Before(start) {
		return nil
	}
	if t.Exhausted() {
		return nil
	}

	if t.Recurrence.OneTime {
		due := oneTimeDue(t)
		if due.Before(start) || due.After(end) {
			return nil
		}
		if t.TargetDueDate != nil && due.Before(*t.TargetDueDate) {
			return nil
		}
		return []Occurrence{{Date: due, Overdue: due.Before(today)}}
	}

	interval := t.Recurrence.IntervalDays
	if interval < 1 {
		return nil
	}

	// First occurrence is one cycle after the anchor. Advance to the
	// first cycle landing at or after the window start using whole-day
	// integer arithmetic; stepping date-by-date would be wasteful for
	// windows far from the anchor.
	first := t.AnchorDate.AddDays(interval)
	if first.Before(start) {
		gap := first.DaysUntil(start)
		cycles := (gap + interval - 1) / interval
		first = first.AddDays(cycles * interval)
	}

	var occurrences []Occurrence
	for d := first; !d.After(end); d = d.AddDays(interval) {
		if t.TargetDueDate != nil && d.Before(*t.TargetDueDate) {
			continue
		}
		occurrences = append(occurrences, Occurrence{Date: d, Overdue: d.Before(today)})
	}
	return occurrences
}

// oneTimeDue resolves the sole due date of a pending one-time task: the
// target when set, otherwise one day after the anchor.
func oneTimeDue(t *domain.Task) domain.Date {
	if t.TargetDueDate != nil {
		return *t.TargetDueDate
	}
	return t.AnchorDate.AddDays(1)
}
