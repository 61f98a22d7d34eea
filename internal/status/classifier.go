// Package status maps due dates to urgency categories and sort keys for
// the dashboard.
package status

import (
	"github.com/rezkam/upkeep/internal/domain"
)

// Category is the three-way urgency classification of a due date.
type Category string

const (
	// CategoryOverdue marks tasks whose due date has passed.
	CategoryOverdue Category = "overdue"

	// CategoryDueSoon marks tasks due within the due-soon window.
	CategoryDueSoon Category = "due_soon"

	// CategoryUpcoming marks tasks due beyond the due-soon window.
	// These are excluded from the primary dashboard list.
	CategoryUpcoming Category = "upcoming"

	// CategoryUnscheduled marks tasks with no computable due date.
	CategoryUnscheduled Category = "unscheduled"
)

// DefaultDueSoonWindowDays is the due-soon horizon used when no override
// is configured.
const DefaultDueSoonWindowDays = 30

// UnscheduledSortKey sorts unscheduled tasks after any real due date.
const UnscheduledSortKey = 1000

// Status is the classification of a single due date.
type Status struct {
	Category Category

	// DaysUntil is the signed whole-day distance from today to the due
	// date: negative when overdue, UnscheduledSortKey when there is no
	// due date. Sorting ascending yields most-overdue first, then
	// soonest-due, with unscheduled tasks last.
	DaysUntil int
}

// Classify maps a due date (or its absence) to an urgency category.
// windowDays is the inclusive due-soon horizon; values < 1 fall back to
// the default.
func Classify(due *domain.Date, today domain.Date, windowDays int) Status {
	if windowDays < 1 {
		windowDays = DefaultDueSoonWindowDays
	}

	if due == nil {
		return Status{Category: CategoryUnscheduled, DaysUntil: UnscheduledSortKey}
	}

	days := today.DaysUntil(*due)
	switch {
	case days < 0:
		return Status{Category: CategoryOverdue, DaysUntil: days}
	case days <= windowDays:
		return Status{Category: CategoryDueSoon, DaysUntil: days}
	default:
		return Status{Category: CategoryUpcoming, DaysUntil: days}
	}
}
