package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rezkam/upkeep/internal/domain"
	"github.com/rezkam/upkeep/internal/recurring"
	"github.com/rezkam/upkeep/internal/status"
)

// Dashboard projections. Each view captures "today" exactly once and
// derives everything from that snapshot, so a single render pass is
// internally consistent even across midnight.

// calendarGridDays is the size of the rendered month grid: six full
// weeks starting on the Sunday at or before the 1st.
const calendarGridDays = 42

// Upcoming returns the primary dashboard list: every non-exhausted task
// whose next due date falls within the due-soon window, overdue tasks
// included, sorted most-overdue first. Unscheduled and far-future tasks
// are excluded.
func (s *Service) Upcoming(ctx context.Context) ([]TaskRow, error) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	today := s.today()
	var rows []TaskRow
	for _, t := range tasks {
		if t.Exhausted() {
			continue
		}
		due := recurring.NextDue(t)
		st := status.Classify(due, today, s.config.DueSoonWindowDays)
		if st.Category == status.CategoryUnscheduled || st.Category == status.CategoryUpcoming {
			continue
		}
		rows = append(rows, TaskRow{Task: t, NextDue: due, Status: st})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Status.DaysUntil != rows[j].Status.DaysUntil {
			return rows[i].Status.DaysUntil < rows[j].Status.DaysUntil
		}
		return rows[i].Task.Name < rows[j].Task.Name
	})

	return rows, nil
}

// CalendarEvent is one task occurrence rendered on a calendar day.
type CalendarEvent struct {
	TaskID   string
	TaskName string
	OneTime  bool
	Overdue  bool
}

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date domain.Date

	// InMonth is false for the leading/trailing cells that pad the grid
	// out to full weeks.
	InMonth bool

	Events []CalendarEvent
}

// CalendarView is the 42-cell month grid with all task occurrences.
type CalendarView struct {
	Year  int
	Month time.Month
	Days  []CalendarDay
}

// Calendar builds the month grid for the given year and month. The grid
// starts on the Sunday at or before the 1st and spans six weeks, and
// every cell carries the occurrences of every task that fall on it.
func (s *Service) Calendar(ctx context.Context, year int, month time.Month) (*CalendarView, error) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	today := s.today()
	first := domain.NewDate(year, month, 1)
	gridStart := first.AddDays(-int(first.Weekday()))
	gridEnd := gridStart.AddDays(calendarGridDays - 1)

	// Bucket occurrences by date string; enumeration per task is a
	// single fixed-phase pass over the window.
	events := make(map[string][]CalendarEvent)
	for _, t := range tasks {
		for _, occ := range recurring.OccurrencesInRange(t, gridStart, gridEnd, today) {
			key := occ.Date.String()
			events[key] = append(events[key], CalendarEvent{
				TaskID:   t.ID,
				TaskName: t.Name,
				OneTime:  t.Recurrence.OneTime,
				Overdue:  occ.Overdue,
			})
		}
	}

	view := &CalendarView{Year: year, Month: month, Days: make([]CalendarDay, 0, calendarGridDays)}
	for d := gridStart; !d.After(gridEnd); d = d.AddDays(1) {
		view.Days = append(view.Days, CalendarDay{
			Date:    d,
			InMonth: d.Month() == month,
			Events:  events[d.String()],
		})
	}

	return view, nil
}

// FocusItem is one entry of the daily or weekly focus list.
type FocusItem struct {
	TaskID         string
	TaskName       string
	DueDate        domain.Date
	CompletedToday bool
}

// DailyFocusView splits today's work into still-pending and already
// completed tasks.
type DailyFocusView struct {
	Date      domain.Date
	Pending   []FocusItem
	Completed []FocusItem
}

// DailyFocus returns the tasks due today, split into pending and
// completed-today. A task completed today no longer has today as its
// next due date, so completion membership is derived from the history
// entry rather than the recomputed due date.
func (s *Service) DailyFocus(ctx context.Context) (*DailyFocusView, error) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	today := s.today()
	view := &DailyFocusView{Date: today}
	for _, t := range tasks {
		if t.CompletedOn(today) {
			view.Completed = append(view.Completed, FocusItem{
				TaskID: t.ID, TaskName: t.Name, DueDate: today, CompletedToday: true,
			})
			continue
		}
		due := recurring.NextDue(t)
		if due != nil && due.Equal(today) {
			view.Pending = append(view.Pending, FocusItem{
				TaskID: t.ID, TaskName: t.Name, DueDate: *due,
			})
		}
	}

	sortFocus(view.Pending)
	sortFocus(view.Completed)
	return view, nil
}

// WeeklyFocusView lists the tasks due inside the Sunday-Saturday week
// containing today.
type WeeklyFocusView struct {
	WeekStart domain.Date
	WeekEnd   domain.Date
	Items     []FocusItem
}

// WeeklyFocus returns the tasks whose next due date falls inside the
// current week.
func (s *Service) WeeklyFocus(ctx context.Context) (*WeeklyFocusView, error) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	today := s.today()
	weekStart := today.AddDays(-int(today.Weekday()))
	weekEnd := weekStart.AddDays(6)

	view := &WeeklyFocusView{WeekStart: weekStart, WeekEnd: weekEnd}
	for _, t := range tasks {
		due := recurring.NextDue(t)
		if due == nil || due.Before(weekStart) || due.After(weekEnd) {
			continue
		}
		view.Items = append(view.Items, FocusItem{
			TaskID:         t.ID,
			TaskName:       t.Name,
			DueDate:        *due,
			CompletedToday: t.CompletedOn(today),
		})
	}

	sort.SliceStable(view.Items, func(i, j int) bool {
		if !view.Items[i].DueDate.Equal(view.Items[j].DueDate) {
			return view.Items[i].DueDate.Before(view.Items[j].DueDate)
		}
		return view.Items[i].TaskName < view.Items[j].TaskName
	})
	return view, nil
}

// CompletionLogEntry is one row of the completed-work log.
type CompletionLogEntry struct {
	TaskID      string
	TaskName    string
	Category    string
	Date        domain.Date
	CompletedAt time.Time
}

// CompletionLog flattens completion history across all tasks, newest
// first. A non-empty query filters by case-insensitive substring match
// on task name or category.
func (s *Service) CompletionLog(ctx context.Context, query string) ([]CompletionLogEntry, error) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	var entries []CompletionLogEntry
	for _, t := range tasks {
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Name), q) &&
			!strings.Contains(strings.ToLower(t.Category), q) {
			continue
		}
		for _, c := range t.CompletionHistory {
			entries = append(entries, CompletionLogEntry{
				TaskID:      t.ID,
				TaskName:    t.Name,
				Category:    t.Category,
				Date:        c.Date,
				CompletedAt: c.CompletedAt,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CompletedAt.After(entries[j].CompletedAt)
	})
	return entries, nil
}

func sortFocus(items []FocusItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].TaskName < items[j].TaskName
	})
}
