// Package record defines the flat persisted representation of a task
// and its conversion to and from the domain model. The JSON shape is
// shared by the filesystem and GCS stores and matches the tracker's
// legacy export format: calendar dates are YYYY-MM-DD strings parsed as
// local calendar dates (never UTC instants), and one-time state is
// encoded in frequency_days (1 while pending, 0 once completed). The
// sentinel lives only here, at the codec boundary; the domain model
// keeps an explicit recurrence variant.
package record

import (
	"fmt"
	"time"

	"github.com/rezkam/upkeep/internal/domain"
)

// CompletionRecord is one persisted completion event.
type CompletionRecord struct {
	Timestamp time.Time `json:"timestamp"`
	DateOnly  string    `json:"date_only"`
}

// TaskRecord is the flat persisted representation of a task.
type TaskRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`

	// FrequencyDays is the recurrence interval for recurring tasks.
	// For one-time tasks it carries the legacy encoding: 1 while
	// pending, 0 once completed.
	FrequencyDays int  `json:"frequency_days"`
	IsOneTime     bool `json:"is_one_time"`

	AnchorDate        string `json:"anchor_date"`
	TargetDueDate     string `json:"target_due_date,omitempty"`
	LastCompletedDate string `json:"last_completed_date,omitempty"`

	CompletionHistory []CompletionRecord `json:"completion_history"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromTask converts a domain task to its persisted representation.
func FromTask(t *domain.Task) *TaskRecord {
	rec := &TaskRecord{
		ID:          t.ID,
		Name:        t.Name,
		Category:    t.Category,
		Description: t.Description,
		IsOneTime:   t.Recurrence.OneTime,
		AnchorDate:  t.AnchorDate.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}

	if t.Recurrence.OneTime {
		if t.Exhausted() {
			rec.FrequencyDays = 0
		} else {
			rec.FrequencyDays = 1
		}
	} else {
		rec.FrequencyDays = t.Recurrence.IntervalDays
	}

	if t.TargetDueDate != nil {
		rec.TargetDueDate = t.TargetDueDate.String()
	}
	if t.LastCompleted != nil {
		rec.LastCompletedDate = t.LastCompleted.String()
	}

	rec.CompletionHistory = make([]CompletionRecord, 0, len(t.CompletionHistory))
	for _, c := range t.CompletionHistory {
		rec.CompletionHistory = append(rec.CompletionHistory, CompletionRecord{
			Timestamp: c.CompletedAt,
			DateOnly:  c.Date.String(),
		})
	}

	return rec
}

// ToTask converts a persisted record back to the domain model.
// One-time exhaustion is re-derived from the completion history, so the
// legacy frequency sentinel is only validated, never trusted.
func (r *TaskRecord) ToTask() (*domain.Task, error) {
	var rec domain.Recurrence
	if r.IsOneTime {
		rec = domain.OneTimeRecurrence()
	} else {
		var err error
		rec, err = domain.NewIntervalRecurrence(r.FrequencyDays)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", r.ID, err)
		}
	}

	anchor, err := domain.ParseDate(r.AnchorDate)
	if err != nil {
		return nil, fmt.Errorf("task %s anchor_date: %w", r.ID, err)
	}

	task := &domain.Task{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Recurrence:  rec,
		AnchorDate:  anchor,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if r.TargetDueDate != "" {
		target, err := domain.ParseDate(r.TargetDueDate)
		if err != nil {
			return nil, fmt.Errorf("task %s target_due_date: %w", r.ID, err)
		}
		task.TargetDueDate = &target
	}

	if r.LastCompletedDate != "" {
		last, err := domain.ParseDate(r.LastCompletedDate)
		if err != nil {
			return nil, fmt.Errorf("task %s last_completed_date: %w", r.ID, err)
		}
		task.LastCompleted = &last
	}

	task.CompletionHistory = make([]domain.Completion, 0, len(r.CompletionHistory))
	for _, c := range r.CompletionHistory {
		date, err := domain.ParseDate(c.DateOnly)
		if err != nil {
			return nil, fmt.Errorf("task %s completion date: %w", r.ID, err)
		}
		task.CompletionHistory = append(task.CompletionHistory, domain.Completion{
			CompletedAt: c.Timestamp,
			Date:        date,
		})
	}

	return task, nil
}
