package handler

import (
	"time"

	"github.com/rezkam/upkeep/internal/application/tracker"
	"github.com/rezkam/upkeep/internal/domain"
	"github.com/rezkam/upkeep/internal/status"
)

// TaskDTO is the wire representation of a task.
type TaskDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`

	FrequencyDays int  `json:"frequency_days,omitempty"`
	IsOneTime     bool `json:"is_one_time"`
	Exhausted     bool `json:"exhausted"`

	AnchorDate        string `json:"anchor_date"`
	TargetDueDate     string `json:"target_due_date,omitempty"`
	LastCompletedDate string `json:"last_completed_date,omitempty"`
	NextDueDate       string `json:"next_due_date,omitempty"`

	Status *StatusDTO `json:"status,omitempty"`

	CompletionCount int `json:"completion_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusDTO is the wire representation of a task's classification.
type StatusDTO struct {
	Category  string `json:"category"`
	DaysUntil int    `json:"days_until"`
}

// MapTaskToDTO converts a task plus its computed schedule state to the
// wire representation.
func MapTaskToDTO(t *domain.Task, nextDue *domain.Date, st *status.Status) TaskDTO {
	dto := TaskDTO{
		ID:              t.ID,
		Name:            t.Name,
		Category:        t.Category,
		Description:     t.Description,
		IsOneTime:       t.Recurrence.OneTime,
		Exhausted:       t.Exhausted(),
		AnchorDate:      t.AnchorDate.String(),
		CompletionCount: len(t.CompletionHistory),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}

	if !t.Recurrence.OneTime {
		dto.FrequencyDays = t.Recurrence.IntervalDays
	}
	if t.TargetDueDate != nil {
		dto.TargetDueDate = t.TargetDueDate.String()
	}
	if t.LastCompleted != nil {
		dto.LastCompletedDate = t.LastCompleted.String()
	}
	if nextDue != nil {
		dto.NextDueDate = nextDue.String()
	}
	if st != nil {
		dto.Status = &StatusDTO{
			Category:  string(st.Category),
			DaysUntil: st.DaysUntil,
		}
	}

	return dto
}

// MapRowToDTO converts a service task row to the wire representation.
func MapRowToDTO(row tracker.TaskRow) TaskDTO {
	st := row.Status
	return MapTaskToDTO(row.Task, row.NextDue, &st)
}

// CalendarEventDTO is one rendered occurrence on a calendar day.
type CalendarEventDTO struct {
	TaskID   string `json:"task_id"`
	TaskName string `json:"task_name"`
	OneTime  bool   `json:"one_time"`
	Overdue  bool   `json:"overdue"`
}

// CalendarDayDTO is one cell of the month grid.
type CalendarDayDTO struct {
	Date    string             `json:"date"`
	InMonth bool               `json:"in_month"`
	Events  []CalendarEventDTO `json:"events"`
}

// CalendarDTO is the rendered month grid.
type CalendarDTO struct {
	Year  int              `json:"year"`
	Month int              `json:"month"`
	Days  []CalendarDayDTO `json:"days"`
}

// MapCalendarToDTO converts a calendar view to the wire representation.
func MapCalendarToDTO(view *tracker.CalendarView) CalendarDTO {
	dto := CalendarDTO{
		Year:  view.Year,
		Month: int(view.Month),
		Days:  make([]CalendarDayDTO, 0, len(view.Days)),
	}
	for _, day := range view.Days {
		dayDTO := CalendarDayDTO{
			Date:    day.Date.String(),
			InMonth: day.InMonth,
			Events:  make([]CalendarEventDTO, 0, len(day.Events)),
		}
		for _, ev := range day.Events {
			dayDTO.Events = append(dayDTO.Events, CalendarEventDTO{
				TaskID:   ev.TaskID,
				TaskName: ev.TaskName,
				OneTime:  ev.OneTime,
				Overdue:  ev.Overdue,
			})
		}
		dto.Days = append(dto.Days, dayDTO)
	}
	return dto
}

// FocusItemDTO is one entry of a focus list.
type FocusItemDTO struct {
	TaskID         string `json:"task_id"`
	TaskName       string `json:"task_name"`
	DueDate        string `json:"due_date"`
	CompletedToday bool   `json:"completed_today"`
}

func mapFocusItems(items []tracker.FocusItem) []FocusItemDTO {
	dtos := make([]FocusItemDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, FocusItemDTO{
			TaskID:         it.TaskID,
			TaskName:       it.TaskName,
			DueDate:        it.DueDate.String(),
			CompletedToday: it.CompletedToday,
		})
	}
	return dtos
}

// DailyFocusDTO is the daily focus view.
type DailyFocusDTO struct {
	Date      string         `json:"date"`
	Pending   []FocusItemDTO `json:"pending"`
	Completed []FocusItemDTO `json:"completed"`
}

// WeeklyFocusDTO is the weekly focus view.
type WeeklyFocusDTO struct {
	WeekStart string         `json:"week_start"`
	WeekEnd   string         `json:"week_end"`
	Items     []FocusItemDTO `json:"items"`
}

// CompletionLogEntryDTO is one row of the completed-work log.
type CompletionLogEntryDTO struct {
	TaskID      string    `json:"task_id"`
	TaskName    string    `json:"task_name"`
	Category    string    `json:"category,omitempty"`
	Date        string    `json:"date"`
	CompletedAt time.Time `json:"completed_at"`
}
