package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rezkam/upkeep/internal/domain"
	"github.com/rezkam/upkeep/internal/recurring"
	"github.com/rezkam/upkeep/internal/status"
)

// Config holds configuration for the Service.
type Config struct {
	// DueSoonWindowDays is the inclusive horizon for the due-soon
	// classification and the upcoming dashboard list.
	DueSoonWindowDays int
}

// Service provides business logic for task tracking. It orchestrates
// operations using the Repository interface and keeps the scheduling
// engine pure by capturing "today" once per operation.
type Service struct {
	repo   Repository
	config Config

	// clock is overridable in tests; production uses time.Now.
	clock func() time.Time
}

// NewService creates a new tracker service.
// Applies application defaults for zero or invalid config values.
func NewService(repo Repository, config Config) *Service {
	if config.DueSoonWindowDays <= 0 {
		config.DueSoonWindowDays = status.DefaultDueSoonWindowDays
	}

	return &Service{
		repo:   repo,
		config: config,
		clock:  time.Now,
	}
}

// today returns the current local calendar date, captured once per
// logical operation so a single request never straddles midnight.
func (s *Service) today() domain.Date {
	return domain.DateOf(s.clock())
}

// CreateTaskParams carries the validated-at-the-boundary fields of a new
// task as submitted by the user.
type CreateTaskParams struct {
	Name        string
	Category    string
	Description string

	// FrequencyDays is the recurrence interval; ignored when OneTime.
	FrequencyDays int
	OneTime       bool

	// TargetDate is the intended first due date, YYYY-MM-DD.
	TargetDate string
}

// CreateTask validates the params and persists a new task.
//
// The anchor is fixed here, once, as one cycle before the target due
// date, and is never recomputed afterwards. LastCompleted is seeded to
// the anchor so the first computed due date lands exactly on the target.
func (s *Service) CreateTask(ctx context.Context, params CreateTaskParams) (*domain.Task, error) {
	name, err := domain.NewName(params.Name)
	if err != nil {
		return nil, err
	}

	var rec domain.Recurrence
	if params.OneTime {
		rec = domain.OneTimeRecurrence()
	} else {
		rec, err = domain.NewIntervalRecurrence(params.FrequencyDays)
		if err != nil {
			return nil, err
		}
	}

	target, err := domain.ParseDate(params.TargetDate)
	if err != nil {
		return nil, err
	}

	idObj, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	now := s.clock().UTC()
	anchor := target.AddDays(-rec.CycleDays())
	seed := anchor

	task := &domain.Task{
		ID:            idObj.String(),
		Name:          name.String(),
		Category:      params.Category,
		Description:   params.Description,
		Recurrence:    rec,
		AnchorDate:    anchor,
		TargetDueDate: &target,
		LastCompleted: &seed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask retrieves a single task by ID.
func (s *Service) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if id == "" {
		return nil, domain.ErrTaskNotFound
	}

	return s.repo.FindTaskByID(ctx, id)
}

// TaskRow pairs a task with its computed schedule state.
type TaskRow struct {
	Task    *domain.Task
	NextDue *domain.Date
	Status  status.Status
}

// ListTasks returns all tasks with their next due date and
// classification, computed against a single "today".
func (s *Service) ListTasks(ctx context.Context) ([]TaskRow, error) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	today := s.today()
	rows := make([]TaskRow, 0, len(tasks))
	for _, t := range tasks {
		due := recurring.NextDue(t)
		rows = append(rows, TaskRow{
			Task:    t,
			NextDue: due,
			Status:  status.Classify(due, today, s.config.DueSoonWindowDays),
		})
	}
	return rows, nil
}

// CompleteTask records a completion for today. Completing a task twice
// on the same date is a no-op, so repeated clicks never produce
// duplicate history entries.
func (s *Service) CompleteTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.CompleteTaskOn(ctx, id, s.today())
}

// CompleteTaskOn records a completion for an explicit calendar date,
// used to backfill work done on a day other than today. Idempotent per
// date, like CompleteTask.
func (s *Service) CompleteTaskOn(ctx context.Context, id string, date domain.Date) (*domain.Task, error) {
	task, err := s.repo.FindTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !task.MarkDone(date, s.clock()) {
		return task, nil
	}

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to save completion: %w", err)
	}
	return task, nil
}

// UncompleteTask removes today's completion, if one exists, reverting
// LastCompleted to the prior history entry. A missing entry for today is
// a no-op: the task is left in its closest available previous state.
func (s *Service) UncompleteTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.UncompleteTaskOn(ctx, id, s.today())
}

// UncompleteTaskOn removes the completion recorded for an explicit
// calendar date, used to correct a mis-logged entry from the log view.
func (s *Service) UncompleteTaskOn(ctx context.Context, id string, date domain.Date) (*domain.Task, error) {
	task, err := s.repo.FindTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !task.MarkUndone(date, s.clock()) {
		return task, nil
	}

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to save undo: %w", err)
	}
	return task, nil
}

// SkipTask advances a recurring task past its current due date without
// recording a completion. One-time tasks cannot be skipped.
func (s *Service) SkipTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.repo.FindTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if task.Recurrence.OneTime {
		return nil, domain.ErrOneTimeSkip
	}

	due := recurring.NextDue(task)
	if due == nil {
		return nil, domain.ErrUnschedulable
	}

	task.Skip(*due, s.clock())

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to save skip: %w", err)
	}
	return task, nil
}

// DeleteTask removes a task permanently. Deleting an unknown ID is a
// no-op, not an error.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	err := s.repo.DeleteTask(ctx, id)
	if errors.Is(err, domain.ErrTaskNotFound) {
		return nil
	}
	return err
}
