// Package memory provides an in-memory task repository, used as the dev
// default and as the backing store in tests.
package memory

import (
	"context"
	"sync"

	"github.com/rezkam/upkeep/internal/domain"
)

// Store is a mutex-guarded in-memory implementation of
// tracker.Repository.
type Store struct {
	mu    sync.RWMutex
	tasks map[string]*domain.Task
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{tasks: make(map[string]*domain.Task)}
}

// CreateTask stores a new task.
func (s *Store) CreateTask(ctx context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; ok {
		return domain.ErrTaskExists
	}
	s.tasks[task.ID] = clone(task)
	return nil
}

// FindTaskByID retrieves a task by ID.
func (s *Store) FindTaskByID(ctx context.Context, id string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return clone(task), nil
}

// UpdateTask overwrites an existing task.
func (s *Store) UpdateTask(ctx context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	s.tasks[task.ID] = clone(task)
	return nil
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// ListTasks returns all stored tasks.
func (s *Store) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, clone(t))
	}
	return tasks, nil
}

// clone deep-copies a task so callers can't mutate stored state through
// shared slices or pointers.
func clone(t *domain.Task) *domain.Task {
	c := *t
	if t.TargetDueDate != nil {
		target := *t.TargetDueDate
		c.TargetDueDate = &target
	}
	if t.LastCompleted != nil {
		last := *t.LastCompleted
		c.LastCompleted = &last
	}
	c.CompletionHistory = make([]domain.Completion, len(t.CompletionHistory))
	copy(c.CompletionHistory, t.CompletionHistory)
	return &c
}
