// Package fs provides a filesystem-backed task repository: one JSON
// file per task under a base directory.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rezkam/upkeep/internal/domain"
	"github.com/rezkam/upkeep/internal/storage/record"
)

// Store is a filesystem-based implementation of tracker.Repository.
type Store struct {
	baseDir string
	mu      sync.RWMutex
}

// NewStore creates a new filesystem store, creating the base directory
// if needed.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

func (s *Store) filePath(id string) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s.json", id))
}

// CreateTask writes a new task as a JSON file.
func (s *Store) CreateTask(ctx context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.filePath(task.ID)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", domain.ErrTaskExists, task.ID)
	}

	return s.write(path, task)
}

// FindTaskByID reads a task from its JSON file.
func (s *Store) FindTaskByID(ctx context.Context, id string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return decode(data)
}

// UpdateTask overwrites an existing task's JSON file.
func (s *Store) UpdateTask(ctx context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.filePath(task.ID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, task.ID)
	}

	return s.write(path, task)
}

// DeleteTask removes a task's JSON file.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.filePath(id))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// ListTasks scans the directory for JSON files and loads them in
// parallel.
func (s *Store) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var mu sync.Mutex
	var tasks []*domain.Task
	var wg sync.WaitGroup

	// Limit concurrency to avoid "too many open files" on large
	// directories.
	const maxConcurrency = 20
	semaphore := make(chan struct{}, maxConcurrency)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		wg.Add(1)
		semaphore <- struct{}{}

		go func(filename string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			data, err := os.ReadFile(filepath.Join(s.baseDir, filename))
			if err != nil {
				// One unreadable file shouldn't break the whole listing.
				return
			}

			if task, err := decode(data); err == nil {
				mu.Lock()
				tasks = append(tasks, task)
				mu.Unlock()
			}
		}(entry.Name())
	}

	wg.Wait()
	return tasks, nil
}

func (s *Store) write(path string, task *domain.Task) error {
	data, err := json.MarshalIndent(record.FromTask(task), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func decode(data []byte) (*domain.Task, error) {
	var rec record.TaskRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	return rec.ToTask()
}
