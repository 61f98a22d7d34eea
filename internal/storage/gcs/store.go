// Package gcs provides a Google Cloud Storage backed task repository:
// one JSON object per task in a bucket.
package gcs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/rezkam/upkeep/internal/domain"
	"github.com/rezkam/upkeep/internal/storage/record"
)

// Store is a GCS-based implementation of tracker.Repository.
type Store struct {
	client *storage.Client
	bucket string
}

// NewStore creates a new GCS store.
// It assumes the client is authenticated (e.g. via GOOGLE_APPLICATION_CREDENTIALS).
func NewStore(ctx context.Context, bucketName string) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &Store{
		client: client,
		bucket: bucketName,
	}, nil
}

func (s *Store) objectName(id string) string {
	return fmt.Sprintf("%s.json", id)
}

// CreateTask creates a new task as a JSON object in GCS.
func (s *Store) CreateTask(ctx context.Context, task *domain.Task) error {
	obj := s.client.Bucket(s.bucket).Object(s.objectName(task.ID))

	_, err := obj.Attrs(ctx)
	if err == nil {
		return fmt.Errorf("%w: %s", domain.ErrTaskExists, task.ID)
	}
	if !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to check object existence: %w", err)
	}

	return write(ctx, obj, task)
}

// FindTaskByID retrieves a task from GCS.
func (s *Store) FindTaskByID(ctx context.Context, id string) (*domain.Task, error) {
	obj := s.client.Bucket(s.bucket).Object(s.objectName(id))

	r, err := obj.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	defer r.Close()

	var rec record.TaskRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode task: %w", err)
	}
	return rec.ToTask()
}

// UpdateTask overwrites an existing task object in GCS.
func (s *Store) UpdateTask(ctx context.Context, task *domain.Task) error {
	obj := s.client.Bucket(s.bucket).Object(s.objectName(task.ID))

	_, err := obj.Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, task.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to check object existence: %w", err)
	}

	return write(ctx, obj, task)
}

// DeleteTask removes a task object from GCS.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	obj := s.client.Bucket(s.bucket).Object(s.objectName(id))

	err := obj.Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// ListTasks scans the bucket for JSON objects and loads them in parallel.
func (s *Store) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, nil)

	var objectNames []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if strings.HasSuffix(attrs.Name, ".json") {
			objectNames = append(objectNames, attrs.Name)
		}
	}

	var mu sync.Mutex
	var tasks []*domain.Task
	var wg sync.WaitGroup

	// GCS handles 20+ concurrent requests well, but we stay conservative.
	const maxConcurrency = 20
	semaphore := make(chan struct{}, maxConcurrency)

	for _, name := range objectNames {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(objectName string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			obj := s.client.Bucket(s.bucket).Object(objectName)
			r, err := obj.NewReader(ctx)
			if err != nil {
				// Skip unreadable objects
				return
			}
			defer r.Close()

			data, err := io.ReadAll(r)
			if err != nil {
				return
			}

			var rec record.TaskRecord
			if err := json.Unmarshal(data, &rec); err != nil {
				return
			}
			if task, err := rec.ToTask(); err == nil {
				mu.Lock()
				tasks = append(tasks, task)
				mu.Unlock()
			}
		}(name)
	}

	wg.Wait()
	return tasks, nil
}

// Close releases the underlying GCS client.
func (s *Store) Close() error {
	return s.client.Close()
}

func write(ctx context.Context, obj *storage.ObjectHandle, task *domain.Task) error {
	data, err := json.Marshal(record.FromTask(task))
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	w := obj.NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to write object: %w", err)
	}
	return w.Close()
}
