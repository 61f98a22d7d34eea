// Package postgres provides a PostgreSQL task repository backed by a
// pgx connection pool.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rezkam/upkeep/internal/domain"
	"github.com/rezkam/upkeep/internal/storage/record"
)

// Store is a PostgreSQL implementation of tracker.Repository.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new PostgreSQL store with the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool returns the underlying connection pool.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// isUniqueViolation checks if an error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	// 23505 is unique_violation
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

const taskColumns = `id, name, category, description, frequency_days, is_one_time,
	anchor_date, target_due_date, last_completed_date, completion_history,
	created_at, updated_at`

// CreateTask inserts a new task row.
func (s *Store) CreateTask(ctx context.Context, task *domain.Task) error {
	rec := record.FromTask(task)
	history, err := json.Marshal(rec.CompletionHistory)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rec.ID, rec.Name, rec.Category, rec.Description,
		rec.FrequencyDays, rec.IsOneTime,
		rec.AnchorDate, emptyToNil(rec.TargetDueDate), emptyToNil(rec.LastCompletedDate),
		history, rec.CreatedAt.UTC(), rec.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrTaskExists, task.ID)
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// FindTaskByID retrieves a task row by ID.
func (s *Store) FindTaskByID(ctx context.Context, id string) (*domain.Task, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks WHERE id = $1`, id)

	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// UpdateTask overwrites an existing task row.
func (s *Store) UpdateTask(ctx context.Context, task *domain.Task) error {
	rec := record.FromTask(task)
	history, err := json.Marshal(rec.CompletionHistory)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE tasks SET
			name = $1, category = $2, description = $3,
			frequency_days = $4, is_one_time = $5,
			anchor_date = $6, target_due_date = $7, last_completed_date = $8,
			completion_history = $9, updated_at = $10
		WHERE id = $11`,
		rec.Name, rec.Category, rec.Description,
		rec.FrequencyDays, rec.IsOneTime,
		rec.AnchorDate, emptyToNil(rec.TargetDueDate), emptyToNil(rec.LastCompletedDate),
		history, rec.UpdatedAt.UTC(), rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, task.ID)
	}
	return nil
}

// DeleteTask removes a task row.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	return nil
}

// ListTasks returns all task rows.
func (s *Store) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var rec record.TaskRecord
	var anchor time.Time
	var target, last *time.Time
	var history []byte

	err := row.Scan(
		&rec.ID, &rec.Name, &rec.Category, &rec.Description,
		&rec.FrequencyDays, &rec.IsOneTime,
		&anchor, &target, &last, &history,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.AnchorDate = anchor.Format(domain.DateLayout)
	if target != nil {
		rec.TargetDueDate = target.Format(domain.DateLayout)
	}
	if last != nil {
		rec.LastCompletedDate = last.Format(domain.DateLayout)
	}

	if err := json.Unmarshal(history, &rec.CompletionHistory); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	return rec.ToTask()
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
