// Package sqlite provides an embedded SQLite task repository, the
// default persistent backend for single-user deployments.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver (cgo-free)

	"github.com/rezkam/upkeep/internal/domain"
	"github.com/rezkam/upkeep/internal/storage/record"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Store is a SQLite-backed implementation of tracker.Repository.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path and runs
// migrations.
func NewStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite serializes writes internally; a single connection avoids
	// SQLITE_BUSY under concurrent writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// runMigrations runs SQLite database migrations using goose with embedded files.
func runMigrations(db *sql.DB) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
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

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Category, rec.Description,
		rec.FrequencyDays, rec.IsOneTime,
		rec.AnchorDate, nullable(rec.TargetDueDate), nullable(rec.LastCompletedDate),
		string(history),
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
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
	row := s.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks WHERE id = ?`, id)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
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

	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			name = ?, category = ?, description = ?,
			frequency_days = ?, is_one_time = ?,
			anchor_date = ?, target_due_date = ?, last_completed_date = ?,
			completion_history = ?, updated_at = ?
		WHERE id = ?`,
		rec.Name, rec.Category, rec.Description,
		rec.FrequencyDays, rec.IsOneTime,
		rec.AnchorDate, nullable(rec.TargetDueDate), nullable(rec.LastCompletedDate),
		string(history),
		rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, task.ID)
	}
	return nil
}

// DeleteTask removes a task row.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	return nil
}

// ListTasks returns all task rows.
func (s *Store) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
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

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*domain.Task, error) {
	var rec record.TaskRecord
	var target, last sql.NullString
	var history, createdAt, updatedAt string

	err := row.Scan(
		&rec.ID, &rec.Name, &rec.Category, &rec.Description,
		&rec.FrequencyDays, &rec.IsOneTime,
		&rec.AnchorDate, &target, &last, &history,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.TargetDueDate = target.String
	rec.LastCompletedDate = last.String

	if err := json.Unmarshal([]byte(history), &rec.CompletionHistory); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return rec.ToTask()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// isUniqueViolation checks for SQLite's primary key constraint error.
// modernc.org/sqlite wraps SQLITE_CONSTRAINT in its own error type, so
// matching on the message keeps the driver dependency surface small.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
