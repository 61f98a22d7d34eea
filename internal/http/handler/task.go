package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/upkeep/internal/application/tracker"
	"github.com/rezkam/upkeep/internal/domain"
	"github.com/rezkam/upkeep/internal/http/response"
	"github.com/rezkam/upkeep/internal/recurring"
)

// CreateTaskRequest is the request body for POST /v1/tasks.
type CreateTaskRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`

	FrequencyDays int  `json:"frequency_days"`
	IsOneTime     bool `json:"is_one_time"`

	// TargetDate is the intended first due date, YYYY-MM-DD.
	TargetDate string `json:"target_date"`
}

// CreateTask handles POST /v1/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	task, err := h.service.CreateTask(r.Context(), tracker.CreateTaskParams{
		Name:          req.Name,
		Category:      req.Category,
		Description:   req.Description,
		FrequencyDays: req.FrequencyDays,
		OneTime:       req.IsOneTime,
		TargetDate:    req.TargetDate,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to create task via HTTP",
			"name", req.Name,
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "task created via HTTP",
		"task_id", task.ID)

	response.Created(w, map[string]any{
		"task": MapTaskToDTO(task, recurring.NextDue(task), nil),
	})
}

// GetTask handles GET /v1/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	task, err := h.service.GetTask(r.Context(), id)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, map[string]any{
		"task": MapTaskToDTO(task, recurring.NextDue(task), nil),
	})
}

// ListTasks handles GET /v1/tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListTasks(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list tasks via HTTP", "error", err)
		response.FromDomainError(w, r, err)
		return
	}

	dtos := make([]TaskDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, MapRowToDTO(row))
	}

	response.OK(w, map[string]any{"tasks": dtos})
}

// DeleteTask handles DELETE /v1/tasks/{id}.
// Deleting an unknown ID succeeds, so the operation is safe to retry.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteTask(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "failed to delete task via HTTP",
			"task_id", id,
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.NoContent(w)
}

// completionRequest is the optional body of complete and uncomplete
// requests. An absent body or date targets today.
type completionRequest struct {
	Date string `json:"date"`
}

// CompleteTask handles POST /v1/tasks/{id}/complete. An optional
// {"date": "YYYY-MM-DD"} body backfills a completion for another day.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	date, ok := completionDate(w, r)
	if !ok {
		return
	}
	if date == nil {
		h.mutate(w, r, h.service.CompleteTask)
		return
	}
	h.mutate(w, r, func(ctx context.Context, id string) (*domain.Task, error) {
		return h.service.CompleteTaskOn(ctx, id, *date)
	})
}

// UncompleteTask handles POST /v1/tasks/{id}/uncomplete. An optional
// {"date": "YYYY-MM-DD"} body removes the entry for that day instead of
// today's.
func (h *TaskHandler) UncompleteTask(w http.ResponseWriter, r *http.Request) {
	date, ok := completionDate(w, r)
	if !ok {
		return
	}
	if date == nil {
		h.mutate(w, r, h.service.UncompleteTask)
		return
	}
	h.mutate(w, r, func(ctx context.Context, id string) (*domain.Task, error) {
		return h.service.UncompleteTaskOn(ctx, id, *date)
	})
}

// completionDate parses the optional date from a complete or uncomplete
// request body. Returns (nil, true) when no date was given, and
// (nil, false) after writing an error response.
func completionDate(w http.ResponseWriter, r *http.Request) (*domain.Date, bool) {
	var req completionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		response.BadRequest(w, "invalid JSON")
		return nil, false
	}
	if req.Date == "" {
		return nil, true
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		response.FromDomainError(w, r, err)
		return nil, false
	}
	return &date, true
}

// SkipTask handles POST /v1/tasks/{id}/skip.
func (h *TaskHandler) SkipTask(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.service.SkipTask)
}

// mutate runs one of the single-task lifecycle operations and renders
// the updated task.
func (h *TaskHandler) mutate(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id string) (*domain.Task, error)) {
	id := chi.URLParam(r, "id")

	task, err := op(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "task operation failed via HTTP",
			"task_id", id,
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, map[string]any{
		"task": MapTaskToDTO(task, recurring.NextDue(task), nil),
	})
}
