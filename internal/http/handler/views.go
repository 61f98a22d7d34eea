package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rezkam/upkeep/internal/http/response"
)

// Dashboard handles GET /v1/dashboard: the upcoming list of overdue and
// due-soon tasks.
func (h *TaskHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Upcoming(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to build dashboard via HTTP", "error", err)
		response.FromDomainError(w, r, err)
		return
	}

	dtos := make([]TaskDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, MapRowToDTO(row))
	}

	response.OK(w, map[string]any{"tasks": dtos})
}

// Calendar handles GET /v1/calendar?year=YYYY&month=M.
// Both parameters default to the current month when omitted.
func (h *TaskHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 9999 {
			response.ValidationError(w, "year", "must be a four-digit year")
			return
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			response.ValidationError(w, "month", "must be between 1 and 12")
			return
		}
		month = time.Month(parsed)
	}

	view, err := h.service.Calendar(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to build calendar via HTTP",
			"year", year,
			"month", int(month),
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, MapCalendarToDTO(view))
}

// DailyFocus handles GET /v1/focus/daily.
func (h *TaskHandler) DailyFocus(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.DailyFocus(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to build daily focus via HTTP", "error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, DailyFocusDTO{
		Date:      view.Date.String(),
		Pending:   mapFocusItems(view.Pending),
		Completed: mapFocusItems(view.Completed),
	})
}

// WeeklyFocus handles GET /v1/focus/weekly.
func (h *TaskHandler) WeeklyFocus(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.WeeklyFocus(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to build weekly focus via HTTP", "error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, WeeklyFocusDTO{
		WeekStart: view.WeekStart.String(),
		WeekEnd:   view.WeekEnd.String(),
		Items:     mapFocusItems(view.Items),
	})
}

// CompletionLog handles GET /v1/completions?q=filter.
func (h *TaskHandler) CompletionLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.CompletionLog(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to build completion log via HTTP", "error", err)
		response.FromDomainError(w, r, err)
		return
	}

	dtos := make([]CompletionLogEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, CompletionLogEntryDTO{
			TaskID:      e.TaskID,
			TaskName:    e.TaskName,
			Category:    e.Category,
			Date:        e.Date.String(),
			CompletedAt: e.CompletedAt,
		})
	}

	response.OK(w, map[string]any{"completions": dtos})
}
