// Package http wires the chi router for the task tracking API.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rezkam/upkeep/internal/application/tracker"
	"github.com/rezkam/upkeep/internal/http/handler"
	mw "github.com/rezkam/upkeep/internal/http/middleware"
)

// maxRequestBodyBytes bounds request bodies; task payloads are small.
const maxRequestBodyBytes = 1 << 20 // 1 MiB

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(service *tracker.Service) *chi.Mux {
	h := handler.NewTaskHandler(service)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			slog.ErrorContext(r.Context(), "Failed to write health check response", "error", err)
		}
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.MaxBodyBytes(maxRequestBodyBytes))

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", h.CreateTask)
			r.Get("/", h.ListTasks)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetTask)
				r.Delete("/", h.DeleteTask)
				r.Post("/complete", h.CompleteTask)
				r.Post("/uncomplete", h.UncompleteTask)
				r.Post("/skip", h.SkipTask)
			})
		})

		r.Get("/dashboard", h.Dashboard)
		r.Get("/calendar", h.Calendar)
		r.Get("/focus/daily", h.DailyFocus)
		r.Get("/focus/weekly", h.WeeklyFocus)
		r.Get("/completions", h.CompletionLog)
	})

	return r
}
