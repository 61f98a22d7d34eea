// Package handler adapts HTTP requests to tracker service calls.
package handler

import (
	"github.com/rezkam/upkeep/internal/application/tracker"
)

// TaskHandler serves the task tracking API.
type TaskHandler struct {
	service *tracker.Service
}

// NewTaskHandler creates a new HTTP API handler.
func NewTaskHandler(service *tracker.Service) *TaskHandler {
	return &TaskHandler{service: service}
}
