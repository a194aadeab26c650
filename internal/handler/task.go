package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"

	"github.com/taskit/taskit/internal/auth"
	"github.com/taskit/taskit/internal/handler/dto"
	"github.com/taskit/taskit/internal/metrics"
	"github.com/taskit/taskit/internal/model"
	"github.com/taskit/taskit/internal/repository"
)

// TaskStore is the persistence surface the task endpoints need.
// Every read and write is scoped to the owning user.
type TaskStore interface {
	CreateTask(ctx context.Context, task *model.Task) error
	ListTasksByOwner(ctx context.Context, ownerID string) ([]*model.Task, error)
	GetTask(ctx context.Context, id, ownerID string) (*model.Task, error)
	UpdateTask(ctx context.Context, id, ownerID string, patch model.TaskPatch) (*model.Task, error)
	DeleteTask(ctx context.Context, id, ownerID string) error
	TaskStatsByOwner(ctx context.Context, ownerID string) ([]model.StatusCount, error)
}

// TaskHandler handles the per-user task CRUD and stats endpoints.
type TaskHandler struct {
	store   TaskStore
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(store TaskStore, logger *slog.Logger, recorder metrics.Recorder) *TaskHandler {
	return &TaskHandler{
		store:   store,
		logger:  logger,
		metrics: recorder,
	}
}

// owner extracts the authenticated user ID, writing a 401 if absent.
// The auth middleware guarantees it in practice; this is the fallback.
func (h *TaskHandler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// List handles GET /api/task.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	tasks, err := h.store.ListTasksByOwner(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("list_tasks", "error", err, "user_id", ownerID)
		writeServerError(w, "Failed to fetch tasks", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TaskListResponse{Tasks: tasks})
}

// Create handles POST /api/task.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid input"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	priority := model.PriorityMedium
	if req.Priority != "" {
		priority = model.Priority(req.Priority)
	}
	status := model.StatusPending
	if req.Status != "" {
		status = model.Status(req.Status)
	}

	now := time.Now().UTC()
	task := &model.Task{
		ID:          ulid.Make().String(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    priority,
		Status:      status,
		DueDate:     dto.ParseDueDate(req.DueDate),
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateTask(r.Context(), task); err != nil {
		h.logger.Error("create_task", "error", err, "user_id", ownerID)
		writeServerError(w, "Failed to create task", err)
		return
	}

	h.metrics.IncTaskCreated()
	h.logger.Info("task_created", "task_id", task.ID, "user_id", ownerID)

	writeJSON(w, http.StatusCreated, dto.TaskMessageResponse{
		Message: "Task created successfully",
		Task:    task,
	})
}

// Get handles GET /api/task/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	task, err := h.store.GetTask(r.Context(), id, ownerID)
	if err != nil {
		// A task owned by someone else is indistinguishable from a
		// missing one.
		if errors.Is(err, repository.ErrTaskNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Message: "Task not found"})
			return
		}
		h.logger.Error("get_task", "error", err, "task_id", id, "user_id", ownerID)
		writeServerError(w, "Failed to fetch task", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TaskResponse{Task: task})
}

// Update handles PUT /api/task/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid input"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	id := chi.URLParam(r, "id")
	task, err := h.store.UpdateTask(r.Context(), id, ownerID, req.ToPatch())
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Message: "Task not found"})
			return
		}
		h.logger.Error("update_task", "error", err, "task_id", id, "user_id", ownerID)
		writeServerError(w, "Failed to update task", err)
		return
	}

	h.metrics.IncTaskUpdated()
	h.logger.Info("task_updated", "task_id", id, "user_id", ownerID)

	writeJSON(w, http.StatusOK, dto.TaskMessageResponse{
		Message: "Task updated successfully",
		Task:    task,
	})
}

// Delete handles DELETE /api/task/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.store.DeleteTask(r.Context(), id, ownerID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Message: "Task not found"})
			return
		}
		h.logger.Error("delete_task", "error", err, "task_id", id, "user_id", ownerID)
		writeServerError(w, "Failed to delete task", err)
		return
	}

	h.metrics.IncTaskDeleted()
	h.logger.Info("task_deleted", "task_id", id, "user_id", ownerID)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}

// Stats handles GET /api/task/stats.
func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	stats, err := h.store.TaskStatsByOwner(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("task_stats", "error", err, "user_id", ownerID)
		writeServerError(w, "Failed to fetch stats", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatsResponse{Stats: stats})
}
