package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskit/taskit/internal/model"
)

// CreateTaskRequest represents the request body for creating a task.
// Only title is required; the rest default server-side.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	Status      string  `json:"status,omitempty"`
	DueDate     string  `json:"dueDate,omitempty"`
}

// Validate checks the create input and returns field-level errors.
func (r *CreateTaskRequest) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "is required"})
	} else if len(r.Title) > model.MaxTitleLength {
		errs = append(errs, FieldError{Field: "title", Message: lengthMessage(model.MaxTitleLength)})
	}

	if r.Description != nil && len(*r.Description) > model.MaxDescriptionLength {
		errs = append(errs, FieldError{Field: "description", Message: lengthMessage(model.MaxDescriptionLength)})
	}
	if r.Category != nil && len(*r.Category) > model.MaxCategoryLength {
		errs = append(errs, FieldError{Field: "category", Message: lengthMessage(model.MaxCategoryLength)})
	}
	if r.Priority != "" && !model.Priority(r.Priority).IsValid() {
		errs = append(errs, FieldError{Field: "priority", Message: "must be one of High, Medium, Low"})
	}
	if r.Status != "" && !model.Status(r.Status).IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: "must be one of Pending, In Progress, Completed"})
	}

	return errs
}

// UpdateTaskRequest represents the request body for partially updating a
// task. Every field is optional; absent fields leave stored values
// unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
}

// Validate checks the update input and returns field-level errors.
func (r *UpdateTaskRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Title != nil {
		if strings.TrimSpace(*r.Title) == "" {
			errs = append(errs, FieldError{Field: "title", Message: "cannot be empty"})
		} else if len(*r.Title) > model.MaxTitleLength {
			errs = append(errs, FieldError{Field: "title", Message: lengthMessage(model.MaxTitleLength)})
		}
	}

	if r.Description != nil && len(*r.Description) > model.MaxDescriptionLength {
		errs = append(errs, FieldError{Field: "description", Message: lengthMessage(model.MaxDescriptionLength)})
	}
	if r.Category != nil && len(*r.Category) > model.MaxCategoryLength {
		errs = append(errs, FieldError{Field: "category", Message: lengthMessage(model.MaxCategoryLength)})
	}
	if r.Priority != nil && !model.Priority(*r.Priority).IsValid() {
		errs = append(errs, FieldError{Field: "priority", Message: "must be one of High, Medium, Low"})
	}
	if r.Status != nil && !model.Status(*r.Status).IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: "must be one of Pending, In Progress, Completed"})
	}

	return errs
}

// ToPatch converts the request into a repository patch.
// Must be called after Validate.
func (r *UpdateTaskRequest) ToPatch() model.TaskPatch {
	patch := model.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
	}

	if r.Priority != nil {
		p := model.Priority(*r.Priority)
		patch.Priority = &p
	}
	if r.Status != nil {
		s := model.Status(*r.Status)
		patch.Status = &s
	}
	if r.DueDate != nil {
		patch.DueDate = ParseDueDate(*r.DueDate)
	}

	return patch
}

// ParseDueDate parses an RFC 3339 due-date string.
// Invalid or empty input is treated as absent, not as an error.
func ParseDueDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}

// lengthMessage formats the shared max-length violation message.
func lengthMessage(max int) string {
	return fmt.Sprintf("cannot exceed %d characters", max)
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Task *model.Task `json:"task"`
}

// TaskMessageResponse wraps a task plus an operation message.
type TaskMessageResponse struct {
	Message string      `json:"message"`
	Task    *model.Task `json:"task"`
}

// TaskListResponse wraps the task collection for the list endpoint.
type TaskListResponse struct {
	Tasks []*model.Task `json:"tasks"`
}

// MessageResponse is a bare operation acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatsResponse wraps the per-status aggregation.
type StatsResponse struct {
	Stats []model.StatusCount `json:"stats"`
}
