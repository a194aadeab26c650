package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/taskit/taskit/internal/model"
)

// ErrTaskNotFound is returned when no task matches the id AND owner
// predicate. A task owned by someone else is indistinguishable from a
// task that does not exist.
var ErrTaskNotFound = errors.New("task not found")

// CreateTask inserts a new task into the database.
func (r *Repository) CreateTask(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, category, priority, status, due_date, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Category,
		string(task.Priority),
		string(task.Status),
		task.DueDate,
		task.UserID,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// ListTasksByOwner retrieves all tasks owned by a user, newest first.
func (r *Repository) ListTasksByOwner(ctx context.Context, ownerID string) ([]*model.Task, error) {
	query := `
		SELECT id, title, description, category, priority, status, due_date, user_id, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*model.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// GetTask retrieves a task by id scoped to its owner.
// The query predicate always combines both - never id alone.
func (r *Repository) GetTask(ctx context.Context, id, ownerID string) (*model.Task, error) {
	query := `
		SELECT id, title, description, category, priority, status, due_date, user_id, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	task, err := scanTask(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update to a task scoped to its owner and
// returns the updated row. Nil patch fields leave stored values
// unchanged. Concurrent updates resolve to last write wins.
func (r *Repository) UpdateTask(ctx context.Context, id, ownerID string, patch model.TaskPatch) (*model.Task, error) {
	query := `
		UPDATE tasks
		SET title       = COALESCE($3, title),
		    description = COALESCE($4, description),
		    category    = COALESCE($5, category),
		    priority    = COALESCE($6, priority),
		    status      = COALESCE($7, status),
		    due_date    = COALESCE($8, due_date),
		    updated_at  = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, title, description, category, priority, status, due_date, user_id, created_at, updated_at
	`

	task, err := scanTask(r.pool.QueryRow(ctx, query,
		id,
		ownerID,
		patch.Title,
		patch.Description,
		patch.Category,
		priorityArg(patch.Priority),
		statusArg(patch.Status),
		patch.DueDate,
	))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task scoped to its owner.
func (r *Repository) DeleteTask(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// TaskStatsByOwner counts a user's tasks grouped by status.
// Only statuses with at least one task appear in the result.
func (r *Repository) TaskStatsByOwner(ctx context.Context, ownerID string) ([]model.StatusCount, error) {
	query := `
		SELECT status, COUNT(*)
		FROM tasks
		WHERE user_id = $1
		GROUP BY status
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate task stats: %w", err)
	}
	defer rows.Close()

	stats := make([]model.StatusCount, 0)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan task stats: %w", err)
		}
		stats = append(stats, model.StatusCount{Status: model.Status(status), Count: count})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task stats: %w", err)
	}

	return stats, nil
}

// scanTask scans a single row into a Task model.
func scanTask(row pgx.Row) (*model.Task, error) {
	var task model.Task
	var priority, status string

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Category,
		&priority,
		&status,
		&task.DueDate,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Priority = model.Priority(priority)
	task.Status = model.Status(status)
	return &task, nil
}

// priorityArg converts an optional priority to a nullable text argument.
func priorityArg(p *model.Priority) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

// statusArg converts an optional status to a nullable text argument.
func statusArg(s *model.Status) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
