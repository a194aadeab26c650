//go:build integration

package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/taskit/taskit/internal/model"
	"github.com/taskit/taskit/internal/testutil"
)

func TestIntegrationTaskRepository_CreateAndGet(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := testutil.NewTestUser(t, testutil.UniqueEmail("taskowner"))
	if err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	desc := "weekly shop"
	due := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	task := testutil.NewTestTask(t, owner.ID, "Buy groceries")
	task.Description = &desc
	task.Priority = model.PriorityHigh
	task.DueDate = &due

	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	retrieved, err := repo.GetTask(ctx, task.ID, owner.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}

	if retrieved.Title != "Buy groceries" {
		t.Errorf("Title mismatch: got %q", retrieved.Title)
	}
	if retrieved.Description == nil || *retrieved.Description != desc {
		t.Errorf("Description mismatch: got %v", retrieved.Description)
	}
	if retrieved.Priority != model.PriorityHigh {
		t.Errorf("Priority mismatch: got %q", retrieved.Priority)
	}
	if retrieved.Status != model.StatusPending {
		t.Errorf("Status mismatch: got %q", retrieved.Status)
	}
	if retrieved.DueDate == nil || !retrieved.DueDate.Equal(due) {
		t.Errorf("DueDate mismatch: got %v, want %v", retrieved.DueDate, due)
	}
	if retrieved.UserID != owner.ID {
		t.Errorf("UserID mismatch: got %q", retrieved.UserID)
	}
}

func TestIntegrationTaskRepository_OwnershipScoping(t *testing.T) {
	ctx, repo := newTestEnv(t)

	alice := testutil.NewTestUser(t, testutil.UniqueEmail("alice"))
	bob := testutil.NewTestUser(t, testutil.UniqueEmail("bob"))
	for _, u := range []*model.User{alice, bob} {
		if err := repo.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	task := testutil.NewTestTask(t, alice.ID, "Alice's task")
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	// Every scoped read and write must treat another owner's task as
	// missing.
	if _, err := repo.GetTask(ctx, task.ID, bob.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("GetTask as non-owner: expected ErrTaskNotFound, got: %v", err)
	}

	title := "hijacked"
	if _, err := repo.UpdateTask(ctx, task.ID, bob.ID, model.TaskPatch{Title: &title}); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("UpdateTask as non-owner: expected ErrTaskNotFound, got: %v", err)
	}

	if err := repo.DeleteTask(ctx, task.ID, bob.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("DeleteTask as non-owner: expected ErrTaskNotFound, got: %v", err)
	}

	// The task is untouched for its owner.
	retrieved, err := repo.GetTask(ctx, task.ID, alice.ID)
	if err != nil {
		t.Fatalf("GetTask as owner failed: %v", err)
	}
	if retrieved.Title != "Alice's task" {
		t.Errorf("Title was modified: %q", retrieved.Title)
	}
}

func TestIntegrationTaskRepository_ListOrder(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := testutil.NewTestUser(t, testutil.UniqueEmail("listorder"))
	if err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	base := time.Now().UTC().Add(-time.Hour)
	titles := []string{"first", "second", "third"}
	for i, title := range titles {
		task := testutil.NewTestTask(t, owner.ID, title)
		task.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		task.UpdatedAt = task.CreatedAt
		if err := repo.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask %q failed: %v", title, err)
		}
	}

	tasks, err := repo.ListTasksByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListTasksByOwner failed: %v", err)
	}

	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tasks))
	}
	// Newest first
	want := []string{"third", "second", "first"}
	for i, title := range want {
		if tasks[i].Title != title {
			t.Errorf("tasks[%d].Title = %q, want %q", i, tasks[i].Title, title)
		}
	}
}

func TestIntegrationTaskRepository_ListEmpty(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := testutil.NewTestUser(t, testutil.UniqueEmail("empty"))
	if err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	tasks, err := repo.ListTasksByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListTasksByOwner failed: %v", err)
	}
	if tasks == nil {
		t.Error("expected an empty slice, got nil")
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks, want 0", len(tasks))
	}
}

func TestIntegrationTaskRepository_PartialUpdate(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := testutil.NewTestUser(t, testutil.UniqueEmail("update"))
	if err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	desc := "original description"
	task := testutil.NewTestTask(t, owner.ID, "Original title")
	task.Description = &desc
	task.Priority = model.PriorityLow
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	status := model.StatusCompleted
	updated, err := repo.UpdateTask(ctx, task.ID, owner.ID, model.TaskPatch{Status: &status})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	if updated.Status != model.StatusCompleted {
		t.Errorf("Status = %q, want Completed", updated.Status)
	}
	if updated.Title != "Original title" {
		t.Errorf("Title was reset: %q", updated.Title)
	}
	if updated.Description == nil || *updated.Description != desc {
		t.Errorf("Description was reset: %v", updated.Description)
	}
	if updated.Priority != model.PriorityLow {
		t.Errorf("Priority was reset: %q", updated.Priority)
	}
	if !updated.UpdatedAt.After(task.UpdatedAt) {
		t.Error("UpdatedAt was not advanced")
	}
}

func TestIntegrationTaskRepository_Delete(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := testutil.NewTestUser(t, testutil.UniqueEmail("delete"))
	if err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	task := testutil.NewTestTask(t, owner.ID, "Doomed task")
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if err := repo.DeleteTask(ctx, task.ID, owner.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	if _, err := repo.GetTask(ctx, task.ID, owner.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound after delete, got: %v", err)
	}

	// Second delete reports not found
	if err := repo.DeleteTask(ctx, task.ID, owner.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("second delete: expected ErrTaskNotFound, got: %v", err)
	}
}

func TestIntegrationTaskRepository_Stats(t *testing.T) {
	ctx, repo := newTestEnv(t)

	alice := testutil.NewTestUser(t, testutil.UniqueEmail("stats-a"))
	bob := testutil.NewTestUser(t, testutil.UniqueEmail("stats-b"))
	for _, u := range []*model.User{alice, bob} {
		if err := repo.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	seed := []struct {
		owner  string
		status model.Status
	}{
		{alice.ID, model.StatusPending},
		{alice.ID, model.StatusPending},
		{alice.ID, model.StatusCompleted},
		{bob.ID, model.StatusPending},
	}
	for i, s := range seed {
		task := testutil.NewTestTask(t, s.owner, "Task")
		task.Status = s.status
		if err := repo.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask %d failed: %v", i, err)
		}
	}

	stats, err := repo.TaskStatsByOwner(ctx, alice.ID)
	if err != nil {
		t.Fatalf("TaskStatsByOwner failed: %v", err)
	}

	got := make(map[model.Status]int64)
	for _, bucket := range stats {
		got[bucket.Status] = bucket.Count
	}
	if got[model.StatusPending] != 2 {
		t.Errorf("Pending = %d, want 2", got[model.StatusPending])
	}
	if got[model.StatusCompleted] != 1 {
		t.Errorf("Completed = %d, want 1", got[model.StatusCompleted])
	}
	if _, ok := got[model.StatusInProgress]; ok {
		t.Error("statuses with no tasks must not appear")
	}
}

func TestIntegrationTaskRepository_CascadeDelete(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := testutil.NewTestUser(t, testutil.UniqueEmail("cascade"))
	if err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	task := testutil.NewTestTask(t, owner.ID, "Orphan-to-be")
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if _, err := repo.Pool().Exec(ctx, "DELETE FROM users WHERE id = $1", owner.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, err := repo.GetTask(ctx, task.ID, owner.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected cascade to remove the task, got: %v", err)
	}
}
