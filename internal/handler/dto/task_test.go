package dto

import (
	"strings"
	"testing"
	"time"

	"github.com/taskit/taskit/internal/model"
)

func fieldErrors(errs []FieldError) []string {
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	return fields
}

func TestCreateTaskRequest_Validate(t *testing.T) {
	longDesc := strings.Repeat("d", model.MaxDescriptionLength+1)

	tests := []struct {
		name       string
		req        CreateTaskRequest
		wantFields []string
	}{
		{
			name:       "minimal valid",
			req:        CreateTaskRequest{Title: "Buy milk"},
			wantFields: nil,
		},
		{
			name: "all fields valid",
			req: CreateTaskRequest{
				Title:    "Buy milk",
				Priority: "High",
				Status:   "In Progress",
				DueDate:  "2026-12-31T23:59:59Z",
			},
			wantFields: nil,
		},
		{
			name:       "missing title",
			req:        CreateTaskRequest{},
			wantFields: []string{"title"},
		},
		{
			name:       "whitespace title",
			req:        CreateTaskRequest{Title: "   "},
			wantFields: []string{"title"},
		},
		{
			name:       "title too long",
			req:        CreateTaskRequest{Title: strings.Repeat("t", model.MaxTitleLength+1)},
			wantFields: []string{"title"},
		},
		{
			name:       "description too long",
			req:        CreateTaskRequest{Title: "ok", Description: &longDesc},
			wantFields: []string{"description"},
		},
		{
			name:       "invalid priority",
			req:        CreateTaskRequest{Title: "ok", Priority: "Urgent"},
			wantFields: []string{"priority"},
		},
		{
			name:       "invalid status",
			req:        CreateTaskRequest{Title: "ok", Status: "Done"},
			wantFields: []string{"status"},
		},
		{
			name:       "multiple violations",
			req:        CreateTaskRequest{Priority: "Urgent", Status: "Done"},
			wantFields: []string{"title", "priority", "status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			got := fieldErrors(errs)
			if len(got) != len(tt.wantFields) {
				t.Fatalf("got errors for %v, want %v", got, tt.wantFields)
			}
			for i, field := range tt.wantFields {
				if got[i] != field {
					t.Errorf("error %d: got field %q, want %q", i, got[i], field)
				}
			}
		})
	}
}

func TestUpdateTaskRequest_Validate(t *testing.T) {
	empty := ""
	valid := "new title"
	badPriority := "Urgent"
	goodStatus := "Completed"

	tests := []struct {
		name       string
		req        UpdateTaskRequest
		wantFields []string
	}{
		{
			name:       "empty patch is valid",
			req:        UpdateTaskRequest{},
			wantFields: nil,
		},
		{
			name:       "status only",
			req:        UpdateTaskRequest{Status: &goodStatus},
			wantFields: nil,
		},
		{
			name:       "title set to empty",
			req:        UpdateTaskRequest{Title: &empty},
			wantFields: []string{"title"},
		},
		{
			name:       "valid title",
			req:        UpdateTaskRequest{Title: &valid},
			wantFields: nil,
		},
		{
			name:       "invalid priority",
			req:        UpdateTaskRequest{Priority: &badPriority},
			wantFields: []string{"priority"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			got := fieldErrors(errs)
			if len(got) != len(tt.wantFields) {
				t.Fatalf("got errors for %v, want %v", got, tt.wantFields)
			}
			for i, field := range tt.wantFields {
				if got[i] != field {
					t.Errorf("error %d: got field %q, want %q", i, got[i], field)
				}
			}
		})
	}
}

func TestUpdateTaskRequest_ToPatch(t *testing.T) {
	status := "Completed"
	due := "2026-12-31T23:59:59Z"
	req := UpdateTaskRequest{Status: &status, DueDate: &due}

	patch := req.ToPatch()

	if patch.Title != nil || patch.Description != nil || patch.Category != nil || patch.Priority != nil {
		t.Error("omitted fields should stay nil in the patch")
	}
	if patch.Status == nil || *patch.Status != model.StatusCompleted {
		t.Errorf("expected status Completed, got %v", patch.Status)
	}
	want := time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)
	if patch.DueDate == nil || !patch.DueDate.Equal(want) {
		t.Errorf("expected due date %s, got %v", want, patch.DueDate)
	}
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool // whether a timestamp is expected
	}{
		{"empty", "", false},
		{"valid RFC3339", "2026-12-31T23:59:59Z", true},
		{"valid with offset", "2026-12-31T23:59:59+02:00", true},
		{"date only", "2026-12-31", false},
		{"garbage", "tomorrow", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDueDate(tt.raw)
			if (got != nil) != tt.want {
				t.Errorf("ParseDueDate(%q) = %v, want present=%v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		req        RegisterRequest
		wantFields []string
	}{
		{
			name:       "valid",
			req:        RegisterRequest{Email: "a@x.com", Password: "secret1", Username: "A"},
			wantFields: nil,
		},
		{
			name:       "bad email",
			req:        RegisterRequest{Email: "not-an-email", Password: "secret1", Username: "A"},
			wantFields: []string{"email"},
		},
		{
			name:       "short password",
			req:        RegisterRequest{Email: "a@x.com", Password: "12345", Username: "A"},
			wantFields: []string{"password"},
		},
		{
			name:       "missing username",
			req:        RegisterRequest{Email: "a@x.com", Password: "secret1"},
			wantFields: []string{"username"},
		},
		{
			name:       "everything wrong",
			req:        RegisterRequest{},
			wantFields: []string{"email", "password", "username"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			got := fieldErrors(errs)
			if len(got) != len(tt.wantFields) {
				t.Fatalf("got errors for %v, want %v", got, tt.wantFields)
			}
			for i, field := range tt.wantFields {
				if got[i] != field {
					t.Errorf("error %d: got field %q, want %q", i, got[i], field)
				}
			}
		})
	}
}

func TestRegisterRequest_NormalizedEmail(t *testing.T) {
	req := RegisterRequest{Email: "  User@Example.COM "}
	if got := req.NormalizedEmail(); got != "user@example.com" {
		t.Errorf("NormalizedEmail() = %q, want user@example.com", got)
	}
}
