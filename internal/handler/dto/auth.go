// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"regexp"
	"strings"
	"time"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// emailPattern is a pragmatic email shape check, not a full RFC 5322 parser.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError describes a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the common error body.
// Errors carries field-level detail for validation failures; Detail
// carries the underlying error text for unexpected failures.
type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Detail  string       `json:"error,omitempty"`
}

// RegisterRequest represents the request body for user registration.
// Username is the account's display name, kept for wire compatibility.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// Validate checks the registration input and returns field-level errors.
func (r *RegisterRequest) Validate() []FieldError {
	var errs []FieldError

	if !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
		errs = append(errs, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(r.Password) < MinPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: "must be at least 6 characters"})
	}
	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, FieldError{Field: "username", Message: "is required"})
	}

	return errs
}

// NormalizedEmail returns the email trimmed and lowercased, the form
// stored and compared against.
func (r *RegisterRequest) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(r.Email))
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login input and returns field-level errors.
func (r *LoginRequest) Validate() []FieldError {
	var errs []FieldError

	if !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
		errs = append(errs, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(r.Password) < MinPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: "must be at least 6 characters"})
	}

	return errs
}

// NormalizedEmail returns the email trimmed and lowercased.
func (r *LoginRequest) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(r.Email))
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// LoginUser is the user summary embedded in the login response.
type LoginUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// ProfileUser is the user shape returned by the profile endpoint.
type ProfileUser struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"fullName"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ProfileResponse wraps the profile user.
type ProfileResponse struct {
	User ProfileUser `json:"user"`
}
