// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"` // Never serialize
	FullName        string    `json:"fullName"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AuthContext carries the verified identity of a request.
// Produced by the auth middleware and threaded through context.Context
// rather than attached to ambient request state.
type AuthContext struct {
	UserID string
}
