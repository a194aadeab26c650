package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/taskit/taskit/internal/auth"
	"github.com/taskit/taskit/internal/handler/dto"
	"github.com/taskit/taskit/internal/metrics"
	"github.com/taskit/taskit/internal/model"
	"github.com/taskit/taskit/internal/repository"
)

// UserStore is the persistence surface the auth endpoints need.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// AuthHandler handles registration, login and profile requests.
type AuthHandler struct {
	store   UserStore
	tokens  *auth.TokenService
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(store UserStore, tokens *auth.TokenService, logger *slog.Logger, recorder metrics.Recorder) *AuthHandler {
	return &AuthHandler{
		store:   store,
		tokens:  tokens,
		logger:  logger,
		metrics: recorder,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid input"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	email := req.NormalizedEmail()

	// Uniqueness is also enforced by the store; this check just gives
	// the common case a clean error before hashing.
	if _, err := h.store.GetUserByEmail(r.Context(), email); err == nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "User already exists"})
		return
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		writeServerError(w, "Registration failed", err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeServerError(w, "Registration failed", err)
		return
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:              ulid.Make().String(),
		Email:           email,
		PasswordHash:    hash,
		FullName:        strings.TrimSpace(req.Username),
		IsEmailVerified: false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := h.store.CreateUser(r.Context(), user); err != nil {
		// Lost the race against a concurrent registration
		if errors.Is(err, repository.ErrEmailExists) {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "User already exists"})
			return
		}
		writeServerError(w, "Registration failed", err)
		return
	}

	h.metrics.IncUserRegistered()
	h.logger.Info("user_registered", "user_id", user.ID)

	writeJSON(w, http.StatusCreated, dto.RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid input"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.NormalizedEmail())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			h.rejectLogin(w)
			return
		}
		writeServerError(w, "Login failed", err)
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		h.rejectLogin(w)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		writeServerError(w, "Login failed", err)
		return
	}

	h.metrics.IncLoginSuccess()
	h.logger.Info("user_logged_in", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token: token,
		User: dto.LoginUser{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
		},
	})
}

// rejectLogin writes the single message used for every credential
// failure. Whether the email or the password was wrong is not revealed.
func (h *AuthHandler) rejectLogin(w http.ResponseWriter) {
	h.metrics.IncLoginFailure()
	writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid email or password"})
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	user, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Message: "User not found"})
			return
		}
		writeServerError(w, "Failed to fetch profile", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileResponse{
		User: dto.ProfileUser{
			ID:              user.ID,
			Email:           user.Email,
			FullName:        user.FullName,
			IsEmailVerified: user.IsEmailVerified,
			CreatedAt:       user.CreatedAt,
		},
	})
}
