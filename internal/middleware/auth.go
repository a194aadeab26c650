package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taskit/taskit/internal/auth"
	"github.com/taskit/taskit/internal/metrics"
	"github.com/taskit/taskit/internal/model"
)

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger  *slog.Logger
	Tokens  *auth.TokenService
	Metrics metrics.Recorder
}

// Auth returns a middleware that authenticates requests with a signed
// bearer token. The Authorization header value is handed to the
// verifier exactly as presented; clients send the bare token. On
// success the verified subject is injected into the request context.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				cfg.Metrics.IncAuthRejected()
				writeAuthError(w)
				return
			}

			userID, err := cfg.Tokens.Verify(raw)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				cfg.Metrics.IncAuthRejected()
				writeAuthError(w)
				return
			}

			ctx := auth.ContextWithAuth(r.Context(), &model.AuthContext{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeAuthError writes a 401 Unauthorized response.
// One message for every failure mode; missing, malformed, tampered and
// expired tokens are indistinguishable to the client.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
}
