// internal/api/handler/auth.go
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eaglebank/internal/api/types"
	"eaglebank/internal/lib/jwt"
	"eaglebank/internal/service"
	"eaglebank/internal/util"
)

type contextKey string

const principalKey contextKey = "principal"

// PrincipalFromContext returns the authenticated principal's email placed in
// the request context by the Authenticator middleware.
func PrincipalFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(principalKey).(string)
	return email, ok
}

// WithPrincipal returns a context carrying the principal email. Exposed for
// tests that call handlers without the middleware.
func WithPrincipal(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, principalKey, email)
}

// Authenticator validates the bearer token and stores the principal email in
// the request context. Requests without a valid token get a 401.
func Authenticator(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				respondWithJSON(w, logger, http.StatusUnauthorized, types.ErrorResponse{Error: "Missing bearer token"})
				return
			}

			email, err := jwt.ParseSubject(token, secret)
			if err != nil {
				respondWithJSON(w, logger, http.StatusUnauthorized, types.ErrorResponse{Error: "Invalid token"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), email)))
		})
	}
}

// AuthHandler handles login requests.
type AuthHandler struct {
	users    service.UserService
	secret   string
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users service.UserService, secret string, tokenTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, secret: secret, tokenTTL: tokenTTL, logger: logger}
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies the credentials and issues a bearer token.
// POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}
	if req.Email == "" || req.Password == "" {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	token, err := jwt.NewToken(user.Email, h.secret, h.tokenTTL)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.TokenResponse{Token: token})
}
