// internal/api/handler/user.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"eaglebank/internal/domain"
	"eaglebank/internal/service"
	"eaglebank/internal/util"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UserHandler handles HTTP requests for user lifecycle operations.
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// AddressRequest represents a postal address in request bodies.
type AddressRequest struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	Line3    string `json:"line3"`
	Town     string `json:"town"`
	County   string `json:"county"`
	Postcode string `json:"postcode"`
}

func (a AddressRequest) toDomain() domain.Address {
	return domain.Address{
		Line1:    a.Line1,
		Line2:    a.Line2,
		Line3:    a.Line3,
		Town:     a.Town,
		County:   a.County,
		Postcode: a.Postcode,
	}
}

// CreateUserRequest represents the request body for user registration.
type CreateUserRequest struct {
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Password    string         `json:"password"`
	PhoneNumber string         `json:"phone_number"`
	Address     AddressRequest `json:"address"`
}

// CreateUser handles user registration. Unauthenticated.
// POST /v1/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Address.Line1 == "" {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}

	user, err := h.users.CreateUser(r.Context(), service.CreateUserParams{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address.toDomain(),
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, user)
}

// GetUser returns the principal's own user record.
// GET /v1/users/{userID}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, principal, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), userID, principal)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, user)
}

// UpdateUserRequest represents the request body for a profile update.
type UpdateUserRequest struct {
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phone_number"`
	Address     AddressRequest `json:"address"`
}

// UpdateUser overwrites the principal's own profile fields.
// PATCH /v1/users/{userID}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, principal, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}
	if req.Name == "" || req.Email == "" || req.Address.Line1 == "" {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}

	user, err := h.users.UpdateUser(r.Context(), userID, principal, service.UpdateUserParams{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address.toDomain(),
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, user)
}

// DeleteUser removes the principal's own record.
// DELETE /v1/users/{userID}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, principal, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	if err := h.users.DeleteUser(r.Context(), userID, principal); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requestScope extracts the target user id and the acting principal,
// responding with the appropriate error when either is missing.
func (h *UserHandler) requestScope(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, bool) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondWithError(w, h.logger, util.ErrValidation)
		return uuid.Nil, "", false
	}
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrForbidden)
		return uuid.Nil, "", false
	}
	return userID, principal, true
}
