// internal/api/handler/user.go
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"user-service/internal/api/types"
	"user-service/internal/domain"
	"user-service/internal/service"
	"user-service/internal/util"
)

// Operation names used in 500 messages, e.g. "Error creating user: ...".
const (
	opCreate = "creating user"
	opList   = "fetching users"
	opGet    = "fetching user"
	opUpdate = "updating user"
	opDelete = "deleting user"
)

// UserHandler handles HTTP requests related to user operations.
type UserHandler struct {
	service service.UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: svc,
		logger:  logger,
	}
}

// Helper function to send JSON responses.
func (h *UserHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	RespondWithJSON(w, h.logger, code, payload)
}

// respondWithError maps err to a status code. Missing users are 404, everything
// else is a 500 carrying the error text.
func (h *UserHandler) respondWithError(w http.ResponseWriter, op string, err error) {
	if util.IsError(err, util.ErrNotFound) {
		h.respondWithJSON(w, http.StatusNotFound, types.MessageResponse{Message: "User not found"})
		return
	}

	h.logger.Error("User operation failed", "operation", op, "error", err)
	h.respondWithJSON(w, http.StatusInternalServerError, types.MessageResponse{
		Message: fmt.Sprintf("Error %s: %s", op, err.Error()),
	})
}

// RespondWithJSON writes payload as JSON with the given status code.
func RespondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// userID reads the {id} path parameter. The route only matches digits, so the
// only failure left is an overflow, and no stored user can have such an ID.
func userID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, util.ErrUserNotFound
	}
	return id, nil
}

// CreateUserRequest represents the request body for creating a user.
// Pointers distinguish an absent field from an empty string.
type CreateUserRequest struct {
	Username *string `json:"username" validate:"required"`
	Email    *string `json:"email" validate:"required"`
}

// Test is a liveness route.
// GET /test
func (h *UserHandler) Test(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, types.MessageResponse{Message: "Test route is working!"})
}

// CreateUser handles the create user request.
// POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, opCreate, fmt.Errorf("invalid JSON body: %w", err))
		return
	}
	if err := validateRequest(req); err != nil {
		h.respondWithError(w, opCreate, err)
		return
	}

	user, err := h.service.CreateUser(r.Context(), *req.Username, *req.Email)
	if err != nil {
		h.respondWithError(w, opCreate, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, types.UserResponse{Message: "User created", User: user})
}

// ListUsers handles the list users request.
// GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.respondWithError(w, opList, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}

	h.respondWithJSON(w, http.StatusOK, types.UserListResponse{Users: users})
}

// GetUser handles the get user request.
// GET /users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.respondWithError(w, opGet, err)
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		h.respondWithError(w, opGet, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.UserResponse{User: user})
}

// UpdateUser handles the partial update request. Fields missing from the body
// keep their current value.
// PUT /users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.respondWithError(w, opUpdate, err)
		return
	}

	var patch domain.UserPatch
	if decodeErr := json.NewDecoder(r.Body).Decode(&patch); decodeErr != nil {
		// An unknown user is still a 404, whatever the body looks like.
		if _, err := h.service.GetUser(r.Context(), id); err != nil {
			h.respondWithError(w, opUpdate, err)
			return
		}
		h.respondWithError(w, opUpdate, fmt.Errorf("invalid JSON body: %w", decodeErr))
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, patch)
	if err != nil {
		h.respondWithError(w, opUpdate, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.UserResponse{Message: "User updated", User: user})
}

// DeleteUser handles the delete user request.
// DELETE /users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.respondWithError(w, opDelete, err)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		h.respondWithError(w, opDelete, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.MessageResponse{Message: "User deleted"})
}
