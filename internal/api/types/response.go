// internal/api/types/response.go
package types

import "user-service/internal/domain"

// MessageResponse is the body of responses that only carry a message,
// including every error response.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse wraps a single user, optionally with a message.
type UserResponse struct {
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user"`
}

// UserListResponse wraps all users.
type UserListResponse struct {
	Users []domain.User `json:"users"`
}
