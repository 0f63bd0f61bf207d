// internal/repository/user_repo.go
package repository

import (
	"context"

	"user-service/internal/domain"
)

// UserRepository defines the interface for user data operations.
// Every method runs against the given DBExecutor, so callers decide whether it
// takes part in a transaction.
type UserRepository interface {
	// CreateUser inserts user and sets its ID.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// ListUsers returns all users ordered by ID.
	ListUsers(ctx context.Context, q DBExecutor) ([]domain.User, error)
	// GetUserByID returns util.ErrUserNotFound if no user has the given ID.
	GetUserByID(ctx context.Context, q DBExecutor, id int64) (*domain.User, error)
	// UpdateUser overwrites username and email of the user with user.ID.
	UpdateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// DeleteUser removes the user with the given ID.
	DeleteUser(ctx context.Context, q DBExecutor, id int64) error
}
