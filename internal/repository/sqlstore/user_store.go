// internal/repository/sqlstore/user_store.go
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"user-service/internal/domain"
	"user-service/internal/repository"
	"user-service/internal/util"

	"github.com/jmoiron/sqlx"
)

// UserRepository implements repository.UserRepository on top of sqlx.
// Queries are written with '?' placeholders and rebound for the driver in use.
type UserRepository struct {
	bindType int
}

// NewUserRepository creates a new UserRepository for the driver behind db.
// The db itself is not stored; each method receives its DBExecutor.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{bindType: sqlx.BindType(db.DriverName())}
}

func (r *UserRepository) rebind(query string) string {
	return sqlx.Rebind(r.bindType, query)
}

// CreateUser inserts a new user and scans the generated ID back into user.
func (r *UserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := r.rebind(`INSERT INTO users (username, email) VALUES (?, ?) RETURNING id`)
	if err := q.QueryRowContext(ctx, query, user.Username, user.Email).Scan(&user.ID); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// ListUsers retrieves every user in insertion order.
func (r *UserRepository) ListUsers(ctx context.Context, q repository.DBExecutor) ([]domain.User, error) {
	users := []domain.User{}
	query := `SELECT id, username, email FROM users ORDER BY id`
	if err := q.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	var user domain.User
	query := r.rebind(`SELECT id, username, email FROM users WHERE id = ?`)
	if err := q.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// UpdateUser writes username and email of user back to its row.
func (r *UserRepository) UpdateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := r.rebind(`UPDATE users SET username = ?, email = ? WHERE id = ?`)
	result, err := q.ExecContext(ctx, query, user.Username, user.Email, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	return checkAffected(result, user.ID)
}

// DeleteUser removes the user with the given ID.
func (r *UserRepository) DeleteUser(ctx context.Context, q repository.DBExecutor, id int64) error {
	query := r.rebind(`DELETE FROM users WHERE id = ?`)
	result, err := q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return checkAffected(result, id)
}

func checkAffected(result sql.Result, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for user %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrUserNotFound
	}
	return nil
}
