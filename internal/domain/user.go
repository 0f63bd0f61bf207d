// internal/domain/user.go
package domain

// User represents a user account.
type User struct {
	ID       int64  `db:"id" json:"id"`             // Primary key, assigned by storage
	Username string `db:"username" json:"username"` // Unique, at most 80 characters
	Email    string `db:"email" json:"email"`       // Unique, at most 120 characters
}

// NewUser creates a new, not yet persisted User.
func NewUser(username, email string) *User {
	return &User{
		Username: username,
		Email:    email,
	}
}

// UserPatch is a partial update. Nil fields are left unchanged.
type UserPatch struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// Apply copies the fields present in p onto u.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}
