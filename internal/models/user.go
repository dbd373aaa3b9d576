package models

import "time"

// UserRole represents the roles accepted by the console.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleUser    UserRole = "user"
	RoleTeacher UserRole = "teacher"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleTeacher:
		return true
	}
	return false
}

// User represents an application user stored in the users table.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// CreateUserRequest requires a password; it is never echoed back.
type CreateUserRequest struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Role     UserRole `json:"role" validate:"required,oneof=admin user teacher"`
	Password string   `json:"password" validate:"required,min=6"`
}

// UpdateUserRequest is a partial update; a nil field is left unchanged.
type UpdateUserRequest struct {
	Name     *string   `json:"name" validate:"omitempty,min=1"`
	Email    *string   `json:"email" validate:"omitempty,email"`
	Role     *UserRole `json:"role" validate:"omitempty,oneof=admin user teacher"`
	Password *string   `json:"password,omitempty" validate:"omitempty,min=6"`
}
