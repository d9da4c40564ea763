package domain

import "time"

// UserRole enumerates account roles.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// Valid reports whether the role is a known value.
func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the domain model for shop accounts. PasswordHash is never
// serialized; handlers build responses from the other fields only.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
