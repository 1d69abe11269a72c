package models

import (
	"time"
)

// DefaultRole is assigned to users created without an explicit role.
const DefaultRole = "member"

// User represents a member of the studio team.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewUser creates a new User, applying the default role when none is given.
func NewUser(name, email, role string) *User {
	if role == "" {
		role = DefaultRole
	}
	return &User{
		Name:  name,
		Email: email,
		Role:  role,
	}
}
