package domain

import "time"

type UserRole string

const (
	UserRoleStudent UserRole = "STUDENT"
	UserRoleAdmin   UserRole = "ADMIN"
)

type User struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserSummary is the subset of a user exposed to other group members.
type UserSummary struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
