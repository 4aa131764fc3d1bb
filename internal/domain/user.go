package domain

import "time"

// Role distinguishes end-users from administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsAdmin reports whether the role carries administrative rights.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User is the account model for both students and administrators.
// School is meaningful only for role=user.
type User struct {
	ID           string
	Email        string
	Name         string
	School       *string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
