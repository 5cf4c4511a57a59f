package auth

import (
	"time"

	"github.com/campushub/campushub/internal/authz"
)

// User is an account with its credential and identity fields. The password
// hash never leaves this package.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         authz.Role
	DepartmentID int64 // zero when unassigned (PRINCIPAL)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the snapshot baked into a session token at issuance.
func (u *User) Identity() authz.Session {
	return authz.Session{
		UserID:       u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
	}
}
