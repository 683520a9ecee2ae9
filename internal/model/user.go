package model

import (
	"fmt"
	"time"
)

// Role is the capability tag assigned at registration. It is immutable:
// no update path writes the column after the row is inserted.
type Role string

const (
	RoleNGO       Role = "ngo"
	RoleVolunteer Role = "volunteer"
)

// ParseRole validates a client-supplied role string against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleNGO, RoleVolunteer:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role: %q", s)
}

func (r Role) IsNGO() bool       { return r == RoleNGO }
func (r Role) IsVolunteer() bool { return r == RoleVolunteer }

type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash *string   `db:"password_hash" json:"-"` // Nullable for OAuth users
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
