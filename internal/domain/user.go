package domain

import "time"

// Role gates access to operations.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleAgent    Role = "agent"
	RoleCustomer Role = "customer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleAgent, RoleCustomer:
		return true
	}
	return false
}

// IsStaff reports whether the role handles complaints on the operator side.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleAgent
}

// User is an authenticated principal.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
}
