package entity

import (
	"time"
)

// Role distinguishes the two kinds of accounts. It is assigned at
// registration and immutable afterwards.
type Role string

const (
	RolePassenger Role = "passenger"
	RoleDriver    Role = "driver"
)

// User is the aggregate root for the identity domain.
// Passwords are stored as bcrypt hashes in Password field
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
