package models

import "time"

// Role names seeded by migration.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is owned by the user service. Deactivation is a soft delete via
// IsActive; the row is never removed.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	RoleID       int64     `db:"role_id" json:"-"`
	RoleName     string    `db:"role_name" json:"roleName"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// Role is a named authorization level referenced by users and checked by
// the gateway's path rules.
type Role struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
