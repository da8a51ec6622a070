package model

import "time"

// Role values accepted by the user directory. The external identity
// provider issues the uid; the role is stored alongside it on first
// signup and is never updated afterwards.
const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
)

// ValidRole reports whether the given role is one the directory accepts.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleFaculty
}

// User represents a row in the `users` table. The primary key is the
// provider-issued uid rather than an auto-increment id, because the
// service trusts the external identity provider for identification.
//
// Fields:
//  UID          – provider-issued identifier (primary key).
//  Email        – email address, unique across users.
//  PasswordHash – bcrypt hash, only set for accounts created via /auth/signup.
//  Role         – "student" or "faculty".
//  CreatedAt    – timestamp of first signup.
type User struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the token is stored; the raw value goes back to the
// client once and is never persisted.
type RefreshToken struct {
	ID        uint64
	UserUID   string
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
