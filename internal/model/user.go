package model

import "time"

// Role is the access level stored in the users table and in the JWT
// "role" claim.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// User is an account that can own bookings.  Guests may book without one.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string // bcrypt
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken mirrors refresh_tokens.  Only the SHA-256 hash of the
// token handed to the client is stored.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
