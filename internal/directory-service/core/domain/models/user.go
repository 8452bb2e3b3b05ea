package models

import (
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "user"
)

type User struct {
	UserId       string     `json:"user_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash []byte     `json:"-"`
	Role         string     `json:"role"`
	// ResetCode and ResetExpiresAt are both set by a forgot-password request
	// and both cleared by a successful reset. Never one without the other.
	ResetCode      *string    `json:"-"`
	ResetExpiresAt *time.Time `json:"-"`
}

// HasActiveReset reports whether a reset request is pending. Expiry is
// checked lazily at reset time, not here.
func (u User) HasActiveReset() bool {
	return u.ResetCode != nil && u.ResetExpiresAt != nil
}
