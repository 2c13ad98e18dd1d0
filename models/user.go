package models

import "time"

// Role is the authorization level assigned to a user account.
type Role string

const (
	// RoleUser is the default role for every registered account.
	RoleUser Role = "user"

	// RoleAdmin grants access to administrative endpoints.
	RoleAdmin Role = "admin"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique login identifier chosen at registration.
	Username string `json:"username"`

	// Email is the unique, OTP-verified address of the account owner.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a hash, never plaintext. Excluded from JSON.
	PasswordHash string `json:"-"`

	// Role determines which protected endpoints the account may reach.
	Role Role `json:"role"`

	// FailedLoginAttempts counts consecutive failed password checks.
	// Reset to zero on every successful login.
	FailedLoginAttempts int `json:"-"`

	// AccountLocked is set once FailedLoginAttempts reaches the configured
	// threshold. A locked account rejects logins until a password reset.
	AccountLocked bool `json:"-"`

	// LastLogin is the timestamp of the most recent successful login.
	// Nil until the user has logged in at least once.
	LastLogin *time.Time `json:"last_login,omitempty"`

	// ResetPasswordTokenHash is the SHA-256 hex digest of the raw password
	// reset token mailed to the user. The raw token is never stored.
	// Set and cleared together with ResetPasswordExpiry.
	ResetPasswordTokenHash *string `json:"-"`

	// ResetPasswordExpiry bounds the validity of the reset token.
	ResetPasswordExpiry *time.Time `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
