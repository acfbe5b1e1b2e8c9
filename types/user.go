package types

import "time"

// User represents an account in the system.
// It contains identity, role, credential, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Name is the user's display or full name.
	Name string `json:"name" db:"name"`

	// Email is the user's email address. The database enforces uniqueness.
	Email string `json:"email" db:"email"`

	// Role indicates the user's authorization level within the system.
	Role Role `json:"role" db:"role"`

	// Mobile is the user's phone number.
	Mobile string `json:"mobile,omitempty" db:"mobile"`

	// InstituteID links the user to an institute, if any.
	InstituteID *int `json:"institute_id" db:"institute_id"`

	// BatchID is an opaque batch label assigned during enrollment or import.
	BatchID string `json:"batch_id,omitempty" db:"batch_id"`

	// IsActive gates login: inactive accounts are rejected even with
	// correct credentials.
	IsActive bool `json:"is_active" db:"is_active"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// ResetToken holds a pending password-reset token. It is set together
	// with ResetTokenExpiresAt and the pair is cleared together once the
	// token is consumed or replaced.
	ResetToken *string `json:"-" db:"reset_token"`

	// ResetTokenExpiresAt is the absolute expiry of ResetToken.
	ResetTokenExpiresAt *time.Time `json:"-" db:"reset_token_expires_at"`

	// LastLoginAt records the most recent successful login.
	LastLoginAt *time.Time `json:"last_login_at" db:"last_login_at"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PublicProfile is the subset of user fields safe to return from login.
type PublicProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Profile returns the public projection of the user.
func (u User) Profile() PublicProfile {
	return PublicProfile{Name: u.Name, Email: u.Email, Role: u.Role}
}
