package auth

import "errors"

// Token verification failures. Handlers collapse all of these into a single
// 401 response; the distinction exists for logging only.
var (
	ErrTokenMissing   = errors.New("missing bearer token")
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenSignature = errors.New("invalid token signature")
	ErrTokenExpired   = errors.New("token expired")
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password so that login responses cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrAccountInactive is returned only after credentials have been verified.
var ErrAccountInactive = errors.New("account is inactive")

// ErrForbidden is returned when an authenticated identity lacks a permitted role.
var ErrForbidden = errors.New("insufficient permissions")

// ErrResetTokenInvalid covers both unknown and expired reset tokens; the two
// cases are deliberately indistinguishable to callers.
var ErrResetTokenInvalid = errors.New("reset token invalid or expired")
