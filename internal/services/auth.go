package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/edutrack/apiserver/internal/auth"
	"github.com/edutrack/apiserver/internal/store"
	"github.com/edutrack/apiserver/types"
)

const resetTokenBytes = 32

// Notifier hands outbound email tasks to a background delivery channel.
// Implementations must not block the caller on delivery.
type Notifier interface {
	PasswordReset(email, token string)
	TrainerWelcome(email, name string)
}

// AuthService implements login and the password-reset token lifecycle.
type AuthService struct {
	users    UserRepository
	hasher   *auth.Hasher
	codec    *auth.TokenCodec
	notifier Notifier
	resetTTL time.Duration
	now      func() time.Time
	log      *logrus.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(
	users UserRepository,
	hasher *auth.Hasher,
	codec *auth.TokenCodec,
	notifier Notifier,
	resetTTL time.Duration,
	log *logrus.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		codec:    codec,
		notifier: notifier,
		resetTTL: resetTTL,
		now:      time.Now,
		log:      log,
	}
}

// Login verifies credentials and returns a bearer token with the user's
// public profile. Unknown email and wrong password both yield
// auth.ErrInvalidCredentials; the inactive check runs only after the
// credentials have been verified, so it cannot be used to probe accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, types.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", types.User{}, auth.ErrInvalidCredentials
		}
		return "", types.User{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", types.User{}, auth.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", types.User{}, auth.ErrAccountInactive
	}

	token, err := s.codec.Issue(auth.Identity{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
	})
	if err != nil {
		return "", types.User{}, err
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		// Login already succeeded; losing the timestamp is not worth a 500.
		s.log.WithError(err).WithField("user_id", user.ID).Warn("record last login")
	}

	return token, user, nil
}

// RequestPasswordReset issues a reset token for the account, if it exists.
// Callers receive no signal about whether the email was known; the handler
// returns the same acknowledgment either way. The notification is handed to
// the background channel and never awaited.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}

	expiresAt := s.now().Add(s.resetTTL)
	if err := s.users.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	s.notifier.PasswordReset(user.Email, token)
	return nil
}

// ResetPassword consumes a reset token and installs the new password. The
// lookup, password swap, and token clearing happen in one conditional store
// update, so a token is consumable at most once; unknown and expired tokens
// are indistinguishable to the caller.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if _, err := s.users.ConsumeResetToken(ctx, token, hash, s.now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return auth.ErrResetTokenInvalid
		}
		return err
	}
	return nil
}

// newResetToken returns a 64-character hex token from a cryptographically
// secure source.
func newResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
