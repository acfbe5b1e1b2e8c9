package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edutrack/apiserver/types"
)

// Claims is the payload signed into a bearer token. Role and email are
// frozen at issuance; a later role change does not invalidate tokens
// already in flight.
type Claims struct {
	Role  types.Role `json:"role"`
	Email string     `json:"email"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256-signed bearer tokens. Issue and
// Verify are pure and safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec constructs a codec from the signing secret and the default
// token lifetime.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs the identity into a bearer token valid for the codec's TTL.
func (c *TokenCodec) Issue(id Identity) (string, error) {
	now := c.now()
	claims := Claims{
		Role:  id.Role,
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(id.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify parses and validates a token and returns the embedded identity.
// Failures are one of ErrTokenMalformed, ErrTokenSignature, or
// ErrTokenExpired; expiry is checked against the codec's own clock with no
// grace window.
func (c *TokenCodec) Verify(tokenString string) (Identity, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Identity{}, ErrTokenSignature
		default:
			return Identity{}, ErrTokenMalformed
		}
	}
	if !token.Valid {
		return Identity{}, ErrTokenMalformed
	}

	userID, err := strconv.Atoi(strings.TrimSpace(claims.Subject))
	if err != nil || userID < 1 {
		return Identity{}, ErrTokenMalformed
	}
	if !claims.Role.Valid() {
		return Identity{}, ErrTokenMalformed
	}

	return Identity{
		UserID: userID,
		Role:   claims.Role,
		Email:  claims.Email,
	}, nil
}
