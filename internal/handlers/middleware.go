package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/edutrack/apiserver/internal/auth"
	"github.com/edutrack/apiserver/types"
)

// unauthorizedMessage is the single external message for every token
// failure. The specific reason only ever reaches the logs; distinguishing
// them in responses would leak which part of a forged token was wrong.
const unauthorizedMessage = "unauthorized"

// RequireAuth verifies the bearer token and attaches the decoded identity
// to the request context.
func RequireAuth(codec *auth.TokenCodec, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				log.WithError(err).Debug("reject request without bearer token")
				writeError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			identity, err := codec.Verify(tokenString)
			if err != nil {
				log.WithError(err).Debug("reject bearer token")
				writeError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			ctx := auth.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles allows the request through only when the authenticated
// identity holds one of the given roles. It must be mounted after
// RequireAuth; reaching the gate without an identity is a route wiring bug
// and is reported as a server error, not a client one.
func RequireRoles(log *logrus.Logger, roles ...types.Role) func(http.Handler) http.Handler {
	gate := auth.NewGate(roles...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := auth.IdentityFromContext(r.Context())
			if !ok {
				log.WithField("path", r.URL.Path).Error("authorization gate reached without identity")
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if err := gate.Check(identity); err != nil {
				writeError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", auth.ErrTokenMissing
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", auth.ErrTokenMissing
	}
	return token, nil
}
