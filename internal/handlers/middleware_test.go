package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/edutrack/apiserver/internal/auth"
	"github.com/edutrack/apiserver/types"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testCodec() *auth.TokenCodec {
	return auth.NewTokenCodec("test-secret", time.Hour)
}

// identityEcho records the identity the middleware attached, if any.
func identityEcho(got *auth.Identity, found *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, *found = auth.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	codec := testCodec()
	want := auth.Identity{UserID: 7, Role: types.RoleTrainer, Email: "t@x.io"}
	token, err := codec.Issue(want)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	var got auth.Identity
	var found bool
	handler := RequireAuth(codec, testLogger())(identityEcho(&got, &found))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if !found || got != want {
		t.Fatalf("identity = %+v (found=%v), want %+v", got, found, want)
	}
}

func TestRequireAuthRejections(t *testing.T) {
	codec := testCodec()
	token, err := codec.Issue(auth.Identity{UserID: 1, Role: types.RoleStudent})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	otherCodec := auth.NewTokenCodec("other-secret", time.Hour)
	forged, err := otherCodec.Issue(auth.Identity{UserID: 1, Role: types.RoleStudent})
	if err != nil {
		t.Fatalf("issue forged token: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic " + token},
		{"scheme only", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong signature", "Bearer " + forged},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := RequireAuth(codec, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatalf("handler must not run")
			}))

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			// Every rejection reads the same from the outside.
			if msg := decodeError(t, rec); msg != unauthorizedMessage {
				t.Fatalf("error = %q, want %q", msg, unauthorizedMessage)
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireRoles(testLogger(), types.RoleSuperadmin)(next)

	serve := func(id *auth.Identity) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/users/1", nil)
		if id != nil {
			req = req.WithContext(auth.WithIdentity(req.Context(), *id))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := serve(&auth.Identity{UserID: 1, Role: types.RoleSuperadmin}); rec.Code != http.StatusOK {
		t.Fatalf("superadmin: status = %d, want 200", rec.Code)
	}

	rec := serve(&auth.Identity{UserID: 2, Role: types.RoleTrainer})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("trainer: status = %d, want 403", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "insufficient permissions" {
		t.Fatalf("error = %q", msg)
	}

	// No identity in context means the gate was mounted without RequireAuth.
	if rec := serve(nil); rec.Code != http.StatusInternalServerError {
		t.Fatalf("no identity: status = %d, want 500", rec.Code)
	}
}
