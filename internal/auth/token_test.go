package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/edutrack/apiserver/types"
)

const testSecret = "test-secret"

func testIdentity() Identity {
	return Identity{UserID: 1, Role: types.RoleTrainer, Email: "t@x.io"}
}

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)

	token, err := codec.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != testIdentity() {
		t.Fatalf("claims changed in transit: got %+v", got)
	}
}

func TestTokenExpiry(t *testing.T) {
	issued := time.Now()
	codec := NewTokenCodec(testSecret, 3600*time.Second)
	codec.now = func() time.Time { return issued }

	token, err := codec.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Still valid just before expiry.
	codec.now = func() time.Time { return issued.Add(3599 * time.Second) }
	if _, err := codec.Verify(token); err != nil {
		t.Fatalf("verify before expiry: %v", err)
	}

	// Expired one second past the TTL.
	codec.now = func() time.Time { return issued.Add(3601 * time.Second) }
	if _, err := codec.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenTamperedSignature(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)

	token, err := codec.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip one character of the signature segment.
	last := token[len(token)-1]
	replacement := byte('a')
	if last == 'a' {
		replacement = 'b'
	}
	tampered := token[:len(token)-1] + string(replacement)

	if _, err := codec.Verify(tampered); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestTokenTamperedPayload(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)

	token, err := codec.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	payload := []byte(parts[1])
	if payload[3] != 'A' {
		payload[3] = 'A'
	} else {
		payload[3] = 'B'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := codec.Verify(tampered); err == nil {
		t.Fatalf("expected tampered payload to be rejected")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)
	other := NewTokenCodec("other-secret", time.Hour)

	token, err := codec.Issue(testIdentity())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)

	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		if _, err := codec.Verify(tokenString); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("Verify(%q): expected ErrTokenMalformed, got %v", tokenString, err)
		}
	}
}
