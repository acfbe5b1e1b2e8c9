package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/edutrack/apiserver/types"
)

func TestGatePermitsListedRole(t *testing.T) {
	gate := NewGate(types.RoleSuperadmin)

	if err := gate.Check(Identity{UserID: 1, Role: types.RoleSuperadmin}); err != nil {
		t.Fatalf("expected superadmin to pass: %v", err)
	}
}

func TestGateDeniesOtherRoles(t *testing.T) {
	gate := NewGate(types.RoleSuperadmin)

	denied := []types.Role{
		types.RoleCenterAdmin,
		types.RoleTrainer,
		types.RoleStudent,
		types.RoleContentAdmin,
		types.Role("unknown"),
		"",
	}
	for _, role := range denied {
		if err := gate.Check(Identity{UserID: 1, Role: role}); !errors.Is(err, ErrForbidden) {
			t.Fatalf("role %q: expected ErrForbidden, got %v", role, err)
		}
	}
}

func TestGateMultipleRoles(t *testing.T) {
	gate := NewGate(types.RoleSuperadmin, types.RoleCenterAdmin)

	if err := gate.Check(Identity{Role: types.RoleCenterAdmin}); err != nil {
		t.Fatalf("expected center_admin to pass: %v", err)
	}
	if err := gate.Check(Identity{Role: types.RoleStudent}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for student, got %v", err)
	}
}

func TestIdentityContextRoundTrip(t *testing.T) {
	id := Identity{UserID: 7, Role: types.RoleTrainer, Email: "t@x.io"}

	ctx := WithIdentity(context.Background(), id)
	got, ok := IdentityFromContext(ctx)
	if !ok {
		t.Fatalf("expected identity in context")
	}
	if got != id {
		t.Fatalf("identity changed: %+v", got)
	}

	if _, ok := IdentityFromContext(context.Background()); ok {
		t.Fatalf("expected no identity in fresh context")
	}
}
