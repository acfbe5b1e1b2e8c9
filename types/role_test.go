package types

import (
	"encoding/json"
	"testing"
)

func TestParseRole(t *testing.T) {
	valid := []string{"superadmin", "center_admin", "trainer", "student", "content_admin"}
	for _, s := range valid {
		role, err := ParseRole(s)
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", s, err)
		}
		if role.String() != s {
			t.Fatalf("ParseRole(%q) = %q", s, role)
		}
	}

	invalid := []string{"", "admin", "SUPERADMIN", "teacher", "superadmin "}
	for _, s := range invalid {
		if _, err := ParseRole(s); err == nil {
			t.Fatalf("ParseRole(%q): expected error", s)
		}
	}
}

func TestRoleUnmarshalJSON(t *testing.T) {
	var role Role
	if err := json.Unmarshal([]byte(`"trainer"`), &role); err != nil {
		t.Fatalf("unmarshal valid role: %v", err)
	}
	if role != RoleTrainer {
		t.Fatalf("got %q", role)
	}

	if err := json.Unmarshal([]byte(`"wizard"`), &role); err == nil {
		t.Fatalf("expected error for unknown role")
	}
	if err := json.Unmarshal([]byte(`42`), &role); err == nil {
		t.Fatalf("expected error for non-string role")
	}
}
