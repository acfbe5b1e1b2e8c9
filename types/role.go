package types

import (
	"encoding/json"
	"fmt"
)

// Role is the closed set of authorization levels a user can hold.
// Values outside this set are rejected wherever a role is assigned.
type Role string

const (
	RoleSuperadmin   Role = "superadmin"
	RoleCenterAdmin  Role = "center_admin"
	RoleTrainer      Role = "trainer"
	RoleStudent      Role = "student"
	RoleContentAdmin Role = "content_admin"
)

// ParseRole validates a raw role string and returns the typed value.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperadmin, RoleCenterAdmin, RoleTrainer, RoleStudent, RoleContentAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}

// UnmarshalJSON enforces the closed set when roles arrive in request bodies.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
