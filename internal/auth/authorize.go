package auth

import "github.com/edutrack/apiserver/types"

// Gate authorizes identities against a fixed set of permitted roles.
// It takes an already-authenticated Identity as input, so a route cannot be
// authorized without having been authenticated first.
type Gate struct {
	allowed map[types.Role]bool
}

// NewGate builds a gate permitting exactly the given roles.
func NewGate(roles ...types.Role) Gate {
	allowed := make(map[types.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return Gate{allowed: allowed}
}

// Check returns ErrForbidden unless the identity's role is permitted.
func (g Gate) Check(id Identity) error {
	if !g.allowed[id.Role] {
		return ErrForbidden
	}
	return nil
}
