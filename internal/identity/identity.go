package identity

import (
	"context"
	"encoding/json"
	"fmt"
)

// RoleLookup is the boundary to the identity service: given an approver id,
// return the roles it holds. The engine never manages users itself; it only
// checks that the current step's required role is among the returned set.
type RoleLookup interface {
	RolesOf(ctx context.Context, approverID string) ([]string, error)
}

// Static is a RoleLookup backed by a fixed map, provisioned from
// configuration. Suitable for deployments where role assignment lives in
// an ops-managed env var rather than a directory service.
type Static struct {
	roles map[string][]string
}

func NewStatic(roles map[string][]string) *Static {
	if roles == nil {
		roles = map[string][]string{}
	}
	return &Static{roles: roles}
}

// NewStaticFromJSON parses `{"approver-id": ["role", ...], ...}`.
func NewStaticFromJSON(raw string) (*Static, error) {
	if raw == "" {
		return NewStatic(nil), nil
	}
	var m map[string][]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("parse approver roles: %w", err)
	}
	return NewStatic(m), nil
}

func (s *Static) RolesOf(_ context.Context, approverID string) ([]string, error) {
	return s.roles[approverID], nil
}

// HasRole is a convenience for callers holding a role slice.
func HasRole(roles []string, want string) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}
