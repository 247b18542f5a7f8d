package auth

import (
	"context"

	"github.com/google/uuid"
)

// RoleSource resolves the roles held by an actor. Backed by the actor_role
// table in production; tests substitute a map.
type RoleSource interface {
	RolesOf(ctx context.Context, actorID uuid.UUID) ([]string, error)
}

// EntityPolicy lists the roles allowed to touch one kind of entity.
type EntityPolicy struct {
	EntityKind   string
	AllowedRoles []string
}

// DefaultPolicies are the entity access policies for the reception backend.
// Any kind without a policy is denied (default-deny).
func DefaultPolicies() []EntityPolicy {
	return []EntityPolicy{
		{EntityKind: "patient", AllowedRoles: []string{"admin", "doctor", "nurse", "receptionist"}},
		{EntityKind: "doctor", AllowedRoles: []string{"admin", "doctor", "nurse", "receptionist"}},
		{EntityKind: "reception", AllowedRoles: []string{"admin", "doctor", "receptionist"}},
		{EntityKind: "service", AllowedRoles: []string{"admin", "doctor", "receptionist"}},
	}
}

// Provider answers the permission questions asked by the intake core:
// role membership and per-entity access.
type Provider struct {
	roles    RoleSource
	policies map[string][]string
}

// NewProvider builds a Provider over the given role source and policies.
func NewProvider(roles RoleSource, policies []EntityPolicy) *Provider {
	m := make(map[string][]string, len(policies))
	for _, p := range policies {
		m[p.EntityKind] = p.AllowedRoles
	}
	return &Provider{roles: roles, policies: m}
}

// HasRole reports whether the actor holds the role. The admin role implies
// every other role.
func (p *Provider) HasRole(ctx context.Context, actorID uuid.UUID, role string) (bool, error) {
	held, err := p.roles.RolesOf(ctx, actorID)
	if err != nil {
		return false, err
	}
	for _, r := range held {
		if r == role || r == "admin" {
			return true, nil
		}
	}
	return false, nil
}

// CanAccessEntity reports whether the actor may touch an entity of the given
// kind. Kinds without a registered policy are denied.
func (p *Provider) CanAccessEntity(ctx context.Context, entityKind string, actorID uuid.UUID) (bool, error) {
	allowed, ok := p.policies[entityKind]
	if !ok {
		return false, nil
	}
	held, err := p.roles.RolesOf(ctx, actorID)
	if err != nil {
		return false, err
	}
	for _, r := range held {
		if r == "admin" {
			return true, nil
		}
		for _, a := range allowed {
			if r == a {
				return true, nil
			}
		}
	}
	return false, nil
}
