// Package authz decides whether verified claims grant a capability,
// independently of any transport.
package authz

import (
	"github.com/gestionstock/product-api/internal/core/domain"
)

// Capability names an operation class that requires a role grant.
type Capability string

// CapabilityManageProducts covers product create, update and delete.
const CapabilityManageProducts Capability = "products:manage"

// Policy maps each capability to the set of roles granted it.
type Policy struct {
	grants map[Capability]map[string]struct{}
}

// NewPolicy builds a Policy from capability -> roles.
func NewPolicy(grants map[Capability][]string) *Policy {
	p := &Policy{grants: make(map[Capability]map[string]struct{}, len(grants))}
	for c, roles := range grants {
		set := make(map[string]struct{}, len(roles))
		for _, r := range roles {
			set[r] = struct{}{}
		}
		p.grants[c] = set
	}
	return p
}

// DefaultPolicy grants product management to the gestionnaire role only.
func DefaultPolicy() *Policy {
	return NewPolicy(map[Capability][]string{
		CapabilityManageProducts: {domain.RoleManager},
	})
}

// Authorize returns nil when claims grant c. Missing claims fail with
// ErrAuthenticationRequired; a role without the grant fails with
// ErrForbidden. Unknown capabilities are never granted.
func (p *Policy) Authorize(claims *domain.Claims, c Capability) error {
	if claims == nil {
		return domain.ErrAuthenticationRequired
	}
	if _, ok := p.grants[c][claims.Role]; !ok {
		return domain.ErrForbidden
	}
	return nil
}
