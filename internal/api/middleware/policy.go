package middleware

import (
	"strings"

	"github.com/rewardsystem/rewards-api/internal/core/domain"
)

// RoutePolicy declares what a path prefix requires: nothing (Public), any
// authenticated caller (empty Roles), or membership in Roles.
type RoutePolicy struct {
	Prefix string
	Public bool
	Roles  []domain.Role
}

// Allows reports whether role satisfies the policy's role set. An empty set
// admits any authenticated caller.
func (p RoutePolicy) Allows(role domain.Role) bool {
	if len(p.Roles) == 0 {
		return true
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// PolicyTable is an ordered set of route policies evaluated by
// longest-prefix match. Declaration order does not matter; specificity does.
type PolicyTable []RoutePolicy

// Match returns the policy with the longest prefix matching path. Paths that
// match nothing fall back to the deny-by-default policy: authenticated, no
// specific role.
func (t PolicyTable) Match(path string) RoutePolicy {
	best := RoutePolicy{}
	bestLen := -1
	for _, p := range t {
		if strings.HasPrefix(path, p.Prefix) && len(p.Prefix) > bestLen {
			best = p
			bestLen = len(p.Prefix)
		}
	}
	return best
}
