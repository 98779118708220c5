package middleware

import (
	"testing"

	"github.com/rewardsystem/rewards-api/internal/core/domain"
)

func testTable() PolicyTable {
	return PolicyTable{
		{Prefix: "/public/", Public: true},
		{Prefix: "/auth/", Public: true},
		{Prefix: "/health", Public: true},
		{Prefix: "/admin/", Roles: []domain.Role{domain.RoleAdmin}},
		{Prefix: "/manager/", Roles: []domain.Role{domain.RoleManager, domain.RoleAdmin}},
		{Prefix: "/v1/api/", Roles: []domain.Role{domain.RoleUser, domain.RoleManager, domain.RoleAdmin}},
		{Prefix: "/v1/api/rewards", Roles: []domain.Role{domain.RoleAdmin, domain.RoleManager}},
	}
}

func TestPolicyTable_Match_LongestPrefixWins(t *testing.T) {
	table := testTable()

	cases := []struct {
		path       string
		wantPrefix string
	}{
		{"/auth/login", "/auth/"},
		{"/public/docs", "/public/"},
		{"/health/ready", "/health"},
		{"/admin/transactions", "/admin/"},
		{"/manager/transactions", "/manager/"},
		{"/v1/api/customers/7/rewards", "/v1/api/"},
		// the more specific rewards rule shadows the generic /v1/api/ one
		{"/v1/api/rewards", "/v1/api/rewards"},
	}
	for _, tc := range cases {
		if got := table.Match(tc.path); got.Prefix != tc.wantPrefix {
			t.Errorf("Match(%q) selected prefix %q, want %q", tc.path, got.Prefix, tc.wantPrefix)
		}
	}
}

func TestPolicyTable_Match_DefaultDeniesAnonymous(t *testing.T) {
	got := testTable().Match("/not/declared/anywhere")
	if got.Public {
		t.Fatalf("unmatched route must not be public")
	}
	if len(got.Roles) != 0 {
		t.Fatalf("unmatched route must not require a specific role, got %v", got.Roles)
	}
}

func TestRoutePolicy_Allows(t *testing.T) {
	adminOnly := RoutePolicy{Roles: []domain.Role{domain.RoleAdmin}}
	if adminOnly.Allows(domain.RoleUser) {
		t.Fatalf("user must not pass an admin-only policy")
	}
	if !adminOnly.Allows(domain.RoleAdmin) {
		t.Fatalf("admin must pass an admin-only policy")
	}

	anyAuthenticated := RoutePolicy{}
	if !anyAuthenticated.Allows(domain.RoleUser) {
		t.Fatalf("empty role set must admit any authenticated role")
	}

	broad := RoutePolicy{Roles: []domain.Role{domain.RoleUser, domain.RoleManager, domain.RoleAdmin}}
	if !broad.Allows(domain.RoleUser) {
		t.Fatalf("user must pass a policy listing user")
	}
}
