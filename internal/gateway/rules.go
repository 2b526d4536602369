package gateway

import "strings"

// RoleRule binds a path prefix to the role required to reach it. Rules are
// evaluated in order; the first matching prefix wins.
type RoleRule struct {
	Prefix  string
	Role    string
	Message string
}

// Rules is the immutable authorization configuration of the gateway. It is
// constructed once at startup and never mutated afterwards, so request
// handlers can read it without locking.
type Rules struct {
	openPrefixes []string
	trusted      map[string]struct{}
	roleRules    []RoleRule
}

// defaultOpenPrefixes lists endpoints reachable without a token:
// authentication itself, registration, and health probes.
var defaultOpenPrefixes = []string{
	"/login",
	"/validate",
	"/com/api/user-service/users",
	"/health",
}

// defaultRoleRules lists the admin-only path prefixes.
var defaultRoleRules = []RoleRule{
	{Prefix: "/com/api/category-service", Role: "ADMIN", Message: "Administrator role is required for category management"},
	{Prefix: "/com/api/categories", Role: "ADMIN", Message: "Administrator role is required for category management"},
	{Prefix: "/assign-role", Role: "ADMIN", Message: "Administrator role is required to assign roles"},
}

// NewRules builds the gateway rule set. trustedServices is the allow-list
// of internal callers permitted to bypass token verification.
func NewRules(trustedServices []string) *Rules {
	trusted := make(map[string]struct{}, len(trustedServices))
	for _, s := range trustedServices {
		trusted[s] = struct{}{}
	}
	return &Rules{
		openPrefixes: defaultOpenPrefixes,
		trusted:      trusted,
		roleRules:    defaultRoleRules,
	}
}

// IsOpen reports whether the path is reachable without authentication.
func (r *Rules) IsOpen(path string) bool {
	for _, prefix := range r.openPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// IsTrusted reports whether the claimed service identity is on the
// intra-cluster allow-list.
func (r *Rules) IsTrusted(serviceName string) bool {
	if serviceName == "" {
		return false
	}
	_, ok := r.trusted[serviceName]
	return ok
}

// RequiredRole returns the first role rule whose prefix matches the path.
func (r *Rules) RequiredRole(path string) (RoleRule, bool) {
	for _, rule := range r.roleRules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule, true
		}
	}
	return RoleRule{}, false
}
