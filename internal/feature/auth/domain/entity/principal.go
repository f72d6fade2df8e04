package entity

import "strings"

// Role は権限階層を表します。階層間の包含関係はありません。
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
)

// rolePrefix is the authority prefix stored in the roles table (ROLE_MANAGER).
const rolePrefix = "ROLE_"

// ParseRole normalizes a stored authority string into a Role.
// The ROLE_ prefix is stripped and surrounding whitespace removed.
func ParseRole(s string) Role {
	return Role(strings.TrimPrefix(strings.TrimSpace(s), rolePrefix))
}

// Principal は認証済みのユーザーと付与されたロールを表します。
type Principal struct {
	Username string
	Roles    []Role
}

// HasRole reports whether the principal has been granted role.
func (p *Principal) HasRole(role Role) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleNames returns the granted roles as plain strings.
func (p *Principal) RoleNames() []string {
	names := make([]string, 0, len(p.Roles))
	for _, r := range p.Roles {
		names = append(names, string(r))
	}
	return names
}
