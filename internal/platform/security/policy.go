// Package security provides the authorization gate placed in front of every route.
package security

import (
	"net/http"

	"employee_directory/internal/feature/auth/domain/entity"
)

// Access is the kind of check a Rule applies.
type Access int

const (
	// Authenticated requires any logged-in principal.
	Authenticated Access = iota
	// PermitAll lets every request through, anonymous or not.
	PermitAll
	// HasRole requires a principal granted Rule.Role.
	HasRole
)

func (a Access) String() string {
	switch a {
	case PermitAll:
		return "permitAll"
	case HasRole:
		return "hasRole"
	default:
		return "authenticated"
	}
}

// Rule は (メソッド, パス) に対するアクセス要件を表します。
// Method が空の場合は全メソッドに一致します。
type Rule struct {
	Method string
	Path   string
	Access Access
	Role   entity.Role
}

func (r Rule) matches(method, path string) bool {
	return (r.Method == "" || r.Method == method) && r.Path == path
}

// Policy is an ordered rule table. The first matching rule wins.
type Policy []Rule

// defaultRule applies when no rule matches.
var defaultRule = Rule{Access: Authenticated}

// Match returns the first rule matching method and path, or the authenticated default.
func (p Policy) Match(method, path string) Rule {
	for _, r := range p {
		if r.matches(method, path) {
			return r
		}
	}
	return defaultRule
}

// DefaultPolicy returns the directory's access table.
// Mutating endpoints carry both GET and POST rows so a GET is refused
// by the gate even when the router would not serve it.
func DefaultPolicy() Policy {
	return Policy{
		{Method: http.MethodGet, Path: "/employees", Access: HasRole, Role: entity.RoleEmployee},
		{Method: http.MethodGet, Path: "/showFormForAdd", Access: HasRole, Role: entity.RoleManager},
		{Method: http.MethodGet, Path: "/showFormForUpdate", Access: HasRole, Role: entity.RoleManager},
		{Method: http.MethodGet, Path: "/save", Access: HasRole, Role: entity.RoleManager},
		{Method: http.MethodPost, Path: "/save", Access: HasRole, Role: entity.RoleManager},
		{Method: http.MethodGet, Path: "/delete", Access: HasRole, Role: entity.RoleAdmin},
		{Method: http.MethodPost, Path: "/delete", Access: HasRole, Role: entity.RoleAdmin},
		{Path: "/login", Access: PermitAll},
		{Path: "/logout", Access: PermitAll},
		{Path: "/healthz", Access: PermitAll},
	}
}
