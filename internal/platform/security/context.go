package security

import (
	"github.com/gin-gonic/gin"

	"employee_directory/internal/feature/auth/domain/entity"
)

const principalKey = "security.principal"

// SetPrincipal stores the authenticated principal on the request context.
func SetPrincipal(c *gin.Context, p *entity.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the principal stored by the gate, or nil for anonymous requests.
func PrincipalFrom(c *gin.Context) *entity.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*entity.Principal)
	return p
}
