package security

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultCookieName is the session cookie used when none is configured.
const DefaultCookieName = "EMSSESSION"

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Path   string
	Secure bool
	// MaxAge in seconds. 0 makes a browser-session cookie.
	MaxAge int
}

func (c CookieConfig) name() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}

func (c CookieConfig) path() string {
	if c.Path == "" {
		return "/"
	}
	return c.Path
}

// Set writes token as the session cookie.
func (c CookieConfig) Set(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.name(), token, c.MaxAge, c.path(), "", c.Secure, true)
}

// Clear expires the session cookie.
func (c CookieConfig) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.name(), "", -1, c.path(), "", c.Secure, true)
}

// Token returns the session cookie value, or "" when absent.
func (c CookieConfig) Token(ctx *gin.Context) string {
	v, err := ctx.Cookie(c.name())
	if err != nil {
		return ""
	}
	return v
}
