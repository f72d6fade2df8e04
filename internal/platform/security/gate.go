package security

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"employee_directory/internal/feature/auth/domain"
	"employee_directory/internal/feature/auth/domain/entity"
	"employee_directory/internal/feature/auth/usecase"
	"employee_directory/internal/platform/view"
)

// DefaultRealm is the HTTP Basic realm used when none is configured.
const DefaultRealm = "Employee Directory"

// Authenticator resolves who is making a request.
// Following Go convention: the interface is defined by the consumer (gate), not the provider (auth usecase).
type Authenticator interface {
	// ResolveSession returns the principal bound to a session token.
	ResolveSession(ctx context.Context, token string) (*entity.Principal, error)
	// Authenticate verifies credentials without opening a session.
	Authenticate(ctx context.Context, username, password string) (*entity.Principal, error)
}

// Options configure a Gate.
type Options struct {
	Realm     string
	LoginPath string
	Cookie    CookieConfig
}

// Gate evaluates the policy table before any handler runs.
type Gate struct {
	auth   Authenticator
	policy Policy
	opts   Options
}

// NewGate creates a Gate. An empty policy means every route requires authentication.
func NewGate(auth Authenticator, policy Policy, opts Options) *Gate {
	if opts.Realm == "" {
		opts.Realm = DefaultRealm
	}
	if opts.LoginPath == "" {
		opts.LoginPath = "/login"
	}
	return &Gate{auth: auth, policy: policy, opts: opts}
}

// Middleware returns the gin middleware enforcing the policy.
// 匿名・権限不足のリクエストはハンドラーに到達しません。
func (g *Gate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rule := g.policy.Match(c.Request.Method, c.Request.URL.Path)

		principal, err := g.authenticate(c)
		if err != nil && rule.Access == PermitAll {
			// 公開パスでは認証情報の不備を無視して匿名として扱う
			slog.Debug("ignoring credentials on public path", "error", err, "path", c.Request.URL.Path)
			principal, err = nil, nil
		}
		if err != nil {
			if errors.Is(err, errBadBasicCredentials) {
				slog.Info("basic authentication rejected", "path", c.Request.URL.Path, "remote_addr", c.ClientIP())
				g.challenge(c)
				return
			}
			slog.Error("failed to authenticate request", "error", err, "path", c.Request.URL.Path)
			renderError(c, http.StatusInternalServerError, nil, "An internal error occurred.")
			return
		}
		if principal != nil {
			SetPrincipal(c, principal)
		}

		switch rule.Access {
		case PermitAll:
			c.Next()
			return
		case HasRole:
			if principal == nil {
				g.entryPoint(c)
				return
			}
			if !principal.HasRole(rule.Role) {
				slog.Warn("access denied",
					"user", principal.Username,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"required_role", string(rule.Role),
				)
				renderError(c, http.StatusForbidden, principal, "You do not have permission to access this resource.")
				return
			}
		default:
			if principal == nil {
				g.entryPoint(c)
				return
			}
		}
		c.Next()
	}
}

var errBadBasicCredentials = errors.New("bad basic credentials")

// authenticate は Cookie のセッション、次に Basic 認証ヘッダーの順でプリンシパルを解決します。
// どちらもない場合は (nil, nil) を返します。
func (g *Gate) authenticate(c *gin.Context) (*entity.Principal, error) {
	ctx := c.Request.Context()

	if token := g.opts.Cookie.Token(c); token != "" {
		principal, err := g.auth.ResolveSession(ctx, token)
		switch {
		case err == nil:
			return principal, nil
		case isStaleSession(err):
			slog.Debug("discarding stale session cookie", "error", err)
			g.opts.Cookie.Clear(c)
		default:
			return nil, fmt.Errorf("resolve session: %w", err)
		}
	}

	// Basic 認証はリクエストごとに検証し、セッションは作成しない
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		return nil, nil
	}
	principal, err := g.auth.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrAccountDisabled) {
			return nil, errBadBasicCredentials
		}
		return nil, fmt.Errorf("basic authentication: %w", err)
	}
	return principal, nil
}

func isStaleSession(err error) bool {
	return errors.Is(err, usecase.ErrInvalidSessionToken) ||
		errors.Is(err, usecase.ErrSessionNotFound) ||
		errors.Is(err, usecase.ErrSessionRevoked) ||
		errors.Is(err, usecase.ErrSessionExpired)
}

// entryPoint starts authentication: browsers go to the login form, other clients get a Basic challenge.
func (g *Gate) entryPoint(c *gin.Context) {
	if wantsHTML(c.Request) {
		c.Redirect(http.StatusFound, g.opts.LoginPath)
		c.Abort()
		return
	}
	g.challenge(c)
}

func (g *Gate) challenge(c *gin.Context) {
	c.Header("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", g.opts.Realm))
	c.AbortWithStatus(http.StatusUnauthorized)
}

func wantsHTML(r *http.Request) bool {
	return r.Header.Get("Authorization") == "" &&
		strings.Contains(r.Header.Get("Accept"), "text/html")
}

func renderError(c *gin.Context, status int, principal *entity.Principal, message string) {
	c.HTML(status, view.Error, gin.H{
		"Status":    status,
		"Title":     http.StatusText(status),
		"Message":   message,
		"Principal": principal,
	})
	c.Abort()
}
