// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"employee_directory/internal/feature/auth/domain"
	"employee_directory/internal/feature/auth/domain/entity"
	"employee_directory/internal/feature/auth/transport/http/dto"
	"employee_directory/internal/feature/auth/usecase"
	"employee_directory/internal/platform/security"
	"employee_directory/internal/platform/view"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Login は資格情報を検証してセッションを作成し、セッショントークンを返します。
	Login(ctx context.Context, username, password string, client usecase.ClientInfo) (string, *entity.Principal, error)
	// Logout はトークンが指すセッションを失効させます。
	Logout(ctx context.Context, token string) error
}

// AuthHandler はログインフォームとログアウトのHTTPリクエストを処理します。
type AuthHandler struct {
	auth   AuthUsecase
	cookie security.CookieConfig
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase, cookie security.CookieConfig) *AuthHandler {
	return &AuthHandler{auth: auth, cookie: cookie}
}

// LoginPage renders the login form.
// ?error, ?disabled and ?logout select the message shown above it.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	q := c.Request.URL.Query()
	c.HTML(http.StatusOK, view.Login, gin.H{
		"Error":     q.Has("error"),
		"Disabled":  q.Has("disabled"),
		"LoggedOut": q.Has("logout"),
	})
}

// Login はログインフォームの送信を処理します。
// - 成功時はセッションCookieを設定して /employees へリダイレクト
// - 無効化されたアカウントは /login?disabled へリダイレクト
// - それ以外の認証失敗は /login?error へリダイレクト
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.Redirect(http.StatusFound, "/login?error")
		return
	}

	token, principal, err := h.auth.Login(c.Request.Context(), req.Username, req.Password, usecase.ClientInfo{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAccountDisabled):
		slog.Warn("login refused: account disabled", "username", req.Username, "remote_addr", c.ClientIP())
		c.Redirect(http.StatusFound, "/login?disabled")
		return
	case errors.Is(err, domain.ErrInvalidCredentials):
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.Redirect(http.StatusFound, "/login?error")
		return
	default:
		slog.Error("login failed", "error", err, "username", req.Username)
		c.HTML(http.StatusInternalServerError, view.Error, gin.H{
			"Status":  http.StatusInternalServerError,
			"Title":   http.StatusText(http.StatusInternalServerError),
			"Message": "Login is temporarily unavailable.",
		})
		return
	}

	h.cookie.Set(c, token)
	slog.Info("user login successful", "username", principal.Username, "remote_addr", c.ClientIP())
	c.Redirect(http.StatusFound, "/employees")
}

// Logout revokes the current session, clears the cookie and returns to the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := h.cookie.Token(c); token != "" {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			slog.Error("failed to revoke session", "error", err)
		}
	}
	if p := security.PrincipalFrom(c); p != nil {
		slog.Info("user logout", "username", p.Username)
	}
	h.cookie.Clear(c)
	c.Redirect(http.StatusFound, "/login?logout")
}
