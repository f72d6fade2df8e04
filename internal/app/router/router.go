// Package router builds the gin engine and registers every route behind the security gate.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authhandler "employee_directory/internal/feature/auth/transport/handler"
	employeehandler "employee_directory/internal/feature/employee/transport/handler"
	"employee_directory/internal/platform/http/handler"
	"employee_directory/internal/platform/security"
	"employee_directory/internal/platform/view"
)

// Options adjust route registration.
type Options struct {
	// LegacyGetMutations also serves /save and /delete on GET.
	LegacyGetMutations bool
	HealthChecks       []handler.Check
}

func NewRouter(authHandler *authhandler.AuthHandler, employees *employeehandler.EmployeeHandler,
	gate *security.Gate, opts Options) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(view.MustNew())
	// 登録済みパスへの未対応メソッドは404ではなく405を返す
	r.HandleMethodNotAllowed = true

	// すべてのルート（未登録パスを含む）はゲートを通過する
	r.Use(gate.Middleware())

	// 認証不要
	// 導通確認用
	health := handler.Health(opts.HealthChecks...)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)
	// ログインフォーム
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.POST("/logout", authHandler.Logout)

	// 認可はゲートのポリシー表で判定する
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/employees") })
	r.GET("/employees", employees.List)
	r.GET("/showFormForAdd", employees.ShowFormForAdd)
	r.GET("/showFormForUpdate", employees.ShowFormForUpdate)
	r.POST("/save", employees.Save)
	r.POST("/delete", employees.Delete)
	if opts.LegacyGetMutations {
		r.GET("/save", employees.Save)
		r.GET("/delete", employees.Delete)
	}

	return r
}
