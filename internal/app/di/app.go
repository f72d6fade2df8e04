// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"employee_directory/internal/app/router"
	authadapters "employee_directory/internal/feature/auth/adapters"
	authhandler "employee_directory/internal/feature/auth/transport/handler"
	authusecase "employee_directory/internal/feature/auth/usecase"
	employeeadapters "employee_directory/internal/feature/employee/adapters"
	employeehandler "employee_directory/internal/feature/employee/transport/handler"
	employeeusecase "employee_directory/internal/feature/employee/usecase"
	"employee_directory/internal/platform/config"
	"employee_directory/internal/platform/http/handler"
	jwtmw "employee_directory/internal/platform/jwt"
	"employee_directory/internal/platform/security"
)

// App holds the assembled HTTP engine and the session store the sweeper drains.
type App struct {
	Engine   *gin.Engine
	Sessions authusecase.SessionRepository
}

// NewApp wires every component from cfg. rdb may be nil.
func NewApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Repository
	employeeRepo := employeeadapters.NewEmployeeRepository(db)
	credentials := authadapters.NewCredentialStore(db,
		cfg.Security.UsersByUsernameQuery,
		cfg.Security.AuthoritiesByUsernameQuery,
	)
	sessions := NewSessionRepository(rdb, db, cfg.Redis.Prefix)

	// Usecase
	tokens := jwtmw.NewGenerator(cfg.Session.Secret, cfg.Session.TTL)
	authUC := authusecase.NewAuthUsecase(credentials, sessions, tokens, cfg.Session.TTL)
	employeeUC := employeeusecase.NewEmployeeUsecase(employeeRepo)

	// Handler
	cookie := security.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
	}
	authH := authhandler.NewAuthHandler(authUC, cookie)
	employeeH := employeehandler.NewEmployeeHandler(employeeUC)
	gate := security.NewGate(authUC, security.DefaultPolicy(), security.Options{
		Realm:  cfg.Security.Realm,
		Cookie: cookie,
	})

	checks := []handler.Check{{Name: "database", Ping: sqlDB.PingContext}}
	if rdb != nil {
		checks = append(checks, handler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	engine := router.NewRouter(authH, employeeH, gate, router.Options{
		LegacyGetMutations: cfg.Server.LegacyGetMutations,
		HealthChecks:       checks,
	})

	return &App{Engine: engine, Sessions: sessions}, nil
}

