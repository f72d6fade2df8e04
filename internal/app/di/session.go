package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "employee_directory/internal/feature/auth/adapters"
	"employee_directory/internal/feature/auth/usecase"
	"employee_directory/internal/platform/session"
)

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the database.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB, prefix string) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, prefix)
	}
	return authadapters.NewSessionGorm(db)
}
