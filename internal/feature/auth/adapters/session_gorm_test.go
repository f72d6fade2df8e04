package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"employee_directory/internal/feature/auth/domain/entity"
	"employee_directory/internal/feature/auth/usecase"
)

// setupSessionTestDB prepares an in-memory SQLite database for session testing.
func setupSessionTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&SessionModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedSession creates a test session in the database for testing.
func seedSession(t *testing.T, db *gorm.DB, id, username string, expiresAt time.Time, revokedAt *time.Time) *entity.Session {
	t.Helper()

	session := &SessionModel{
		ID:        id,
		Username:  username,
		Roles:     "EMPLOYEE,MANAGER",
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
		RevokedAt: revokedAt,
	}
	err := db.Create(session).Error
	require.NoError(t, err, "failed to seed session")

	return session.ToEntity()
}

func TestNewSessionGorm(t *testing.T) {
	db := setupSessionTestDB(t)

	repo := NewSessionGorm(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestSessionModel_RoundTrip(t *testing.T) {
	t.Parallel()

	s := &entity.Session{
		ID:       "abc",
		Username: "susan",
		Roles:    []entity.Role{entity.RoleEmployee, entity.RoleManager, entity.RoleAdmin},
	}

	model := SessionModelFromEntity(s)
	assert.Equal(t, "EMPLOYEE,MANAGER,ADMIN", model.Roles)
	assert.Equal(t, s.Roles, model.ToEntity().Roles)

	empty := SessionModelFromEntity(&entity.Session{ID: "x"})
	assert.Equal(t, "", empty.Roles)
	assert.Nil(t, empty.ToEntity().Roles)
}

func TestSessionGorm_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		seedFirst bool
		wantErr   bool
	}{
		{name: "success: session creation"},
		{name: "failure: duplicate session ID", seedFirst: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupSessionTestDB(t)
			repo := NewSessionGorm(db)
			if tt.seedFirst {
				seedSession(t, db, "session-001", "mary", time.Now().Add(time.Hour), nil)
			}

			session := &entity.Session{
				ID:        "session-001",
				Username:  "mary",
				Roles:     []entity.Role{entity.RoleEmployee, entity.RoleManager},
				UserAgent: "Mozilla/5.0",
				IPAddress: "192.168.1.1",
				CreatedAt: time.Now(),
				ExpiresAt: time.Now().Add(time.Hour),
			}
			err := repo.Create(context.Background(), session)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			var found SessionModel
			require.NoError(t, db.Where("id = ?", session.ID).First(&found).Error)
			assert.Equal(t, "mary", found.Username)
			assert.Equal(t, "EMPLOYEE,MANAGER", found.Roles)
		})
	}
}

func TestSessionGorm_FindByID(t *testing.T) {
	t.Parallel()

	db := setupSessionTestDB(t)
	repo := NewSessionGorm(db)
	seedSession(t, db, "find-session-id", "mary", time.Now().Add(time.Hour), nil)

	found, err := repo.FindByID(context.Background(), "find-session-id")
	require.NoError(t, err)
	assert.Equal(t, "mary", found.Username)
	assert.Equal(t, []entity.Role{entity.RoleEmployee, entity.RoleManager}, found.Roles)

	missing, err := repo.FindByID(context.Background(), "nonexistent-id")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	assert.Nil(t, missing)
}

func TestSessionGorm_Revoke(t *testing.T) {
	t.Parallel()

	db := setupSessionTestDB(t)
	repo := NewSessionGorm(db)
	seedSession(t, db, "revoke-session-id", "mary", time.Now().Add(time.Hour), nil)

	err := repo.Revoke(context.Background(), "revoke-session-id")
	require.NoError(t, err)

	var found SessionModel
	db.Where("id = ?", "revoke-session-id").First(&found)
	assert.NotNil(t, found.RevokedAt)

	err = repo.Revoke(context.Background(), "nonexistent-id")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionGorm_DeleteExpired(t *testing.T) {
	t.Parallel()

	db := setupSessionTestDB(t)
	repo := NewSessionGorm(db)

	seedSession(t, db, "expired-1", "mary", time.Now().Add(-1*time.Hour), nil)
	seedSession(t, db, "expired-2", "mary", time.Now().Add(-2*time.Hour), nil)
	seedSession(t, db, "active", "mary", time.Now().Add(time.Hour), nil)

	deleted, err := repo.DeleteExpired(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(2), deleted, "should delete 2 expired sessions")

	var count int64
	db.Model(&SessionModel{}).Count(&count)
	assert.Equal(t, int64(1), count, "only active session should remain")
}
