package main

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"estatedesk/internal/config"
	"estatedesk/internal/database"
	"estatedesk/internal/domain"
	"estatedesk/internal/services"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.Set(&config.Config{
		Auth: config.AuthConfig{
			SecretKey:          "test-secret-key-0123456789abcdef0123",
			TokenExpiryMinutes: 60,
			Algorithm:          "HS256",
		},
	})

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        ":memory:",
		Conn:       sqlDB,
	}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestSeedAdminNormalizesEmail(t *testing.T) {
	db := setupSeedDB(t)

	created, err := seedAdmin(db, "Admin@Example.com", "admin-pass")
	require.NoError(t, err)
	assert.True(t, created)

	var saved domain.Admin
	require.NoError(t, db.First(&saved).Error)
	assert.Equal(t, "admin@example.com", saved.Email)

	// The seeded account must be reachable through login with the address
	// exactly as the operator typed it.
	result, err := services.NewAuthService(db).Login(context.Background(), "Admin@Example.com", "admin-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestSeedAdminIdempotent(t *testing.T) {
	db := setupSeedDB(t)

	created, err := seedAdmin(db, "admin@example.com", "admin-pass")
	require.NoError(t, err)
	require.True(t, created)

	// A second run with a different casing finds the existing account.
	created, err = seedAdmin(db, "ADMIN@example.com", "other-pass")
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&domain.Admin{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
