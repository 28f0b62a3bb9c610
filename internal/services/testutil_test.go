package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"estatedesk/internal/config"
	"estatedesk/internal/database"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "EstateDesk API",
			Port: "3000",
		},
		Auth: config.AuthConfig{
			SecretKey:          "test-secret-key-0123456789abcdef0123",
			TokenExpiryMinutes: 60,
			Algorithm:          "HS256",
		},
		Email: config.EmailConfig{Enabled: false},
		SMS:   config.SMSConfig{Enabled: false, Provider: "console"},
		Admin: config.AdminConfig{
			NotifyEmail: "leads@example.com",
			NotifyPhone: "9800000000",
		},
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.Set(testConfig())

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// A fresh pool connection would see an empty in-memory database.
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

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func newTestInquiryService(t *testing.T) (*InquiryService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	cfg := config.Get()
	emailSvc := NewEmailService(&cfg.Email)
	smsSvc := NewSMSService(&cfg.SMS)
	return NewInquiryService(db, emailSvc, smsSvc, &cfg.Admin), db
}
