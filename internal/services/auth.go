package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"estatedesk/internal/domain"
	"estatedesk/internal/metrics"
	"estatedesk/internal/util"
)

// AuthService implements admin authentication
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates a new auth service
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// LoginResult carries a freshly issued bearer token
type LoginResult struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login verifies admin credentials and issues a bearer token
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = util.NormalizeEmail(email)
	log.Printf("[AUTH] Login attempt for admin: %s", email)

	var admin domain.Admin
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[AUTH] Login failed: admin '%s' not found", email)
			metrics.RecordAuthAttempt(false)
			return nil, NewUnauthorizedError("Invalid credentials")
		}
		log.Printf("[AUTH] Login failed: database error for admin '%s': %v", email, err)
		metrics.RecordAuthAttempt(false)
		return nil, NewInternalError("failed to look up admin", err)
	}

	if admin.PasswordHash == "" {
		log.Printf("[AUTH] Login failed: admin '%s' has no password set", email)
		metrics.RecordAuthAttempt(false)
		return nil, NewUnauthorizedError("Password not set. Please reset your password.")
	}

	if !util.CheckPasswordHash(strings.TrimSpace(password), admin.PasswordHash) {
		log.Printf("[AUTH] Login failed: invalid password for admin '%s'", email)
		metrics.RecordAuthAttempt(false)
		return nil, NewUnauthorizedError("Invalid credentials")
	}

	token, err := util.GenerateToken(&admin)
	if err != nil {
		log.Printf("[AUTH] Login failed: token generation error for admin '%s': %v", email, err)
		return nil, NewInternalError("failed to generate token", err)
	}

	log.Printf("[AUTH] Login successful for admin '%s' (id=%d)", email, admin.ID)
	metrics.RecordAuthAttempt(true)

	return &LoginResult{
		Token:   token,
		Message: "Login successful",
	}, nil
}

// ResetPassword overwrites the admin password. There is no old-password
// check and previously issued tokens stay valid until they expire.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	email = util.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(newPassword) == "" {
		return NewBadRequestError("Email and new password are required")
	}

	log.Printf("[AUTH] Password reset request for admin: %s", email)

	var admin domain.Admin
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[AUTH] Password reset failed: admin '%s' not found", email)
			return NewNotFoundError("Admin not found")
		}
		return NewInternalError("failed to look up admin", err)
	}

	hash, err := util.HashPassword(strings.TrimSpace(newPassword))
	if err != nil {
		return NewInternalError("failed to hash password", err)
	}

	admin.PasswordHash = hash
	if err := s.db.WithContext(ctx).Save(&admin).Error; err != nil {
		log.Printf("[AUTH] Password reset failed: database error: %v", err)
		return NewInternalError("failed to reset password", err)
	}

	log.Printf("[AUTH] Password reset successful for admin '%s' (id=%d)", email, admin.ID)
	return nil
}
