package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatedesk/internal/config"
	"estatedesk/internal/domain"
)

func setJWTConfig(t *testing.T, expiryMinutes int) {
	t.Helper()
	config.Set(&config.Config{
		Auth: config.AuthConfig{
			SecretKey:          "test-secret-key-0123456789abcdef0123",
			TokenExpiryMinutes: expiryMinutes,
			Algorithm:          "HS256",
		},
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	setJWTConfig(t, 60)

	admin := &domain.Admin{Email: "admin@example.com"}
	admin.ID = 7

	token, err := GenerateToken(admin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.AdminID)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestValidateTokenTampered(t *testing.T) {
	setJWTConfig(t, 60)

	admin := &domain.Admin{Email: "admin@example.com"}
	admin.ID = 1

	token, err := GenerateToken(admin)
	require.NoError(t, err)

	tampered := token + "x"
	_, err = ValidateToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	setJWTConfig(t, -1)

	admin := &domain.Admin{Email: "admin@example.com"}
	admin.ID = 1

	token, err := GenerateToken(admin)
	require.NoError(t, err)

	setJWTConfig(t, 60)
	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	setJWTConfig(t, 60)

	_, err := ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}
