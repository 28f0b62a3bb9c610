package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"estatedesk/internal/config"
	"estatedesk/internal/domain"
)

func newTestNewsletterService(t *testing.T) (*NewsletterService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	cfg := config.Get()
	return NewNewsletterService(db, NewEmailService(&cfg.Email), &cfg.Admin), db
}

func TestNewsletterSubscribe(t *testing.T) {
	svc, db := newTestNewsletterService(t)

	result, err := svc.Subscribe(context.Background(), &NewsletterPayload{
		Email: "Ravi@Example.com",
		Name:  "Ravi Kumar",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)

	var saved domain.NewsletterSubscription
	require.NoError(t, db.First(&saved, result.ID).Error)
	assert.Equal(t, "ravi@example.com", saved.Email)
	assert.Equal(t, domain.SubscriptionStatusActive, saved.Status)
	require.NotNil(t, saved.Name)
	assert.Equal(t, "Ravi Kumar", *saved.Name)
}

func TestNewsletterSubscribeDuplicate(t *testing.T) {
	svc, _ := newTestNewsletterService(t)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, &NewsletterPayload{Email: "ravi@example.com"})
	require.NoError(t, err)

	// Newsletter uniqueness has no time window.
	_, err = svc.Subscribe(ctx, &NewsletterPayload{Email: "RAVI@example.com"})
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTypeConflict, svcErr.Type)
}

func TestNewsletterSubscribeInvalidEmail(t *testing.T) {
	svc, _ := newTestNewsletterService(t)

	_, err := svc.Subscribe(context.Background(), &NewsletterPayload{Email: "not-an-email"})
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTypeBadRequest, svcErr.Type)

	_, err = svc.Subscribe(context.Background(), &NewsletterPayload{})
	svcErr, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTypeBadRequest, svcErr.Type)
}

func TestNewsletterUnsubscribe(t *testing.T) {
	svc, db := newTestNewsletterService(t)
	ctx := context.Background()

	result, err := svc.Subscribe(ctx, &NewsletterPayload{Email: "ravi@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Unsubscribe(ctx, "ravi@example.com"))

	var saved domain.NewsletterSubscription
	require.NoError(t, db.First(&saved, result.ID).Error)
	assert.Equal(t, domain.SubscriptionStatusUnsubscribed, saved.Status)

	err = svc.Unsubscribe(ctx, "nobody@example.com")
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTypeNotFound, svcErr.Type)
}

func TestNewsletterDelete(t *testing.T) {
	svc, db := newTestNewsletterService(t)
	ctx := context.Background()

	result, err := svc.Subscribe(ctx, &NewsletterPayload{Email: "ravi@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, result.ID))

	var count int64
	require.NoError(t, db.Model(&domain.NewsletterSubscription{}).Count(&count).Error)
	assert.Zero(t, count)

	// After a hard delete the address can subscribe again.
	_, err = svc.Subscribe(ctx, &NewsletterPayload{Email: "ravi@example.com"})
	require.NoError(t, err)
}
