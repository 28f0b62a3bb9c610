package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"estatedesk/internal/config"
	"estatedesk/internal/domain"
)

func newTestLocationService(t *testing.T) (*LocationInquiryService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	cfg := config.Get()
	return NewLocationInquiryService(db, NewEmailService(&cfg.Email), &cfg.Admin), db
}

func TestLocationInquirySubmitDefaults(t *testing.T) {
	svc, db := newTestLocationService(t)

	result, err := svc.Submit(context.Background(), &LocationInquiryPayload{
		Name:         "Ravi Kumar",
		Email:        "ravi@example.com",
		Phone:        "9876543210",
		LocationName: "Noida",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)

	var saved domain.LocationInquiry
	require.NoError(t, db.First(&saved, result.ID).Error)
	assert.Equal(t, "Noida", saved.LocationName)
	assert.Equal(t, "Any", saved.PropertyType)
	assert.Equal(t, "Not specified", saved.Budget)
	assert.Equal(t, domain.LocationStatusNew, saved.Status)
	assert.Equal(t, "Interested in properties in Noida", saved.Message)
}

func TestLocationInquirySameLocationWindow(t *testing.T) {
	svc, db := newTestLocationService(t)
	ctx := context.Background()

	first, err := svc.Submit(ctx, &LocationInquiryPayload{
		Name:         "Ravi Kumar",
		Email:        "ravi@example.com",
		Phone:        "9876543210",
		LocationName: "Noida",
	})
	require.NoError(t, err)

	// Same location within 30 days gets the location-specific rejection,
	// even once the record is older than the generic 24-hour window.
	backdate(t, db, "location_inquiries", "created_at", first.ID, 5*24*time.Hour)
	_, err = svc.Submit(ctx, &LocationInquiryPayload{
		Name:         "Ravi Kumar",
		Email:        "ravi@example.com",
		Phone:        "9000000001",
		LocationName: "Noida",
	})
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTypeConflict, svcErr.Type)
	assert.Contains(t, svcErr.Message, "this location")

	// A different location from the same contact is fine after 24 hours.
	_, err = svc.Submit(ctx, &LocationInquiryPayload{
		Name:         "Ravi Kumar",
		Email:        "ravi@example.com",
		Phone:        "9876543210",
		LocationName: "Gurgaon",
	})
	require.NoError(t, err)
}

func TestLocationInquiryRecentWindow(t *testing.T) {
	svc, _ := newTestLocationService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, &LocationInquiryPayload{
		Name:         "Ravi Kumar",
		Email:        "ravi@example.com",
		Phone:        "9876543210",
		LocationName: "Noida",
	})
	require.NoError(t, err)

	// Different location but the same contact inside 24 hours.
	_, err = svc.Submit(ctx, &LocationInquiryPayload{
		Name:         "Ravi Kumar",
		Email:        "ravi@example.com",
		Phone:        "9000000001",
		LocationName: "Gurgaon",
	})
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTypeConflict, svcErr.Type)
	assert.NotContains(t, svcErr.Message, "this location")
}

func TestLocationInquiryUpdateStatus(t *testing.T) {
	svc, _ := newTestLocationService(t)
	ctx := context.Background()

	result, err := svc.Submit(ctx, &LocationInquiryPayload{
		Name:         "Ravi Kumar",
		Email:        "ravi@example.com",
		Phone:        "9876543210",
		LocationName: "Noida",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, result.ID, domain.LocationStatusContacted)
	require.NoError(t, err)
	assert.Equal(t, domain.LocationStatusContacted, updated.Status)

	_, err = svc.UpdateStatus(ctx, result.ID, "bogus")
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTypeBadRequest, svcErr.Type)

	_, err = svc.UpdateStatus(ctx, 9999, domain.LocationStatusClosed)
	svcErr, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTypeNotFound, svcErr.Type)
}
