package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"estatedesk/internal/domain"
)

func backdate(t *testing.T, db *gorm.DB, table, column string, id uint, by time.Duration) {
	t.Helper()
	err := db.Exec("UPDATE "+table+" SET "+column+" = ? WHERE id = ?",
		time.Now().Add(-by), id).Error
	require.NoError(t, err)
}

func TestInquirySubmit(t *testing.T) {
	svc, db := newTestInquiryService(t)

	result, err := svc.Submit(context.Background(), &InquiryPayload{
		Name:    "Ravi Kumar",
		Email:   "Ravi@Example.com",
		Phone:   "+91 98765-43210",
		Message: "Looking for a 3BHK",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotZero(t, result.ID)

	var saved domain.Inquiry
	require.NoError(t, db.First(&saved, result.ID).Error)
	assert.Equal(t, "ravi@example.com", saved.Email)
	assert.Equal(t, "9876543210", saved.Phone)
	assert.Equal(t, "Website Form", saved.Source)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestInquirySubmitValidation(t *testing.T) {
	svc, _ := newTestInquiryService(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		payload InquiryPayload
	}{
		{"missing name", InquiryPayload{Email: "a@b.com", Phone: "9876543210"}},
		{"missing email", InquiryPayload{Name: "Ravi", Phone: "9876543210"}},
		{"missing phone", InquiryPayload{Name: "Ravi", Email: "a@b.com"}},
		{"bad email", InquiryPayload{Name: "Ravi", Email: "not-an-email", Phone: "9876543210"}},
		{"bad phone", InquiryPayload{Name: "Ravi", Email: "a@b.com", Phone: "12345"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, &tc.payload)
			svcErr, ok := AsServiceError(err)
			require.True(t, ok)
			assert.Equal(t, ErrTypeBadRequest, svcErr.Type)
		})
	}
}

func TestInquiryDuplicateWithinWindow(t *testing.T) {
	svc, db := newTestInquiryService(t)
	ctx := context.Background()

	payload := &InquiryPayload{
		Name:  "Ravi Kumar",
		Email: "ravi@example.com",
		Phone: "9876543210",
	}
	first, err := svc.Submit(ctx, payload)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, payload)
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTypeConflict, svcErr.Type)

	// Same email with a different phone is a different sender.
	other := &InquiryPayload{Name: "Ravi Kumar", Email: "ravi@example.com", Phone: "9876543211"}
	_, err = svc.Submit(ctx, other)
	require.NoError(t, err)

	// Once the prior record falls outside the window the resubmit goes through.
	backdate(t, db, "inquiries", "created_at", first.ID, 25*time.Hour)
	_, err = svc.Submit(ctx, payload)
	require.NoError(t, err)
}

func TestInquiryListFilters(t *testing.T) {
	svc, db := newTestInquiryService(t)
	ctx := context.Background()

	a, err := svc.Submit(ctx, &InquiryPayload{Name: "Ravi Kumar", Email: "ravi@example.com", Phone: "9876543210"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, &InquiryPayload{Name: "Priya Sharma", Email: "priya@example.com", Phone: "9123456780"})
	require.NoError(t, err)

	all, err := svc.List(ctx, ListFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	matched, err := svc.List(ctx, ListFilters{Search: "RAVI"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Ravi Kumar", matched[0].Name)

	// Push one record out of the date range.
	backdate(t, db, "inquiries", "created_at", a.ID, 72*time.Hour)
	start := time.Now().Add(-24 * time.Hour).Truncate(24 * time.Hour)
	recent, err := svc.List(ctx, ListFilters{StartDate: &start})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Priya Sharma", recent[0].Name)
}

func TestInquiryUpdate(t *testing.T) {
	svc, db := newTestInquiryService(t)
	ctx := context.Background()

	result, err := svc.Submit(ctx, &InquiryPayload{Name: "Ravi Kumar", Email: "ravi@example.com", Phone: "9876543210"})
	require.NoError(t, err)

	newName := "Ravi K."
	newPhone := "+91 91234 56789"
	require.NoError(t, svc.Update(ctx, result.ID, &InquiryUpdate{Name: &newName, Phone: &newPhone}))

	var saved domain.Inquiry
	require.NoError(t, db.First(&saved, result.ID).Error)
	assert.Equal(t, "Ravi K.", saved.Name)
	assert.Equal(t, "9123456789", saved.Phone)
	assert.Equal(t, "ravi@example.com", saved.Email)

	badEmail := "nope"
	err = svc.Update(ctx, result.ID, &InquiryUpdate{Email: &badEmail})
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTypeBadRequest, svcErr.Type)

	err = svc.Update(ctx, 9999, &InquiryUpdate{Name: &newName})
	svcErr, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTypeNotFound, svcErr.Type)
}

func TestInquiryDelete(t *testing.T) {
	svc, db := newTestInquiryService(t)
	ctx := context.Background()

	result, err := svc.Submit(ctx, &InquiryPayload{Name: "Ravi Kumar", Email: "ravi@example.com", Phone: "9876543210"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, result.ID))

	var count int64
	require.NoError(t, db.Model(&domain.Inquiry{}).Count(&count).Error)
	assert.Zero(t, count)

	err = svc.Delete(ctx, result.ID)
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTypeNotFound, svcErr.Type)
}
