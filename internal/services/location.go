package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"estatedesk/internal/config"
	"estatedesk/internal/domain"
	"estatedesk/internal/metrics"
	"estatedesk/internal/util"
)

// LocationInquiryService implements location-scoped inquiries
type LocationInquiryService struct {
	db           *gorm.DB
	emailService *EmailService
	admin        *config.AdminConfig
}

// NewLocationInquiryService creates a new location inquiry service
func NewLocationInquiryService(db *gorm.DB, emailService *EmailService, admin *config.AdminConfig) *LocationInquiryService {
	return &LocationInquiryService{db: db, emailService: emailService, admin: admin}
}

// LocationInquiryPayload is a location inquiry submission
type LocationInquiryPayload struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	LocationName string `json:"location_name"`
	PropertyType string `json:"property_type"`
	Budget       string `json:"budget"`
	Message      string `json:"message"`
}

// Submit validates a location inquiry, rejects recent duplicates and persists it.
// Two windows apply: 30 days for the same location from the same contact, and
// the narrower one beats the generic 24-hour resubmit check.
func (s *LocationInquiryService) Submit(ctx context.Context, p *LocationInquiryPayload) (*SubmitResult, error) {
	name := strings.TrimSpace(p.Name)
	email := util.NormalizeEmail(p.Email)
	locationName := strings.TrimSpace(p.LocationName)
	log.Printf("[LOCATION] Submit request: location=%s, email=%s", locationName, email)

	if name == "" || email == "" || strings.TrimSpace(p.Phone) == "" || locationName == "" {
		return nil, NewBadRequestError("Required fields missing")
	}
	if err := util.ValidateEmail(email); err != nil {
		return nil, NewBadRequestError("Invalid email format")
	}
	phone := util.NormalizePhone(p.Phone)
	if err := util.ValidatePhone(phone); err != nil {
		return nil, NewBadRequestError("Invalid phone number format")
	}

	var existing domain.LocationInquiry
	locationSince := time.Now().Add(-sameLocationWindow)
	err := s.db.WithContext(ctx).
		Where("location_name = ? AND (email = ? OR phone = ?) AND created_at >= ?",
			locationName, email, phone, locationSince).
		First(&existing).Error
	if err == nil {
		log.Printf("[LOCATION] Submit rejected: duplicate for location %s from %s", locationName, email)
		metrics.RecordDuplicateRejection("location")
		return nil, NewConflictError("You have already submitted an inquiry for this location. Our team will contact you soon.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewInternalError("failed to check for duplicates", err)
	}

	recentSince := time.Now().Add(-recentWindow)
	err = s.db.WithContext(ctx).
		Where("(email = ? OR phone = ?) AND created_at >= ?", email, phone, recentSince).
		First(&existing).Error
	if err == nil {
		log.Printf("[LOCATION] Submit rejected: recent inquiry from %s", email)
		metrics.RecordDuplicateRejection("location")
		return nil, NewConflictError("You have already submitted an inquiry recently. We will contact you soon.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewInternalError("failed to check for duplicates", err)
	}

	inquiry := &domain.LocationInquiry{
		Name:         name,
		Email:        email,
		Phone:        phone,
		LocationName: locationName,
		PropertyType: strings.TrimSpace(p.PropertyType),
		Budget:       strings.TrimSpace(p.Budget),
		Message:      strings.TrimSpace(p.Message),
	}

	if err := s.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		log.Printf("[LOCATION] Submit failed: database error: %v", err)
		return nil, NewInternalError("failed to save location inquiry", err)
	}

	log.Printf("[LOCATION] Submit successful: id=%d, location=%s", inquiry.ID, inquiry.LocationName)
	metrics.RecordSubmission("location")

	go func() {
		rows := [][2]string{
			{"Location", inquiry.LocationName},
			{"Name", inquiry.Name},
			{"Email", inquiry.Email},
			{"Phone", inquiry.Phone},
			{"Property Type", inquiry.PropertyType},
			{"Budget", inquiry.Budget},
			{"Submitted", inquiry.CreatedAt.Format("January 2, 2006 at 3:04 PM")},
		}
		if err := s.emailService.SendLeadNotification(s.admin.NotifyEmail, "Location Inquiry", rows, inquiry.Message, inquiry.ID); err != nil {
			log.Printf("[LOCATION] Warning: failed to send notification email: %v", err)
			metrics.RecordNotification("email", false)
		} else {
			metrics.RecordNotification("email", true)
		}
	}()

	return &SubmitResult{
		Success: true,
		Message: "Thank you for your interest! Our team will contact you soon.",
		ID:      inquiry.ID,
	}, nil
}

// List returns location inquiries newest-first, narrowed by the optional filters
func (s *LocationInquiryService) List(ctx context.Context, f ListFilters) ([]domain.LocationInquiry, error) {
	var inquiries []domain.LocationInquiry
	q := applyListFilters(s.db.WithContext(ctx), f, "created_at", "name", "email", "phone", "location_name")
	if err := q.Order("created_at DESC").Find(&inquiries).Error; err != nil {
		log.Printf("[LOCATION] List failed: database error: %v", err)
		return nil, NewInternalError("failed to fetch location inquiries", err)
	}
	log.Printf("[LOCATION] List successful: returned %d inquiries", len(inquiries))
	return inquiries, nil
}

// UpdateStatus transitions a location inquiry to a new status
func (s *LocationInquiryService) UpdateStatus(ctx context.Context, id uint, status string) (*domain.LocationInquiry, error) {
	log.Printf("[LOCATION] UpdateStatus request: id=%d, status=%s", id, status)

	if !domain.IsValidLocationStatus(status) {
		return nil, NewBadRequestError("Invalid status value")
	}

	var inquiry domain.LocationInquiry
	if err := s.db.WithContext(ctx).First(&inquiry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Inquiry not found")
		}
		return nil, NewInternalError("failed to fetch location inquiry", err)
	}

	inquiry.Status = status
	if err := s.db.WithContext(ctx).Save(&inquiry).Error; err != nil {
		log.Printf("[LOCATION] UpdateStatus failed: database error: %v", err)
		return nil, NewInternalError("failed to update location inquiry", err)
	}

	log.Printf("[LOCATION] UpdateStatus successful: id=%d, status=%s", id, status)
	return &inquiry, nil
}

// Delete removes a location inquiry by id
func (s *LocationInquiryService) Delete(ctx context.Context, id uint) error {
	log.Printf("[LOCATION] Delete request: id=%d", id)

	var inquiry domain.LocationInquiry
	if err := s.db.WithContext(ctx).First(&inquiry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("Inquiry not found")
		}
		return NewInternalError("failed to fetch location inquiry", err)
	}

	if err := s.db.WithContext(ctx).Delete(&inquiry).Error; err != nil {
		log.Printf("[LOCATION] Delete failed: database error: %v", err)
		return NewInternalError("failed to delete location inquiry", err)
	}

	log.Printf("[LOCATION] Delete successful: id=%d", id)
	return nil
}
