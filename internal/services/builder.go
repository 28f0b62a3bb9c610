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

// BuilderInquiryService implements builder-scoped inquiries
type BuilderInquiryService struct {
	db           *gorm.DB
	emailService *EmailService
	admin        *config.AdminConfig
}

// NewBuilderInquiryService creates a new builder inquiry service
func NewBuilderInquiryService(db *gorm.DB, emailService *EmailService, admin *config.AdminConfig) *BuilderInquiryService {
	return &BuilderInquiryService{db: db, emailService: emailService, admin: admin}
}

// BuilderInquiryPayload is a builder inquiry submission
type BuilderInquiryPayload struct {
	BuilderName string `json:"builder_name"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Message     string `json:"message"`
}

// Submit validates a builder inquiry, rejects recent duplicates and persists it
func (s *BuilderInquiryService) Submit(ctx context.Context, p *BuilderInquiryPayload) (*SubmitResult, error) {
	name := strings.TrimSpace(p.Name)
	email := util.NormalizeEmail(p.Email)
	builderName := strings.TrimSpace(p.BuilderName)
	log.Printf("[BUILDER] Submit request: builder=%s, email=%s", builderName, email)

	if name == "" || email == "" || strings.TrimSpace(p.Phone) == "" || builderName == "" {
		return nil, NewBadRequestError("Name, email, phone, and builder name are required")
	}
	if err := util.ValidateEmail(email); err != nil {
		return nil, NewBadRequestError("Invalid email format")
	}
	phone := util.NormalizePhone(p.Phone)
	if err := util.ValidatePhone(phone); err != nil {
		return nil, NewBadRequestError("Invalid phone number format")
	}

	// Either contact handle resubmitting within 24 hours is a duplicate.
	var existing domain.BuilderInquiry
	since := time.Now().Add(-recentWindow)
	err := s.db.WithContext(ctx).
		Where("(email = ? OR phone = ?) AND created_at >= ?", email, phone, since).
		First(&existing).Error
	if err == nil {
		log.Printf("[BUILDER] Submit rejected: duplicate within window for %s", email)
		metrics.RecordDuplicateRejection("builder")
		return nil, NewConflictError("You have already submitted an inquiry recently. We will contact you soon.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewInternalError("failed to check for duplicates", err)
	}

	inquiry := &domain.BuilderInquiry{
		BuilderName: builderName,
		Name:        name,
		Email:       email,
		Phone:       phone,
		Message:     strings.TrimSpace(p.Message),
	}

	if err := s.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		log.Printf("[BUILDER] Submit failed: database error: %v", err)
		return nil, NewInternalError("failed to save builder inquiry", err)
	}

	log.Printf("[BUILDER] Submit successful: id=%d, builder=%s", inquiry.ID, inquiry.BuilderName)
	metrics.RecordSubmission("builder")

	go func() {
		rows := [][2]string{
			{"Builder", inquiry.BuilderName},
			{"Name", inquiry.Name},
			{"Email", inquiry.Email},
			{"Phone", inquiry.Phone},
			{"Submitted", inquiry.CreatedAt.Format("January 2, 2006 at 3:04 PM")},
		}
		if err := s.emailService.SendLeadNotification(s.admin.NotifyEmail, "Builder Inquiry", rows, inquiry.Message, inquiry.ID); err != nil {
			log.Printf("[BUILDER] Warning: failed to send notification email: %v", err)
			metrics.RecordNotification("email", false)
		} else {
			metrics.RecordNotification("email", true)
		}
	}()

	return &SubmitResult{
		Success: true,
		Message: "Builder inquiry submitted successfully",
		ID:      inquiry.ID,
	}, nil
}

// List returns builder inquiries newest-first, narrowed by the optional filters
func (s *BuilderInquiryService) List(ctx context.Context, f ListFilters) ([]domain.BuilderInquiry, error) {
	var inquiries []domain.BuilderInquiry
	q := applyListFilters(s.db.WithContext(ctx), f, "created_at", "name", "email", "phone", "builder_name")
	if err := q.Order("created_at DESC").Find(&inquiries).Error; err != nil {
		log.Printf("[BUILDER] List failed: database error: %v", err)
		return nil, NewInternalError("failed to fetch builder inquiries", err)
	}
	log.Printf("[BUILDER] List successful: returned %d inquiries", len(inquiries))
	return inquiries, nil
}

// Delete removes a builder inquiry by id
func (s *BuilderInquiryService) Delete(ctx context.Context, id uint) error {
	log.Printf("[BUILDER] Delete request: id=%d", id)

	var inquiry domain.BuilderInquiry
	if err := s.db.WithContext(ctx).First(&inquiry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("Inquiry not found")
		}
		return NewInternalError("failed to fetch builder inquiry", err)
	}

	if err := s.db.WithContext(ctx).Delete(&inquiry).Error; err != nil {
		log.Printf("[BUILDER] Delete failed: database error: %v", err)
		return NewInternalError("failed to delete builder inquiry", err)
	}

	log.Printf("[BUILDER] Delete successful: id=%d", id)
	return nil
}
