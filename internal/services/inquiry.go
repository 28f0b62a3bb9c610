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

// InquiryService implements the general inquiry pipeline and its admin surface
type InquiryService struct {
	db           *gorm.DB
	emailService *EmailService
	smsService   *SMSService
	admin        *config.AdminConfig
}

// NewInquiryService creates a new inquiry service
func NewInquiryService(db *gorm.DB, emailService *EmailService, smsService *SMSService, admin *config.AdminConfig) *InquiryService {
	return &InquiryService{
		db:           db,
		emailService: emailService,
		smsService:   smsService,
		admin:        admin,
	}
}

// InquiryPayload is a general inquiry submission
type InquiryPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Source  string `json:"source"`
	Urgent  bool   `json:"urgent"`
}

// Submit validates an inquiry, rejects recent duplicates and persists it
func (s *InquiryService) Submit(ctx context.Context, p *InquiryPayload) (*SubmitResult, error) {
	name := strings.TrimSpace(p.Name)
	email := util.NormalizeEmail(p.Email)
	log.Printf("[INQUIRY] Submit request: name=%s, email=%s", name, email)

	if name == "" || email == "" || strings.TrimSpace(p.Phone) == "" {
		return nil, NewBadRequestError("Missing required fields")
	}
	if err := util.ValidateEmail(email); err != nil {
		return nil, NewBadRequestError("Invalid email format")
	}
	phone := util.NormalizePhone(p.Phone)
	if err := util.ValidatePhone(phone); err != nil {
		return nil, NewBadRequestError("Invalid phone number format")
	}

	// Same sender within the last 24 hours is treated as a resubmit.
	var existing domain.Inquiry
	since := time.Now().Add(-recentWindow)
	err := s.db.WithContext(ctx).
		Where("email = ? AND phone = ? AND created_at >= ?", email, phone, since).
		First(&existing).Error
	if err == nil {
		log.Printf("[INQUIRY] Submit rejected: duplicate within window for %s", email)
		metrics.RecordDuplicateRejection("inquiry")
		return nil, NewConflictError("You have already submitted an inquiry recently")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewInternalError("failed to check for duplicates", err)
	}

	inquiry := &domain.Inquiry{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Message: strings.TrimSpace(p.Message),
		Source:  strings.TrimSpace(p.Source),
		Urgent:  p.Urgent,
	}

	if err := s.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		log.Printf("[INQUIRY] Submit failed: database error: %v", err)
		return nil, NewInternalError("failed to save inquiry", err)
	}

	log.Printf("[INQUIRY] Submit successful: id=%d, email=%s", inquiry.ID, inquiry.Email)
	metrics.RecordSubmission("inquiry")

	// Notifications are best-effort and never affect the response.
	go s.notify(inquiry)

	return &SubmitResult{
		Success: true,
		Message: "Inquiry submitted successfully",
		ID:      inquiry.ID,
	}, nil
}

func (s *InquiryService) notify(inquiry *domain.Inquiry) {
	rows := [][2]string{
		{"Name", inquiry.Name},
		{"Email", inquiry.Email},
		{"Phone", inquiry.Phone},
		{"Source", inquiry.Source},
		{"Submitted", inquiry.CreatedAt.Format("January 2, 2006 at 3:04 PM")},
	}
	if err := s.emailService.SendLeadNotification(s.admin.NotifyEmail, "Contact Form Submission", rows, inquiry.Message, inquiry.ID); err != nil {
		log.Printf("[INQUIRY] Warning: failed to send notification email: %v", err)
		metrics.RecordNotification("email", false)
	} else {
		log.Printf("[INQUIRY] Notification email sent for inquiry id=%d", inquiry.ID)
		metrics.RecordNotification("email", true)
	}

	if inquiry.Urgent && s.admin.NotifyPhone != "" {
		if err := s.smsService.SendUrgentAlert(s.admin.NotifyPhone, inquiry.Name, inquiry.Phone); err != nil {
			log.Printf("[INQUIRY] Warning: failed to send urgent SMS alert: %v", err)
			metrics.RecordNotification("sms", false)
		} else {
			metrics.RecordNotification("sms", true)
		}
	}
}

// List returns inquiries newest-first, narrowed by the optional filters
func (s *InquiryService) List(ctx context.Context, f ListFilters) ([]domain.Inquiry, error) {
	var inquiries []domain.Inquiry
	q := applyListFilters(s.db.WithContext(ctx), f, "created_at", "name", "email", "phone")
	if err := q.Order("created_at DESC").Find(&inquiries).Error; err != nil {
		log.Printf("[INQUIRY] List failed: database error: %v", err)
		return nil, NewInternalError("failed to fetch inquiries", err)
	}
	log.Printf("[INQUIRY] List successful: returned %d inquiries", len(inquiries))
	return inquiries, nil
}

// InquiryUpdate is a partial admin edit; nil fields are left unchanged
type InquiryUpdate struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Message *string `json:"message"`
	Source  *string `json:"source"`
}

// Update applies a partial edit to an inquiry by id
func (s *InquiryService) Update(ctx context.Context, id uint, p *InquiryUpdate) error {
	log.Printf("[INQUIRY] Update request: id=%d", id)

	var inquiry domain.Inquiry
	if err := s.db.WithContext(ctx).First(&inquiry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("Inquiry not found")
		}
		return NewInternalError("failed to fetch inquiry", err)
	}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return NewBadRequestError("Name cannot be empty")
		}
		inquiry.Name = name
	}
	if p.Email != nil {
		email := util.NormalizeEmail(*p.Email)
		if err := util.ValidateEmail(email); err != nil {
			return NewBadRequestError("Invalid email format")
		}
		inquiry.Email = email
	}
	if p.Phone != nil {
		phone := util.NormalizePhone(*p.Phone)
		if err := util.ValidatePhone(phone); err != nil {
			return NewBadRequestError("Invalid phone number format")
		}
		inquiry.Phone = phone
	}
	if p.Message != nil {
		inquiry.Message = strings.TrimSpace(*p.Message)
	}
	if p.Source != nil {
		inquiry.Source = strings.TrimSpace(*p.Source)
	}

	if err := s.db.WithContext(ctx).Save(&inquiry).Error; err != nil {
		log.Printf("[INQUIRY] Update failed: database error: %v", err)
		return NewInternalError("failed to update inquiry", err)
	}

	log.Printf("[INQUIRY] Update successful: id=%d", id)
	return nil
}

// Delete removes an inquiry by id
func (s *InquiryService) Delete(ctx context.Context, id uint) error {
	log.Printf("[INQUIRY] Delete request: id=%d", id)

	var inquiry domain.Inquiry
	if err := s.db.WithContext(ctx).First(&inquiry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("Inquiry not found")
		}
		return NewInternalError("failed to fetch inquiry", err)
	}

	if err := s.db.WithContext(ctx).Delete(&inquiry).Error; err != nil {
		log.Printf("[INQUIRY] Delete failed: database error: %v", err)
		return NewInternalError("failed to delete inquiry", err)
	}

	log.Printf("[INQUIRY] Delete successful: id=%d", id)
	return nil
}
