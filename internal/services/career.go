package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"estatedesk/internal/config"
	"estatedesk/internal/domain"
	"estatedesk/internal/metrics"
	"estatedesk/internal/util"
)

// CareerService implements job application capture and review
type CareerService struct {
	db           *gorm.DB
	emailService *EmailService
	admin        *config.AdminConfig
}

// NewCareerService creates a new career service
func NewCareerService(db *gorm.DB, emailService *EmailService, admin *config.AdminConfig) *CareerService {
	return &CareerService{db: db, emailService: emailService, admin: admin}
}

// CareerPayload is a job application submission
type CareerPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Position    string `json:"position"`
	Experience  string `json:"experience"`
	ResumeURL   string `json:"resume_url"`
	Resume      string `json:"resume"`
	CoverLetter string `json:"cover_letter"`
	Message     string `json:"message"`
}

// Submit validates an application, rejects recent duplicates and persists it.
// The 30-day same-position check runs before the 24-hour any-application
// check so the more specific rejection message wins.
func (s *CareerService) Submit(ctx context.Context, p *CareerPayload) (*SubmitResult, error) {
	name := strings.TrimSpace(p.Name)
	email := util.NormalizeEmail(p.Email)
	position := strings.TrimSpace(p.Position)
	log.Printf("[CAREER] Submit request: position=%s, email=%s", position, email)

	if name == "" || email == "" || strings.TrimSpace(p.Phone) == "" || position == "" {
		return nil, NewBadRequestError("Required fields missing")
	}
	if err := util.ValidateEmail(email); err != nil {
		return nil, NewBadRequestError("Invalid email format")
	}
	phone := util.NormalizePhone(p.Phone)
	if err := util.ValidatePhone(phone); err != nil {
		return nil, NewBadRequestError("Invalid phone number format")
	}

	var existing domain.CareerSubmission
	positionSince := time.Now().Add(-samePositionWindow)
	err := s.db.WithContext(ctx).
		Where("email = ? AND position = ? AND submitted_at >= ?", email, position, positionSince).
		First(&existing).Error
	if err == nil {
		log.Printf("[CAREER] Submit rejected: duplicate application for %s from %s", position, email)
		metrics.RecordDuplicateRejection("career")
		return nil, NewConflictError(fmt.Sprintf("You have already applied for the position of %s recently. We will review your application and contact you soon.", position))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewInternalError("failed to check for duplicates", err)
	}

	recentSince := time.Now().Add(-recentWindow)
	err = s.db.WithContext(ctx).
		Where("email = ? AND submitted_at >= ?", email, recentSince).
		First(&existing).Error
	if err == nil {
		log.Printf("[CAREER] Submit rejected: recent application from %s", email)
		metrics.RecordDuplicateRejection("career")
		return nil, NewConflictError("You have already submitted an application recently. We will review it soon.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewInternalError("failed to check for duplicates", err)
	}

	submission := &domain.CareerSubmission{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Position: position,
	}
	if v := strings.TrimSpace(p.Experience); v != "" {
		submission.Experience = &v
	}
	// The form has shipped both field names over time.
	if v := strings.TrimSpace(firstNonEmpty(p.ResumeURL, p.Resume)); v != "" {
		submission.ResumeURL = &v
	}
	if v := strings.TrimSpace(firstNonEmpty(p.CoverLetter, p.Message)); v != "" {
		submission.CoverLetter = &v
	}

	if err := s.db.WithContext(ctx).Create(submission).Error; err != nil {
		log.Printf("[CAREER] Submit failed: database error: %v", err)
		return nil, NewInternalError("failed to save application", err)
	}

	log.Printf("[CAREER] Submit successful: id=%d, position=%s", submission.ID, submission.Position)
	metrics.RecordSubmission("career")

	go func() {
		rows := [][2]string{
			{"Name", submission.Name},
			{"Email", submission.Email},
			{"Phone", submission.Phone},
			{"Position", submission.Position},
			{"Submitted", submission.SubmittedAt.Format("January 2, 2006 at 3:04 PM")},
		}
		if submission.Experience != nil {
			rows = append(rows, [2]string{"Experience", *submission.Experience})
		}
		if submission.ResumeURL != nil {
			rows = append(rows, [2]string{"Resume", *submission.ResumeURL})
		}
		coverLetter := ""
		if submission.CoverLetter != nil {
			coverLetter = *submission.CoverLetter
		}
		if err := s.emailService.SendLeadNotification(s.admin.NotifyEmail, "Career Application", rows, coverLetter, submission.ID); err != nil {
			log.Printf("[CAREER] Warning: failed to send notification email: %v", err)
			metrics.RecordNotification("email", false)
		} else {
			metrics.RecordNotification("email", true)
		}
	}()

	return &SubmitResult{
		Success: true,
		Message: "Application submitted successfully",
		ID:      submission.ID,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// List returns career submissions newest-first, narrowed by the optional filters
func (s *CareerService) List(ctx context.Context, f ListFilters) ([]domain.CareerSubmission, error) {
	var submissions []domain.CareerSubmission
	q := applyListFilters(s.db.WithContext(ctx), f, "submitted_at", "name", "email", "phone", "position")
	if err := q.Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		log.Printf("[CAREER] List failed: database error: %v", err)
		return nil, NewInternalError("failed to fetch career submissions", err)
	}
	log.Printf("[CAREER] List successful: returned %d submissions", len(submissions))
	return submissions, nil
}

// UpdateStatus transitions a career submission to a new review status
func (s *CareerService) UpdateStatus(ctx context.Context, id uint, status string) error {
	log.Printf("[CAREER] UpdateStatus request: id=%d, status=%s", id, status)

	if !domain.IsValidCareerStatus(status) {
		return NewBadRequestError("Invalid status value")
	}

	var submission domain.CareerSubmission
	if err := s.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("Submission not found")
		}
		return NewInternalError("failed to fetch submission", err)
	}

	submission.Status = status
	if err := s.db.WithContext(ctx).Save(&submission).Error; err != nil {
		log.Printf("[CAREER] UpdateStatus failed: database error: %v", err)
		return NewInternalError("failed to update submission", err)
	}

	log.Printf("[CAREER] UpdateStatus successful: id=%d, status=%s", id, status)
	return nil
}

// Delete removes a career submission by id
func (s *CareerService) Delete(ctx context.Context, id uint) error {
	log.Printf("[CAREER] Delete request: id=%d", id)

	var submission domain.CareerSubmission
	if err := s.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("Submission not found")
		}
		return NewInternalError("failed to fetch submission", err)
	}

	if err := s.db.WithContext(ctx).Delete(&submission).Error; err != nil {
		log.Printf("[CAREER] Delete failed: database error: %v", err)
		return NewInternalError("failed to delete submission", err)
	}

	log.Printf("[CAREER] Delete successful: id=%d", id)
	return nil
}
