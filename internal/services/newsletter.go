package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"estatedesk/internal/config"
	"estatedesk/internal/domain"
	"estatedesk/internal/metrics"
	"estatedesk/internal/util"
)

// NewsletterService implements newsletter subscription management
type NewsletterService struct {
	db           *gorm.DB
	emailService *EmailService
	admin        *config.AdminConfig
}

// NewNewsletterService creates a new newsletter service
func NewNewsletterService(db *gorm.DB, emailService *EmailService, admin *config.AdminConfig) *NewsletterService {
	return &NewsletterService{db: db, emailService: emailService, admin: admin}
}

// NewsletterPayload is a newsletter signup
type NewsletterPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Subscribe validates the email and creates an active subscription. Email
// uniqueness is enforced both by lookup and a unique index, so the race
// window collapses to a storage-level conflict.
func (s *NewsletterService) Subscribe(ctx context.Context, p *NewsletterPayload) (*SubmitResult, error) {
	email := util.NormalizeEmail(p.Email)
	log.Printf("[NEWSLETTER] Subscribe request: email=%s", email)

	if email == "" {
		return nil, NewBadRequestError("Email is required")
	}
	if err := util.ValidateEmail(email); err != nil {
		return nil, NewBadRequestError("Invalid email format")
	}

	var existing domain.NewsletterSubscription
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("[NEWSLETTER] Subscribe rejected: %s already subscribed", email)
		metrics.RecordDuplicateRejection("newsletter")
		return nil, NewConflictError("This email is already subscribed to our newsletter")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewInternalError("failed to check subscription", err)
	}

	subscription := &domain.NewsletterSubscription{Email: email}
	if name := strings.TrimSpace(p.Name); name != "" {
		subscription.Name = &name
	}

	if err := s.db.WithContext(ctx).Create(subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			metrics.RecordDuplicateRejection("newsletter")
			return nil, NewConflictError("This email is already subscribed")
		}
		log.Printf("[NEWSLETTER] Subscribe failed: database error: %v", err)
		return nil, NewInternalError("failed to save subscription", err)
	}

	log.Printf("[NEWSLETTER] Subscribe successful: id=%d, email=%s", subscription.ID, subscription.Email)
	metrics.RecordSubmission("newsletter")

	go func() {
		rows := [][2]string{
			{"Email", subscription.Email},
			{"Subscribed", subscription.SubscribedAt.Format("January 2, 2006 at 3:04 PM")},
		}
		if err := s.emailService.SendLeadNotification(s.admin.NotifyEmail, "Newsletter Subscription", rows, "", subscription.ID); err != nil {
			log.Printf("[NEWSLETTER] Warning: failed to send notification email: %v", err)
			metrics.RecordNotification("email", false)
		} else {
			metrics.RecordNotification("email", true)
		}
	}()

	return &SubmitResult{
		Success: true,
		Message: "Successfully subscribed to newsletter!",
		ID:      subscription.ID,
	}, nil
}

// Unsubscribe flips a subscription to unsubscribed without deleting the row
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	email = util.NormalizeEmail(email)
	log.Printf("[NEWSLETTER] Unsubscribe request: email=%s", email)

	var subscription domain.NewsletterSubscription
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("Subscription not found")
		}
		return NewInternalError("failed to fetch subscription", err)
	}

	subscription.Status = domain.SubscriptionStatusUnsubscribed
	if err := s.db.WithContext(ctx).Save(&subscription).Error; err != nil {
		return NewInternalError("failed to update subscription", err)
	}

	log.Printf("[NEWSLETTER] Unsubscribe successful: email=%s", email)
	return nil
}

// List returns subscriptions newest-first, narrowed by the optional filters
func (s *NewsletterService) List(ctx context.Context, f ListFilters) ([]domain.NewsletterSubscription, error) {
	var subscriptions []domain.NewsletterSubscription
	q := applyListFilters(s.db.WithContext(ctx), f, "subscribed_at", "email", "name")
	if err := q.Order("subscribed_at DESC").Find(&subscriptions).Error; err != nil {
		log.Printf("[NEWSLETTER] List failed: database error: %v", err)
		return nil, NewInternalError("failed to fetch subscriptions", err)
	}
	log.Printf("[NEWSLETTER] List successful: returned %d subscriptions", len(subscriptions))
	return subscriptions, nil
}

// Delete removes a subscription by id
func (s *NewsletterService) Delete(ctx context.Context, id uint) error {
	log.Printf("[NEWSLETTER] Delete request: id=%d", id)

	var subscription domain.NewsletterSubscription
	if err := s.db.WithContext(ctx).First(&subscription, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("Subscription not found")
		}
		return NewInternalError("failed to fetch subscription", err)
	}

	if err := s.db.WithContext(ctx).Delete(&subscription).Error; err != nil {
		log.Printf("[NEWSLETTER] Delete failed: database error: %v", err)
		return NewInternalError("failed to delete subscription", err)
	}

	log.Printf("[NEWSLETTER] Delete successful: id=%d", id)
	return nil
}
