package domain

import (
	"time"

	"gorm.io/gorm"
)

// Newsletter subscription statuses
const (
	SubscriptionStatusActive       = "active"
	SubscriptionStatusUnsubscribed = "unsubscribed"
)

// NewsletterSubscription represents a newsletter signup
type NewsletterSubscription struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         *string   `json:"name"`
	Status       string    `gorm:"default:'active'" json:"status"`
	SubscribedAt time.Time `gorm:"index" json:"subscribed_at"`
}

// TableName specifies the table name for NewsletterSubscription
func (NewsletterSubscription) TableName() string {
	return "newsletter_subscriptions"
}

// BeforeCreate hook
func (n *NewsletterSubscription) BeforeCreate(tx *gorm.DB) error {
	n.SubscribedAt = time.Now()
	if n.Status == "" {
		n.Status = SubscriptionStatusActive
	}
	return nil
}
