package domain

import (
	"time"

	"gorm.io/gorm"
)

// Career submission statuses
const (
	CareerStatusPending  = "pending"
	CareerStatusReviewed = "reviewed"
	CareerStatusRejected = "rejected"
)

// CareerSubmission represents a job application from the careers page
type CareerSubmission struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Email       string     `gorm:"not null;index" json:"email"`
	Phone       string     `gorm:"not null" json:"phone"`
	Position    string     `gorm:"not null;index" json:"position"`
	Experience  *string    `json:"experience"`
	ResumeURL   *string    `json:"resume_url"`
	CoverLetter *string    `gorm:"type:text" json:"cover_letter"`
	Status      string     `gorm:"default:'pending'" json:"status"`
	SubmittedAt time.Time  `gorm:"index" json:"submitted_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// TableName specifies the table name for CareerSubmission
func (CareerSubmission) TableName() string {
	return "career_submissions"
}

// BeforeCreate hook
func (c *CareerSubmission) BeforeCreate(tx *gorm.DB) error {
	c.SubmittedAt = time.Now()
	if c.Status == "" {
		c.Status = CareerStatusPending
	}
	return nil
}

// BeforeUpdate hook
func (c *CareerSubmission) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now()
	c.UpdatedAt = &now
	return nil
}

// IsValidCareerStatus reports whether s is an allowed career submission status
func IsValidCareerStatus(s string) bool {
	switch s {
	case CareerStatusPending, CareerStatusReviewed, CareerStatusRejected:
		return true
	}
	return false
}
