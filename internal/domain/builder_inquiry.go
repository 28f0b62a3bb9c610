package domain

import (
	"time"

	"gorm.io/gorm"
)

// BuilderInquiry represents a lead scoped to a specific builder
type BuilderInquiry struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	BuilderName string     `gorm:"not null;index" json:"builder_name"`
	Name        string     `gorm:"not null" json:"name"`
	Email       string     `gorm:"not null;index" json:"email"`
	Phone       string     `gorm:"not null;index" json:"phone"`
	Message     string     `gorm:"type:text" json:"message"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// TableName specifies the table name for BuilderInquiry
func (BuilderInquiry) TableName() string {
	return "builder_inquiries"
}

// BeforeCreate hook
func (b *BuilderInquiry) BeforeCreate(tx *gorm.DB) error {
	b.CreatedAt = time.Now()
	if b.Message == "" {
		b.Message = "General inquiry about projects"
	}
	return nil
}

// BeforeUpdate hook
func (b *BuilderInquiry) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now()
	b.UpdatedAt = &now
	return nil
}
