package domain

import (
	"time"

	"gorm.io/gorm"
)

// Inquiry represents a general lead captured from the public site
type Inquiry struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Email     string     `gorm:"not null;index" json:"email"`
	Phone     string     `gorm:"not null;index" json:"phone"`
	Message   string     `gorm:"type:text" json:"message"`
	Source    string     `gorm:"default:'Website Form'" json:"source"`
	Urgent    bool       `gorm:"default:false" json:"urgent"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// TableName specifies the table name for Inquiry
func (Inquiry) TableName() string {
	return "inquiries"
}

// BeforeCreate hook
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	i.CreatedAt = time.Now()
	if i.Source == "" {
		i.Source = "Website Form"
	}
	return nil
}

// BeforeUpdate hook
func (i *Inquiry) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now()
	i.UpdatedAt = &now
	return nil
}
