package domain

import (
	"time"

	"gorm.io/gorm"
)

// Location inquiry statuses
const (
	LocationStatusNew       = "new"
	LocationStatusContacted = "contacted"
	LocationStatusClosed    = "closed"
)

// LocationInquiry represents a lead scoped to a specific location
type LocationInquiry struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"not null;index" json:"email"`
	Phone        string     `gorm:"not null;index" json:"phone"`
	LocationName string     `gorm:"not null;index" json:"location_name"`
	PropertyType string     `gorm:"default:'Any'" json:"property_type"`
	Budget       string     `gorm:"default:'Not specified'" json:"budget"`
	Message      string     `gorm:"type:text" json:"message"`
	Status       string     `gorm:"default:'new'" json:"status"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// TableName specifies the table name for LocationInquiry
func (LocationInquiry) TableName() string {
	return "location_inquiries"
}

// BeforeCreate hook
func (l *LocationInquiry) BeforeCreate(tx *gorm.DB) error {
	l.CreatedAt = time.Now()
	if l.PropertyType == "" {
		l.PropertyType = "Any"
	}
	if l.Budget == "" {
		l.Budget = "Not specified"
	}
	if l.Message == "" {
		l.Message = "Interested in properties in " + l.LocationName
	}
	if l.Status == "" {
		l.Status = LocationStatusNew
	}
	return nil
}

// BeforeUpdate hook
func (l *LocationInquiry) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now()
	l.UpdatedAt = &now
	return nil
}

// IsValidLocationStatus reports whether s is an allowed location inquiry status
func IsValidLocationStatus(s string) bool {
	switch s {
	case LocationStatusNew, LocationStatusContacted, LocationStatusClosed:
		return true
	}
	return false
}
