package domain

import (
	"time"

	"gorm.io/gorm"
)

// RealEstateProject represents a listing in the property catalog.
// Price and size fields are display strings (e.g. "1.2 Cr", "1450-1800"),
// not numerics, matching how listings are published.
type RealEstateProject struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	ProjectName      string     `gorm:"not null;index" json:"project_name"`
	BuilderName      string     `gorm:"not null;index" json:"builder_name"`
	ProjectType      string     `json:"project_type"`
	MinPrice         string     `json:"min_price"`
	MaxPrice         string     `json:"max_price"`
	SizeSqft         string     `json:"size_sqft"`
	BHK              string     `gorm:"column:bhk;index" json:"bhk"`
	StatusPossession string     `gorm:"index" json:"status_possession"`
	Location         string     `gorm:"not null;index" json:"location"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

// TableName specifies the table name for RealEstateProject
func (RealEstateProject) TableName() string {
	return "real_estate_projects"
}

// BeforeCreate hook
func (p *RealEstateProject) BeforeCreate(tx *gorm.DB) error {
	p.CreatedAt = time.Now()
	return nil
}

// BeforeUpdate hook
func (p *RealEstateProject) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now()
	p.UpdatedAt = &now
	return nil
}
