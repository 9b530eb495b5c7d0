package models

import (
	"time"

	"gorm.io/gorm"
)

// Offer states. At most one pending offer may exist per (job, provider),
// and at most one accepted offer per job.
const (
	OfferStatusPending  = "pending"
	OfferStatusAccepted = "accepted"
	OfferStatusRejected = "rejected"
)

// Offer represents a provider's bid against an open job
type Offer struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	JobID        uint           `gorm:"not null;index" json:"job_id"` // foreign key to jobs table
	Job          Job            `gorm:"foreignKey:JobID" json:"-"`    // don't include full job in JSON
	ProviderID   uint           `gorm:"not null;index" json:"provider_id"`
	Provider     User           `gorm:"foreignKey:ProviderID" json:"provider"`
	OfferedPrice float64        `gorm:"not null;check:offered_price > 0" json:"offered_price"`
	Status       string         `gorm:"not null;default:'pending';index" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Offer model
func (Offer) TableName() string {
	return "offers"
}
