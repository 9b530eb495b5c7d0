package models

import (
	"time"

	"gorm.io/gorm"
)

// Dispute states and priorities. Disputes carry no resolution workflow
// here; they are raised by a party of a job and surfaced to admins.
const (
	DisputeStatusOpen     = "open"
	DisputeStatusResolved = "resolved"
	DisputeStatusRejected = "rejected"

	DisputePriorityLow    = "low"
	DisputePriorityMedium = "medium"
	DisputePriorityHigh   = "high"
)

// Dispute represents a complaint raised against a job
type Dispute struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	JobID      uint           `gorm:"not null;index" json:"job_id"`
	Job        Job            `gorm:"foreignKey:JobID" json:"-"`
	RaisedByID uint           `gorm:"not null;index" json:"raised_by_id"`
	RaisedBy   User           `gorm:"foreignKey:RaisedByID" json:"raised_by"`
	Reason     string         `gorm:"type:text;not null" json:"reason"`
	Status     string         `gorm:"not null;default:'open'" json:"status"`
	Priority   string         `gorm:"not null;default:'medium'" json:"priority"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Dispute model
func (Dispute) TableName() string {
	return "disputes"
}
