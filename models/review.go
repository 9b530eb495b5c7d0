package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a 1-5 rating left by one party of a completed job about the
// other. The composite unique index enforces exactly one review per
// (job, reviewer) at the database level.
type Review struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	JobID      uint           `gorm:"not null;uniqueIndex:idx_reviews_job_reviewer" json:"job_id"`
	ReviewerID uint           `gorm:"not null;uniqueIndex:idx_reviews_job_reviewer" json:"reviewer_id"`
	Reviewer   User           `gorm:"foreignKey:ReviewerID" json:"reviewer"`
	RevieweeID uint           `gorm:"not null;index" json:"reviewee_id"`
	Rating     int            `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string         `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}
