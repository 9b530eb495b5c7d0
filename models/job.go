package models

import (
	"time"

	"gorm.io/gorm"
)

// Job lifecycle states. A job only ever moves forward:
// open -> in-progress -> completed, or open -> cancelled.
const (
	JobStatusOpen       = "open"
	JobStatusInProgress = "in-progress"
	JobStatusCancelled  = "cancelled"
	JobStatusCompleted  = "completed"
)

// Job represents a posted service request with a lifecycle status
type Job struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"` // foreign key to users table (owner)
	User         User           `gorm:"foreignKey:UserID" json:"user"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	Category     string         `gorm:"not null;index" json:"category"` // one of ServiceCategories
	AskingPrice  float64        `gorm:"not null;check:asking_price > 0" json:"asking_price"`
	Location     string         `gorm:"not null" json:"location"`
	LocationLink *string        `json:"location_link,omitempty"` // optional map link
	Status       string         `gorm:"not null;default:'open';index" json:"status"`
	Images       []JobImage     `gorm:"foreignKey:JobID" json:"images"`
	Offers       []Offer        `gorm:"foreignKey:JobID" json:"offers,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Job model
func (Job) TableName() string {
	return "jobs"
}

// IsTerminal reports whether the job's status is one of the two terminal states.
func (j *Job) IsTerminal() bool {
	return j.Status == JobStatusCancelled || j.Status == JobStatusCompleted
}

// JobImage is a single image attached to a job. Position preserves the
// order in which images were uploaded. StorageKey identifies the object in
// the image storage backend; the servable URL is computed per request.
type JobImage struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	JobID      uint           `gorm:"not null;index" json:"job_id"`
	Position   int            `gorm:"not null" json:"position"`
	StorageKey string         `gorm:"not null" json:"-"`
	URL        string         `gorm:"-" json:"url,omitempty"` // computed field, presigned or local URL
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the JobImage model
func (JobImage) TableName() string {
	return "job_images"
}
