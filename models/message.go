package models

import (
	"time"

	"gorm.io/gorm"
)

// Message represents a message in a job conversation between the job owner
// and the accepted provider
type Message struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	JobID     uint           `gorm:"not null;index" json:"job_id"` // foreign key to jobs table
	Job       Job            `gorm:"foreignKey:JobID" json:"-"`    // don't include full job in JSON
	SenderID  uint           `gorm:"not null;index" json:"sender_id"` // foreign key to users table
	Sender    User           `gorm:"foreignKey:SenderID" json:"sender"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}
