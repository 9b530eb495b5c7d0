package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// Provider verification states
const (
	VerificationUnset    = "unset"
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// ServiceCategories is the fixed set of categories a provider can work in
// and a job can be posted under.
var ServiceCategories = []string{
	"Plumbing",
	"Electrical",
	"Carpentry",
	"Painting",
	"Landscaping",
	"General Repairs",
}

// IsValidCategory reports whether category is one of the fixed service categories.
func IsValidCategory(category string) bool {
	for _, c := range ServiceCategories {
		if c == category {
			return true
		}
	}
	return false
}

// User represents a user in the system (customer, service provider or admin)
type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Auth0ID            string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	Name               string         `gorm:"not null" json:"name"`
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	Role               string         `gorm:"not null;default:'customer'" json:"role"` // "customer", "provider" or "admin"
	Category           *string        `json:"category,omitempty"`                      // providers only, one of ServiceCategories
	VerificationStatus string         `gorm:"not null;default:'unset'" json:"verification_status"`
	RatingAverage      float64        `gorm:"not null;default:0" json:"rating_average"` // derived, mean of received review ratings
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
