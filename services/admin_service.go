package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fixlink/fixlink-api/models"
)

// AdminService is the read-mostly moderation surface: a dashboard overview
// plus the provider verification action.
type AdminService struct {
	db *gorm.DB
}

// NewAdminService creates an admin service bound to the given database
func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// Overview aggregates the latest activity for the admin dashboard
type Overview struct {
	Users    []models.User    `json:"users"`
	Jobs     []models.Job     `json:"jobs"`
	Disputes []models.Dispute `json:"disputes"`
}

// Overview returns the five most recent users, jobs and disputes
func (s *AdminService) Overview() (*Overview, error) {
	overview := &Overview{}

	if err := s.db.Order("created_at DESC").Limit(5).Find(&overview.Users).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("User").Order("created_at DESC").Limit(5).Find(&overview.Jobs).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("RaisedBy").Order("created_at DESC").Limit(5).Find(&overview.Disputes).Error; err != nil {
		return nil, err
	}
	return overview, nil
}

// SetProviderVerification approves or rejects a provider's verification.
// Only the two decision states are accepted; the target must exist and be
// a provider. No cascading effects beyond the user row.
func (s *AdminService) SetProviderVerification(providerID uint, status string) (*models.User, error) {
	if status != models.VerificationVerified && status != models.VerificationRejected {
		return nil, validationError("INVALID_VERIFICATION_STATUS",
			"Verification status must be 'verified' or 'rejected'")
	}

	var user models.User
	if err := s.db.First(&user, providerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("USER_NOT_FOUND", "Provider not found")
		}
		return nil, err
	}
	if user.Role != models.RoleProvider {
		return nil, invalidStateError("NOT_A_PROVIDER", "Verification only applies to providers")
	}

	if err := s.db.Model(&user).Update("verification_status", status).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
