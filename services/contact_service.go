package services

import (
	"gorm.io/gorm"

	"github.com/fixlink/fixlink-api/models"
)

// Contact is a derived counterpart-for-messaging relationship. Contacts
// are not stored; they are recomputed from the offer book and the job
// ledger and scoped strictly to jobs currently in progress.
type Contact struct {
	CounterpartID   uint   `json:"counterpart_id"`
	CounterpartName string `json:"counterpart_name"`
	JobID           uint   `json:"job_id"`
	JobTitle        string `json:"job_title"`
}

// ContactService computes who a user is currently allowed to message
type ContactService struct {
	db *gorm.DB
}

// NewContactService creates a contact service bound to the given database
func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

// Contacts derives the actor's message counterparts. Providers see the
// owners of in-progress jobs where their offer was accepted; customers see
// the accepted providers of their in-progress jobs. Duplicate counterparts
// collapse to the first occurrence.
func (s *ContactService) Contacts(actor Actor) ([]Contact, error) {
	if actor.UserID == 0 {
		return nil, unauthenticatedError("UNAUTHENTICATED", "No authenticated user")
	}

	switch actor.Role {
	case models.RoleProvider:
		return s.providerContacts(actor.UserID)
	case models.RoleCustomer:
		return s.customerContacts(actor.UserID)
	default:
		return []Contact{}, nil
	}
}

func (s *ContactService) providerContacts(providerID uint) ([]Contact, error) {
	var offers []models.Offer
	if err := s.db.Where("provider_id = ? AND status = ?", providerID, models.OfferStatusAccepted).
		Preload("Job").
		Preload("Job.User").
		Find(&offers).Error; err != nil {
		return nil, err
	}

	contacts := make([]Contact, 0, len(offers))
	seen := make(map[uint]bool)
	for _, offer := range offers {
		if offer.Job.Status != models.JobStatusInProgress {
			continue
		}
		if seen[offer.Job.UserID] {
			continue
		}
		seen[offer.Job.UserID] = true
		contacts = append(contacts, Contact{
			CounterpartID:   offer.Job.UserID,
			CounterpartName: offer.Job.User.Name,
			JobID:           offer.JobID,
			JobTitle:        offer.Job.Title,
		})
	}
	return contacts, nil
}

func (s *ContactService) customerContacts(userID uint) ([]Contact, error) {
	var jobs []models.Job
	if err := s.db.Where("user_id = ? AND status = ?", userID, models.JobStatusInProgress).
		Find(&jobs).Error; err != nil {
		return nil, err
	}

	contacts := make([]Contact, 0, len(jobs))
	seen := make(map[uint]bool)
	for _, job := range jobs {
		var accepted models.Offer
		err := s.db.Where("job_id = ? AND status = ?", job.ID, models.OfferStatusAccepted).
			Preload("Provider").
			First(&accepted).Error
		if err != nil {
			// An in-progress job always has an accepted offer; skip
			// rather than fail if the data predates that rule.
			continue
		}
		if seen[accepted.ProviderID] {
			continue
		}
		seen[accepted.ProviderID] = true
		contacts = append(contacts, Contact{
			CounterpartID:   accepted.ProviderID,
			CounterpartName: accepted.Provider.Name,
			JobID:           job.ID,
			JobTitle:        job.Title,
		})
	}
	return contacts, nil
}
