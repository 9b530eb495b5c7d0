package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fixlink/fixlink-api/models"
)

// OfferPriceTolerance bounds an offered price to within +/-20% of the
// job's asking price. The bound is enforced here, server-side, rather than
// trusted to the submitting client.
const OfferPriceTolerance = 0.20

// OfferService owns offers scoped to a job: creation against open jobs,
// the one-pending-offer-per-provider rule, and the atomic accept that
// resolves a job's offer book.
type OfferService struct {
	db *gorm.DB
}

// NewOfferService creates an offer service bound to the given database
func NewOfferService(db *gorm.DB) *OfferService {
	return &OfferService{db: db}
}

// CreateOfferInput is the typed request body for submitting an offer
type CreateOfferInput struct {
	OfferedPrice float64 `json:"offered_price" binding:"required"`
}

// Create submits a pending offer by the actor against an open job. The
// duplicate-pending check and the insert run in one transaction holding a
// lock on the job row, so two concurrent submissions by the same provider
// cannot both pass the check.
func (s *OfferService) Create(actor Actor, jobID uint, offeredPrice float64) (*models.Offer, error) {
	var offer models.Offer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := lockForUpdate(tx).First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("JOB_NOT_FOUND", "Job not found")
			}
			return err
		}
		if job.Status != models.JobStatusOpen {
			return invalidStateError("JOB_NOT_OPEN", "Offers can only be made on open jobs")
		}
		if actor.UserID == 0 {
			return unauthenticatedError("UNAUTHENTICATED", "No authenticated user")
		}
		if actor.Role != models.RoleProvider {
			return forbiddenError("FORBIDDEN", "Only providers can make offers")
		}
		if job.UserID == actor.UserID {
			return forbiddenError("FORBIDDEN", "You cannot make an offer on your own job")
		}

		lower := job.AskingPrice * (1 - OfferPriceTolerance)
		upper := job.AskingPrice * (1 + OfferPriceTolerance)
		if offeredPrice < lower || offeredPrice > upper {
			return validationError("PRICE_OUT_OF_RANGE",
				fmt.Sprintf("Offered price must be between %.2f and %.2f", lower, upper))
		}

		var pending int64
		if err := tx.Model(&models.Offer{}).
			Where("job_id = ? AND provider_id = ? AND status = ?", job.ID, actor.UserID, models.OfferStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return conflictError("DUPLICATE_PENDING_OFFER", "You already have a pending offer on this job")
		}

		offer = models.Offer{
			JobID:        job.ID,
			ProviderID:   actor.UserID,
			OfferedPrice: offeredPrice,
			Status:       models.OfferStatusPending,
		}
		return tx.Create(&offer).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Provider").First(&offer, offer.ID).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// ListForJob returns a job's offers with provider identity. Only the job
// owner sees the offer book.
func (s *OfferService) ListForJob(jobID uint, actor Actor) ([]models.Offer, error) {
	var job models.Job
	if err := s.db.First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("JOB_NOT_FOUND", "Job not found")
		}
		return nil, err
	}
	if job.UserID != actor.UserID {
		return nil, forbiddenError("FORBIDDEN", "Only the job owner can view its offers")
	}

	var offers []models.Offer
	if err := s.db.Where("job_id = ?", jobID).Preload("Provider").Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// ListForProvider returns the offers a provider has submitted, newest first
func (s *OfferService) ListForProvider(providerID uint) ([]models.Offer, error) {
	var offers []models.Offer
	if err := s.db.Where("provider_id = ?", providerID).
		Preload("Job").
		Order("created_at DESC").
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// Accept resolves a job's offer book: the target offer becomes accepted,
// every sibling pending offer is rejected, and the job advances to
// in-progress. The three writes are a single transaction, so a job can
// never end up with two accepted offers or an accepted offer on an open
// job.
func (s *OfferService) Accept(offerID uint, actor Actor) (*models.Offer, error) {
	var offer models.Offer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&offer, offerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("OFFER_NOT_FOUND", "Offer not found")
			}
			return err
		}

		var job models.Job
		if err := lockForUpdate(tx).First(&job, offer.JobID).Error; err != nil {
			return err
		}
		if job.UserID != actor.UserID {
			return forbiddenError("FORBIDDEN", "Only the job owner can accept an offer")
		}
		if job.Status != models.JobStatusOpen {
			return invalidStateError("JOB_NOT_OPEN", "Offers can only be accepted while the job is open")
		}
		if offer.Status != models.OfferStatusPending {
			return invalidStateError("OFFER_NOT_PENDING",
				fmt.Sprintf("Offer is already %s", offer.Status))
		}

		if err := tx.Model(&offer).Update("status", models.OfferStatusAccepted).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Offer{}).
			Where("job_id = ? AND id <> ? AND status = ?", job.ID, offer.ID, models.OfferStatusPending).
			Update("status", models.OfferStatusRejected).Error; err != nil {
			return err
		}
		return tx.Model(&job).Update("status", models.JobStatusInProgress).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Provider").First(&offer, offer.ID).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// Decline rejects a single pending offer without touching the job or its
// sibling offers.
func (s *OfferService) Decline(offerID uint, actor Actor) (*models.Offer, error) {
	var offer models.Offer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&offer, offerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("OFFER_NOT_FOUND", "Offer not found")
			}
			return err
		}

		var job models.Job
		if err := tx.First(&job, offer.JobID).Error; err != nil {
			return err
		}
		if job.UserID != actor.UserID {
			return forbiddenError("FORBIDDEN", "Only the job owner can decline an offer")
		}
		if offer.Status != models.OfferStatusPending {
			return invalidStateError("OFFER_NOT_PENDING",
				fmt.Sprintf("Offer is already %s", offer.Status))
		}
		return tx.Model(&offer).Update("status", models.OfferStatusRejected).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Provider").First(&offer, offer.ID).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// AcceptedOfferForJob returns the job's accepted offer, or nil if the
// offer book is unresolved.
func (s *OfferService) AcceptedOfferForJob(jobID uint) (*models.Offer, error) {
	var offer models.Offer
	err := s.db.Where("job_id = ? AND status = ?", jobID, models.OfferStatusAccepted).
		Preload("Provider").
		First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &offer, nil
}
