package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/fixlink/fixlink-api/models"
)

// ReviewService gates review submission on the job lifecycle and keeps the
// reviewee's rating average consistent with the stored reviews.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a review service bound to the given database
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// SubmitReviewInput is the typed request body for leaving a review
type SubmitReviewInput struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// Submit records the actor's review of the other party of a completed job.
// The reviewee is derived, never supplied: the job owner reviews the
// accepted provider and vice versa. The duplicate check, the insert and
// the rating recompute are one transaction; the composite unique index on
// (job_id, reviewer_id) backs the duplicate check under concurrency.
func (s *ReviewService) Submit(actor Actor, jobID uint, input SubmitReviewInput) (*models.Review, error) {
	if actor.UserID == 0 {
		return nil, unauthenticatedError("UNAUTHENTICATED", "No authenticated user")
	}

	var review models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("JOB_NOT_FOUND", "Job not found")
			}
			return err
		}
		if job.Status != models.JobStatusCompleted {
			return invalidStateError("JOB_NOT_COMPLETED", "Reviews can only be left on completed jobs")
		}

		var accepted models.Offer
		if err := tx.Where("job_id = ? AND status = ?", job.ID, models.OfferStatusAccepted).
			First(&accepted).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalidStateError("NO_ACCEPTED_OFFER", "Job has no accepted offer to review against")
			}
			return err
		}

		var revieweeID uint
		switch actor.UserID {
		case job.UserID:
			revieweeID = accepted.ProviderID
		case accepted.ProviderID:
			revieweeID = job.UserID
		default:
			return forbiddenError("FORBIDDEN", "Only the job owner or the accepted provider can leave a review")
		}

		var existing int64
		if err := tx.Model(&models.Review{}).
			Where("job_id = ? AND reviewer_id = ?", job.ID, actor.UserID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return conflictError("DUPLICATE_REVIEW", "You have already reviewed this job")
		}

		if input.Rating < 1 || input.Rating > 5 {
			return validationError("INVALID_RATING", "Rating must be an integer between 1 and 5")
		}

		review = models.Review{
			JobID:      job.ID,
			ReviewerID: actor.UserID,
			RevieweeID: revieweeID,
			Rating:     input.Rating,
			Comment:    input.Comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			// The unique index catches a concurrent duplicate the count
			// above raced with.
			if isUniqueViolation(err) {
				return conflictError("DUPLICATE_REVIEW", "You have already reviewed this job")
			}
			return err
		}

		return recomputeRating(tx, revieweeID)
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Reviewer").First(&review, review.ID).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListForUser returns the reviews a user has received, newest first
func (s *ReviewService) ListForUser(userID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Where("reviewee_id = ?", userID).
		Preload("Reviewer").
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// RecomputeRating re-derives a user's rating average from the stored
// reviews. Submit keeps the aggregate current; this is the repair pass for
// a write that was interrupted between review insert and aggregate update.
func (s *ReviewService) RecomputeRating(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return recomputeRating(tx, userID)
	})
}

// recomputeRating writes the full arithmetic mean of the user's received
// ratings onto the user row. Full aggregation, not incremental; review
// volumes per user stay small.
func recomputeRating(tx *gorm.DB, userID uint) error {
	var average float64
	if err := tx.Model(&models.Review{}).
		Where("reviewee_id = ?", userID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&average).Error; err != nil {
		return err
	}
	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		Update("rating_average", average).Error
}

// isUniqueViolation detects a unique-constraint failure from either
// PostgreSQL or SQLite without importing driver-specific error types.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
