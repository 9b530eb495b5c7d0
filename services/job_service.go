package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/fixlink/fixlink-api/models"
)

// JobService owns job creation and the job status machine. Transitions only
// ever move forward: open -> in-progress -> completed, or open -> cancelled.
type JobService struct {
	db *gorm.DB
}

// NewJobService creates a job service bound to the given database
func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

// CreateJobInput is the typed request body for posting a job
type CreateJobInput struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	AskingPrice  float64 `json:"asking_price" binding:"required"`
	Location     string  `json:"location" binding:"required"`
	LocationLink *string `json:"location_link"`
}

// JobFilter narrows a job listing. OwnerID selects a user's own jobs;
// Category/Status drive the provider browse view.
type JobFilter struct {
	OwnerID  uint
	Category string
	Status   string
}

// Create posts a new job for the actor. Only customers post jobs; new jobs
// always start open.
func (s *JobService) Create(actor Actor, input CreateJobInput) (*models.Job, error) {
	if actor.UserID == 0 {
		return nil, unauthenticatedError("UNAUTHENTICATED", "No authenticated user")
	}
	if actor.Role != models.RoleCustomer {
		return nil, forbiddenError("FORBIDDEN", "Only customers can post jobs")
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, validationError("VALIDATION_ERROR", "Title is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, validationError("VALIDATION_ERROR", "Description is required")
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, validationError("VALIDATION_ERROR", "Location is required")
	}
	if input.AskingPrice <= 0 {
		return nil, validationError("VALIDATION_ERROR", "Asking price must be greater than zero")
	}
	if !models.IsValidCategory(input.Category) {
		return nil, validationError("INVALID_CATEGORY",
			fmt.Sprintf("Category must be one of: %s", strings.Join(models.ServiceCategories, ", ")))
	}

	job := models.Job{
		UserID:       actor.UserID,
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		AskingPrice:  input.AskingPrice,
		Location:     input.Location,
		LocationLink: input.LocationLink,
		Status:       models.JobStatusOpen,
	}
	if err := s.db.Create(&job).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").Preload("Images").First(&job, job.ID).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// List returns jobs newest-first, optionally narrowed by owner or by
// category and status.
func (s *JobService) List(filter JobFilter) ([]models.Job, error) {
	query := s.db.Preload("User").Preload("Images").Order("created_at DESC")
	if filter.OwnerID != 0 {
		query = query.Where("user_id = ?", filter.OwnerID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var jobs []models.Job
	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Get loads a single job with its owner and images
func (s *JobService) Get(jobID uint) (*models.Job, error) {
	var job models.Job
	if err := s.db.Preload("User").Preload("Images").First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("JOB_NOT_FOUND", "Job not found")
		}
		return nil, err
	}
	return &job, nil
}

// Cancel moves the actor's job to cancelled. Legal from open or
// in-progress; both terminal states are rejected so a job's status history
// never revisits or crosses terminals.
func (s *JobService) Cancel(jobID uint, actor Actor) (*models.Job, error) {
	return s.transition(jobID, actor, models.JobStatusCancelled)
}

// Complete moves the actor's job to completed. Legal from open or
// in-progress.
func (s *JobService) Complete(jobID uint, actor Actor) (*models.Job, error) {
	return s.transition(jobID, actor, models.JobStatusCompleted)
}

func (s *JobService) transition(jobID uint, actor Actor, target string) (*models.Job, error) {
	if actor.UserID == 0 {
		return nil, unauthenticatedError("UNAUTHENTICATED", "No authenticated user")
	}

	var job models.Job
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("JOB_NOT_FOUND", "Job not found")
			}
			return err
		}
		if job.UserID != actor.UserID {
			return forbiddenError("FORBIDDEN", "Only the job owner can change its status")
		}
		if job.Status == target {
			return invalidStateError("JOB_ALREADY_"+strings.ToUpper(strings.ReplaceAll(target, "-", "_")),
				fmt.Sprintf("Job is already %s", target))
		}
		if job.IsTerminal() {
			return invalidStateError("JOB_ALREADY_CLOSED",
				fmt.Sprintf("Job is %s and can no longer change status", job.Status))
		}
		return tx.Model(&job).Update("status", target).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").Preload("Images").First(&job, job.ID).Error; err != nil {
		return nil, err
	}
	return &job, nil
}
