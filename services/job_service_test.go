package services

import (
	"testing"

	"github.com/fixlink/fixlink-api/models"
	"github.com/stretchr/testify/assert"
)

func TestJobServiceCreate(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "Casey", "casey@example.com")
	provider := createTestProvider(t, db, "Pat", "pat@example.com", "Plumbing")
	svc := NewJobService(db)

	validInput := CreateJobInput{
		Title:       "Fix leaking tap",
		Description: "Kitchen tap drips constantly",
		Category:    "Plumbing",
		AskingPrice: 80,
		Location:    "Springfield",
	}

	t.Run("customer posts a job", func(t *testing.T) {
		job, err := svc.Create(Actor{UserID: customer.ID, Role: customer.Role}, validInput)

		assert.NoError(t, err)
		assert.Equal(t, "Fix leaking tap", job.Title)
		assert.Equal(t, models.JobStatusOpen, job.Status)
		assert.Equal(t, customer.ID, job.UserID)
		assert.Equal(t, customer.Name, job.User.Name)
	})

	t.Run("provider cannot post a job", func(t *testing.T) {
		_, err := svc.Create(Actor{UserID: provider.ID, Role: provider.Role}, validInput)
		assertServiceError(t, err, KindForbidden, "FORBIDDEN")
	})

	t.Run("unauthenticated actor rejected", func(t *testing.T) {
		_, err := svc.Create(Actor{}, validInput)
		assertServiceError(t, err, KindUnauthenticated, "UNAUTHENTICATED")
	})

	t.Run("blank title rejected", func(t *testing.T) {
		input := validInput
		input.Title = "   "
		_, err := svc.Create(Actor{UserID: customer.ID, Role: customer.Role}, input)
		assertServiceError(t, err, KindValidation, "VALIDATION_ERROR")
	})

	t.Run("zero asking price rejected", func(t *testing.T) {
		input := validInput
		input.AskingPrice = 0
		_, err := svc.Create(Actor{UserID: customer.ID, Role: customer.Role}, input)
		assertServiceError(t, err, KindValidation, "VALIDATION_ERROR")
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		input := validInput
		input.Category = "Astrology"
		_, err := svc.Create(Actor{UserID: customer.ID, Role: customer.Role}, input)
		assertServiceError(t, err, KindValidation, "INVALID_CATEGORY")
	})
}

func TestJobServiceList(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "Casey", "casey@example.com")
	other := createTestCustomer(t, db, "Olive", "olive@example.com")
	svc := NewJobService(db)

	plumbing := createTestJob(t, db, customer.ID, "Fix tap", 80)
	electrical := models.Job{
		UserID:      other.ID,
		Title:       "Rewire garage",
		Description: "Garage sockets are dead",
		Category:    "Electrical",
		AskingPrice: 300,
		Location:    "Springfield",
		Status:      models.JobStatusOpen,
	}
	assert.NoError(t, db.Create(&electrical).Error)
	assert.NoError(t, db.Model(&models.Job{}).Where("id = ?", plumbing.ID).
		Update("status", models.JobStatusCompleted).Error)

	t.Run("lists all jobs", func(t *testing.T) {
		jobs, err := svc.List(JobFilter{})
		assert.NoError(t, err)
		assert.Len(t, jobs, 2)
	})

	t.Run("filters by owner", func(t *testing.T) {
		jobs, err := svc.List(JobFilter{OwnerID: customer.ID})
		assert.NoError(t, err)
		assert.Len(t, jobs, 1)
		assert.Equal(t, plumbing.ID, jobs[0].ID)
	})

	t.Run("filters by category and status", func(t *testing.T) {
		jobs, err := svc.List(JobFilter{Category: "Electrical", Status: models.JobStatusOpen})
		assert.NoError(t, err)
		assert.Len(t, jobs, 1)
		assert.Equal(t, "Rewire garage", jobs[0].Title)
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		jobs, err := svc.List(JobFilter{Category: "Painting"})
		assert.NoError(t, err)
		assert.Empty(t, jobs)
	})
}

func TestJobServiceGet(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "Casey", "casey@example.com")
	job := createTestJob(t, db, customer.ID, "Fix tap", 80)
	svc := NewJobService(db)

	t.Run("returns the job with owner", func(t *testing.T) {
		got, err := svc.Get(job.ID)
		assert.NoError(t, err)
		assert.Equal(t, job.ID, got.ID)
		assert.Equal(t, customer.Name, got.User.Name)
	})

	t.Run("unknown job", func(t *testing.T) {
		_, err := svc.Get(job.ID + 999)
		assertServiceError(t, err, KindNotFound, "JOB_NOT_FOUND")
	})
}

func TestJobServiceCancel(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "Casey", "casey@example.com")
	stranger := createTestCustomer(t, db, "Olive", "olive@example.com")
	svc := NewJobService(db)
	actor := Actor{UserID: customer.ID, Role: customer.Role}

	t.Run("owner cancels an open job", func(t *testing.T) {
		job := createTestJob(t, db, customer.ID, "Cancel me", 50)

		got, err := svc.Cancel(job.ID, actor)
		assert.NoError(t, err)
		assert.Equal(t, models.JobStatusCancelled, got.Status)
	})

	t.Run("owner cancels an in-progress job", func(t *testing.T) {
		job := createTestJob(t, db, customer.ID, "Cancel mid-flight", 50)
		assert.NoError(t, db.Model(&models.Job{}).Where("id = ?", job.ID).
			Update("status", models.JobStatusInProgress).Error)

		got, err := svc.Cancel(job.ID, actor)
		assert.NoError(t, err)
		assert.Equal(t, models.JobStatusCancelled, got.Status)
	})

	t.Run("non-owner cannot cancel", func(t *testing.T) {
		job := createTestJob(t, db, customer.ID, "Not yours", 50)

		_, err := svc.Cancel(job.ID, Actor{UserID: stranger.ID, Role: stranger.Role})
		assertServiceError(t, err, KindForbidden, "FORBIDDEN")
	})

	t.Run("cancelling twice rejected", func(t *testing.T) {
		job := createTestJob(t, db, customer.ID, "Cancel twice", 50)

		_, err := svc.Cancel(job.ID, actor)
		assert.NoError(t, err)

		_, err = svc.Cancel(job.ID, actor)
		assertServiceError(t, err, KindInvalidState, "JOB_ALREADY_CANCELLED")
	})

	t.Run("completed job cannot be cancelled", func(t *testing.T) {
		job := createTestJob(t, db, customer.ID, "Already done", 50)
		assert.NoError(t, db.Model(&models.Job{}).Where("id = ?", job.ID).
			Update("status", models.JobStatusCompleted).Error)

		_, err := svc.Cancel(job.ID, actor)
		assertServiceError(t, err, KindInvalidState, "JOB_ALREADY_CLOSED")
	})

	t.Run("unknown job", func(t *testing.T) {
		_, err := svc.Cancel(99999, actor)
		assertServiceError(t, err, KindNotFound, "JOB_NOT_FOUND")
	})
}

func TestJobServiceComplete(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "Casey", "casey@example.com")
	svc := NewJobService(db)
	actor := Actor{UserID: customer.ID, Role: customer.Role}

	t.Run("owner completes an in-progress job", func(t *testing.T) {
		job := createTestJob(t, db, customer.ID, "Finish me", 50)
		assert.NoError(t, db.Model(&models.Job{}).Where("id = ?", job.ID).
			Update("status", models.JobStatusInProgress).Error)

		got, err := svc.Complete(job.ID, actor)
		assert.NoError(t, err)
		assert.Equal(t, models.JobStatusCompleted, got.Status)
	})

	t.Run("cancelled job cannot be completed", func(t *testing.T) {
		job := createTestJob(t, db, customer.ID, "Was cancelled", 50)
		assert.NoError(t, db.Model(&models.Job{}).Where("id = ?", job.ID).
			Update("status", models.JobStatusCancelled).Error)

		_, err := svc.Complete(job.ID, actor)
		assertServiceError(t, err, KindInvalidState, "JOB_ALREADY_CLOSED")
	})

	t.Run("completing twice rejected", func(t *testing.T) {
		job := createTestJob(t, db, customer.ID, "Complete twice", 50)

		_, err := svc.Complete(job.ID, actor)
		assert.NoError(t, err)

		_, err = svc.Complete(job.ID, actor)
		assertServiceError(t, err, KindInvalidState, "JOB_ALREADY_COMPLETED")
	})
}
