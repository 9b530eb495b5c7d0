package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/fixlink/fixlink-api/config"
	"github.com/fixlink/fixlink-api/models"
	"github.com/fixlink/fixlink-api/services"
	"github.com/gin-gonic/gin"
)

// CreateJob handles POST /api/v1/jobs - posts a new job (customers only)
func CreateJob(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input services.CreateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	jobService := services.NewJobService(config.GetDB())
	job, err := jobService.Create(actorFor(user), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    job,
	})
}

// ListJobs handles GET /api/v1/jobs - lists jobs newest-first.
// ?mine=true narrows to the caller's own jobs; ?category= and ?status=
// drive the provider browse view.
func ListJobs(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	filter := services.JobFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
	}
	if c.Query("mine") == "true" {
		filter.OwnerID = user.ID
	}

	jobService := services.NewJobService(config.GetDB())
	jobs, err := jobService.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	for i := range jobs {
		attachImageURLs(&jobs[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    jobs,
	})
}

// GetJob handles GET /api/v1/jobs/:id - fetches a single job
func GetJob(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	jobService := services.NewJobService(config.GetDB())
	job, err := jobService.Get(jobID)
	if err != nil {
		respondError(c, err)
		return
	}
	attachImageURLs(job)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// CancelJob handles POST /api/v1/jobs/:id/cancel - owner cancels a job
func CancelJob(c *gin.Context) {
	transitionJob(c, func(jobService *services.JobService, jobID uint, actor services.Actor) (*models.Job, error) {
		return jobService.Cancel(jobID, actor)
	})
}

// CompleteJob handles POST /api/v1/jobs/:id/complete - owner marks a job done
func CompleteJob(c *gin.Context) {
	transitionJob(c, func(jobService *services.JobService, jobID uint, actor services.Actor) (*models.Job, error) {
		return jobService.Complete(jobID, actor)
	})
}

func transitionJob(c *gin.Context, transition func(*services.JobService, uint, services.Actor) (*models.Job, error)) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	jobService := services.NewJobService(config.GetDB())
	job, err := transition(jobService, jobID, actorFor(user))
	if err != nil {
		respondError(c, err)
		return
	}
	attachImageURLs(job)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// parseIDParam reads a numeric URL parameter, rendering a validation error
// on garbage input.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid " + name + " parameter",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// attachImageURLs fills in the computed URL for each of a job's images
func attachImageURLs(job *models.Job) {
	imageService := services.GetImageService()
	if imageService == nil {
		return
	}
	for i := range job.Images {
		url, err := imageService.GetImageURL(job.Images[i].StorageKey)
		if err != nil {
			log.Printf("Failed to generate URL for job image %d: %v", job.Images[i].ID, err)
			continue
		}
		job.Images[i].URL = url
	}
}
