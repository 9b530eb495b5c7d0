package controllers

import (
	"net/http"

	"github.com/fixlink/fixlink-api/config"
	"github.com/fixlink/fixlink-api/models"
	"github.com/fixlink/fixlink-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// SendMessage handles POST /api/v1/jobs/:id/messages - sends a message in a
// job conversation. Only the job owner and the accepted provider are
// parties to the conversation.
func SendMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var job models.Job
	if err := db.First(&job, jobID).Error; err != nil {
		c.PureJSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "JOB_NOT_FOUND",
				"message": "Job not found",
			},
		})
		return
	}

	if !isConversationParty(db, &job, user) {
		c.PureJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to message on this job",
			},
		})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.PureJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	message := models.Message{
		JobID:    job.ID,
		SenderID: user.ID,
		Text:     req.Text,
	}

	if err := db.Create(&message).Error; err != nil {
		c.PureJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create message",
			},
		})
		return
	}

	// Load the sender relationship to return complete data
	if err := db.Preload("Sender").First(&message, message.ID).Error; err != nil {
		c.PureJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load message details",
			},
		})
		return
	}

	c.PureJSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    message,
	})
}

// ListMessages handles GET /api/v1/jobs/:id/messages - lists a job's
// conversation for its parties
func ListMessages(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var job models.Job
	if err := db.First(&job, jobID).Error; err != nil {
		c.PureJSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "JOB_NOT_FOUND",
				"message": "Job not found",
			},
		})
		return
	}

	if !isConversationParty(db, &job, user) {
		c.PureJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to view messages on this job",
			},
		})
		return
	}

	var messages []models.Message
	if err := db.Where("job_id = ?", job.ID).
		Preload("Sender").
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		c.PureJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch messages",
			},
		})
		return
	}

	c.PureJSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}

// isConversationParty reports whether the user is the job's owner or the
// provider whose offer was accepted. Providers with pending or rejected
// offers are not parties.
func isConversationParty(db *gorm.DB, job *models.Job, user *models.User) bool {
	switch user.Role {
	case models.RoleCustomer:
		return job.UserID == user.ID
	case models.RoleProvider:
		accepted, err := services.NewOfferService(db).AcceptedOfferForJob(job.ID)
		if err != nil || accepted == nil {
			return false
		}
		return accepted.ProviderID == user.ID
	}
	return false
}
