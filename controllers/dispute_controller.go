package controllers

import (
	"net/http"

	"github.com/fixlink/fixlink-api/config"
	"github.com/fixlink/fixlink-api/models"
	"github.com/gin-gonic/gin"
)

// CreateDisputeRequest represents the request body for raising a dispute
type CreateDisputeRequest struct {
	Reason   string `json:"reason" binding:"required"`
	Priority string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// CreateDispute handles POST /api/v1/jobs/:id/disputes - a party of the job
// raises a dispute for admin attention. Disputes carry no resolution
// workflow here; admins see them in the moderation overview.
func CreateDispute(c *gin.Context) {
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
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "JOB_NOT_FOUND",
				"message": "Job not found",
			},
		})
		return
	}

	if !isConversationParty(db, &job, user) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only the job's parties can raise a dispute",
			},
		})
		return
	}

	var req CreateDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
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

	priority := req.Priority
	if priority == "" {
		priority = models.DisputePriorityMedium
	}

	dispute := models.Dispute{
		JobID:      job.ID,
		RaisedByID: user.ID,
		Reason:     req.Reason,
		Status:     models.DisputeStatusOpen,
		Priority:   priority,
	}

	if err := db.Create(&dispute).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create dispute",
			},
		})
		return
	}

	if err := db.Preload("RaisedBy").First(&dispute, dispute.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load dispute details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    dispute,
	})
}
