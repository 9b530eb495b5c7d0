package controllers

import (
	"net/http"

	"github.com/fixlink/fixlink-api/config"
	"github.com/fixlink/fixlink-api/services"
	"github.com/gin-gonic/gin"
)

// SubmitReview handles POST /api/v1/jobs/:id/reviews - one party of a
// completed job reviews the other
func SubmitReview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.SubmitReviewInput
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

	reviewService := services.NewReviewService(config.GetDB())
	review, err := reviewService.Submit(actorFor(user), jobID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    review,
	})
}

// ListUserReviews handles GET /api/v1/users/:id/reviews - the reviews a
// user has received, with their current rating average
func ListUserReviews(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reviewService := services.NewReviewService(config.GetDB())
	reviews, err := reviewService.ListForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reviews,
	})
}
