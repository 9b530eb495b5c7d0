package controllers

import (
	"net/http"

	"github.com/fixlink/fixlink-api/config"
	"github.com/fixlink/fixlink-api/services"
	"github.com/gin-gonic/gin"
)

// CreateOffer handles POST /api/v1/jobs/:id/offers - submits an offer on an
// open job (providers only)
func CreateOffer(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.CreateOfferInput
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

	offerService := services.NewOfferService(config.GetDB())
	offer, err := offerService.Create(actorFor(user), jobID, input.OfferedPrice)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    offer,
	})
}

// ListJobOffers handles GET /api/v1/jobs/:id/offers - lists offers on a job
// (job owner only)
func ListJobOffers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	offerService := services.NewOfferService(config.GetDB())
	offers, err := offerService.ListForJob(jobID, actorFor(user))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    offers,
	})
}

// ListMyOffers handles GET /api/v1/offers/mine - lists the caller's
// submitted offers (providers)
func ListMyOffers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	offerService := services.NewOfferService(config.GetDB())
	offers, err := offerService.ListForProvider(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    offers,
	})
}

// AcceptOffer handles POST /api/v1/offers/:id/accept - the job owner
// accepts an offer, rejecting all other pending offers and moving the job
// to in-progress
func AcceptOffer(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	offerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	offerService := services.NewOfferService(config.GetDB())
	offer, err := offerService.Accept(offerID, actorFor(user))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    offer,
	})
}

// DeclineOffer handles POST /api/v1/offers/:id/decline - the job owner
// rejects a single pending offer
func DeclineOffer(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	offerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	offerService := services.NewOfferService(config.GetDB())
	offer, err := offerService.Decline(offerID, actorFor(user))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    offer,
	})
}
