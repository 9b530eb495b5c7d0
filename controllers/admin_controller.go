package controllers

import (
	"net/http"

	"github.com/fixlink/fixlink-api/config"
	"github.com/fixlink/fixlink-api/services"
	"github.com/gin-gonic/gin"
)

// GetAdminOverview handles GET /api/v1/admin/overview - latest users, jobs
// and disputes for the moderation dashboard
func GetAdminOverview(c *gin.Context) {
	adminService := services.NewAdminService(config.GetDB())
	overview, err := adminService.Overview()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    overview,
	})
}

// SetVerificationRequest represents the request body for a verification decision
type SetVerificationRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetProviderVerification handles PUT /api/v1/admin/providers/:id/verification
// - approves or rejects a provider's verification
func SetProviderVerification(c *gin.Context) {
	providerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetVerificationRequest
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

	adminService := services.NewAdminService(config.GetDB())
	user, err := adminService.SetProviderVerification(providerID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
