package controllers

import (
	"errors"
	"net/http"

	"github.com/fixlink/fixlink-api/config"
	"github.com/fixlink/fixlink-api/middleware"
	"github.com/fixlink/fixlink-api/models"
	"github.com/fixlink/fixlink-api/services"
	"github.com/gin-gonic/gin"
)

// respondError renders a typed service error as the standard error
// envelope. Each error kind maps to a fixed status so clients can tell a
// lifecycle rejection from a uniqueness conflict without parsing messages.
func respondError(c *gin.Context, err error) {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		c.JSON(statusForKind(svcErr.Kind), gin.H{
			"success": false,
			"error": gin.H{
				"code":    svcErr.Code,
				"message": svcErr.Message,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "DATABASE_ERROR",
			"message": "An unexpected error occurred",
		},
	})
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindUnauthenticated:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	case services.KindInvalidState:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// currentUser resolves the authenticated caller's database record from the
// validated token's sub claim. On failure it writes the error response and
// returns false.
func currentUser(c *gin.Context) (*models.User, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found. Please create a profile first.",
			},
		})
		return nil, false
	}

	return &user, true
}

// actorFor converts a user record into the explicit actor parameter the
// services consume.
func actorFor(user *models.User) services.Actor {
	return services.Actor{UserID: user.ID, Role: user.Role}
}
