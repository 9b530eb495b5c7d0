package controllers

import (
	"net/http"

	"github.com/fixlink/fixlink-api/config"
	"github.com/fixlink/fixlink-api/services"
	"github.com/gin-gonic/gin"
)

// ListContacts handles GET /api/v1/contacts - derives who the caller may
// message right now. Contacts are recomputed per request from in-progress
// jobs and their accepted offers; nothing is stored.
func ListContacts(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	contactService := services.NewContactService(config.GetDB())
	contacts, err := contactService.Contacts(actorFor(user))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    contacts,
	})
}
