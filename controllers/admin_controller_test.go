package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fixlink/fixlink-api/config"
	"github.com/fixlink/fixlink-api/middleware"
	"github.com/fixlink/fixlink-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// adminRouter wires the moderation routes behind the mock auth middleware
// and the real admin guard
func adminRouter(auth0ID string) *gin.Engine {
	router := setupTestRouter()
	admin := router.Group("/admin", mockAuthMiddleware(auth0ID, "", "token"), middleware.RequireAdmin())
	admin.GET("/overview", GetAdminOverview)
	admin.PUT("/providers/:id/verification", SetProviderVerification)
	return router
}

func TestGetAdminOverviewEndpoint(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	seedUser(t, db, "auth0|admin", "Addie Admin", models.RoleAdmin)
	casey := seedUser(t, db, "auth0|cust", "Casey", models.RoleCustomer)
	seedJob(t, db, casey.ID, "Fix tap", "Plumbing")

	t.Run("admin sees the overview", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/overview", nil)
		w := httptest.NewRecorder()
		adminRouter("auth0|admin").ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Len(t, data["users"].([]interface{}), 2)
		assert.Len(t, data["jobs"].([]interface{}), 1)
		assert.Empty(t, data["disputes"])
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/overview", nil)
		w := httptest.NewRecorder()
		adminRouter("auth0|cust").ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown subject rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/overview", nil)
		w := httptest.NewRecorder()
		adminRouter("auth0|ghost").ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSetProviderVerificationEndpoint(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	seedUser(t, db, "auth0|admin", "Addie Admin", models.RoleAdmin)
	provider := seedUser(t, db, "auth0|prov", "Pat", models.RoleProvider)
	customer := seedUser(t, db, "auth0|cust", "Casey", models.RoleCustomer)

	setVerification := func(auth0ID string, userID uint, status string) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(map[string]string{"status": status})
		req := httptest.NewRequest(http.MethodPut,
			fmt.Sprintf("/admin/providers/%d/verification", userID), bytes.NewBuffer(raw))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		adminRouter(auth0ID).ServeHTTP(w, req)
		return w
	}

	t.Run("admin verifies a provider", func(t *testing.T) {
		w := setVerification("auth0|admin", provider.ID, models.VerificationVerified)

		assert.Equal(t, http.StatusOK, w.Code)

		var stored models.User
		assert.NoError(t, db.First(&stored, provider.ID).Error)
		assert.Equal(t, models.VerificationVerified, stored.VerificationStatus)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		w := setVerification("auth0|admin", provider.ID, "maybe")

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errObj := response["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_VERIFICATION_STATUS", errObj["code"])
	})

	t.Run("customer target rejected", func(t *testing.T) {
		w := setVerification("auth0|admin", customer.ID, models.VerificationVerified)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("non-admin cannot verify", func(t *testing.T) {
		w := setVerification("auth0|prov", provider.ID, models.VerificationVerified)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
