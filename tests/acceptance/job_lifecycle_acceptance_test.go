package acceptance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fixlink/fixlink-api/config"
	"github.com/fixlink/fixlink-api/controllers"
	"github.com/fixlink/fixlink-api/models"
	"github.com/fixlink/fixlink-api/services"
	"github.com/fixlink/fixlink-api/tests/testutil"
	"github.com/fixlink/fixlink-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// JobLifecycleAcceptanceTestSuite walks the full marketplace journey through
// a real HTTP server: a customer posts a job with a photo, providers bid,
// the customer accepts one, the work completes, both sides review each other
// and the contact list reflects the relationship.
type JobLifecycleAcceptanceTestSuite struct {
	suite.Suite
	server   *httptest.Server
	db       *gorm.DB
	customer models.User
	plumber  models.User
	rival    models.User
}

// SetupSuite runs once before all tests
func (suite *JobLifecycleAcceptanceTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	testutil.MustSetTestEnvironment(suite.T())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.JobImage{},
		&models.Offer{},
		&models.Review{},
		&models.Message{},
	)
	suite.NoError(err)

	config.SetDB(db)

	utils.UploadDir = suite.T().TempDir()
	services.InitLocalImageService(utils.UploadDir)

	suite.server = httptest.NewServer(suite.createRouter())
}

// TearDownSuite runs once after all tests
func (suite *JobLifecycleAcceptanceTestSuite) TearDownSuite() {
	suite.server.Close()
	if suite.db != nil {
		sqlDB, _ := suite.db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	}
}

// SetupTest resets the world before each journey
func (suite *JobLifecycleAcceptanceTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM messages")
	suite.db.Exec("DELETE FROM reviews")
	suite.db.Exec("DELETE FROM offers")
	suite.db.Exec("DELETE FROM job_images")
	suite.db.Exec("DELETE FROM jobs")
	suite.db.Exec("DELETE FROM users")

	plumbing := "Plumbing"
	electrical := "Electrical"

	suite.customer = models.User{
		Auth0ID: "auth0|customer",
		Name:    "Casey Customer",
		Email:   "casey@example.com",
		Role:    models.RoleCustomer,
	}
	suite.NoError(suite.db.Create(&suite.customer).Error)

	suite.plumber = models.User{
		Auth0ID:  "auth0|plumber",
		Name:     "Pat Plumber",
		Email:    "pat@example.com",
		Role:     models.RoleProvider,
		Category: &plumbing,
	}
	suite.NoError(suite.db.Create(&suite.plumber).Error)

	suite.rival = models.User{
		Auth0ID:  "auth0|rival",
		Name:     "Riley Rival",
		Email:    "riley@example.com",
		Role:     models.RoleProvider,
		Category: &electrical,
	}
	suite.NoError(suite.db.Create(&suite.rival).Error)
}

// createRouter builds the API surface with a header-based fake auth layer
func (suite *JobLifecycleAcceptanceTestSuite) createRouter() *gin.Engine {
	router := gin.New()

	v1 := router.Group("/api/v1")
	v1.GET("/uploads/:filename", controllers.GetUploadedImage)

	authorized := v1.Group("")
	authorized.Use(func(c *gin.Context) {
		if subject := c.GetHeader("X-Test-User"); subject != "" {
			c.Set("user_id", subject)
		}
		c.Next()
	})
	authorized.GET("/users/:id/reviews", controllers.ListUserReviews)
	authorized.POST("/jobs", controllers.CreateJob)
	authorized.GET("/jobs", controllers.ListJobs)
	authorized.GET("/jobs/:id", controllers.GetJob)
	authorized.POST("/jobs/:id/cancel", controllers.CancelJob)
	authorized.POST("/jobs/:id/complete", controllers.CompleteJob)
	authorized.POST("/jobs/:id/images", controllers.UploadJobImage)
	authorized.POST("/jobs/:id/offers", controllers.CreateOffer)
	authorized.GET("/jobs/:id/offers", controllers.ListJobOffers)
	authorized.GET("/offers/mine", controllers.ListMyOffers)
	authorized.POST("/offers/:id/accept", controllers.AcceptOffer)
	authorized.POST("/offers/:id/decline", controllers.DeclineOffer)
	authorized.POST("/jobs/:id/reviews", controllers.SubmitReview)
	authorized.GET("/contacts", controllers.ListContacts)
	authorized.POST("/jobs/:id/messages", controllers.SendMessage)
	authorized.GET("/jobs/:id/messages", controllers.ListMessages)

	return router
}

// doJSON sends a JSON request as the given subject and decodes the envelope
func (suite *JobLifecycleAcceptanceTestSuite) doJSON(subject, method, path string, payload interface{}) (int, map[string]interface{}) {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		suite.NoError(err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, suite.server.URL+path, body)
	suite.NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", subject)

	resp, err := http.DefaultClient.Do(req)
	suite.NoError(err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	suite.NoError(json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// postJob creates a job as the customer and returns its ID
func (suite *JobLifecycleAcceptanceTestSuite) postJob() uint {
	status, body := suite.doJSON("auth0|customer", http.MethodPost, "/api/v1/jobs", map[string]interface{}{
		"title":        "Replace bathroom sink",
		"description":  "Old sink is cracked, need a new one fitted",
		"category":     "Plumbing",
		"asking_price": 150,
		"location":     "Springfield",
	})
	suite.Equal(http.StatusCreated, status)
	data := body["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}

// postOffer bids on a job as the given provider and returns the offer ID
func (suite *JobLifecycleAcceptanceTestSuite) postOffer(subject string, jobID uint, price float64) uint {
	status, body := suite.doJSON(subject, http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/offers", jobID), map[string]interface{}{
		"offered_price": price,
	})
	suite.Equal(http.StatusCreated, status)
	data := body["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}

func (suite *JobLifecycleAcceptanceTestSuite) TestFullMarketplaceJourney() {
	// Customer posts a job and attaches a photo
	jobID := suite.postJob()

	uploadBody := &bytes.Buffer{}
	writer := multipart.NewWriter(uploadBody)
	part, err := writer.CreateFormFile("image", "sink.jpg")
	suite.NoError(err)
	_, err = part.Write([]byte("photo of the cracked sink"))
	suite.NoError(err)
	suite.NoError(writer.Close())

	uploadReq, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/api/v1/jobs/%d/images", suite.server.URL, jobID), uploadBody)
	suite.NoError(err)
	uploadReq.Header.Set("Content-Type", writer.FormDataContentType())
	uploadReq.Header.Set("X-Test-User", "auth0|customer")
	uploadResp, err := http.DefaultClient.Do(uploadReq)
	suite.NoError(err)
	uploadResp.Body.Close()
	suite.Equal(http.StatusCreated, uploadResp.StatusCode)

	// Two providers bid
	offerID := suite.postOffer("auth0|plumber", jobID, 140)
	rivalOfferID := suite.postOffer("auth0|rival", jobID, 160)

	// Customer reviews the offers and accepts the plumber's
	status, body := suite.doJSON("auth0|customer", http.MethodGet, fmt.Sprintf("/api/v1/jobs/%d/offers", jobID), nil)
	suite.Equal(http.StatusOK, status)
	suite.Len(body["data"].([]interface{}), 2)

	status, _ = suite.doJSON("auth0|customer", http.MethodPost, fmt.Sprintf("/api/v1/offers/%d/accept", offerID), nil)
	suite.Equal(http.StatusOK, status)

	// The rival's offer was rejected and the job moved to in-progress
	var rivalOffer models.Offer
	suite.NoError(suite.db.First(&rivalOffer, rivalOfferID).Error)
	suite.Equal(models.OfferStatusRejected, rivalOffer.Status)

	var job models.Job
	suite.NoError(suite.db.First(&job, jobID).Error)
	suite.Equal(models.JobStatusInProgress, job.Status)

	// Both parties appear in each other's contact list
	status, body = suite.doJSON("auth0|plumber", http.MethodGet, "/api/v1/contacts", nil)
	suite.Equal(http.StatusOK, status)
	contacts := body["data"].([]interface{})
	suite.Len(contacts, 1)
	suite.Equal("Casey Customer", contacts[0].(map[string]interface{})["counterpart_name"])

	// They exchange messages about access to the property
	status, _ = suite.doJSON("auth0|plumber", http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/messages", jobID), map[string]interface{}{
		"text": "I can come by Tuesday morning, does that work?",
	})
	suite.Equal(http.StatusCreated, status)

	status, body = suite.doJSON("auth0|customer", http.MethodGet, fmt.Sprintf("/api/v1/jobs/%d/messages", jobID), nil)
	suite.Equal(http.StatusOK, status)
	suite.Len(body["data"].([]interface{}), 1)

	// Customer marks the job complete
	status, _ = suite.doJSON("auth0|customer", http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/complete", jobID), nil)
	suite.Equal(http.StatusOK, status)

	// Both sides leave a review
	status, _ = suite.doJSON("auth0|customer", http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/reviews", jobID), map[string]interface{}{
		"rating":  5,
		"comment": "Fast and tidy work",
	})
	suite.Equal(http.StatusCreated, status)

	status, _ = suite.doJSON("auth0|plumber", http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/reviews", jobID), map[string]interface{}{
		"rating":  4,
		"comment": "Clear instructions, easy access",
	})
	suite.Equal(http.StatusCreated, status)

	// The plumber's public rating reflects the new review
	var plumber models.User
	suite.NoError(suite.db.First(&plumber, suite.plumber.ID).Error)
	suite.Equal(5.0, plumber.RatingAverage)

	status, body = suite.doJSON("auth0|customer", http.MethodGet, fmt.Sprintf("/api/v1/users/%d/reviews", suite.plumber.ID), nil)
	suite.Equal(http.StatusOK, status)
	suite.Len(body["data"].([]interface{}), 1)
}

func (suite *JobLifecycleAcceptanceTestSuite) TestDoubleReviewRejected() {
	jobID := suite.postJob()
	offerID := suite.postOffer("auth0|plumber", jobID, 150)

	status, _ := suite.doJSON("auth0|customer", http.MethodPost, fmt.Sprintf("/api/v1/offers/%d/accept", offerID), nil)
	suite.Equal(http.StatusOK, status)

	status, _ = suite.doJSON("auth0|customer", http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/complete", jobID), nil)
	suite.Equal(http.StatusOK, status)

	status, _ = suite.doJSON("auth0|customer", http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/reviews", jobID), map[string]interface{}{
		"rating": 5,
	})
	suite.Equal(http.StatusCreated, status)

	status, body := suite.doJSON("auth0|customer", http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/reviews", jobID), map[string]interface{}{
		"rating": 1,
	})
	suite.Equal(http.StatusConflict, status)
	errObj := body["error"].(map[string]interface{})
	suite.Equal("DUPLICATE_REVIEW", errObj["code"])
}

func (suite *JobLifecycleAcceptanceTestSuite) TestReviewBeforeCompletionRejected() {
	jobID := suite.postJob()
	offerID := suite.postOffer("auth0|plumber", jobID, 150)

	status, _ := suite.doJSON("auth0|customer", http.MethodPost, fmt.Sprintf("/api/v1/offers/%d/accept", offerID), nil)
	suite.Equal(http.StatusOK, status)

	status, body := suite.doJSON("auth0|customer", http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/reviews", jobID), map[string]interface{}{
		"rating": 5,
	})
	suite.Equal(http.StatusUnprocessableEntity, status)
	errObj := body["error"].(map[string]interface{})
	suite.Equal("JOB_NOT_COMPLETED", errObj["code"])
}

func (suite *JobLifecycleAcceptanceTestSuite) TestCancelledJobRejectsOffers() {
	jobID := suite.postJob()

	status, _ := suite.doJSON("auth0|customer", http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/cancel", jobID), nil)
	suite.Equal(http.StatusOK, status)

	status, body := suite.doJSON("auth0|plumber", http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/offers", jobID), map[string]interface{}{
		"offered_price": 150,
	})
	suite.Equal(http.StatusUnprocessableEntity, status)
	errObj := body["error"].(map[string]interface{})
	suite.Equal("JOB_NOT_OPEN", errObj["code"])
}

func (suite *JobLifecycleAcceptanceTestSuite) TestCustomerCannotBid() {
	jobID := suite.postJob()

	status, body := suite.doJSON("auth0|customer", http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/offers", jobID), map[string]interface{}{
		"offered_price": 150,
	})
	suite.Equal(http.StatusForbidden, status)
	errObj := body["error"].(map[string]interface{})
	suite.Equal("FORBIDDEN", errObj["code"])
}

func TestJobLifecycleAcceptanceTestSuite(t *testing.T) {
	suite.Run(t, new(JobLifecycleAcceptanceTestSuite))
}
