package main

import (
	"log"
	"net/http"

	"github.com/fixlink/fixlink-api/config"
	"github.com/fixlink/fixlink-api/controllers"
	"github.com/fixlink/fixlink-api/middleware"
	"github.com/fixlink/fixlink-api/models"
	"github.com/fixlink/fixlink-api/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting FixLink API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.JobImage{},
		&models.Offer{},
		&models.Review{},
		&models.Message{},
		&models.Dispute{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Image storage: S3 when a bucket is configured, local filesystem
	// otherwise (development)
	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitS3Service(); err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(services.GetS3Service())
		log.Printf("Image storage: S3 bucket %s", cfg.AWSS3Bucket)
	} else {
		services.InitLocalImageService("")
		log.Println("Image storage: local filesystem (no S3 bucket configured)")
	}

	router := setupRouter()

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with all routes and middleware attached
func setupRouter() *gin.Engine {
	cfg := config.GetConfig()

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://fixlink.app"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Locally stored images (active when no S3 bucket is configured)
		v1.GET("/uploads/:filename", controllers.GetUploadedImage)

		// Everything else requires a valid token
		authorized := v1.Group("")
		authorized.Use(middleware.EnsureValidToken(cfg))
		{
			// Users
			authorized.POST("/users", controllers.CreateUser)
			authorized.GET("/users/me", controllers.GetMyProfile)
			authorized.PUT("/users/me", controllers.UpdateMyProfile)
			authorized.GET("/users/:id/reviews", controllers.ListUserReviews)

			// Jobs
			authorized.POST("/jobs", controllers.CreateJob)
			authorized.GET("/jobs", controllers.ListJobs)
			authorized.GET("/jobs/:id", controllers.GetJob)
			authorized.POST("/jobs/:id/cancel", controllers.CancelJob)
			authorized.POST("/jobs/:id/complete", controllers.CompleteJob)
			authorized.POST("/jobs/:id/images", controllers.UploadJobImage)

			// Offers
			authorized.POST("/jobs/:id/offers", controllers.CreateOffer)
			authorized.GET("/jobs/:id/offers", controllers.ListJobOffers)
			authorized.GET("/offers/mine", controllers.ListMyOffers)
			authorized.POST("/offers/:id/accept", controllers.AcceptOffer)
			authorized.POST("/offers/:id/decline", controllers.DeclineOffer)

			// Reviews
			authorized.POST("/jobs/:id/reviews", controllers.SubmitReview)

			// Messaging
			authorized.GET("/contacts", controllers.ListContacts)
			authorized.POST("/jobs/:id/messages", controllers.SendMessage)
			authorized.GET("/jobs/:id/messages", controllers.ListMessages)

			// Disputes
			authorized.POST("/jobs/:id/disputes", controllers.CreateDispute)

			// Admin moderation
			admin := authorized.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/overview", controllers.GetAdminOverview)
				admin.PUT("/providers/:id/verification", controllers.SetProviderVerification)
			}
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "FixLink API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
