package services

import (
	"errors"
	"testing"

	"github.com/fixlink/fixlink-api/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database with all tables migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.JobImage{},
		&models.Offer{},
		&models.Review{},
		&models.Message{},
		&models.Dispute{},
	)
	assert.NoError(t, err)

	return db
}

// createTestCustomer inserts a customer user
func createTestCustomer(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()

	user := models.User{
		Auth0ID: "auth0|" + email,
		Name:    name,
		Email:   email,
		Role:    models.RoleCustomer,
	}
	assert.NoError(t, db.Create(&user).Error)
	return user
}

// createTestProvider inserts a provider user in the given category
func createTestProvider(t *testing.T, db *gorm.DB, name, email, category string) models.User {
	t.Helper()

	user := models.User{
		Auth0ID:  "auth0|" + email,
		Name:     name,
		Email:    email,
		Role:     models.RoleProvider,
		Category: &category,
	}
	assert.NoError(t, db.Create(&user).Error)
	return user
}

// createTestJob inserts an open job owned by the given user
func createTestJob(t *testing.T, db *gorm.DB, ownerID uint, title string, price float64) models.Job {
	t.Helper()

	job := models.Job{
		UserID:      ownerID,
		Title:       title,
		Description: "description for " + title,
		Category:    "Plumbing",
		AskingPrice: price,
		Location:    "Springfield",
		Status:      models.JobStatusOpen,
	}
	assert.NoError(t, db.Create(&job).Error)
	return job
}

// assertServiceError asserts err is a ServiceError with the given kind and code
func assertServiceError(t *testing.T, err error, kind ErrorKind, code string) {
	t.Helper()

	assert.Error(t, err)
	var svcErr *ServiceError
	assert.True(t, errors.As(err, &svcErr), "expected a ServiceError, got %T: %v", err, err)
	assert.Equal(t, kind, svcErr.Kind)
	assert.Equal(t, code, svcErr.Code)
}
