package services_test

import (
	"testing"

	"github.com/testtrackhq/testtrack/internal/models"
	"github.com/testtrackhq/testtrack/internal/services"
	"github.com/testtrackhq/testtrack/internal/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Test{},
		&models.TestResult{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func mustCreateTest(t *testing.T, db *gorm.DB, id string) *models.Test {
	t.Helper()
	test, err := services.CreateTest(db, services.TestInput{
		ID:       id,
		Title:    "Title for " + id,
		Story:    "As a tester I want " + id,
		Category: "General",
		Priority: types.PriorityMedium,
	})
	if err != nil {
		t.Fatalf("Failed to create test %s: %v", id, err)
	}
	return test
}

func mustCreateUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user, err := services.CreateUser(db, name)
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", name, err)
	}
	return user
}

func mustCreateResult(t *testing.T, db *gorm.DB, testID, userID string, status types.Status) *models.TestResult {
	t.Helper()
	result, err := services.CreateResult(db, services.ResultInput{
		TestID: testID,
		UserID: userID,
		Status: status,
	})
	if err != nil {
		t.Fatalf("Failed to create result for %s: %v", testID, err)
	}
	return result
}

func consolidatedStatus(t *testing.T, db *gorm.DB, testID string) types.Status {
	t.Helper()
	test, err := services.GetTest(db, testID)
	if err != nil {
		t.Fatalf("Failed to fetch test %s: %v", testID, err)
	}
	return test.ConsolidatedStatus
}
