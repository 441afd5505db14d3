package helpers

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/testtrackhq/testtrack/internal/models"
	"github.com/testtrackhq/testtrack/internal/types"
)

// CreateTestCase inserts a test case directly, bypassing the service layer
func CreateTestCase(t *testing.T, db *gorm.DB, id, title string) *models.Test {
	test := &models.Test{
		ID:                 id,
		Title:              title,
		Story:              "As a tester I verify " + title,
		Category:           "General",
		Priority:           "medium",
		ConsolidatedStatus: types.StatusPending,
	}
	if err := db.Create(test).Error; err != nil {
		t.Fatalf("Failed to create test case %s: %v", id, err)
	}
	return test
}

// CreateTester inserts a user directly, bypassing the service layer
func CreateTester(t *testing.T, db *gorm.DB, name string) *models.User {
	user := &models.User{
		ID:   uuid.NewString(),
		Name: name,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", name, err)
	}
	return user
}

// CreateResultRow inserts a raw test result, bypassing status recomputation
func CreateResultRow(t *testing.T, db *gorm.DB, testID, userID string, status types.Status) *models.TestResult {
	result := &models.TestResult{
		ID:     uuid.NewString(),
		TestID: testID,
		UserID: userID,
		Status: status,
		Date:   "2026-01-15",
	}
	if err := db.Create(result).Error; err != nil {
		t.Fatalf("Failed to create result for %s: %v", testID, err)
	}
	return result
}
