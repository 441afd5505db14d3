package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/testtrackhq/testtrack/internal/models"
	"github.com/testtrackhq/testtrack/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResultInput carries the client-supplied fields of a recorded result.
type ResultInput struct {
	TestID      string            `json:"testId"`
	UserID      string            `json:"userId"`
	Status      types.Status      `json:"status"`
	Date        string            `json:"date"`
	Environment string            `json:"environment"`
	Notes       string            `json:"notes"`
	BugReport   *models.BugReport `json:"bugReport,omitempty"`
}

func (in *ResultInput) validate() error {
	if in.TestID == "" {
		return types.ValidationError("result testId is required")
	}
	if in.UserID == "" {
		return types.ValidationError("result userId is required")
	}
	if !in.Status.Valid() {
		return types.ValidationError("invalid status %q", in.Status)
	}
	return nil
}

// ListResults returns all recorded results, newest first.
func ListResults(db *gorm.DB) ([]models.TestResult, error) {
	var results []models.TestResult
	if err := db.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, types.InternalError(err)
	}
	return results, nil
}

// ListResultsForTest returns the recorded results for one test.
func ListResultsForTest(db *gorm.DB, testID string) ([]models.TestResult, error) {
	var results []models.TestResult
	if err := db.Where("test_id = ?", testID).Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, types.InternalError(err)
	}
	return results, nil
}

// ListResultsForUser returns the results one tester has recorded.
func ListResultsForUser(db *gorm.DB, userID string) ([]models.TestResult, error) {
	var results []models.TestResult
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, types.InternalError(err)
	}
	return results, nil
}

// lockTest takes the row lock on a test inside tx, serializing concurrent
// result mutations against the same test so read-compute-write aggregation
// cannot lose an update.
func lockTest(tx *gorm.DB, testID string) (*models.Test, error) {
	var test models.Test
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", testID).First(&test).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ReferentialError("test %q does not exist", testID)
		}
		return nil, types.InternalError(err)
	}
	return &test, nil
}

// CreateResult records a tester's outcome for a test and recomputes that
// test's consolidated status in the same transaction.
func CreateResult(db *gorm.DB, in ResultInput) (*models.TestResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	result := models.TestResult{
		ID:          uuid.NewString(),
		TestID:      in.TestID,
		UserID:      in.UserID,
		Status:      in.Status,
		Date:        in.Date,
		Environment: in.Environment,
		Notes:       in.Notes,
		BugReport:   in.BugReport,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockTest(tx, in.TestID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.User{}).Where("id = ?", in.UserID).Count(&count).Error; err != nil {
			return types.InternalError(err)
		}
		if count == 0 {
			return types.ReferentialError("user %q does not exist", in.UserID)
		}

		if err := tx.Create(&result).Error; err != nil {
			return types.InternalError(err)
		}

		if _, err := RecomputeStatus(tx, in.TestID); err != nil {
			return types.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateResult edits a previously recorded result in place and recomputes the
// parent test's consolidated status.
func UpdateResult(db *gorm.DB, id string, in ResultInput) (*models.TestResult, error) {
	if !in.Status.Valid() {
		return nil, types.ValidationError("invalid status %q", in.Status)
	}

	var result models.TestResult
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&result).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFoundError("result %q not found", id)
			}
			return types.InternalError(err)
		}

		// Results stay attached to their original test and author
		if _, err := lockTest(tx, result.TestID); err != nil {
			return err
		}

		result.Status = in.Status
		result.Date = in.Date
		result.Environment = in.Environment
		result.Notes = in.Notes
		result.BugReport = in.BugReport

		if err := tx.Save(&result).Error; err != nil {
			return types.InternalError(err)
		}

		if _, err := RecomputeStatus(tx, result.TestID); err != nil {
			return types.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteResult removes one recorded result and recomputes the parent test's
// consolidated status.
func DeleteResult(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var result models.TestResult
		if err := tx.Where("id = ?", id).First(&result).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFoundError("result %q not found", id)
			}
			return types.InternalError(err)
		}

		if _, err := lockTest(tx, result.TestID); err != nil {
			return err
		}

		if err := tx.Delete(&result).Error; err != nil {
			return types.InternalError(err)
		}

		if _, err := RecomputeStatus(tx, result.TestID); err != nil {
			return types.InternalError(err)
		}
		return nil
	})
}

// ClearResultsForTest removes every result for one test and resets its
// consolidated status to pending.
func ClearResultsForTest(db *gorm.DB, testID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockTest(tx, testID); err != nil {
			if types.IsKind(err, types.KindReferential) {
				return types.NotFoundError("test %q not found", testID)
			}
			return err
		}

		if err := tx.Where("test_id = ?", testID).Delete(&models.TestResult{}).Error; err != nil {
			return types.InternalError(err)
		}

		if _, err := RecomputeStatus(tx, testID); err != nil {
			return types.InternalError(err)
		}
		return nil
	})
}
