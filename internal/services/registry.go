package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/testtrackhq/testtrack/internal/models"
	"github.com/testtrackhq/testtrack/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListUsers returns all registered testers, oldest first.
func ListUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Order("created_at").Find(&users).Error; err != nil {
		return nil, types.InternalError(err)
	}
	return users, nil
}

// GetUser returns one tester by id.
func GetUser(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFoundError("user %q not found", id)
		}
		return nil, types.InternalError(err)
	}
	return &user, nil
}

// GetUserByName returns one tester by exact, case-sensitive name.
func GetUserByName(db *gorm.DB, name string) (*models.User, error) {
	var user models.User
	if err := db.Where("name = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFoundError("user %q not found", name)
		}
		return nil, types.InternalError(err)
	}
	return &user, nil
}

// CreateUser registers a tester by name. Names are unique, compared
// case-sensitively as stored.
func CreateUser(db *gorm.DB, name string) (*models.User, error) {
	if name == "" {
		return nil, types.ValidationError("user name is required")
	}

	user := models.User{ID: uuid.NewString(), Name: name}
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return types.InternalError(err)
		}
		if count > 0 {
			return types.DuplicateError("user %q already exists", name)
		}
		if err := tx.Create(&user).Error; err != nil {
			return types.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a tester and every result they authored, then recomputes
// the consolidated status of each test that lost a result. All in one
// transaction so a failed recompute rolls the cascade back.
func DeleteUser(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFoundError("user %q not found", id)
			}
			return types.InternalError(err)
		}

		var affected []string
		if err := tx.Model(&models.TestResult{}).Where("user_id = ?", id).
			Distinct("test_id").Pluck("test_id", &affected).Error; err != nil {
			return types.InternalError(err)
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.TestResult{}).Error; err != nil {
			return types.InternalError(err)
		}
		if err := tx.Delete(&user).Error; err != nil {
			return types.InternalError(err)
		}

		for _, testID := range affected {
			if _, err := RecomputeStatus(tx, testID); err != nil {
				return types.InternalError(err)
			}
		}
		return nil
	})
}

// ResetAllUserData deletes every tester and every recorded result and resets
// every test back to pending. Irreversible; the HTTP layer gates it behind an
// explicit confirmation header.
func ResetAllUserData(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.TestResult{}).Error; err != nil {
			return types.InternalError(err)
		}
		if err := tx.Where("1 = 1").Delete(&models.User{}).Error; err != nil {
			return types.InternalError(err)
		}
		if err := tx.Model(&models.Test{}).Where("1 = 1").
			Update("consolidated_status", types.StatusPending).Error; err != nil {
			return types.InternalError(err)
		}
		return nil
	})
}
