package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/testtrackhq/testtrack/internal/models"
	"github.com/testtrackhq/testtrack/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TestInput carries the client-supplied fields of a test definition. Steps and
// criteria accept either a single string or an array on the wire.
type TestInput struct {
	ID                 string                 `json:"id"`
	Title              string                 `json:"title"`
	Story              string                 `json:"story"`
	Category           string                 `json:"category"`
	Priority           types.Priority         `json:"priority"`
	EstimatedTime      string                 `json:"estimatedTime"`
	Prerequisites      string                 `json:"prerequisites"`
	TestSteps          types.FlexList[string] `json:"testSteps"`
	AcceptanceCriteria types.FlexList[string] `json:"acceptanceCriteria"`
	StatusGuidance     map[string]string      `json:"statusGuidance"`
}

// TestFilter narrows ListTests output.
type TestFilter struct {
	Category string
	Priority types.Priority
	Status   types.Status
}

func (in *TestInput) validate() error {
	if in.ID == "" {
		return types.ValidationError("test id is required")
	}
	if in.Title == "" {
		return types.ValidationError("test title is required")
	}
	if in.Story == "" {
		return types.ValidationError("test story is required")
	}
	if !in.Priority.Valid() {
		return types.ValidationError("invalid priority %q", in.Priority)
	}
	return nil
}

func (in *TestInput) apply(t *models.Test) {
	t.Title = in.Title
	t.Story = in.Story
	t.Category = in.Category
	t.Priority = in.Priority
	t.EstimatedTime = in.EstimatedTime
	t.Prerequisites = in.Prerequisites
	t.TestSteps = models.StringList(in.TestSteps.Slice())
	t.AcceptanceCriteria = models.StringList(in.AcceptanceCriteria.Slice())
	t.StatusGuidance = models.GuidanceMap(in.StatusGuidance)
}

// ListTests returns the catalog, optionally filtered.
func ListTests(db *gorm.DB, filter TestFilter) ([]models.Test, error) {
	query := db.Order("id")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Status != "" {
		query = query.Where("consolidated_status = ?", filter.Status)
	}

	var tests []models.Test
	if err := query.Find(&tests).Error; err != nil {
		return nil, types.InternalError(err)
	}
	return tests, nil
}

// GetTest returns one test definition by id.
func GetTest(db *gorm.DB, id string) (*models.Test, error) {
	var test models.Test
	if err := db.Where("id = ?", id).First(&test).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFoundError("test %q not found", id)
		}
		return nil, types.InternalError(err)
	}
	return &test, nil
}

// CreateTest adds a new test definition. New tests always start pending with
// no results.
func CreateTest(db *gorm.DB, in TestInput) (*models.Test, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	test := models.Test{ID: in.ID, ConsolidatedStatus: types.StatusPending}
	in.apply(&test)

	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Test{}).Where("id = ?", in.ID).Count(&count).Error; err != nil {
			return types.InternalError(err)
		}
		if count > 0 {
			return types.DuplicateError("test %q already exists", in.ID)
		}
		if err := tx.Create(&test).Error; err != nil {
			return types.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &test, nil
}

// UpdateTest replaces the mutable fields of an existing test. The id, the
// derived status, and the recorded results are never touched.
func UpdateTest(db *gorm.DB, id string, in TestInput) (*models.Test, error) {
	in.ID = id
	if err := in.validate(); err != nil {
		return nil, err
	}

	var test models.Test
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&test).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFoundError("test %q not found", id)
			}
			return types.InternalError(err)
		}

		in.apply(&test)
		if err := tx.Save(&test).Error; err != nil {
			return types.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &test, nil
}

// DeleteTest removes a test and every result recorded against it, in one
// transaction so no orphan results remain.
func DeleteTest(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var test models.Test
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&test).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFoundError("test %q not found", id)
			}
			return types.InternalError(err)
		}

		if err := tx.Where("test_id = ?", id).Delete(&models.TestResult{}).Error; err != nil {
			return types.InternalError(err)
		}
		if err := tx.Delete(&test).Error; err != nil {
			return types.InternalError(err)
		}
		return nil
	})
}

// GenerateNewTestID produces a TC-### id not present in existing. The counter
// starts past the current catalog size and increments until free, which
// guarantees termination but not the lowest free id.
func GenerateNewTestID(existing []string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		taken[id] = struct{}{}
	}

	counter := len(existing) + 1
	for {
		candidate := fmt.Sprintf("TC-%03d", counter)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
		counter++
	}
}

// DuplicateTest copies an existing test under a freshly generated id with
// " (Copy)" appended to the title. The copy never inherits the source's
// results; it starts pending.
func DuplicateTest(db *gorm.DB, sourceID string) (*models.Test, error) {
	var dup models.Test
	err := db.Transaction(func(tx *gorm.DB) error {
		var source models.Test
		if err := tx.Where("id = ?", sourceID).First(&source).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFoundError("test %q not found", sourceID)
			}
			return types.InternalError(err)
		}

		var ids []string
		if err := tx.Model(&models.Test{}).Pluck("id", &ids).Error; err != nil {
			return types.InternalError(err)
		}

		dup = source
		dup.ID = GenerateNewTestID(ids)
		dup.Title = source.Title + " (Copy)"
		dup.ConsolidatedStatus = types.StatusPending
		dup.Results = nil
		dup.CreatedAt = time.Time{}
		dup.UpdatedAt = time.Time{}

		if err := tx.Create(&dup).Error; err != nil {
			return types.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dup, nil
}
