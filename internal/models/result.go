package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/testtrackhq/testtrack/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// BugReport is the structured defect record attached to a failing result.
// Present only when the result status is fail by UI convention; the model does
// not hard-enforce that.
type BugReport struct {
	Severity         string `json:"severity"`
	Description      string `json:"description"`
	StepsToReproduce string `json:"stepsToReproduce"`
	ExpectedResult   string `json:"expectedResult"`
	ActualResult     string `json:"actualResult"`
}

// Scan implements sql.Scanner.
func (b *BugReport) Scan(value interface{}) error {
	*b = BugReport{}
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("BugReport: unsupported scan type %T", value)
	}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, b)
}

// Value implements driver.Valuer.
func (b BugReport) Value() (driver.Value, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// GormDBDataType ensures the correct data type is used for each database driver.
func (BugReport) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonColumnType(db)
}

// TestResult is one tester's recorded outcome for one test at one point in
// time. A user may have multiple rows for the same test; reconciliation across
// them is the aggregator's job, not a uniqueness constraint.
type TestResult struct {
	ID          string       `gorm:"type:char(36);primaryKey" json:"id"`
	TestID      string       `gorm:"size:64;not null;index" json:"testId"`
	UserID      string       `gorm:"type:char(36);not null;index" json:"userId"`
	Status      types.Status `gorm:"size:16;not null" json:"status"`
	Date        string       `gorm:"size:64" json:"date"`
	Environment string       `gorm:"size:255" json:"environment"`
	Notes       string       `gorm:"type:text" json:"notes"`
	BugReport   *BugReport   `json:"bugReport,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// TableName overrides the table name for TestResult
func (TestResult) TableName() string {
	return "test_results"
}
