package models

import (
	"time"

	"github.com/testtrackhq/testtrack/internal/types"
)

// Test is a test-case definition, independent of any execution. The ID is a
// human-assigned short code such as TC-001.
type Test struct {
	ID                 string         `gorm:"primaryKey;size:64" json:"id"`
	Title              string         `gorm:"size:255;not null" json:"title"`
	Story              string         `gorm:"type:text" json:"story"`
	Category           string         `gorm:"size:128;index" json:"category"`
	Priority           types.Priority `gorm:"size:16;index" json:"priority"`
	EstimatedTime      string         `gorm:"size:128" json:"estimatedTime"`
	Prerequisites      string         `gorm:"type:text" json:"prerequisites"`
	TestSteps          StringList     `json:"testSteps"`
	AcceptanceCriteria StringList     `json:"acceptanceCriteria"`
	StatusGuidance     GuidanceMap    `json:"statusGuidance"`
	ConsolidatedStatus types.Status   `gorm:"size:16;not null;default:'pending'" json:"consolidatedStatus"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	Results            []TestResult   `gorm:"foreignKey:TestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name for Test
func (Test) TableName() string {
	return "tests"
}
