package services

import (
	"github.com/testtrackhq/testtrack/internal/models"
	"github.com/testtrackhq/testtrack/internal/types"
	"gorm.io/gorm"
)

// Consolidate reduces a set of recorded results for one test to a single
// displayed status. Pure given the result set.
//
// No results means pending. A single distinct status wins outright. When
// testers disagree, the highest-priority status present wins, in the fixed
// order fail > blocked > partial > skip > pass.
func Consolidate(results []models.TestResult) types.Status {
	if len(results) == 0 {
		return types.StatusPending
	}

	distinct := make(map[types.Status]struct{}, len(results))
	var first types.Status
	for i, r := range results {
		if i == 0 {
			first = r.Status
		}
		distinct[r.Status] = struct{}{}
	}

	if len(distinct) == 1 {
		return first
	}

	for _, s := range types.PriorityOrder() {
		if _, ok := distinct[s]; ok {
			return s
		}
	}

	// The enum is closed, so this is unreachable for valid rows. First
	// observed keeps the outcome deterministic anyway.
	return first
}

// RecomputeStatus reads the current result set for a test and persists the
// consolidated status. It must run inside the same transaction as the result
// mutation that triggered it; the caller holds the row lock on the test.
func RecomputeStatus(tx *gorm.DB, testID string) (types.Status, error) {
	var results []models.TestResult
	if err := tx.Where("test_id = ?", testID).Find(&results).Error; err != nil {
		return "", err
	}

	status := Consolidate(results)
	if err := tx.Model(&models.Test{}).Where("id = ?", testID).
		Update("consolidated_status", status).Error; err != nil {
		return "", err
	}

	return status, nil
}
