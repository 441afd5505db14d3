package services

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/testtrackhq/testtrack/internal/models"
	"github.com/testtrackhq/testtrack/internal/types"
	"gorm.io/gorm"
)

// Snapshot is the full-database export payload.
type Snapshot struct {
	Tests      []models.Test       `json:"tests"`
	Users      []models.User       `json:"users"`
	Results    []models.TestResult `json:"results"`
	ExportedAt time.Time           `json:"exportedAt"`
}

// ExportJSON collects the whole tracker state for download.
func ExportJSON(db *gorm.DB) (*Snapshot, error) {
	snap := &Snapshot{ExportedAt: time.Now().UTC()}

	if err := db.Order("id").Find(&snap.Tests).Error; err != nil {
		return nil, types.InternalError(err)
	}
	if err := db.Order("created_at").Find(&snap.Users).Error; err != nil {
		return nil, types.InternalError(err)
	}
	if err := db.Order("created_at").Find(&snap.Results).Error; err != nil {
		return nil, types.InternalError(err)
	}
	return snap, nil
}

// ExportCSV renders one row per test: identity, grouping fields, the
// consolidated status, and per-status result counts.
func ExportCSV(db *gorm.DB) ([]byte, error) {
	var tests []models.Test
	if err := db.Order("id").Find(&tests).Error; err != nil {
		return nil, types.InternalError(err)
	}
	var results []models.TestResult
	if err := db.Find(&results).Error; err != nil {
		return nil, types.InternalError(err)
	}

	counts := make(map[string]map[types.Status]int, len(tests))
	for _, r := range results {
		if counts[r.TestID] == nil {
			counts[r.TestID] = make(map[types.Status]int)
		}
		counts[r.TestID][r.Status]++
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "title", "category", "priority", "consolidatedStatus"}
	for _, s := range types.AllStatuses() {
		header = append(header, "count_"+s.String())
	}
	if err := w.Write(header); err != nil {
		return nil, types.InternalError(err)
	}

	for _, t := range tests {
		row := []string{t.ID, t.Title, t.Category, string(t.Priority), t.ConsolidatedStatus.String()}
		for _, s := range types.AllStatuses() {
			row = append(row, strconv.Itoa(counts[t.ID][s]))
		}
		if err := w.Write(row); err != nil {
			return nil, types.InternalError(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, types.InternalError(err)
	}
	return buf.Bytes(), nil
}
