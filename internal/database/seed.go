package database

import (
	"encoding/json"
	"log"

	"github.com/testtrackhq/testtrack/data"
	"github.com/testtrackhq/testtrack/internal/models"
	"github.com/testtrackhq/testtrack/internal/types"
	"gorm.io/gorm"
)

// Seed loads the embedded sample catalog into an empty tests table. A
// non-empty table is left alone so operator data is never clobbered.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Test{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var tests []models.Test
	if err := json.Unmarshal(data.SampleTests, &tests); err != nil {
		return err
	}

	for i := range tests {
		tests[i].ConsolidatedStatus = types.StatusPending
	}

	if err := db.Create(&tests).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d sample test cases", len(tests))
	return nil
}
