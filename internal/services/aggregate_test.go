package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/testtrackhq/testtrack/internal/models"
	"github.com/testtrackhq/testtrack/internal/services"
	"github.com/testtrackhq/testtrack/internal/types"
)

func resultsWith(statuses ...types.Status) []models.TestResult {
	out := make([]models.TestResult, len(statuses))
	for i, s := range statuses {
		out[i] = models.TestResult{Status: s}
	}
	return out
}

func TestConsolidateEmpty(t *testing.T) {
	assert.Equal(t, types.StatusPending, services.Consolidate(nil))
	assert.Equal(t, types.StatusPending, services.Consolidate([]models.TestResult{}))
}

func TestConsolidateUnanimous(t *testing.T) {
	for _, s := range types.AllStatuses() {
		assert.Equal(t, s, services.Consolidate(resultsWith(s)), "single %s", s)
		assert.Equal(t, s, services.Consolidate(resultsWith(s, s, s)), "unanimous %s", s)
	}
}

func TestConsolidateConflicts(t *testing.T) {
	cases := []struct {
		name     string
		statuses []types.Status
		want     types.Status
	}{
		{"fail beats pass", []types.Status{types.StatusPass, types.StatusFail}, types.StatusFail},
		{"fail beats everything", []types.Status{types.StatusPass, types.StatusSkip, types.StatusPartial, types.StatusBlocked, types.StatusFail}, types.StatusFail},
		{"blocked beats partial", []types.Status{types.StatusPartial, types.StatusBlocked}, types.StatusBlocked},
		{"partial beats skip", []types.Status{types.StatusSkip, types.StatusPartial}, types.StatusPartial},
		{"skip beats pass", []types.Status{types.StatusPass, types.StatusSkip}, types.StatusSkip},
		{"order independent", []types.Status{types.StatusFail, types.StatusPass}, types.StatusFail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, services.Consolidate(resultsWith(tc.statuses...)))
		})
	}
}

func TestConsolidateHighestPriorityPresent(t *testing.T) {
	// For any pair of distinct statuses, the earlier one in the priority
	// order wins regardless of argument order.
	order := types.PriorityOrder()
	for i, hi := range order {
		for _, lo := range order[i+1:] {
			assert.Equal(t, hi, services.Consolidate(resultsWith(lo, hi)), "%s vs %s", hi, lo)
			assert.Equal(t, hi, services.Consolidate(resultsWith(hi, lo)), "%s vs %s", hi, lo)
		}
	}
}

func TestConsolidateIdempotent(t *testing.T) {
	set := resultsWith(types.StatusPass, types.StatusBlocked, types.StatusPass)
	first := services.Consolidate(set)
	assert.Equal(t, first, services.Consolidate(set))
}

func TestConsolidateDuplicatesCollapse(t *testing.T) {
	// Many rows of the same status count once
	assert.Equal(t, types.StatusPass,
		services.Consolidate(resultsWith(types.StatusPass, types.StatusPass, types.StatusPass, types.StatusPass)))
}
