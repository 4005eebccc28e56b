// Package engine_test contains tests for the scoring pipeline
package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-advisor-engine/internal/engine"
	"card-advisor-engine/internal/models"
)

func TestMonthlyAmount_Frequencies(t *testing.T) {
	tests := []struct {
		frequency models.Frequency
		expected  float64
	}{
		{models.FrequencyDaily, 3000},
		{models.FrequencyWeekly, 400},
		{models.FrequencyMonthly, 100},
		{models.FrequencyQuarterly, 100.0 / 3},
		{models.FrequencyYearly, 100.0 / 12},
		{models.FrequencyOneTime, 100.0 / 12},
	}

	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			entry := &models.SpendingEntry{
				Amount:      100,
				Frequency:   tt.frequency,
				Category:    models.SpendCategoryOnline,
				Subcategory: "electronics",
			}

			monthly, err := engine.MonthlyAmount(entry)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, monthly, 0.001)
		})
	}
}

func TestMonthlyAmount_MonthlyIsIdentity(t *testing.T) {
	entry := &models.SpendingEntry{
		Amount:      2500,
		Frequency:   models.FrequencyMonthly,
		Category:    models.SpendCategoryOffline,
		Subcategory: "groceries",
	}

	monthly, err := engine.MonthlyAmount(entry)
	require.NoError(t, err)
	assert.Equal(t, float64(2500), monthly)
}

func TestMonthlyAmount_UnknownFrequency(t *testing.T) {
	entry := &models.SpendingEntry{
		Amount:      100,
		Frequency:   "fortnightly",
		Category:    models.SpendCategoryOnline,
		Subcategory: "electronics",
	}

	_, err := engine.MonthlyAmount(entry)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidFrequency)
}
