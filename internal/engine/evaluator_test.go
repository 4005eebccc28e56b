// Package engine_test contains tests for the scoring pipeline
package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-advisor-engine/internal/engine"
	"card-advisor-engine/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

// mockCard creates a test card with default values
func mockCard(id string, overrides func(*models.Card)) models.Card {
	card := models.Card{
		ID:     id,
		Name:   "Test Card " + id,
		Issuer: "Test Bank",
		Status: models.CardStatusActive,
	}
	if overrides != nil {
		overrides(&card)
	}
	return card
}

// monthlyEntry creates a monthly online spending entry
func monthlyEntry(id, subcategory string, amount float64) models.SpendingEntry {
	return models.SpendingEntry{
		ID:          id,
		Amount:      amount,
		Frequency:   models.FrequencyMonthly,
		Category:    models.SpendCategoryOnline,
		Subcategory: subcategory,
	}
}

func TestEvaluateCard_CategoryRate(t *testing.T) {
	card := mockCard("c1", func(c *models.Card) {
		c.Categories = []models.CategoryCashback{
			{Category: "electronics", CashbackRate: 3},
		}
	})
	entries := []models.SpendingEntry{monthlyEntry("e1", "electronics", 10000)}

	result, usedIDs, err := engine.EvaluateCard(&card, entries)
	require.NoError(t, err)

	assert.InDelta(t, 300, result.TotalSavings, 0.001)
	assert.InDelta(t, 100, result.CoveragePercentage, 0.001)
	assert.InDelta(t, 10000, result.CoveredSpend, 0.001)
	assert.True(t, usedIDs["e1"])
}

func TestEvaluateCard_CaseInsensitiveCategoryMatch(t *testing.T) {
	card := mockCard("c1", func(c *models.Card) {
		c.Categories = []models.CategoryCashback{
			{Category: "Electronics", CashbackRate: 3},
		}
	})
	entries := []models.SpendingEntry{monthlyEntry("e1", "electronics", 1000)}

	result, _, err := engine.EvaluateCard(&card, entries)
	require.NoError(t, err)
	assert.InDelta(t, 30, result.TotalSavings, 0.001)
}

func TestEvaluateCard_TopLevelCategoryMatch(t *testing.T) {
	card := mockCard("c1", func(c *models.Card) {
		c.Categories = []models.CategoryCashback{
			{Category: "online", CashbackRate: 2},
		}
	})
	entries := []models.SpendingEntry{monthlyEntry("e1", "anything", 1000)}

	result, _, err := engine.EvaluateCard(&card, entries)
	require.NoError(t, err)
	assert.InDelta(t, 20, result.TotalSavings, 0.001)
}

func TestEvaluateCard_FoodDeliverySpecialCase(t *testing.T) {
	card := mockCard("c1", func(c *models.Card) {
		c.Categories = []models.CategoryCashback{
			{Category: "food delivery", CashbackRate: 5},
		}
	})

	appEntry := monthlyEntry("e1", models.SubcategoryFoodAndBeverages, 1000)
	appEntry.Platform = models.PlatformApp

	result, _, err := engine.EvaluateCard(&card, []models.SpendingEntry{appEntry})
	require.NoError(t, err)
	assert.InDelta(t, 50, result.TotalSavings, 0.001)

	// Same spend outside an app earns nothing
	webEntry := monthlyEntry("e2", models.SubcategoryFoodAndBeverages, 1000)
	webEntry.Platform = models.PlatformWebsite

	result, usedIDs, err := engine.EvaluateCard(&card, []models.SpendingEntry{webEntry})
	require.NoError(t, err)
	assert.Zero(t, result.TotalSavings)
	assert.False(t, usedIDs["e2"])
}

func TestEvaluateCard_RulePrecedesCategory(t *testing.T) {
	card := mockCard("c1", func(c *models.Card) {
		c.Categories = []models.CategoryCashback{
			{Category: "electronics", CashbackRate: 3},
		}
		c.Rules = []models.RewardRule{
			{Category: models.SpendCategoryOnline, Subcategory: "electronics", Rate: 6, RewardType: models.RewardTypeCashback},
		}
	})
	entries := []models.SpendingEntry{monthlyEntry("e1", "electronics", 1000)}

	result, _, err := engine.EvaluateCard(&card, entries)
	require.NoError(t, err)
	assert.InDelta(t, 60, result.TotalSavings, 0.001)
}

func TestEvaluateCard_FirstMatchingRuleWins(t *testing.T) {
	card := mockCard("c1", func(c *models.Card) {
		c.Rules = []models.RewardRule{
			{Subcategory: "electronics", Rate: 4, RewardType: models.RewardTypeCashback},
			{Category: models.SpendCategoryOnline, Rate: 8, RewardType: models.RewardTypeCashback},
		}
	})
	entries := []models.SpendingEntry{monthlyEntry("e1", "electronics", 1000)}

	result, _, err := engine.EvaluateCard(&card, entries)
	require.NoError(t, err)
	assert.InDelta(t, 40, result.TotalSavings, 0.001)
}

func TestEvaluateCard_TransactionCap(t *testing.T) {
	card := mockCard("c1", func(c *models.Card) {
		c.Rules = []models.RewardRule{
			{Subcategory: "electronics", Rate: 1, RewardType: models.RewardTypeCashback, Cap: floatPtr(50)},
		}
	})
	entries := []models.SpendingEntry{monthlyEntry("e1", "electronics", 8000)}

	result, _, err := engine.EvaluateCard(&card, entries)
	require.NoError(t, err)
	assert.InDelta(t, 50, result.TotalSavings, 0.001)
}

func TestEvaluateCard_CategoryCapCumulative(t *testing.T) {
	card := mockCard("c1", func(c *models.Card) {
		c.Rules = []models.RewardRule{
			{Category: models.SpendCategoryOnline, Rate: 1, RewardType: models.RewardTypeCashback, CategoryCap: floatPtr(100)},
		}
	})
	entries := []models.SpendingEntry{
		monthlyEntry("e1", "electronics", 8000),
		monthlyEntry("e2", "fashion", 8000),
	}

	result, _, err := engine.EvaluateCard(&card, entries)
	require.NoError(t, err)

	// First entry earns 80, second is clamped to the remaining 20
	require.Len(t, result.Breakdown, 2)
	assert.InDelta(t, 80, result.Breakdown[0].MonthlySavings, 0.001)
	assert.InDelta(t, 20, result.Breakdown[1].MonthlySavings, 0.001)
	assert.InDelta(t, 100, result.TotalSavings, 0.001)
}

func TestEvaluateCard_PointsWithValue(t *testing.T) {
	card := mockCard("c1", func(c *models.Card) {
		c.Rules = []models.RewardRule{
			{Subcategory: "travel", Rate: 4, RewardType: models.RewardTypePoints},
		}
		c.PointValue = floatPtr(0.25)
	})
	entries := []models.SpendingEntry{monthlyEntry("e1", "travel", 10000)}

	result, _, err := engine.EvaluateCard(&card, entries)
	require.NoError(t, err)

	assert.InDelta(t, 400, result.RewardPoints, 0.001)
	assert.InDelta(t, 100, result.TotalSavings, 0.001)
}

func TestEvaluateCard_PointsWithoutValueStillCover(t *testing.T) {
	card := mockCard("c1", func(c *models.Card) {
		c.DefaultRate = floatPtr(2)
		c.DefaultRewardType = models.RewardTypePoints
	})
	entries := []models.SpendingEntry{monthlyEntry("e1", "travel", 1000)}

	result, usedIDs, err := engine.EvaluateCard(&card, entries)
	require.NoError(t, err)

	assert.Zero(t, result.TotalSavings)
	assert.InDelta(t, 20, result.RewardPoints, 0.001)
	assert.InDelta(t, 100, result.CoveragePercentage, 0.001)
	assert.True(t, usedIDs["e1"])
}

func TestEvaluateCard_DefaultRateFallback(t *testing.T) {
	card := mockCard("c1", func(c *models.Card) {
		c.Categories = []models.CategoryCashback{
			{Category: "groceries", CashbackRate: 3},
		}
		c.DefaultRate = floatPtr(0.5)
	})
	entries := []models.SpendingEntry{monthlyEntry("e1", "travel", 1000)}

	result, _, err := engine.EvaluateCard(&card, entries)
	require.NoError(t, err)
	assert.InDelta(t, 5, result.TotalSavings, 0.001)
}

func TestEvaluateCard_MilestoneAppliedOnce(t *testing.T) {
	card := mockCard("c1", func(c *models.Card) {
		c.Categories = []models.CategoryCashback{
			{Category: "online", CashbackRate: 5},
		}
		c.Milestone = &models.Milestone{Threshold: 200, Bonus: 50}
	})
	entries := []models.SpendingEntry{
		monthlyEntry("e1", "electronics", 3000),
		monthlyEntry("e2", "fashion", 2000),
	}

	result, _, err := engine.EvaluateCard(&card, entries)
	require.NoError(t, err)

	// 150 + 100 cashback, plus the bonus exactly once
	assert.InDelta(t, 300, result.TotalSavings, 0.001)
}

func TestEvaluateCard_MilestoneBelowThreshold(t *testing.T) {
	card := mockCard("c1", func(c *models.Card) {
		c.Categories = []models.CategoryCashback{
			{Category: "online", CashbackRate: 1},
		}
		c.Milestone = &models.Milestone{Threshold: 500, Bonus: 100}
	})
	entries := []models.SpendingEntry{monthlyEntry("e1", "electronics", 1000)}

	result, _, err := engine.EvaluateCard(&card, entries)
	require.NoError(t, err)
	assert.InDelta(t, 10, result.TotalSavings, 0.001)
}

func TestEvaluateCard_UncoveredEntryStillInBreakdown(t *testing.T) {
	card := mockCard("c1", func(c *models.Card) {
		c.Categories = []models.CategoryCashback{
			{Category: "groceries", CashbackRate: 3},
		}
	})
	entries := []models.SpendingEntry{
		monthlyEntry("e1", "groceries", 1000),
		monthlyEntry("e2", "travel", 2000),
	}

	result, usedIDs, err := engine.EvaluateCard(&card, entries)
	require.NoError(t, err)

	require.Len(t, result.Breakdown, 2)
	assert.Zero(t, result.Breakdown[1].MonthlySavings)
	assert.False(t, usedIDs["e2"])
	assert.InDelta(t, 3000, result.TotalSpend, 0.001)
	assert.InDelta(t, 1000, result.CoveredSpend, 0.001)
	assert.InDelta(t, 100.0/3, result.CoveragePercentage, 0.01)
}

func TestEvaluateCard_InvalidFrequencyPropagates(t *testing.T) {
	card := mockCard("c1", nil)
	entries := []models.SpendingEntry{
		{ID: "e1", Amount: 100, Frequency: "sometimes", Category: models.SpendCategoryOnline, Subcategory: "x"},
	}

	_, _, err := engine.EvaluateCard(&card, entries)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidFrequency)
}
