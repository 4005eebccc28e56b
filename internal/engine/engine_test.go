// Package engine_test contains tests for the scoring pipeline
package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-advisor-engine/internal/engine"
	"card-advisor-engine/internal/models"
)

func testCatalogue() []models.Card {
	return []models.Card{
		mockCard("online-5", func(c *models.Card) {
			c.Categories = []models.CategoryCashback{{Category: "online", CashbackRate: 5}}
		}),
		mockCard("groceries-3", func(c *models.Card) {
			c.Categories = []models.CategoryCashback{{Category: "groceries", CashbackRate: 3}}
		}),
		mockCard("travel-4", func(c *models.Card) {
			c.Categories = []models.CategoryCashback{{Category: "travel", CashbackRate: 4}}
		}),
	}
}

func TestRecommend_EmptyEntries(t *testing.T) {
	eng := engine.New(testCatalogue())

	results, err := eng.Recommend(nil, models.CardPreferences{DesiredCardCount: 2})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecommend_SingleCardSingleEntry(t *testing.T) {
	eng := engine.New(testCatalogue())
	entries := []models.SpendingEntry{monthlyEntry("", "electronics", 10000)}

	results, err := eng.Recommend(entries, models.CardPreferences{DesiredCardCount: 1})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	best := results[0]
	require.Len(t, best.Cards, 1)
	assert.Equal(t, "online-5", best.Cards[0].Card.ID)
	assert.InDelta(t, 500, best.TotalGroupSavings, 0.001)
	assert.InDelta(t, 100, best.SpendCoverage, 0.001)
}

func TestRecommend_SortedDescendingAndCapped(t *testing.T) {
	eng := engine.New(testCatalogue())
	groceries := monthlyEntry("", "groceries", 5000)
	groceries.Category = models.SpendCategoryOffline
	travel := monthlyEntry("", "travel", 3000)
	travel.Category = models.SpendCategoryOffline
	entries := []models.SpendingEntry{
		monthlyEntry("", "electronics", 10000),
		groceries,
		travel,
	}

	results, err := eng.Recommend(entries, models.CardPreferences{DesiredCardCount: 3})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), engine.MaxResults)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].TotalGroupSavings, results[i].TotalGroupSavings)
	}

	// The full three-card group wins: every entry gets its best card
	best := results[0]
	assert.Len(t, best.Cards, 3)
	assert.InDelta(t, 500+150+120, best.TotalGroupSavings, 0.001)
}

func TestRecommend_NoDoubleCountingWithinGroup(t *testing.T) {
	// Two cards that both match the same single entry: the group must
	// not earn the reward twice.
	catalogue := []models.Card{
		mockCard("a", func(c *models.Card) {
			c.Categories = []models.CategoryCashback{{Category: "online", CashbackRate: 5}}
		}),
		mockCard("b", func(c *models.Card) {
			c.Categories = []models.CategoryCashback{{Category: "online", CashbackRate: 4}}
		}),
	}
	eng := engine.New(catalogue)
	entries := []models.SpendingEntry{monthlyEntry("", "electronics", 1000)}

	results, err := eng.Recommend(entries, models.CardPreferences{DesiredCardCount: 2})
	require.NoError(t, err)

	for _, group := range results {
		assert.LessOrEqual(t, group.TotalGroupSavings, 50.001)
		assert.LessOrEqual(t, group.SpendCoverage, 100.001)
	}
}

func TestRecommend_CoverageNeverExceeds100(t *testing.T) {
	eng := engine.New(testCatalogue())
	entries := []models.SpendingEntry{
		monthlyEntry("", "electronics", 1000),
		monthlyEntry("", "groceries", 1000),
	}

	results, err := eng.Recommend(entries, models.CardPreferences{DesiredCardCount: 3})
	require.NoError(t, err)
	for _, group := range results {
		assert.LessOrEqual(t, group.SpendCoverage, 100.0)
	}
}

func TestRecommend_ExcludedCardsNeverAppear(t *testing.T) {
	eng := engine.New(testCatalogue())
	entries := []models.SpendingEntry{monthlyEntry("", "electronics", 1000)}

	results, err := eng.Recommend(entries, models.CardPreferences{
		DesiredCardCount: 2,
		ExcludeCards:     []string{"online-5"},
	})
	require.NoError(t, err)

	for _, group := range results {
		for _, cr := range group.Cards {
			assert.NotEqual(t, "online-5", cr.Card.ID)
		}
	}
}

func TestRecommend_InactiveCardsSkippedUnlessCompared(t *testing.T) {
	catalogue := append(testCatalogue(), mockCard("legacy", func(c *models.Card) {
		c.Status = models.CardStatusDiscontinued
		c.Categories = []models.CategoryCashback{{Category: "online", CashbackRate: 10}}
	}))
	eng := engine.New(catalogue)
	entries := []models.SpendingEntry{monthlyEntry("", "electronics", 1000)}

	results, err := eng.Recommend(entries, models.CardPreferences{DesiredCardCount: 1})
	require.NoError(t, err)
	for _, group := range results {
		for _, cr := range group.Cards {
			assert.NotEqual(t, "legacy", cr.Card.ID)
		}
	}

	// Explicitly comparing the card brings it back into the pool
	results, err = eng.Recommend(entries, models.CardPreferences{
		DesiredCardCount: 1,
		CompareCards:     []string{"legacy"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "legacy", results[0].Cards[0].Card.ID)
}

func TestRecommend_ZeroSavingsGroupsDropped(t *testing.T) {
	catalogue := []models.Card{
		mockCard("groceries-only", func(c *models.Card) {
			c.Categories = []models.CategoryCashback{{Category: "groceries", CashbackRate: 3}}
		}),
	}
	eng := engine.New(catalogue)
	entries := []models.SpendingEntry{monthlyEntry("", "travel", 1000)}

	results, err := eng.Recommend(entries, models.CardPreferences{DesiredCardCount: 1})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecommend_InvalidEntryRejected(t *testing.T) {
	eng := engine.New(testCatalogue())
	entries := []models.SpendingEntry{
		{Amount: -5, Frequency: models.FrequencyMonthly, Category: models.SpendCategoryOnline, Subcategory: "x"},
	}

	_, err := eng.Recommend(entries, models.CardPreferences{DesiredCardCount: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)
}

func TestRecommend_Deterministic(t *testing.T) {
	eng := engine.New(testCatalogue())
	entries := []models.SpendingEntry{
		monthlyEntry("a", "electronics", 10000),
		monthlyEntry("b", "groceries", 5000),
		monthlyEntry("c", "travel", 3000),
	}
	prefs := models.CardPreferences{DesiredCardCount: 2}

	first, err := eng.Recommend(entries, prefs)
	require.NoError(t, err)
	second, err := eng.Recommend(entries, prefs)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRecommend_DeterministicWithoutEntryIDs(t *testing.T) {
	// Entries submitted without IDs get positional ones, so the full
	// result including breakdown rows is reproducible call to call.
	eng := engine.New(testCatalogue())
	entries := []models.SpendingEntry{
		monthlyEntry("", "electronics", 10000),
		monthlyEntry("", "groceries", 5000),
	}
	prefs := models.CardPreferences{DesiredCardCount: 2}

	first, err := eng.Recommend(entries, prefs)
	require.NoError(t, err)
	second, err := eng.Recommend(entries, prefs)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	require.NotEmpty(t, first)
	require.NotEmpty(t, first[0].Cards)
	require.NotEmpty(t, first[0].Cards[0].Breakdown)
	assert.Equal(t, "entry-1", first[0].Cards[0].Breakdown[0].EntryID)
}

func TestRecommend_OversizedGroupClamped(t *testing.T) {
	eng := engine.New(testCatalogue())
	entries := []models.SpendingEntry{monthlyEntry("", "electronics", 1000)}

	results, err := eng.Recommend(entries, models.CardPreferences{DesiredCardCount: 50})
	require.NoError(t, err)
	for _, group := range results {
		assert.LessOrEqual(t, len(group.Cards), engine.MaxCombinationSize)
	}
}

func TestCardsByID_PreservesCatalogueOrder(t *testing.T) {
	eng := engine.New(testCatalogue())

	cards := eng.CardsByID([]string{"travel-4", "online-5", "unknown"})
	require.Len(t, cards, 2)
	assert.Equal(t, "online-5", cards[0].ID)
	assert.Equal(t, "travel-4", cards[1].ID)
}
