// Package engine_test contains tests for the scoring pipeline
package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-advisor-engine/internal/engine"
	"card-advisor-engine/internal/models"
)

func TestAdvisePurchase_RanksOwnedCards(t *testing.T) {
	owned := []models.Card{
		mockCard("low", func(c *models.Card) {
			c.Categories = []models.CategoryCashback{{Category: "electronics", CashbackRate: 2}}
		}),
		mockCard("high", func(c *models.Card) {
			c.Categories = []models.CategoryCashback{{Category: "Electronics", CashbackRate: 6}}
		}),
		mockCard("unrelated", func(c *models.Card) {
			c.Categories = []models.CategoryCashback{{Category: "travel", CashbackRate: 4}}
		}),
	}

	options := engine.AdvisePurchase(owned, models.Purchase{
		Type:     models.SpendCategoryOnline,
		Category: "electronics",
		Amount:   5000,
	})

	require.Len(t, options, 3)
	assert.Equal(t, "high", options[0].CardID)
	assert.InDelta(t, 300, options[0].CashbackAmount, 0.001)
	assert.Equal(t, "low", options[1].CardID)
	assert.InDelta(t, 100, options[1].CashbackAmount, 0.001)

	// Cards with no matching category are still listed at rate zero
	assert.Equal(t, "unrelated", options[2].CardID)
	assert.Zero(t, options[2].CashbackAmount)
}

func TestAdvisePurchase_TypeFallbackMatch(t *testing.T) {
	owned := []models.Card{
		mockCard("online-card", func(c *models.Card) {
			c.Categories = []models.CategoryCashback{{Category: "online", CashbackRate: 3}}
		}),
	}

	options := engine.AdvisePurchase(owned, models.Purchase{
		Type:     models.SpendCategoryOnline,
		Category: "gadgets",
		Amount:   1000,
	})

	require.Len(t, options, 1)
	assert.InDelta(t, 30, options[0].CashbackAmount, 0.001)
}

func TestAdvisePurchase_NoOwnedCards(t *testing.T) {
	options := engine.AdvisePurchase(nil, models.Purchase{
		Type:     models.SpendCategoryOffline,
		Category: "groceries",
		Amount:   500,
	})
	assert.Empty(t, options)
}
