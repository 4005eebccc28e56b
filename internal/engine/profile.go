// Package engine implements the card-combination scoring pipeline.
package engine

import (
	"fmt"
	"sort"
	"strings"

	"card-advisor-engine/internal/models"
)

// BuildSpendingProfile aggregates entries into monthly totals, the
// online/offline split and per-subcategory percentage shares.
func BuildSpendingProfile(entries []models.SpendingEntry) (*models.SpendingProfile, error) {
	profile := &models.SpendingProfile{
		Categories: make(map[string]float64),
	}

	var onlineTotal float64
	categoryTotals := make(map[string]float64)

	for i := range entries {
		e := &entries[i]
		if err := models.ValidateSpendingEntry(e); err != nil {
			return nil, fmt.Errorf("spending entry %d: %w", i, err)
		}
		monthly, err := MonthlyAmount(e)
		if err != nil {
			return nil, fmt.Errorf("spending entry %d: %w", i, err)
		}

		profile.TotalMonthlySpending += monthly
		if e.Category == models.SpendCategoryOnline {
			onlineTotal += monthly
		}
		categoryTotals[e.Subcategory] += monthly
	}

	if profile.TotalMonthlySpending > 0 {
		profile.OnlinePercentage = onlineTotal / profile.TotalMonthlySpending * 100
		profile.OfflinePercentage = 100 - profile.OnlinePercentage
		for category, amount := range categoryTotals {
			profile.Categories[category] = amount / profile.TotalMonthlySpending * 100
		}
	}

	return profile, nil
}

// TopCardsByProfile is a cheap single-card pre-ranking: each card is
// scored by its category rates weighted by the profile's category
// shares, with a flat bonus for online-focused cards when the profile
// is online-heavy. Returns at most limit cards, best first.
func TopCardsByProfile(profile *models.SpendingProfile, cards []models.Card, limit int) []models.Card {
	type scoredCard struct {
		card  models.Card
		score float64
	}

	scored := make([]scoredCard, 0, len(cards))
	for _, card := range cards {
		var score float64

		if profile.OnlinePercentage > 50 {
			for _, cat := range card.Categories {
				if cat.Category == string(models.SpendCategoryOnline) {
					score += 10
					break
				}
			}
		}

		for category, percentage := range profile.Categories {
			for _, cat := range card.Categories {
				if strings.EqualFold(cat.Category, category) {
					score += cat.CashbackRate * percentage / 100
					break
				}
			}
		}

		scored = append(scored, scoredCard{card: card, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	top := make([]models.Card, len(scored))
	for i, sc := range scored {
		top[i] = sc.card
	}
	return top
}
