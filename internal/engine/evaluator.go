// Package engine implements the card-combination scoring pipeline.
package engine

import (
	"fmt"

	"card-advisor-engine/internal/models"
)

// pointValue converts reward points into currency using the card's
// point value. Cards without a point value contribute no currency; the
// points are still tracked separately.
func pointValue(card *models.Card, points float64) float64 {
	if card.PointValue != nil {
		return points * *card.PointValue
	}
	return 0
}

// EvaluateCard scores one card against a set of spending entries and
// returns the per-card result plus the set of entry IDs that earned a
// reward (the entries the card "claims" within a group).
//
// Rule precedence per spend: first matching fine-grained rule, then the
// coarse category rate, then the card's default rate. Per-transaction
// caps clamp a single reward; per-category caps are tracked cumulatively
// across the evaluation. A milestone bonus is added at most once, after
// all entries are processed.
func EvaluateCard(card *models.Card, entries []models.SpendingEntry) (*models.CardResult, map[string]bool, error) {
	result := &models.CardResult{
		Card:      card.ToSummary(),
		Breakdown: make([]models.BreakdownRow, 0, len(entries)),
	}
	usedIDs := make(map[string]bool)
	categoryCapUsed := make(map[string]float64)

	for i := range entries {
		e := &entries[i]
		monthly, err := MonthlyAmount(e)
		if err != nil {
			return nil, nil, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		result.TotalSpend += monthly

		var cashback, points, rate float64

		if rule := firstMatchingRule(card, e); rule != nil {
			rate = rule.Rate
			if rule.RewardType == models.RewardTypePoints {
				points = monthly * rule.Rate / 100
				cashback = pointValue(card, points)
			} else {
				cashback = monthly * rule.Rate / 100
			}
			if rule.Cap != nil && cashback > *rule.Cap {
				cashback = *rule.Cap
			}
			if rule.CategoryCap != nil && rule.Category != "" {
				key := string(rule.Category)
				allowed := *rule.CategoryCap - categoryCapUsed[key]
				if allowed < 0 {
					allowed = 0
				}
				if cashback > allowed {
					cashback = allowed
				}
				categoryCapUsed[key] += cashback
			}
		} else if r, ok := categoryRate(card, e); ok {
			rate = r
			cashback = monthly * r / 100
		} else if card.DefaultRate != nil {
			rate = *card.DefaultRate
			if card.DefaultRewardType == models.RewardTypePoints {
				points = monthly * rate / 100
				cashback = pointValue(card, points)
			} else {
				cashback = monthly * rate / 100
			}
		}

		if cashback > 0 || points > 0 {
			result.TotalSavings += cashback
			result.RewardPoints += points
			result.CoveredSpend += monthly
			if e.ID != "" {
				usedIDs[e.ID] = true
			}
		}

		result.Breakdown = append(result.Breakdown, models.BreakdownRow{
			EntryID:        e.ID,
			Category:       e.Subcategory,
			MonthlySpend:   monthly,
			CashbackRate:   rate,
			MonthlySavings: cashback,
			RewardPoints:   points,
		})
	}

	if card.Milestone != nil && result.TotalSavings >= card.Milestone.Threshold {
		result.TotalSavings += card.Milestone.Bonus
	}

	if result.TotalSpend > 0 {
		result.CoveragePercentage = result.CoveredSpend / result.TotalSpend * 100
	}

	return result, usedIDs, nil
}
