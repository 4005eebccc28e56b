// Package engine implements the card-combination scoring pipeline.
package engine

import (
	"strings"

	"card-advisor-engine/internal/models"
)

// foodDeliveryCategory is a catalogue category with special matching:
// it applies to food-and-beverage spends made through an app.
const foodDeliveryCategory = "food delivery"

// ruleMatches reports whether a fine-grained reward rule applies to a
// spend. Every specified rule field must equal the corresponding spend
// field; zero-valued fields are wildcards.
func ruleMatches(rule *models.RewardRule, e *models.SpendingEntry) bool {
	if rule.Category != "" && rule.Category != e.Category {
		return false
	}
	if rule.Subcategory != "" && rule.Subcategory != e.Subcategory {
		return false
	}
	if rule.Brand != "" && rule.Brand != e.Brand {
		return false
	}
	if rule.Platform != "" && rule.Platform != e.Platform {
		return false
	}
	if rule.PaymentApp != "" && rule.PaymentApp != e.PaymentApp {
		return false
	}
	if rule.Channel != "" && rule.Channel != e.Channel {
		return false
	}
	return true
}

// firstMatchingRule returns the first rule in declaration order that
// applies to the spend, or nil. Only one rule is ever applied per spend.
func firstMatchingRule(card *models.Card, e *models.SpendingEntry) *models.RewardRule {
	for i := range card.Rules {
		if ruleMatches(&card.Rules[i], e) {
			return &card.Rules[i]
		}
	}
	return nil
}

// categoryMatches reports whether a coarse catalogue category applies
// to a spend: case-insensitive subcategory match, the literal
// online/offline top-level match, or the food-delivery special case.
func categoryMatches(category string, e *models.SpendingEntry) bool {
	if strings.EqualFold(category, e.Subcategory) {
		return true
	}
	if strings.EqualFold(category, string(e.Category)) {
		return true
	}
	if strings.EqualFold(category, foodDeliveryCategory) &&
		e.Subcategory == models.SubcategoryFoodAndBeverages &&
		e.Platform == models.PlatformApp {
		return true
	}
	return false
}

// categoryRate finds the coarse cashback rate for a spend, used as the
// fallback when no fine-grained rule matched.
func categoryRate(card *models.Card, e *models.SpendingEntry) (float64, bool) {
	for _, cat := range card.Categories {
		if categoryMatches(cat.Category, e) {
			return cat.CashbackRate, true
		}
	}
	return 0, false
}
