// Package engine implements the card-combination scoring pipeline.
package engine

import (
	"sort"
	"strings"

	"card-advisor-engine/internal/models"
)

// AdvisePurchase ranks the user's owned cards by reward for a single
// planned purchase. Matching is coarse only: a card category matches
// the purchase category directly (case-insensitive) or matches the
// purchase type literal (online/offline). Cards with no matching
// category are still listed, at rate zero, so the caller can show the
// full comparison.
func AdvisePurchase(ownedCards []models.Card, p models.Purchase) []models.PurchaseOption {
	options := make([]models.PurchaseOption, 0, len(ownedCards))

	for i := range ownedCards {
		card := &ownedCards[i]
		var rate float64
		for _, cat := range card.Categories {
			if strings.EqualFold(cat.Category, p.Category) || cat.Category == string(p.Type) {
				rate = cat.CashbackRate
				break
			}
		}

		options = append(options, models.PurchaseOption{
			CardID:         card.ID,
			CardName:       card.Name,
			Issuer:         card.Issuer,
			CashbackRate:   rate,
			CashbackAmount: p.Amount * rate / 100,
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].CashbackAmount > options[j].CashbackAmount
	})

	return options
}
