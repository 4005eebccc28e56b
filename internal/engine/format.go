// Package engine implements the card-combination scoring pipeline.
package engine

import (
	"fmt"
	"strings"

	"card-advisor-engine/internal/models"
)

// FormatSummary renders one group result as a short plain-text summary
// for notifications and logs.
func FormatSummary(result *models.CardGroupResult) string {
	names := make([]string, len(result.Cards))
	for i, cr := range result.Cards {
		names[i] = cr.Card.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Cards: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "Total monthly savings: %.2f\n", result.TotalGroupSavings)
	if result.TotalGroupPoints > 0 {
		fmt.Fprintf(&b, "Reward points: %.2f\n", result.TotalGroupPoints)
	}
	fmt.Fprintf(&b, "Spend coverage: %.0f%%", result.SpendCoverage)
	return b.String()
}
