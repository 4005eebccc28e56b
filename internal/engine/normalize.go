// Package engine implements the card-combination scoring pipeline.
package engine

import (
	"fmt"

	"card-advisor-engine/internal/models"
)

// MonthlyAmount converts a spending entry's amount and frequency into a
// canonical monthly amount. Yearly and one-time spends are amortized
// over twelve months. Frequency is a closed enum; anything else is an
// ErrInvalidFrequency rather than a pass-through.
func MonthlyAmount(e *models.SpendingEntry) (float64, error) {
	switch e.Frequency {
	case models.FrequencyDaily:
		return e.Amount * 30, nil
	case models.FrequencyWeekly:
		return e.Amount * 4, nil
	case models.FrequencyMonthly:
		return e.Amount, nil
	case models.FrequencyQuarterly:
		return e.Amount / 3, nil
	case models.FrequencyYearly, models.FrequencyOneTime:
		return e.Amount / 12, nil
	default:
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidFrequency, e.Frequency)
	}
}
