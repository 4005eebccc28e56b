// Package models defines the data structures for the card advisor engine.
package models

// BreakdownRow records how a single spending entry scored against a card.
// Entries that earned nothing still get a row with zero savings so the
// caller can render the full attribution table.
type BreakdownRow struct {
	EntryID        string  `json:"entry_id"`
	Category       string  `json:"category"`
	MonthlySpend   float64 `json:"monthly_spend"`
	CashbackRate   float64 `json:"cashback_rate"`
	MonthlySavings float64 `json:"monthly_savings"`
	RewardPoints   float64 `json:"reward_points,omitempty"`
}

// CardResult is the evaluation of one card against a set of spends.
// TotalSavings is currency value only; RewardPoints accumulates points
// that could not be converted (card without a point value) as well as
// the raw points behind converted savings.
type CardResult struct {
	Card               CardSummary    `json:"card"`
	TotalSavings       float64        `json:"total_savings"`
	RewardPoints       float64        `json:"reward_points"`
	Breakdown          []BreakdownRow `json:"breakdown"`
	CoveredSpend       float64        `json:"covered_spend"`
	TotalSpend         float64        `json:"total_spend"`
	CoveragePercentage float64        `json:"coverage_percentage"`
}

// CardGroupResult is one scored card combination.
type CardGroupResult struct {
	Cards             []CardResult `json:"cards"`
	TotalGroupSavings float64      `json:"total_group_savings"`
	TotalGroupPoints  float64      `json:"total_group_points"`
	SpendCoverage     float64      `json:"spend_coverage"`
}

// SpendingProfile aggregates a set of entries into monthly totals and
// category shares.
type SpendingProfile struct {
	TotalMonthlySpending float64            `json:"total_monthly_spending"`
	OnlinePercentage     float64            `json:"online_percentage"`
	OfflinePercentage    float64            `json:"offline_percentage"`
	Categories           map[string]float64 `json:"categories"`
}

// Purchase describes a single planned purchase for the advisor.
type Purchase struct {
	Type     SpendCategory `json:"type" validate:"required,spendcategory"`
	Platform Platform      `json:"platform,omitempty"`
	Category string        `json:"category" validate:"required"`
	Amount   float64       `json:"amount" validate:"required,gt=0"`
}

// PurchaseOption is one owned card's reward for a planned purchase.
type PurchaseOption struct {
	CardID         string  `json:"card_id"`
	CardName       string  `json:"card_name"`
	Issuer         string  `json:"issuer"`
	CashbackRate   float64 `json:"cashback_rate"`
	CashbackAmount float64 `json:"cashback_amount"`
}
