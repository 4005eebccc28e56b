package catalog

import "card-advisor-engine/internal/models"

func floatPtr(v float64) *float64 { return &v }

// Default returns the built-in demo catalogue, used when neither a
// catalogue file nor a database is configured.
func Default() []models.Card {
	return []models.Card{
		{
			ID:           "hdfc-premium-rewards-gold",
			Name:         "Premium Rewards Gold",
			Issuer:       "HDFC Bank",
			AnnualFee:    1000,
			JoinFee:      0,
			InterestRate: 3.5,
			MinIncome:    800000,
			CreditScore:  750,
			Status:       models.CardStatusActive,
			Categories: []models.CategoryCashback{
				{Category: "online", CashbackRate: 5},
				{Category: "travel", CashbackRate: 3},
				{Category: "dining", CashbackRate: 2},
			},
		},
		{
			ID:           "icici-shopmore-platinum",
			Name:         "ShopMore Platinum",
			Issuer:       "ICICI Bank",
			AnnualFee:    500,
			JoinFee:      500,
			InterestRate: 3.4,
			MinIncome:    600000,
			CreditScore:  700,
			Status:       models.CardStatusActive,
			Categories: []models.CategoryCashback{
				{Category: "fashion", CashbackRate: 5},
				{Category: "electronics", CashbackRate: 3},
				{Category: "entertainment", CashbackRate: 4},
			},
			Rules: []models.RewardRule{
				{
					Category:    models.SpendCategoryOnline,
					Subcategory: "electronics",
					Rate:        6,
					RewardType:  models.RewardTypeCashback,
					Cap:         floatPtr(500),
					CategoryCap: floatPtr(1500),
				},
			},
		},
		{
			ID:           "sbi-everyday-rewards",
			Name:         "Everyday Rewards",
			Issuer:       "SBI Card",
			AnnualFee:    0,
			JoinFee:      500,
			InterestRate: 3.8,
			MinIncome:    400000,
			CreditScore:  680,
			Status:       models.CardStatusActive,
			Categories: []models.CategoryCashback{
				{Category: "groceries", CashbackRate: 3},
				{Category: "utilities", CashbackRate: 2},
				{Category: "fuel", CashbackRate: 1},
			},
			DefaultRate: floatPtr(0.5),
			Milestone:   &models.Milestone{Threshold: 500, Bonus: 100},
		},
		{
			ID:           "axis-travel-elite",
			Name:         "Travel Elite",
			Issuer:       "Axis Bank",
			AnnualFee:    2000,
			JoinFee:      0,
			InterestRate: 3.7,
			MinIncome:    1000000,
			CreditScore:  770,
			Status:       models.CardStatusActive,
			Categories: []models.CategoryCashback{
				{Category: "travel", CashbackRate: 4},
				{Category: "dining", CashbackRate: 2},
			},
			DefaultRate:       floatPtr(2),
			DefaultRewardType: models.RewardTypePoints,
			PointValue:        floatPtr(0.25),
		},
		{
			ID:           "rbl-digital-one",
			Name:         "Digital One",
			Issuer:       "RBL Bank",
			AnnualFee:    750,
			JoinFee:      0,
			InterestRate: 3.6,
			MinIncome:    500000,
			CreditScore:  720,
			Status:       models.CardStatusActive,
			Categories: []models.CategoryCashback{
				{Category: "subscriptions", CashbackRate: 5},
				{Category: "food delivery", CashbackRate: 3},
			},
		},
		{
			ID:           "kotak-legacy-classic",
			Name:         "Legacy Classic",
			Issuer:       "Kotak Bank",
			AnnualFee:    0,
			JoinFee:      0,
			InterestRate: 3.9,
			MinIncome:    300000,
			CreditScore:  650,
			Status:       models.CardStatusDiscontinued,
			Categories: []models.CategoryCashback{
				{Category: "offline", CashbackRate: 1},
			},
		},
	}
}
