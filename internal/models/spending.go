// Package models defines the data structures for the card advisor engine.
package models

// Frequency represents how often a spending entry recurs.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
	FrequencyOneTime   Frequency = "one-time"
)

// IsValid reports whether the frequency is one of the supported values.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly,
		FrequencyQuarterly, FrequencyYearly, FrequencyOneTime:
		return true
	}
	return false
}

// SpendCategory is the top-level online/offline classification of a spend.
type SpendCategory string

const (
	SpendCategoryOnline  SpendCategory = "online"
	SpendCategoryOffline SpendCategory = "offline"
)

// IsValid reports whether the category is one of the supported values.
func (c SpendCategory) IsValid() bool {
	return c == SpendCategoryOnline || c == SpendCategoryOffline
}

// Platform represents where a purchase happens.
type Platform string

const (
	PlatformApp     Platform = "app"
	PlatformWebsite Platform = "website"
	PlatformStore   Platform = "store"
	PlatformOther   Platform = "other"
)

// SubcategoryFoodAndBeverages is matched by the "food delivery" card
// category when the spend happens in an app.
const SubcategoryFoodAndBeverages = "foodAndBeverages"

// SpendingEntry represents a single declared spending habit.
type SpendingEntry struct {
	ID               string        `json:"id,omitempty"`
	Amount           float64       `json:"amount" validate:"required,gt=0"`
	Frequency        Frequency     `json:"frequency" validate:"required,frequency"`
	Category         SpendCategory `json:"category" validate:"required,spendcategory"`
	Subcategory      string        `json:"subcategory" validate:"required"`
	SpecificCategory string        `json:"specific_category,omitempty"`
	Brand            string        `json:"brand,omitempty"`
	Platform         Platform      `json:"platform,omitempty"`
	PlatformName     string        `json:"platform_name,omitempty"`
	PaymentApp       string        `json:"payment_app,omitempty"`
	Channel          string        `json:"channel,omitempty"`
	Purpose          string        `json:"purpose,omitempty"`
}

// CardPreferences holds the per-session recommendation configuration.
type CardPreferences struct {
	CompareCards     []string `json:"compare_cards,omitempty"`
	ExcludeCards     []string `json:"exclude_cards,omitempty"`
	OwnedCards       []string `json:"owned_cards,omitempty"`
	DesiredCardCount int      `json:"desired_card_count" validate:"gte=0"`
}
