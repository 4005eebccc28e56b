// Package models defines the data structures for the card advisor engine.
package models

import "time"

// CardStatus represents the lifecycle state of a catalogue card.
type CardStatus string

const (
	CardStatusActive       CardStatus = "active"
	CardStatusInactive     CardStatus = "inactive"
	CardStatusDiscontinued CardStatus = "discontinued"
)

// IsValid reports whether the status is one of the supported values.
func (s CardStatus) IsValid() bool {
	switch s {
	case CardStatusActive, CardStatusInactive, CardStatusDiscontinued:
		return true
	}
	return false
}

// RewardType distinguishes cashback from reward-point earnings.
type RewardType string

const (
	RewardTypeCashback RewardType = "cashback"
	RewardTypePoints   RewardType = "points"
)

// CategoryCashback is a coarse category → flat cashback rate pair.
type CategoryCashback struct {
	Category     string  `json:"category"`
	CashbackRate float64 `json:"cashback_rate"`
}

// RewardRule is a fine-grained reward override on a card. Empty matcher
// fields are wildcards; a rule applies to a spend only when every
// specified field equals the corresponding spend field.
type RewardRule struct {
	Category    SpendCategory `json:"category,omitempty"`
	Subcategory string        `json:"subcategory,omitempty"`
	Brand       string        `json:"brand,omitempty"`
	Platform    Platform      `json:"platform,omitempty"`
	PaymentApp  string        `json:"payment_app,omitempty"`
	Channel     string        `json:"channel,omitempty"`
	Rate        float64       `json:"rate"`
	RewardType  RewardType    `json:"reward_type,omitempty"`
	Cap         *float64      `json:"cap,omitempty"`
	CategoryCap *float64      `json:"category_cap,omitempty"`
}

// Milestone is a one-time bonus unlocked when cumulative cashback
// crosses a threshold.
type Milestone struct {
	Threshold float64 `json:"threshold"`
	Bonus     float64 `json:"bonus"`
}

// Card represents a credit card catalogue entry. The approval
// heuristics (MinIncome, CreditScore) are informational only and not
// enforced by the engine.
type Card struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Issuer            string             `json:"issuer"`
	AnnualFee         float64            `json:"annual_fee"`
	JoinFee           float64            `json:"join_fee"`
	InterestRate      float64            `json:"interest_rate"`
	MinIncome         float64            `json:"min_income"`
	CreditScore       int                `json:"credit_score"`
	Status            CardStatus         `json:"status"`
	Categories        []CategoryCashback `json:"categories"`
	Rules             []RewardRule       `json:"rules,omitempty"`
	Milestone         *Milestone         `json:"milestone,omitempty"`
	DefaultRate       *float64           `json:"default_rate,omitempty"`
	DefaultRewardType RewardType         `json:"default_reward_type,omitempty"`
	PointValue        *float64           `json:"point_value,omitempty"`
	CreatedAt         time.Time          `json:"created_at,omitempty"`
	UpdatedAt         time.Time          `json:"updated_at,omitempty"`
}

// CardSummary is a lightweight view of a card for result payloads.
type CardSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Issuer       string  `json:"issuer"`
	AnnualFee    float64 `json:"annual_fee"`
	JoinFee      float64 `json:"join_fee"`
	InterestRate float64 `json:"interest_rate"`
}

// ToSummary converts a Card to a CardSummary.
func (c *Card) ToSummary() CardSummary {
	return CardSummary{
		ID:           c.ID,
		Name:         c.Name,
		Issuer:       c.Issuer,
		AnnualFee:    c.AnnualFee,
		JoinFee:      c.JoinFee,
		InterestRate: c.InterestRate,
	}
}
