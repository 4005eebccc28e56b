// Package models defines the data structures for the card advisor engine.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrInvalidAmount      = errors.New("spending amount must be greater than zero")
	ErrInvalidFrequency   = errors.New("invalid spending frequency")
	ErrInvalidCategory    = errors.New("category must be online or offline")
	ErrMissingSubcategory = errors.New("subcategory cannot be empty")
	ErrInvalidCard        = errors.New("invalid card definition")
	ErrRuleWithoutRate    = errors.New("reward rule must define a positive rate")
)

// ValidateSpendingEntry checks the structural invariants of a spending
// entry. Entries that fail validation must be rejected at the boundary,
// never silently coerced.
func ValidateSpendingEntry(e *SpendingEntry) error {
	if e.Amount <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidAmount, e.Amount)
	}
	if !e.Frequency.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, e.Frequency)
	}
	if !e.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, e.Category)
	}
	if strings.TrimSpace(e.Subcategory) == "" {
		return ErrMissingSubcategory
	}
	return nil
}

// ValidateCard checks a catalogue card once at load time. Scoring
// assumes the catalogue has already passed this check.
func ValidateCard(c *Card) error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidCard)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: card %s has no name", ErrInvalidCard, c.ID)
	}
	if strings.TrimSpace(c.Issuer) == "" {
		return fmt.Errorf("%w: card %s has no issuer", ErrInvalidCard, c.ID)
	}
	if !c.Status.IsValid() {
		return fmt.Errorf("%w: card %s has status %q", ErrInvalidCard, c.ID, c.Status)
	}
	for i, cat := range c.Categories {
		if strings.TrimSpace(cat.Category) == "" {
			return fmt.Errorf("%w: card %s category %d has no name", ErrInvalidCard, c.ID, i)
		}
		if cat.CashbackRate < 0 {
			return fmt.Errorf("%w: card %s category %q has negative rate", ErrInvalidCard, c.ID, cat.Category)
		}
	}
	for i, rule := range c.Rules {
		if rule.Rate <= 0 {
			return fmt.Errorf("%w: card %s rule %d: %v", ErrInvalidCard, c.ID, i, ErrRuleWithoutRate)
		}
		if rule.RewardType != "" && rule.RewardType != RewardTypeCashback && rule.RewardType != RewardTypePoints {
			return fmt.Errorf("%w: card %s rule %d has reward type %q", ErrInvalidCard, c.ID, i, rule.RewardType)
		}
	}
	if c.DefaultRate != nil && *c.DefaultRate < 0 {
		return fmt.Errorf("%w: card %s has negative default rate", ErrInvalidCard, c.ID)
	}
	if c.Milestone != nil && c.Milestone.Threshold < 0 {
		return fmt.Errorf("%w: card %s has negative milestone threshold", ErrInvalidCard, c.ID)
	}
	return nil
}
