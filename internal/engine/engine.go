// Package engine implements the card-combination scoring pipeline.
//
// The engine is a pure function of (spending entries, card catalogue,
// preferences): no I/O happens during scoring and every call with the
// same inputs produces identically ordered output. Spend allocation
// across a group is greedy and order-dependent, not globally optimal;
// the AllocationStrategy interface exists so a proper assignment solver
// can be swapped in.
package engine

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"card-advisor-engine/internal/models"
	"card-advisor-engine/internal/utils"
)

// AllocationStrategy decides how a group's spending entries are divided
// among the cards of the group.
type AllocationStrategy interface {
	Allocate(group []*models.Card, entries []models.SpendingEntry) ([]models.CardResult, error)
}

// GreedyAllocation assigns spends first-match in card order: each card
// is evaluated against the entries no earlier card in the group has
// claimed, so an entry is never double-counted within one group.
type GreedyAllocation struct{}

// Allocate implements AllocationStrategy.
func (GreedyAllocation) Allocate(group []*models.Card, entries []models.SpendingEntry) ([]models.CardResult, error) {
	claimed := make(map[string]bool)
	results := make([]models.CardResult, 0, len(group))

	for _, card := range group {
		remaining := make([]models.SpendingEntry, 0, len(entries))
		for _, e := range entries {
			if !claimed[e.ID] {
				remaining = append(remaining, e)
			}
		}

		result, usedIDs, err := EvaluateCard(card, remaining)
		if err != nil {
			return nil, err
		}
		for id := range usedIDs {
			claimed[id] = true
		}
		results = append(results, *result)
	}

	return results, nil
}

// Engine scores card combinations against spending entries. The
// catalogue is injected at construction and treated as immutable for
// the lifetime of the engine.
type Engine struct {
	catalogue []models.Card
	strategy  AllocationStrategy
	logger    *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithStrategy replaces the default greedy allocation strategy.
func WithStrategy(s AllocationStrategy) Option {
	return func(e *Engine) { e.strategy = s }
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine over a validated card catalogue.
func New(catalogue []models.Card, opts ...Option) *Engine {
	e := &Engine{
		catalogue: catalogue,
		strategy:  GreedyAllocation{},
		logger:    utils.GetLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalogue returns the engine's card catalogue.
func (e *Engine) Catalogue() []models.Card {
	return e.catalogue
}

// CardsByID resolves card IDs against the catalogue, preserving
// catalogue order and dropping unknown IDs.
func (e *Engine) CardsByID(ids []string) []models.Card {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var cards []models.Card
	for _, c := range e.catalogue {
		if want[c.ID] {
			cards = append(cards, c)
		}
	}
	return cards
}

// filterCandidates applies the session preferences to the catalogue:
// excluded cards are dropped unconditionally, non-active cards are kept
// only when explicitly force-compared. Catalogue order is preserved, as
// it determines allocation priority within a group.
func (e *Engine) filterCandidates(prefs models.CardPreferences) []*models.Card {
	exclude := make(map[string]bool, len(prefs.ExcludeCards))
	for _, id := range prefs.ExcludeCards {
		exclude[id] = true
	}
	compare := make(map[string]bool, len(prefs.CompareCards))
	for _, id := range prefs.CompareCards {
		compare[id] = true
	}

	var candidates []*models.Card
	for i := range e.catalogue {
		card := &e.catalogue[i]
		if exclude[card.ID] {
			continue
		}
		if card.Status != models.CardStatusActive && !compare[card.ID] {
			continue
		}
		candidates = append(candidates, card)
	}
	return candidates
}

// Recommend scores every card combination up to the desired group size
// and returns the top results ordered by total group savings. An empty
// entries list or an empty candidate pool yields an empty result slice,
// not an error; structurally invalid entries are rejected.
func (e *Engine) Recommend(entries []models.SpendingEntry, prefs models.CardPreferences) ([]models.CardGroupResult, error) {
	if len(entries) == 0 {
		return []models.CardGroupResult{}, nil
	}

	withIDs := make([]models.SpendingEntry, len(entries))
	for i := range entries {
		if err := models.ValidateSpendingEntry(&entries[i]); err != nil {
			return nil, fmt.Errorf("spending entry %d: %w", i, err)
		}
		withIDs[i] = entries[i]
		// Assigned IDs are positional, not random: the IDs surface in
		// breakdown rows, and identical inputs must keep identical output.
		if withIDs[i].ID == "" {
			withIDs[i].ID = fmt.Sprintf("entry-%d", i+1)
		}
	}

	candidates := e.filterCandidates(prefs)
	if len(candidates) == 0 {
		return []models.CardGroupResult{}, nil
	}

	maxSize := prefs.DesiredCardCount
	if maxSize < 1 {
		maxSize = 1
	}
	if maxSize > MaxCombinationSize {
		e.logger.Warn("Desired card count exceeds ceiling, clamping",
			zap.Int("requested", maxSize),
			zap.Int("ceiling", MaxCombinationSize),
		)
		maxSize = MaxCombinationSize
	}

	combos := combinationIndexes(len(candidates), maxSize)

	e.logger.Debug("Scoring card combinations",
		zap.Int("entries", len(withIDs)),
		zap.Int("candidates", len(candidates)),
		zap.Int("combinations", len(combos)),
	)

	groups := make([]models.CardGroupResult, 0, len(combos))
	for _, combo := range combos {
		group := make([]*models.Card, len(combo))
		for i, idx := range combo {
			group[i] = candidates[idx]
		}

		cardResults, err := e.strategy.Allocate(group, withIDs)
		if err != nil {
			return nil, err
		}

		result := models.CardGroupResult{Cards: cardResults}
		for _, cr := range cardResults {
			result.TotalGroupSavings += cr.TotalSavings
			result.TotalGroupPoints += cr.RewardPoints
			result.SpendCoverage += cr.CoveragePercentage
		}
		// Coverage is an approximation summed per card, not a true
		// union of the covered spend.
		if result.SpendCoverage > 100 {
			result.SpendCoverage = 100
		}
		if result.TotalGroupSavings > 0 || result.TotalGroupPoints > 0 {
			groups = append(groups, result)
		}
	}

	// Stable sort keeps the deterministic generation order for ties.
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].TotalGroupSavings > groups[j].TotalGroupSavings
	})
	if len(groups) > MaxResults {
		groups = groups[:MaxResults]
	}

	return groups, nil
}
