// Package database provides database operations for the card advisor engine.
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"card-advisor-engine/internal/models"
)

// CardRepository handles card catalogue database operations. Reward
// metadata (categories, rules, milestone) is stored as JSONB since the
// engine consumes it as opaque structured data.
type CardRepository struct {
	db *DB
}

// NewCardRepository creates a new card repository.
func NewCardRepository(db *DB) *CardRepository {
	return &CardRepository{db: db}
}

const cardColumns = `
	id, name, issuer, annual_fee, join_fee, interest_rate, min_income,
	credit_score, status, categories, rules, milestone, default_rate,
	default_reward_type, point_value, created_at, updated_at`

// Upsert inserts or replaces a catalogue card.
func (r *CardRepository) Upsert(ctx context.Context, card *models.Card) error {
	if err := models.ValidateCard(card); err != nil {
		return err
	}

	categoriesJSON, err := json.Marshal(card.Categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}
	rulesJSON, err := json.Marshal(card.Rules)
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}
	var milestoneJSON []byte
	if card.Milestone != nil {
		milestoneJSON, err = json.Marshal(card.Milestone)
		if err != nil {
			return fmt.Errorf("failed to marshal milestone: %w", err)
		}
	}

	query := `
		INSERT INTO cards (
			id, name, issuer, annual_fee, join_fee, interest_rate, min_income,
			credit_score, status, categories, rules, milestone, default_rate,
			default_reward_type, point_value, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			issuer = EXCLUDED.issuer,
			annual_fee = EXCLUDED.annual_fee,
			join_fee = EXCLUDED.join_fee,
			interest_rate = EXCLUDED.interest_rate,
			min_income = EXCLUDED.min_income,
			credit_score = EXCLUDED.credit_score,
			status = EXCLUDED.status,
			categories = EXCLUDED.categories,
			rules = EXCLUDED.rules,
			milestone = EXCLUDED.milestone,
			default_rate = EXCLUDED.default_rate,
			default_reward_type = EXCLUDED.default_reward_type,
			point_value = EXCLUDED.point_value,
			updated_at = EXCLUDED.updated_at`

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx, query,
		card.ID,
		card.Name,
		card.Issuer,
		card.AnnualFee,
		card.JoinFee,
		card.InterestRate,
		card.MinIncome,
		card.CreditScore,
		string(card.Status),
		categoriesJSON,
		rulesJSON,
		milestoneJSON,
		card.DefaultRate,
		nullableString(string(card.DefaultRewardType)),
		card.PointValue,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert card %s: %w", card.ID, err)
	}

	return nil
}

// GetByID retrieves a card by its ID, or nil when absent.
func (r *CardRepository) GetByID(ctx context.Context, id string) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`

	card, err := scanCard(r.db.QueryRowContext(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return card, nil
}

// GetAll retrieves the full catalogue in insertion order.
func (r *CardRepository) GetAll(ctx context.Context) ([]models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards ORDER BY created_at, id`
	return r.queryCards(ctx, query)
}

// GetAllActive retrieves all active catalogue cards.
func (r *CardRepository) GetAllActive(ctx context.Context) ([]models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE status = 'active' ORDER BY created_at, id`
	return r.queryCards(ctx, query)
}

func (r *CardRepository) queryCards(ctx context.Context, query string, args ...interface{}) ([]models.Card, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}

// scanCard scans a single card row, decoding the JSONB reward metadata.
func scanCard(row pgx.Row) (*models.Card, error) {
	var card models.Card
	var status, defaultRewardType *string
	var categoriesJSON, rulesJSON, milestoneJSON []byte

	err := row.Scan(
		&card.ID,
		&card.Name,
		&card.Issuer,
		&card.AnnualFee,
		&card.JoinFee,
		&card.InterestRate,
		&card.MinIncome,
		&card.CreditScore,
		&status,
		&categoriesJSON,
		&rulesJSON,
		&milestoneJSON,
		&card.DefaultRate,
		&defaultRewardType,
		&card.PointValue,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if status != nil {
		card.Status = models.CardStatus(*status)
	}
	if defaultRewardType != nil {
		card.DefaultRewardType = models.RewardType(*defaultRewardType)
	}
	if len(categoriesJSON) > 0 {
		if err := json.Unmarshal(categoriesJSON, &card.Categories); err != nil {
			return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
		}
	}
	if len(rulesJSON) > 0 {
		if err := json.Unmarshal(rulesJSON, &card.Rules); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rules: %w", err)
		}
	}
	if len(milestoneJSON) > 0 {
		if err := json.Unmarshal(milestoneJSON, &card.Milestone); err != nil {
			return nil, fmt.Errorf("failed to unmarshal milestone: %w", err)
		}
	}

	return &card, nil
}

// nullableString converts an empty string to nil for nullable columns.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
