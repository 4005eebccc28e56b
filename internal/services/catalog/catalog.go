// Package catalog loads and validates the card catalogue. The engine
// never reads the catalogue itself; a validated card slice is injected
// into it by whichever loader the caller picked.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"card-advisor-engine/internal/models"
	"card-advisor-engine/internal/services/database"
)

// Validate checks every card in the catalogue. Called once at load
// time; scoring trusts the catalogue afterwards.
func Validate(cards []models.Card) error {
	seen := make(map[string]bool, len(cards))
	for i := range cards {
		if err := models.ValidateCard(&cards[i]); err != nil {
			return err
		}
		if seen[cards[i].ID] {
			return fmt.Errorf("%w: duplicate card id %s", models.ErrInvalidCard, cards[i].ID)
		}
		seen[cards[i].ID] = true
	}
	return nil
}

// Parse decodes and validates a JSON catalogue.
func Parse(data []byte) ([]models.Card, error) {
	var cards []models.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode catalogue: %w", err)
	}
	if err := Validate(cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// LoadFromFile reads and validates a JSON catalogue from disk.
func LoadFromFile(path string) ([]models.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue file: %w", err)
	}
	return Parse(data)
}

// LoadFromRepository reads and validates the catalogue from Postgres.
func LoadFromRepository(ctx context.Context, repo *database.CardRepository) ([]models.Card, error) {
	cards, err := repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := Validate(cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// ObjectDownloader fetches a stored object; an empty bucket means the
// downloader's configured default.
type ObjectDownloader interface {
	DownloadObject(ctx context.Context, bucket, key string) ([]byte, map[string]string, error)
}

// LoadFromObject reads and validates a JSON catalogue stored as an
// object, typically under the configured S3 catalogue key.
func LoadFromObject(ctx context.Context, dl ObjectDownloader, key string) ([]models.Card, error) {
	data, _, err := dl.DownloadObject(ctx, "", key)
	if err != nil {
		return nil, fmt.Errorf("failed to download catalogue object %s: %w", key, err)
	}
	return Parse(data)
}
