// Package catalog_test contains tests for catalogue loading and validation
package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-advisor-engine/internal/models"
	"card-advisor-engine/internal/services/catalog"
)

func TestDefault_IsValid(t *testing.T) {
	cards := catalog.Default()
	require.NotEmpty(t, cards)
	assert.NoError(t, catalog.Validate(cards))
}

func TestValidate_DuplicateID(t *testing.T) {
	cards := []models.Card{
		{ID: "dup", Name: "A", Issuer: "Bank", Status: models.CardStatusActive},
		{ID: "dup", Name: "B", Issuer: "Bank", Status: models.CardStatusActive},
	}

	err := catalog.Validate(cards)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidCard)
	assert.Contains(t, err.Error(), "duplicate card id")
}

func TestParse_ValidJSON(t *testing.T) {
	data := []byte(`[
		{
			"id": "json-card",
			"name": "JSON Card",
			"issuer": "JSON Bank",
			"status": "active",
			"categories": [{"category": "online", "cashback_rate": 2}]
		}
	]`)

	cards, err := catalog.Parse(data)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "json-card", cards[0].ID)
	assert.Equal(t, float64(2), cards[0].Categories[0].CashbackRate)
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := catalog.Parse([]byte(`not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode catalogue")
}

func TestParse_InvalidCard(t *testing.T) {
	data := []byte(`[{"id": "", "name": "No ID", "issuer": "Bank", "status": "active"}]`)

	_, err := catalog.Parse(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidCard)
}

// stubDownloader serves a fixed payload for one key
type stubDownloader struct {
	key  string
	data []byte
	err  error
}

func (d *stubDownloader) DownloadObject(_ context.Context, _, key string) ([]byte, map[string]string, error) {
	if d.err != nil {
		return nil, nil, d.err
	}
	if key != d.key {
		return nil, nil, errors.New("no such key")
	}
	return d.data, nil, nil
}

func TestLoadFromObject(t *testing.T) {
	dl := &stubDownloader{
		key: "catalogue/cards.json",
		data: []byte(`[
			{
				"id": "s3-card",
				"name": "S3 Card",
				"issuer": "Object Bank",
				"status": "active",
				"categories": [{"category": "online", "cashback_rate": 3}]
			}
		]`),
	}

	cards, err := catalog.LoadFromObject(context.Background(), dl, "catalogue/cards.json")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "s3-card", cards[0].ID)
}

func TestLoadFromObject_DownloadError(t *testing.T) {
	dl := &stubDownloader{err: errors.New("access denied")}

	_, err := catalog.LoadFromObject(context.Background(), dl, "catalogue/cards.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to download catalogue object")
}
