// Package handlers provides Lambda handlers for the card advisor engine.
package handlers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-lambda-go/events"

	appConfig "card-advisor-engine/internal/config"
	"card-advisor-engine/internal/engine"
	"card-advisor-engine/internal/models"
	"card-advisor-engine/internal/services/catalog"
	"card-advisor-engine/internal/services/database"
	"card-advisor-engine/internal/services/ses"
	s3service "card-advisor-engine/internal/services/s3"
	"card-advisor-engine/internal/utils"
)

// notifyEmailMetadataKey is the S3 user-metadata key carrying the
// address to email the recommendation summary to.
const notifyEmailMetadataKey = "notify-email"

// SpendingCSVHandler handles S3 events for uploaded spending CSV files:
// it parses the file, scores the catalogue against it, and optionally
// emails the results.
type SpendingCSVHandler struct {
	s3           *s3service.Service
	ses          *ses.Service
	db           *database.DB
	cardRepo     *database.CardRepository
	catalogueKey string
	groupSize    int
}

// NewSpendingCSVHandler creates a new spending CSV handler.
func NewSpendingCSVHandler() (*SpendingCSVHandler, error) {
	ctx := context.Background()

	s3Svc, err := s3service.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 service: %w", err)
	}

	sesSvc, err := ses.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create SES service: %w", err)
	}

	cfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	handler := &SpendingCSVHandler{
		s3:           s3Svc,
		ses:          sesSvc,
		catalogueKey: cfg.CatalogueKey,
		groupSize:    cfg.DefaultGroupSize,
	}

	// A missing database is not fatal; the built-in catalogue serves.
	if db, err := database.New(cfg); err == nil {
		handler.db = db
		handler.cardRepo = database.NewCardRepository(db)
	} else {
		utils.Logger.Warn("Database unavailable, using built-in catalogue", utils.Error(err))
	}

	return handler, nil
}

// SpendingCSVResult is the result of processing a spending CSV file.
type SpendingCSVResult struct {
	Message     string   `json:"message"`
	Key         string   `json:"key"`
	Entries     int      `json:"entries"`
	Results     int      `json:"results"`
	Notified    bool     `json:"notified"`
	ParseErrors []string `json:"parse_errors,omitempty"`
}

// Handle processes S3 events for uploaded spending CSV files.
func (h *SpendingCSVHandler) Handle(ctx context.Context, s3Event events.S3Event) (SpendingCSVResult, error) {
	logger := utils.GetLogger()

	if len(s3Event.Records) == 0 {
		return SpendingCSVResult{Message: "No records to process"}, nil
	}

	record := s3Event.Records[0]
	bucket := record.S3.Bucket.Name
	key, err := url.QueryUnescape(record.S3.Object.Key)
	if err != nil {
		return SpendingCSVResult{}, fmt.Errorf("failed to decode S3 key: %w", err)
	}

	logger.Info("Processing spending CSV",
		utils.String("bucket", bucket),
		utils.String("key", key))

	content, metadata, err := h.s3.DownloadObject(ctx, bucket, key)
	if err != nil {
		return SpendingCSVResult{}, fmt.Errorf("failed to download CSV: %w", err)
	}

	parser := utils.NewCSVParser()
	entries, parseErrors := parser.ParseSpendingEntries(string(content))

	errMsgs := make([]string, 0, len(parseErrors))
	for _, e := range parseErrors {
		errMsgs = append(errMsgs, e.Error())
	}
	if len(errMsgs) > 10 {
		errMsgs = errMsgs[:10]
	}

	if len(entries) == 0 {
		return SpendingCSVResult{
			Message:     "No valid spending entries found in CSV",
			Key:         key,
			ParseErrors: errMsgs,
		}, nil
	}

	logger.Info("Parsed spending CSV",
		utils.String("key", key),
		utils.Int("entries", len(entries)),
		utils.Int("parseErrors", len(parseErrors)))

	cards, err := h.loadCatalogue(ctx)
	if err != nil {
		return SpendingCSVResult{}, fmt.Errorf("failed to load card catalogue: %w", err)
	}

	eng := engine.New(cards)
	results, err := eng.Recommend(entries, models.CardPreferences{DesiredCardCount: h.groupSize})
	if err != nil {
		return SpendingCSVResult{}, fmt.Errorf("failed to score spending: %w", err)
	}

	notified := false
	if email := metadata[notifyEmailMetadataKey]; email != "" && len(results) > 0 {
		_, err := h.ses.SendRecommendationEmail(ctx, ses.RecommendationEmailParams{
			UserName:  metadata["notify-name"],
			UserEmail: email,
			Results:   results,
		})
		if err != nil {
			logger.Warn("Failed to send recommendation email", utils.Error(err))
		} else {
			notified = true
		}
	}

	return SpendingCSVResult{
		Message:     "Spending CSV processed successfully",
		Key:         key,
		Entries:     len(entries),
		Results:     len(results),
		Notified:    notified,
		ParseErrors: errMsgs,
	}, nil
}

// loadCatalogue picks the first catalogue source that yields cards:
// Postgres, then the S3 catalogue object, then the built-in demo set.
func (h *SpendingCSVHandler) loadCatalogue(ctx context.Context) ([]models.Card, error) {
	if h.cardRepo != nil {
		cards, err := catalog.LoadFromRepository(ctx, h.cardRepo)
		if err != nil {
			return nil, err
		}
		if len(cards) > 0 {
			return cards, nil
		}
	}

	if h.catalogueKey != "" {
		cards, err := catalog.LoadFromObject(ctx, h.s3, h.catalogueKey)
		if err == nil && len(cards) > 0 {
			return cards, nil
		}
		if err != nil {
			utils.Logger.Warn("Catalogue object unavailable, using built-in catalogue",
				utils.String("key", h.catalogueKey),
				utils.Error(err))
		}
	}

	return catalog.Default(), nil
}

// Close cleans up resources.
func (h *SpendingCSVHandler) Close() {
	if h.db != nil {
		h.db.Close()
	}
}
