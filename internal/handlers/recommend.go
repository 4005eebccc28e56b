// Package handlers provides Lambda handlers for the card advisor engine.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	appConfig "card-advisor-engine/internal/config"
	"card-advisor-engine/internal/engine"
	"card-advisor-engine/internal/models"
	"card-advisor-engine/internal/services/catalog"
	"card-advisor-engine/internal/services/database"
	"card-advisor-engine/internal/utils"
)

// RecommendHandler scores card combinations for a spending profile
// submitted through API Gateway.
type RecommendHandler struct {
	db       *database.DB
	cardRepo *database.CardRepository
}

// NewRecommendHandler creates a new recommendation handler. When the
// database is unreachable the handler falls back to the built-in
// catalogue.
func NewRecommendHandler() (*RecommendHandler, error) {
	cfg, err := appConfig.Load()
	if err != nil {
		return &RecommendHandler{}, nil
	}

	db, err := database.New(cfg)
	if err != nil {
		utils.Logger.Warn("Database unavailable, using built-in catalogue", utils.Error(err))
		return &RecommendHandler{}, nil
	}

	return &RecommendHandler{
		db:       db,
		cardRepo: database.NewCardRepository(db),
	}, nil
}

// RecommendRequest is the request body for a recommendation.
type RecommendRequest struct {
	Spending    []models.SpendingEntry `json:"spending"`
	Preferences models.CardPreferences `json:"preferences"`
}

// RecommendResponse is the response for a recommendation request.
type RecommendResponse struct {
	Results []models.CardGroupResult `json:"results"`
	Count   int                      `json:"count"`
}

// Handle processes API Gateway recommendation requests.
func (h *RecommendHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger := utils.GetLogger()

	headers := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,Authorization",
		"Access-Control-Allow-Methods": "POST,OPTIONS",
		"Content-Type":                 "application/json",
	}

	if request.HTTPMethod == "OPTIONS" {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    headers,
		}, nil
	}

	var req RecommendRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return errorResponse(headers, http.StatusBadRequest, "Invalid JSON in request body")
	}

	cards, err := h.loadCatalogue(ctx)
	if err != nil {
		logger.Error("Failed to load card catalogue", utils.Error(err))
		return errorResponse(headers, http.StatusInternalServerError, "Failed to load card catalogue")
	}

	eng := engine.New(cards)
	results, err := eng.Recommend(req.Spending, req.Preferences)
	if err != nil {
		if isValidationError(err) {
			return errorResponse(headers, http.StatusBadRequest, err.Error())
		}
		logger.Error("Recommendation failed", utils.Error(err))
		return errorResponse(headers, http.StatusInternalServerError, "Failed to score card combinations")
	}

	logger.Info("Scored recommendations",
		utils.Int("entries", len(req.Spending)),
		utils.Int("results", len(results)))

	body, _ := json.Marshal(RecommendResponse{Results: results, Count: len(results)})

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

// loadCatalogue reads the catalogue from Postgres when connected,
// otherwise serves the built-in demo catalogue.
func (h *RecommendHandler) loadCatalogue(ctx context.Context) ([]models.Card, error) {
	if h.cardRepo == nil {
		return catalog.Default(), nil
	}
	cards, err := catalog.LoadFromRepository(ctx, h.cardRepo)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return catalog.Default(), nil
	}
	return cards, nil
}

// isValidationError reports whether the error stems from a malformed
// spending entry rather than an internal failure.
func isValidationError(err error) bool {
	return errors.Is(err, models.ErrInvalidAmount) ||
		errors.Is(err, models.ErrInvalidFrequency) ||
		errors.Is(err, models.ErrInvalidCategory) ||
		errors.Is(err, models.ErrMissingSubcategory)
}

// Close cleans up resources.
func (h *RecommendHandler) Close() {
	if h.db != nil {
		h.db.Close()
	}
}
