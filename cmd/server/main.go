// Package main provides a local HTTP server for development and testing.
// It exposes the recommendation, advisor and profile endpoints needed by
// the frontend, plus CSV upload for bulk spending entry.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/cors"

	"card-advisor-engine/internal/config"
	"card-advisor-engine/internal/engine"
	"card-advisor-engine/internal/models"
	"card-advisor-engine/internal/services/catalog"
	"card-advisor-engine/internal/services/database"
	"card-advisor-engine/internal/utils"
	"card-advisor-engine/internal/validator"
)

// Server holds all dependencies
type Server struct {
	db       *database.DB
	cardRepo *database.CardRepository
	engine   *engine.Engine
	config   *config.Config
}

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RecommendRequest is the request body for a recommendation.
type RecommendRequest struct {
	Spending    []models.SpendingEntry `json:"spending" validate:"required,min=1,dive"`
	Preferences models.CardPreferences `json:"preferences"`
}

// AdvisorRequest is the request body for the purchase advisor.
type AdvisorRequest struct {
	Purchase   models.Purchase `json:"purchase" validate:"required"`
	OwnedCards []string        `json:"owned_cards" validate:"required,min=1"`
}

// ProfileRequest is the request body for a spending profile.
type ProfileRequest struct {
	Spending []models.SpendingEntry `json:"spending" validate:"required,min=1,dive"`
	TopCards int                    `json:"top_cards,omitempty"`
}

// UploadResponse contains CSV upload processing results
type UploadResponse struct {
	TotalRows    int                      `json:"total_rows"`
	ValidEntries int                      `json:"valid_entries"`
	Errors       int                      `json:"errors"`
	Results      []models.CardGroupResult `json:"results"`
	ProcessingMs int64                    `json:"processing_ms"`
}

func main() {
	// Initialize logger first
	if err := utils.InitLogger("info"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load config from environment: %v", err)
		cfg = &config.Config{DefaultGroupSize: 3}
	}

	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		log.Printf("Warning: Could not connect to database: %v", err)
		log.Println("Server will run in demo mode with the built-in catalogue")
	}

	server := &Server{
		db:     db,
		config: cfg,
	}

	if db != nil {
		server.cardRepo = database.NewCardRepository(db)
	}

	// Load the catalogue once at startup: file, database, then the
	// built-in demo set.
	cards, err := server.loadCatalogue(context.Background())
	if err != nil {
		log.Fatalf("Failed to load card catalogue: %v", err)
	}
	server.engine = engine.New(cards)
	log.Printf("Loaded catalogue with %d cards", len(cards))

	// Setup routes
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", server.healthHandler)
	mux.HandleFunc("/api/health", server.healthHandler)

	// Card catalogue
	mux.HandleFunc("/api/cards", server.cardsHandler)

	// Score card combinations against spending entries
	mux.HandleFunc("/api/recommendations", server.recommendationsHandler)

	// Best owned card for a single purchase
	mux.HandleFunc("/api/advisor", server.advisorHandler)

	// Spending profile aggregation
	mux.HandleFunc("/api/profile", server.profileHandler)

	// Direct CSV upload endpoint (for local testing)
	mux.HandleFunc("/api/upload", server.uploadHandler)

	// Presigned URL endpoint (mock for local development)
	mux.HandleFunc("/api/presigned-url", server.presignedURLHandler)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(mux)

	port := getEnvOrDefault("PORT", "8080")
	addr := fmt.Sprintf("0.0.0.0:%s", port)

	log.Printf("Card Advisor Engine API Server")
	log.Printf("Listening on http://localhost:%s", port)
	log.Printf("Health: http://localhost:%s/health", port)
	log.Println("")

	// Start server (this blocks until error)
	log.Printf("Starting HTTP server on %s...", addr)
	if serverErr := http.ListenAndServe(addr, handler); serverErr != nil {
		log.Fatalf("Server failed: %v", serverErr)
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// loadCatalogue picks the first configured catalogue source that works.
func (s *Server) loadCatalogue(ctx context.Context) ([]models.Card, error) {
	if s.config.CataloguePath != "" {
		return catalog.LoadFromFile(s.config.CataloguePath)
	}
	if s.cardRepo != nil {
		cards, err := catalog.LoadFromRepository(ctx, s.cardRepo)
		if err != nil {
			return nil, err
		}
		if len(cards) > 0 {
			return cards, nil
		}
		log.Println("Database catalogue is empty, using built-in catalogue")
	}
	return catalog.Default(), nil
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := "disconnected"
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err == nil {
			dbStatus = "connected"
		}
	}

	response := Response{
		Success: true,
		Message: "Card Advisor Engine API is running",
		Data: map[string]interface{}{
			"status":    "healthy",
			"database":  dbStatus,
			"cards":     len(s.engine.Catalogue()),
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
		},
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) cardsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cards := s.engine.Catalogue()
	summaries := make([]models.CardSummary, len(cards))
	for i := range cards {
		summaries[i] = cards[i].ToSummary()
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    summaries,
	})
}

func (s *Server) recommendationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if err := validator.Validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	results, err := s.engine.Recommend(req.Spending, req.Preferences)
	if err != nil {
		status := http.StatusInternalServerError
		if isEntryError(err) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    results,
	})
}

func (s *Server) advisorHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AdvisorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if err := validator.Validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	owned := s.engine.CardsByID(req.OwnedCards)
	if len(owned) == 0 {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "None of the owned card IDs are in the catalogue",
		})
		return
	}

	options := engine.AdvisePurchase(owned, req.Purchase)

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    options,
	})
}

func (s *Server) profileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if err := validator.Validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	profile, err := engine.BuildSpendingProfile(req.Spending)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	data := map[string]interface{}{
		"profile": profile,
	}
	if req.TopCards > 0 {
		top := engine.TopCardsByProfile(profile, s.engine.Catalogue(), req.TopCards)
		summaries := make([]models.CardSummary, len(top))
		for i := range top {
			summaries[i] = top[i].ToSummary()
		}
		data["top_cards"] = summaries
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func (s *Server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log.Printf("CSV upload request received")

	// Handle multipart form upload
	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB max
		log.Printf("Failed to parse form: %v", err)
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Failed to parse form: " + err.Error(),
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "No file provided",
		})
		return
	}
	defer file.Close()

	log.Printf("Processing file: %s (%.2f KB)", header.Filename, float64(header.Size)/1024)

	// Validate file type
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Only CSV files are allowed",
		})
		return
	}

	// Read file content
	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to read file",
		})
		return
	}

	result, err := s.processCSVContent(content)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "CSV processed successfully",
		Data:    result,
	})
}

func (s *Server) processCSVContent(content []byte) (*UploadResponse, error) {
	startTime := time.Now()

	parser := utils.NewCSVParser()
	entries, parseErrors := parser.ParseSpendingEntries(string(content))

	log.Printf("Parsed: %d valid entries, %d errors", len(entries), len(parseErrors))

	if len(parseErrors) > 0 {
		for i, err := range parseErrors {
			if i >= 5 { // Only log first 5 errors
				log.Printf("   ... and %d more errors", len(parseErrors)-5)
				break
			}
			log.Printf("   - %v", err)
		}
	}

	if len(entries) == 0 {
		return nil, errors.New("no valid spending entries found in CSV")
	}

	results, err := s.engine.Recommend(entries, models.CardPreferences{
		DesiredCardCount: s.config.DefaultGroupSize,
	})
	if err != nil {
		return nil, err
	}

	return &UploadResponse{
		TotalRows:    len(entries) + len(parseErrors),
		ValidEntries: len(entries),
		Errors:       len(parseErrors),
		Results:      results,
		ProcessingMs: time.Since(startTime).Milliseconds(),
	}, nil
}

func (s *Server) presignedURLHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	// For local development, return a mock presigned URL pointing to the
	// upload endpoint.
	key := fmt.Sprintf("spending/%d_%s", time.Now().Unix(), req.Filename)

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"url":     fmt.Sprintf("http://localhost:%s/api/upload?key=%s", getEnvOrDefault("PORT", "8080"), key),
			"key":     key,
			"expires": 3600,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// isEntryError reports whether the error stems from malformed input.
func isEntryError(err error) bool {
	return errors.Is(err, models.ErrInvalidAmount) ||
		errors.Is(err, models.ErrInvalidFrequency) ||
		errors.Is(err, models.ErrInvalidCategory) ||
		errors.Is(err, models.ErrMissingSubcategory)
}
