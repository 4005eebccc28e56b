//go:build ignore
// +build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	appConfig "card-advisor-engine/internal/config"
	"card-advisor-engine/internal/services/catalog"
	"card-advisor-engine/internal/services/database"
)

func main() {
	fmt.Println("=== Database Initialization Script ===")
	fmt.Println()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  Warning: Could not load .env file: %v\n", err)
	}

	// Get database URL
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Println("❌ DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// First connect to default 'postgres' database to create our database
	postgresURL := strings.Replace(databaseURL, "/card_advisor", "/postgres", 1)
	fmt.Println("📡 Connecting to PostgreSQL server...")

	adminConn, err := pgx.Connect(ctx, postgresURL)
	if err != nil {
		fmt.Printf("❌ Failed to connect to PostgreSQL: %v\n", err)
		os.Exit(1)
	}

	// Check if database exists
	var exists bool
	err = adminConn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = 'card_advisor')").Scan(&exists)
	if err != nil {
		fmt.Printf("❌ Failed to check database existence: %v\n", err)
		adminConn.Close(ctx)
		os.Exit(1)
	}

	if !exists {
		fmt.Println("📦 Creating 'card_advisor' database...")
		_, err = adminConn.Exec(ctx, "CREATE DATABASE card_advisor")
		if err != nil {
			fmt.Printf("❌ Failed to create database: %v\n", err)
			adminConn.Close(ctx)
			os.Exit(1)
		}
		fmt.Println("✅ Database 'card_advisor' created!")
	} else {
		fmt.Println("✅ Database 'card_advisor' already exists")
	}
	adminConn.Close(ctx)

	// Connect to the application database
	fmt.Println("📡 Connecting to 'card_advisor' database...")
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		fmt.Printf("❌ Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	// Create cards table
	fmt.Println("📋 Creating 'cards' table...")
	schema := `
		CREATE TABLE IF NOT EXISTS cards (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			issuer TEXT NOT NULL,
			annual_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
			join_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
			interest_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			min_income DOUBLE PRECISION NOT NULL DEFAULT 0,
			credit_score INTEGER NOT NULL DEFAULT 0,
			status TEXT,
			categories JSONB NOT NULL DEFAULT '[]',
			rules JSONB NOT NULL DEFAULT '[]',
			milestone JSONB,
			default_rate DOUBLE PRECISION,
			default_reward_type TEXT,
			point_value DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_cards_status ON cards(status);
	`
	if _, err := conn.Exec(ctx, schema); err != nil {
		fmt.Printf("❌ Failed to create schema: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ Schema ready")

	// Seed the built-in catalogue through the repository
	fmt.Println("🌱 Seeding built-in card catalogue...")
	cfg, err := appConfig.Load()
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		fmt.Printf("❌ Failed to open connection pool: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := database.NewCardRepository(db)
	seeded := 0
	for _, card := range catalog.Default() {
		if err := repo.Upsert(ctx, &card); err != nil {
			fmt.Printf("⚠️  Error seeding card %s: %v\n", card.ID, err)
			continue
		}
		seeded++
	}
	fmt.Printf("✅ Seeded %d cards\n", seeded)

	fmt.Println()
	fmt.Println("✅ Database initialization complete!")
}
