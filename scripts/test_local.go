//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"card-advisor-engine/internal/engine"
	"card-advisor-engine/internal/models"
	"card-advisor-engine/internal/services/catalog"
	"card-advisor-engine/internal/utils"
)

func main() {
	fmt.Println("=== Card Advisor Engine - Local Test ===")
	fmt.Println()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  Warning: Could not load .env file: %v\n", err)
	}

	// Load the built-in catalogue
	cards := catalog.Default()
	fmt.Printf("✅ Loaded %d cards from the built-in catalogue\n", len(cards))

	// Parse sample CSV if present, otherwise use inline entries
	var entries []models.SpendingEntry

	if csvContent, err := os.ReadFile("data/sample_spending.csv"); err == nil {
		fmt.Println()
		fmt.Println("📖 Parsing sample CSV...")
		parser := utils.NewCSVParser()
		parsed, parseErrors := parser.ParseSpendingEntries(string(csvContent))
		if len(parseErrors) > 0 {
			fmt.Printf("⚠️  CSV parsing errors: %v\n", parseErrors)
		}
		fmt.Printf("✅ Parsed %d spending entries from CSV\n", len(parsed))
		entries = parsed
	} else {
		fmt.Println()
		fmt.Println("📖 No sample CSV found, using inline spending entries")
		entries = []models.SpendingEntry{
			{Amount: 5000, Frequency: models.FrequencyMonthly, Category: models.SpendCategoryOnline, Subcategory: "electronics"},
			{Amount: 200, Frequency: models.FrequencyDaily, Category: models.SpendCategoryOffline, Subcategory: "groceries"},
			{Amount: 1500, Frequency: models.FrequencyMonthly, Category: models.SpendCategoryOnline, Subcategory: "food delivery", Platform: models.PlatformApp},
			{Amount: 30000, Frequency: models.FrequencyYearly, Category: models.SpendCategoryOnline, Subcategory: "travel"},
		}
	}

	if len(entries) == 0 {
		fmt.Println("❌ No spending entries to score")
		os.Exit(1)
	}

	// Score card combinations
	fmt.Println()
	fmt.Println("🎯 Scoring card combinations...")

	eng := engine.New(cards)
	results, err := eng.Recommend(entries, models.CardPreferences{DesiredCardCount: 2})
	if err != nil {
		fmt.Printf("❌ Scoring failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("🎉 Scored %d card groups!\n", len(results))
	fmt.Println()

	for i := range results {
		fmt.Printf("#%d\n%s\n\n", i+1, engine.FormatSummary(&results[i]))
	}

	// Spending profile
	fmt.Println("📊 Spending profile:")
	profile, err := engine.BuildSpendingProfile(entries)
	if err != nil {
		fmt.Printf("❌ Profile aggregation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("   Total monthly spending: %.2f\n", profile.TotalMonthlySpending)
	fmt.Printf("   Online: %.1f%%  Offline: %.1f%%\n", profile.OnlinePercentage, profile.OfflinePercentage)
	for category, share := range profile.Categories {
		fmt.Printf("   %s: %.1f%%\n", category, share)
	}

	fmt.Println()
	fmt.Println("✅ Local test complete!")
}
