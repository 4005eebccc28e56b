// Package utils provides utility functions for the card advisor engine.
package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"card-advisor-engine/internal/models"
)

// CSVParser errors
var (
	ErrEmptyCSV       = errors.New("CSV content is empty")
	ErrMissingColumns = errors.New("missing required columns")
	ErrNoDataRows     = errors.New("CSV file contains no data rows")
)

// RequiredColumns defines the columns that must be present in the CSV.
var RequiredColumns = []string{
	"amount",
	"frequency",
	"category",
	"subcategory",
}

// ColumnAliases maps alternative column names to standard names.
var ColumnAliases = map[string]string{
	// amount aliases
	"spend":         "amount",
	"spend_amount":  "amount",
	"spendamount":   "amount",
	"monthly_spend": "amount",
	"value":         "amount",

	// frequency aliases
	"freq":       "frequency",
	"recurrence": "frequency",
	"period":     "frequency",

	// category aliases
	"type":       "category",
	"spend_type": "category",
	"channel":    "category",

	// subcategory aliases
	"sub_category":   "subcategory",
	"sub category":   "subcategory",
	"spend_category": "subcategory",

	// optional column aliases
	"merchant":       "brand",
	"brand_name":     "brand",
	"platformname":   "platform_name",
	"platform name":  "platform_name",
	"paymentapp":     "payment_app",
	"payment app":    "payment_app",
	"upi_app":        "payment_app",
}

// CSVParser handles parsing of spending entry CSV files.
type CSVParser struct {
	columnMapping map[string]int
}

// NewCSVParser creates a new CSV parser instance.
func NewCSVParser() *CSVParser {
	return &CSVParser{
		columnMapping: make(map[string]int),
	}
}

// ParseSpendingEntries parses CSV content into spending entries. Rows
// that fail validation are skipped and reported as errors alongside the
// valid entries.
func (p *CSVParser) ParseSpendingEntries(content string) ([]models.SpendingEntry, []error) {
	if strings.TrimSpace(content) == "" {
		return nil, []error{ErrEmptyCSV}
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read header: %w", err)}
	}

	if err := p.buildColumnMapping(header); err != nil {
		return nil, []error{err}
	}

	var entries []models.SpendingEntry
	var parseErrors []error
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		entry, err := p.parseRow(record)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		if err := models.ValidateSpendingEntry(entry); err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		entries = append(entries, *entry)
	}

	if len(entries) == 0 && len(parseErrors) > 0 {
		return nil, append([]error{ErrNoDataRows}, parseErrors...)
	}

	return entries, parseErrors
}

// buildColumnMapping creates a mapping of standard column names to their indices.
func (p *CSVParser) buildColumnMapping(header []string) error {
	p.columnMapping = make(map[string]int)

	for i, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		if alias, ok := ColumnAliases[normalized]; ok {
			normalized = alias
		}
		p.columnMapping[normalized] = i
	}

	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := p.columnMapping[required]; !ok {
			missing = append(missing, required)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	return nil
}

// parseRow parses a single CSV row into a SpendingEntry.
func (p *CSVParser) parseRow(record []string) (*models.SpendingEntry, error) {
	getValue := func(column string) string {
		idx, ok := p.columnMapping[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	amountStr := getValue("amount")
	if amountStr == "" {
		return nil, fmt.Errorf("missing amount")
	}
	amount, err := parseFloat(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	entry := &models.SpendingEntry{
		ID:               getValue("id"),
		Amount:           amount,
		Frequency:        models.Frequency(strings.ToLower(getValue("frequency"))),
		Category:         models.SpendCategory(strings.ToLower(getValue("category"))),
		Subcategory:      getValue("subcategory"),
		SpecificCategory: getValue("specific_category"),
		Brand:            getValue("brand"),
		Platform:         models.Platform(strings.ToLower(getValue("platform"))),
		PlatformName:     getValue("platform_name"),
		PaymentApp:       getValue("payment_app"),
		Purpose:          getValue("purpose"),
	}

	return entry, nil
}

// parseFloat parses a float from a string, tolerating currency symbols
// and thousands separators.
func parseFloat(s string) (float64, error) {
	cleaned := strings.NewReplacer(",", "", "₹", "", "$", "", " ", "").Replace(s)
	return strconv.ParseFloat(cleaned, 64)
}
