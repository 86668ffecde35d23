// Package ingest turns raw transaction records into categorized
// core.Transaction values: a lenient CSV line parser for imports and a
// seedable sample generator for empty-state bootstrapping.
package ingest

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"findash/internal/analytics"
	"findash/internal/core"
)

const csvDateLayout = "2006-01-02"

// ParseResult holds the parsed transactions and the number of lines that
// were skipped as malformed.
type ParseResult struct {
	Transactions []core.Transaction
	Skipped      int
}

// ParseCSV parses transaction lines of the form "date,description,amount".
//
// Only the first three comma-delimited fields are used; a description
// containing commas is truncated at the first one. Malformed lines (fewer
// than three fields, unparseable date, or non-numeric amount) are skipped
// and counted, never fatal. Each parsed transaction gets a fresh UUID and
// its category from the categorizer.
func ParseCSV(text string) ParseResult {
	var result ParseResult
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 3 {
			result.Skipped++
			continue
		}
		date, err := time.Parse(csvDateLayout, strings.TrimSpace(fields[0]))
		if err != nil {
			result.Skipped++
			continue
		}
		cents, err := core.ParseSignedCents(fields[2])
		if err != nil {
			// Reject rows with non-numeric amounts instead of letting a
			// sentinel value poison downstream sums.
			result.Skipped++
			continue
		}
		description := strings.TrimSpace(fields[1])
		amount := core.Money{Cents: cents}
		result.Transactions = append(result.Transactions, core.Transaction{
			ID:          uuid.NewString(),
			Date:        core.Date{Time: date},
			Description: description,
			Amount:      amount,
			Category:    analytics.Categorize(description, amount),
		})
	}
	return result
}
