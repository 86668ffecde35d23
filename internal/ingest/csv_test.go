package ingest

import (
	"testing"

	"findash/internal/core"
)

func TestParseCSV(t *testing.T) {
	result := ParseCSV("2025-01-05,Coffee shop,-4.50\nbadrow")

	if len(result.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(result.Transactions))
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}

	got := result.Transactions[0]
	if got.Date.MonthKey() != "2025-01" {
		t.Errorf("month key = %q, want 2025-01", got.Date.MonthKey())
	}
	if got.Description != "Coffee shop" {
		t.Errorf("description = %q", got.Description)
	}
	if got.Amount.Cents != -450 {
		t.Errorf("amount = %d, want -450", got.Amount.Cents)
	}
	if got.Category != core.Dining {
		t.Errorf("category = %q, want Dining", got.Category)
	}
	if got.ID == "" {
		t.Error("transaction missing ID")
	}
}

func TestParseCSVSkipsMalformedRows(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantParsed  int
		wantSkipped int
	}{
		{"empty input", "", 0, 0},
		{"blank lines ignored", "\n\n\n", 0, 0},
		{"too few fields", "2025-01-05,only-two", 0, 1},
		{"bad date", "yesterday,Coffee,-4.50", 0, 1},
		{"non-numeric amount", "2025-01-05,Coffee,lots", 0, 1},
		{"mixed", "2025-01-05,Coffee,-4.50\n2025-01-06,Tea,oops\n2025-01-07,Lunch,-12.00", 2, 1},
		{"crlf line endings", "2025-01-05,Coffee,-4.50\r\n2025-01-06,Tea,-2.00\r\n", 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCSV(tt.input)
			if len(got.Transactions) != tt.wantParsed {
				t.Errorf("parsed %d, want %d", len(got.Transactions), tt.wantParsed)
			}
			if got.Skipped != tt.wantSkipped {
				t.Errorf("skipped %d, want %d", got.Skipped, tt.wantSkipped)
			}
		})
	}
}

func TestParseCSVUsesFirstThreeFields(t *testing.T) {
	// Extra comma fields are dropped; the amount comes from the third field.
	result := ParseCSV("2025-02-10,Lunch,-9.99,extra,fields")
	if len(result.Transactions) != 1 || result.Skipped != 0 {
		t.Fatalf("parsed=%d skipped=%d, want 1/0", len(result.Transactions), result.Skipped)
	}
	if result.Transactions[0].Amount.Cents != -999 {
		t.Errorf("amount = %d, want -999", result.Transactions[0].Amount.Cents)
	}
}

func TestParseCSVPositiveAmountIsIncome(t *testing.T) {
	result := ParseCSV("2025-03-01,March invoice,1500.00")
	if len(result.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(result.Transactions))
	}
	if result.Transactions[0].Category != core.Income {
		t.Errorf("category = %q, want Income", result.Transactions[0].Category)
	}
}
