package analytics

import (
	"testing"

	"findash/internal/core"
)

func TestCategorizePositiveAmountsAreIncome(t *testing.T) {
	descriptions := []string{"grocery run", "cinema tickets", "uber ride", "random text"}
	for _, desc := range descriptions {
		if got := Categorize(desc, core.Money{Cents: 1}); got != core.Income {
			t.Errorf("Categorize(%q, +0.01) = %q, want Income", desc, got)
		}
	}
}

func TestCategorizeKeywordMatching(t *testing.T) {
	tests := []struct {
		name        string
		description string
		cents       int64
		want        core.Category
	}{
		{"groceries", "Weekly grocery haul", -4500, core.Groceries},
		{"case insensitive upper", "GROCERY run", -2000, core.Groceries},
		{"case insensitive lower", "grocery run", -2000, core.Groceries},
		{"entertainment", "Netflix subscription", -1299, core.Entertainment},
		{"transport", "Uber to airport", -3200, core.Transport},
		{"dining", "Pizza night", -2400, core.Dining},
		{"utilities", "Internet provider", -5500, core.Utilities},
		{"health", "Pharmacy refill", -899, core.Health},
		{"shopping", "Amazon order", -7500, core.Shopping},
		{"income keyword on expense", "Salary adjustment", -100, core.Income},
		{"substring match", "corner supermarket downtown", -1500, core.Groceries},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(tt.description, core.Money{Cents: tt.cents})
			if got != tt.want {
				t.Errorf("Categorize(%q, %d) = %q, want %q", tt.description, tt.cents, got, tt.want)
			}
		})
	}
}

func TestCategorizeDeclarationOrderTieBreak(t *testing.T) {
	// "cafe" is a Dining keyword and "mall" a Shopping keyword; Dining is
	// declared earlier so it wins.
	got := Categorize("cafe at the mall", core.Money{Cents: -1200})
	if got != core.Dining {
		t.Errorf("Categorize tie-break = %q, want Dining", got)
	}
}

func TestCategorizeEmptyDescription(t *testing.T) {
	if got := Categorize("", core.Money{Cents: -5000}); got != core.Other {
		t.Errorf("Categorize(\"\") = %q, want Other", got)
	}
	if got := Categorize("   ", core.Money{Cents: -5000}); got != core.Other {
		t.Errorf("Categorize(whitespace) = %q, want Other", got)
	}
}

func TestCategorizeFallback(t *testing.T) {
	// Unmatched over 200 in absolute value goes to Shopping, below to Other.
	if got := Categorize("zzzzz", core.Money{Cents: -20001}); got != core.Shopping {
		t.Errorf("large unmatched expense = %q, want Shopping", got)
	}
	if got := Categorize("zzzzz", core.Money{Cents: -20000}); got != core.Other {
		t.Errorf("borderline unmatched expense = %q, want Other", got)
	}
	if got := Categorize("zzzzz", core.Money{Cents: -150}); got != core.Other {
		t.Errorf("small unmatched expense = %q, want Other", got)
	}
}

func TestCategorizeIdempotent(t *testing.T) {
	first := Categorize("coffee and cake", core.Money{Cents: -750})
	for i := 0; i < 5; i++ {
		if got := Categorize("coffee and cake", core.Money{Cents: -750}); got != first {
			t.Fatalf("Categorize not stable: %q then %q", first, got)
		}
	}
}
