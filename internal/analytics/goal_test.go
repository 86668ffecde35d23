package analytics

import (
	"errors"
	"testing"
	"time"

	"findash/internal/core"
)

func TestProgressTowards(t *testing.T) {
	transactions := []core.Transaction{
		tx("a", core.NewDate(2025, 1, 1), 15000),
		tx("b", core.NewDate(2025, 2, 1), -4000), // expenses don't count
		tx("c", core.NewDate(2025, 3, 1), 10000),
	}
	goal := core.Goal{ID: "g", Name: "Emergency fund", Target: core.Money{Cents: 50000}, CreatedAt: time.Now()}

	got, err := ProgressTowards(transactions, goal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Saved.Cents != 25000 {
		t.Errorf("Saved = %d, want 25000", got.Saved.Cents)
	}
	if got.Percent != 50 {
		t.Errorf("Percent = %d, want 50", got.Percent)
	}
}

func TestProgressTowardsCapsAtHundred(t *testing.T) {
	transactions := []core.Transaction{tx("a", core.NewDate(2025, 1, 1), 200000)}
	goal := core.Goal{ID: "g", Name: "Small goal", Target: core.Money{Cents: 50000}}

	got, err := ProgressTowards(transactions, goal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Percent != 100 {
		t.Errorf("Percent = %d, want 100 (capped)", got.Percent)
	}
	if got.Saved.Cents != 200000 {
		t.Errorf("Saved = %d, want raw 200000", got.Saved.Cents)
	}
}

func TestProgressTowardsEmptyHistory(t *testing.T) {
	goal := core.Goal{ID: "g", Name: "Anything", Target: core.Money{Cents: 1000}}
	got, err := ProgressTowards(nil, goal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Saved.Cents != 0 || got.Percent != 0 {
		t.Errorf("empty history = %+v, want zero progress", got)
	}
}

func TestProgressTowardsInvalidTarget(t *testing.T) {
	goal := core.Goal{ID: "g", Name: "Broken", Target: core.Money{Cents: 0}}
	_, err := ProgressTowards(nil, goal)
	if !errors.Is(err, core.ErrInvalidGoalTarget) {
		t.Errorf("error = %v, want ErrInvalidGoalTarget", err)
	}
}
