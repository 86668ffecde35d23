package analytics

import (
	"testing"

	"findash/internal/core"
)

func TestEvaluateBudget(t *testing.T) {
	budget := core.Budget{
		MonthlyLimit:          core.Money{Cents: 100000}, // 1000.00
		AlertThresholdPercent: 100,
	}

	tests := []struct {
		name          string
		predicted     int64
		wantBreach    bool
		wantThreshold int64
	}{
		{"equality does not breach", 100000, false, 100000},
		{"one cent over breaches", 100001, true, 100000},
		{"well under", 50000, false, 100000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateBudget(core.Money{Cents: tt.predicted}, budget)
			if got.Breaches != tt.wantBreach {
				t.Errorf("Breaches = %v, want %v", got.Breaches, tt.wantBreach)
			}
			if got.Threshold.Cents != tt.wantThreshold {
				t.Errorf("Threshold = %d, want %d", got.Threshold.Cents, tt.wantThreshold)
			}
		})
	}
}

func TestEvaluateBudgetPartialThreshold(t *testing.T) {
	budget := core.Budget{
		MonthlyLimit:          core.Money{Cents: 100000},
		AlertThresholdPercent: 80,
	}
	got := EvaluateBudget(core.Money{Cents: 80001}, budget)
	if got.Threshold.Cents != 80000 {
		t.Errorf("Threshold = %d, want 80000", got.Threshold.Cents)
	}
	if !got.Breaches {
		t.Error("800.01 predicted against 800.00 threshold should breach")
	}
}
