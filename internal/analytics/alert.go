package analytics

import (
	"math"

	"findash/internal/core"
)

// AlertResult carries a breach decision plus the threshold it was compared
// against. The caller is responsible for surfacing it.
type AlertResult struct {
	Breaches  bool
	Threshold core.Money
}

// EvaluateBudget compares a predicted next-period spend against the budget's
// alert threshold. The threshold is monthlyLimit x thresholdPercent/100;
// a breach requires a strictly greater prediction, so equality does not
// breach. Pure, no side effects.
func EvaluateBudget(predictedNext core.Money, budget core.Budget) AlertResult {
	threshold := int64(math.Round(float64(budget.MonthlyLimit.Cents) * budget.AlertThresholdPercent / 100))
	return AlertResult{
		Breaches:  predictedNext.Cents > threshold,
		Threshold: core.Money{Cents: threshold},
	}
}
