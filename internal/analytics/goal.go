package analytics

import (
	"math"

	"findash/internal/core"
)

// GoalProgress reports cumulative savings against a goal target.
type GoalProgress struct {
	Saved   core.Money
	Percent int // 0..100
}

// ProgressTowards sums every positive transaction in the visible history
// and reports it as a percentage of the goal target, capped at 100.
//
// The sum is not scoped per goal or date range: multiple goals count the
// same savings. A non-positive target is a caller precondition violation
// and returns core.ErrInvalidGoalTarget.
func ProgressTowards(transactions []core.Transaction, goal core.Goal) (GoalProgress, error) {
	if goal.Target.Cents <= 0 {
		return GoalProgress{}, core.ErrInvalidGoalTarget
	}
	var saved int64
	for _, tx := range transactions {
		if tx.Amount.Cents > 0 {
			saved += tx.Amount.Cents
		}
	}
	percent := math.Round(math.Min(100, float64(saved)/float64(goal.Target.Cents)*100))
	return GoalProgress{
		Saved:   core.Money{Cents: saved},
		Percent: int(percent),
	}, nil
}
