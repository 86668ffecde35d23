package analytics

import (
	"math"

	"findash/internal/core"
)

// Forecast fits an ordinary least-squares line over the monthly series
// (x = 0..n-1) and projects `horizon` future periods.
//
// Degenerate inputs are handled explicitly rather than as errors: an empty
// series yields all-zero predictions, a single point yields a flat
// projection at that value. Predictions are clamped to non-negative and
// rounded to whole cents. Prediction i corresponds to x = n + i.
//
// This is knowingly a coarse model; the contract is the formula, not
// forecast accuracy.
func Forecast(series []core.MonthlyTotal, horizon int) []core.Prediction {
	if horizon <= 0 {
		return nil
	}
	predictions := make([]core.Prediction, horizon)
	n := len(series)
	if n == 0 {
		for i := range predictions {
			predictions[i] = core.Prediction{PeriodIndex: i}
		}
		return predictions
	}

	var sumX, sumY float64
	for i, mt := range series {
		sumX += float64(i)
		sumY += float64(mt.Total.Cents)
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var num, den float64
	for i, mt := range series {
		dx := float64(i) - meanX
		num += dx * (float64(mt.Total.Cents) - meanY)
		den += dx * dx
	}
	// den == 0 means a single point: no variance in x, project flat.
	slope := 0.0
	if den != 0 {
		slope = num / den
	}
	intercept := meanY - slope*meanX

	for i := 0; i < horizon; i++ {
		x := float64(n + i)
		predicted := slope*x + intercept
		if predicted < 0 {
			predicted = 0
		}
		predictions[i] = core.Prediction{
			PeriodIndex: i,
			Predicted:   core.Money{Cents: int64(math.Round(predicted))},
		}
	}
	return predictions
}
