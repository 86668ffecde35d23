package analytics

import (
	"sort"

	"findash/internal/core"
)

// AggregateMonthly groups transactions by calendar month and sums their
// signed amounts. The result is sorted ascending by "YYYY-MM" key, which is
// chronological order. Empty input yields empty output. Accumulation is in
// int64 cents, so no rounding error compounds across transactions and the
// sum of all totals equals the sum of all input amounts.
func AggregateMonthly(transactions []core.Transaction) []core.MonthlyTotal {
	if len(transactions) == 0 {
		return nil
	}
	sums := make(map[string]int64)
	for _, tx := range transactions {
		sums[tx.Date.MonthKey()] += tx.Amount.Cents
	}
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	totals := make([]core.MonthlyTotal, len(keys))
	for i, k := range keys {
		totals[i] = core.MonthlyTotal{Month: k, Total: core.Money{Cents: sums[k]}}
	}
	return totals
}
