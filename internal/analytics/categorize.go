// Package analytics implements the dashboard computation pipeline:
// categorization, monthly aggregation, linear forecasting, budget alert
// evaluation, and savings-goal progress. Every function is pure and total
// over its documented input domain; callers own the transaction snapshot.
package analytics

import (
	"strings"

	"findash/internal/core"
)

// fallbackShoppingCents is the absolute amount above which an unmatched
// expense is filed under Shopping instead of Other.
const fallbackShoppingCents = 200 * 100

// categoryKeywords pairs each category with its keyword list, in the fixed
// declaration order of core.Categories. The order resolves ties: a
// description matching two lists gets the category checked first.
var categoryKeywords = []struct {
	category core.Category
	keywords []string
}{
	{core.Groceries, []string{"grocery", "supermarket", "market", "aldi", "lidl", "costco"}},
	{core.Entertainment, []string{"cinema", "movie", "netflix", "spotify", "concert", "theater", "game"}},
	{core.Transport, []string{"uber", "taxi", "bus", "train", "metro", "fuel", "gas station", "parking"}},
	{core.Dining, []string{"restaurant", "cafe", "coffee", "pizza", "burger", "takeaway", "bar"}},
	{core.Utilities, []string{"electric", "water bill", "internet", "phone", "utility", "rent"}},
	{core.Health, []string{"pharmacy", "doctor", "dentist", "gym", "hospital", "clinic"}},
	{core.Shopping, []string{"amazon", "mall", "store", "clothing", "shoes", "electronics"}},
	{core.Income, []string{"salary", "paycheck", "refund", "interest", "dividend"}},
}

// Categorize maps a free-text description and signed amount to a category.
//
// The steps are order-sensitive: an empty description always yields Other,
// a positive amount always yields Income, then keyword lists are checked in
// declaration order with case-insensitive substring matching. Unmatched
// expenses over 200 in absolute value fall back to Shopping, the rest to
// Other. Pure function: same inputs always give the same category.
func Categorize(description string, amount core.Money) core.Category {
	if strings.TrimSpace(description) == "" {
		return core.Other
	}
	if amount.Cents > 0 {
		return core.Income
	}
	desc := strings.ToLower(description)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(desc, kw) {
				return entry.category
			}
		}
	}
	if amount.Abs() > fallbackShoppingCents {
		return core.Shopping
	}
	return core.Other
}
