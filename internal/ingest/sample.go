package ingest

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"findash/internal/analytics"
	"findash/internal/core"
)

// sampleDescriptions are category-correlated so generated transactions
// categorize back into the category they were drawn from.
var sampleDescriptions = [][]string{
	{"Supermarket run", "Grocery delivery", "Corner market"},
	{"Cinema tickets", "Netflix subscription", "Concert night"},
	{"Uber ride", "Train ticket", "Fuel stop"},
	{"Restaurant dinner", "Coffee break", "Pizza takeaway"},
	{"Electric bill", "Internet provider", "Phone plan"},
	{"Pharmacy order", "Gym membership", "Dentist visit"},
	{"Amazon order", "Clothing store", "Shoes outlet"},
}

// Generator produces synthetic transactions from an explicit random source
// so callers (and tests) control determinism.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a sample generator seeded with the given value.
// Identical seeds produce identical output for the same reference time.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Transactions returns n random expense transactions with dates within the
// year before now, plus one fixed income transaction. This path exists for
// demo bootstrapping only and is not correctness-critical.
func (g *Generator) Transactions(now time.Time, n int) []core.Transaction {
	transactions := make([]core.Transaction, 0, n+1)
	for i := 0; i < n; i++ {
		pool := sampleDescriptions[g.rng.Intn(len(sampleDescriptions))]
		description := pool[g.rng.Intn(len(pool))]
		amount := core.Money{Cents: -(500 + g.rng.Int63n(15000))}
		date := now.AddDate(0, 0, -g.rng.Intn(365))
		transactions = append(transactions, core.Transaction{
			ID:          uuid.NewString(),
			Date:        core.Date{Time: date},
			Description: description,
			Amount:      amount,
			Category:    analytics.Categorize(description, amount),
		})
	}
	salary := core.Money{Cents: 250000}
	transactions = append(transactions, core.Transaction{
		ID:          uuid.NewString(),
		Date:        core.Date{Time: now},
		Description: "Monthly salary",
		Amount:      salary,
		Category:    analytics.Categorize("Monthly salary", salary),
	})
	return transactions
}
