// Package ledger declares the persistence ports the analytics pipeline's
// callers depend on. The pipeline itself never touches storage: handlers
// load a snapshot through these interfaces and pass it in.
package ledger

import (
	"context"
	"errors"

	"findash/internal/core"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

type (
	TransactionStore interface {
		// AppendTransactions stores the given transactions.
		AppendTransactions(ctx context.Context, transactions ...core.Transaction) error
		// ListTransactions returns a snapshot of every stored transaction.
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		// DeleteTransaction removes one transaction by ID.
		DeleteTransaction(ctx context.Context, id string) error
		// ResetTransactions removes all transactions.
		ResetTransactions(ctx context.Context) error
	}

	BudgetStore interface {
		Budget(ctx context.Context) (core.Budget, error)
		SetBudget(ctx context.Context, b core.Budget) error
	}

	GoalStore interface {
		ListGoals(ctx context.Context) ([]core.Goal, error)
		AddGoal(ctx context.Context, g core.Goal) error
		DeleteGoal(ctx context.Context, id string) error
	}

	// Store is the unified backend surface the HTTP layer is wired with.
	Store interface {
		TransactionStore
		BudgetStore
		GoalStore
	}
)
