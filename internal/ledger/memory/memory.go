// Package memory provides an in-process ledger.Store used as the default
// backend and as a test double.
package memory

import (
	"context"
	"sync"

	"findash/internal/core"
	"findash/internal/ledger"
)

// DefaultBudget is used until the caller sets one explicitly.
var DefaultBudget = core.Budget{
	MonthlyLimit:          core.Money{Cents: 200000},
	AlertThresholdPercent: 80,
}

type Store struct {
	mu           sync.Mutex
	transactions []core.Transaction
	budget       core.Budget
	goals        []core.Goal
}

var _ ledger.Store = (*Store)(nil)

func New() *Store {
	return &Store{budget: DefaultBudget}
}

func (s *Store) AppendTransactions(_ context.Context, transactions ...core.Transaction) error {
	for _, tx := range transactions {
		if err := tx.Validate(); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, transactions...)
	return nil
}

// ListTransactions returns a copy so callers get a consistent snapshot.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]core.Transaction, len(s.transactions))
	copy(snapshot, s.transactions)
	return snapshot, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tx := range s.transactions {
		if tx.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return nil
		}
	}
	return ledger.ErrNotFound
}

func (s *Store) ResetTransactions(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = nil
	return nil
}

func (s *Store) Budget(_ context.Context) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budget, nil
}

func (s *Store) SetBudget(_ context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budget = b
	return nil
}

func (s *Store) ListGoals(_ context.Context) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	goals := make([]core.Goal, len(s.goals))
	copy(goals, s.goals)
	return goals, nil
}

func (s *Store) AddGoal(_ context.Context, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append(s.goals, g)
	return nil
}

func (s *Store) DeleteGoal(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			return nil
		}
	}
	return ledger.ErrNotFound
}
