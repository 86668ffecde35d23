package core

import (
	"errors"
	"strings"
	"time"
)

// Categories form a closed set defined at process start. Their declaration
// order is load-bearing: the categorizer checks keyword lists in this order
// and the first match wins.
const (
	Groceries     Category = "Groceries"
	Entertainment Category = "Entertainment"
	Transport     Category = "Transport"
	Dining        Category = "Dining"
	Utilities     Category = "Utilities"
	Health        Category = "Health"
	Shopping      Category = "Shopping"
	Income        Category = "Income"
	Other         Category = "Other"
)

// Categories lists every valid category in declaration order.
var Categories = []Category{
	Groceries, Entertainment, Transport, Dining,
	Utilities, Health, Shopping, Income, Other,
}

type (
	Category string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64 // signed; negative = expense, positive = income
	}

	// Transaction is an immutable ledger record. The category is assigned
	// at creation (or backfilled once) and never changes afterwards.
	Transaction struct {
		ID          string
		Date        Date
		Description string
		Amount      Money
		Category    Category
	}

	// MonthlyTotal is the signed sum of transaction amounts within one
	// calendar month, keyed by "YYYY-MM".
	MonthlyTotal struct {
		Month string
		Total Money
	}

	// Prediction is a forecast value for a period offset past the last
	// known month. Derived, never persisted.
	Prediction struct {
		PeriodIndex int
		Predicted   Money
	}

	Budget struct {
		MonthlyLimit          Money
		AlertThresholdPercent float64 // in (0, 100]
	}

	Goal struct {
		ID        string
		Name      string
		Target    Money
		CreatedAt time.Time
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrEmptyID           = errors.New("empty id")
	ErrEmptyCategory     = errors.New("empty category")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrInvalidLimit      = errors.New("monthly limit must be positive")
	ErrInvalidThreshold  = errors.New("alert threshold must be in (0, 100]")
	ErrInvalidGoalTarget = errors.New("goal target must be positive")
	ErrEmptyGoalName     = errors.New("empty goal name")
)

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// MonthKey returns the "YYYY-MM" key for the date. Lexical order on these
// keys is chronological order.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// ValidCategory reports whether c is one of the declared categories.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if t.Category == "" {
		return ErrEmptyCategory
	}
	if !ValidCategory(t.Category) {
		return ErrUnknownCategory
	}
	return nil
}

func (b Budget) Validate() error {
	if b.MonthlyLimit.Cents <= 0 {
		return ErrInvalidLimit
	}
	if b.AlertThresholdPercent <= 0 || b.AlertThresholdPercent > 100 {
		return ErrInvalidThreshold
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyGoalName
	}
	if g.Target.Cents <= 0 {
		return ErrInvalidGoalTarget
	}
	return nil
}
