package amqp

import (
	"encoding/json"
	"time"
)

// BudgetAlertMessage is published when a dashboard evaluation predicts
// next-period spending above the alert threshold. It carries everything a
// consumer needs to record or notify without reading the ledger.
type BudgetAlertMessage struct {
	Month            string    `json:"month"` // YYYY-MM the prediction extends from
	PredictedCents   int64     `json:"predicted_cents"`
	ThresholdCents   int64     `json:"threshold_cents"`
	LimitCents       int64     `json:"limit_cents"`
	ThresholdPercent float64   `json:"threshold_percent"`
	Timestamp        time.Time `json:"timestamp"`
}

// NewBudgetAlertMessage creates an alert message stamped with the current time.
func NewBudgetAlertMessage(month string, predicted, threshold, limit int64, thresholdPercent float64) *BudgetAlertMessage {
	return &BudgetAlertMessage{
		Month:            month,
		PredictedCents:   predicted,
		ThresholdCents:   threshold,
		LimitCents:       limit,
		ThresholdPercent: thresholdPercent,
		Timestamp:        time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BudgetAlertMessageFromJSON creates a message from JSON bytes.
func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
