package amqp

import (
	"testing"
	"time"
)

func TestBudgetAlertMessageJSON(t *testing.T) {
	msg := &BudgetAlertMessage{
		Month:            "2025-06",
		PredictedCents:   185000,
		ThresholdCents:   160000,
		LimitCents:       200000,
		ThresholdPercent: 80,
		Timestamp:        time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC),
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := BudgetAlertMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if *got != *msg {
		t.Errorf("round trip mismatch: %+v vs %+v", got, msg)
	}
}

func TestBudgetAlertMessageFromJSONInvalid(t *testing.T) {
	if _, err := BudgetAlertMessageFromJSON([]byte("{not json")); err == nil {
		t.Error("invalid JSON accepted")
	}
}

func TestNewBudgetAlertMessageStampsTime(t *testing.T) {
	before := time.Now()
	msg := NewBudgetAlertMessage("2025-06", 185000, 160000, 200000, 80)
	after := time.Now()

	if msg.Timestamp.Before(before) || msg.Timestamp.After(after) {
		t.Errorf("timestamp %v outside [%v, %v]", msg.Timestamp, before, after)
	}
	if msg.Month != "2025-06" || msg.PredictedCents != 185000 {
		t.Errorf("fields not set: %+v", msg)
	}
}
