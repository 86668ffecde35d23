// Package worker consumes budget alert events and fans them out to the
// configured sinks.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"findash/internal/amqp"
	"findash/internal/core"
)

// AlertSink is anything that can record an alert row externally.
type AlertSink interface {
	AppendAlertRow(ctx context.Context, when time.Time, month string, predicted, threshold core.Money) (string, error)
}

// AlertWorker records consumed alerts and exports them through an optional
// sink. Export failures trip a circuit breaker so a dead spreadsheet
// backend doesn't stall the queue with endless retries.
type AlertWorker struct {
	sink    AlertSink
	breaker *gobreaker.CircuitBreaker

	mu     sync.Mutex
	recent []amqp.BudgetAlertMessage
}

const recentAlertLimit = 100

func NewAlertWorker(sink AlertSink) *AlertWorker {
	return &AlertWorker{
		sink:    sink,
		breaker: newExportBreaker(),
	}
}

func newExportBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "alert-export",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
	})
}

// HandleAlert processes one budget alert message. The alert is always
// recorded locally; export errors are returned so the delivery is requeued,
// unless the breaker is open, in which case the alert is dropped from the
// export path after being recorded.
func (w *AlertWorker) HandleAlert(ctx context.Context, msg *amqp.BudgetAlertMessage) error {
	slog.InfoContext(ctx, "Processing budget alert",
		"month", msg.Month,
		"predicted_cents", msg.PredictedCents,
		"threshold_cents", msg.ThresholdCents)

	w.record(msg)

	if w.sink == nil {
		slog.WarnContext(ctx, "No alert sink configured, skipping export", "month", msg.Month)
		return nil
	}

	_, err := w.breaker.Execute(func() (any, error) {
		ref, err := w.sink.AppendAlertRow(ctx, msg.Timestamp, msg.Month,
			core.Money{Cents: msg.PredictedCents}, core.Money{Cents: msg.ThresholdCents})
		return ref, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		slog.WarnContext(ctx, "Alert export breaker open, alert recorded locally only",
			"month", msg.Month, "error", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("export alert: %w", err)
	}
	return nil
}

func (w *AlertWorker) record(msg *amqp.BudgetAlertMessage) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.recent = append(w.recent, *msg)
	if len(w.recent) > recentAlertLimit {
		w.recent = w.recent[len(w.recent)-recentAlertLimit:]
	}
}

// RecentAlerts returns a copy of the most recently consumed alerts.
func (w *AlertWorker) RecentAlerts() []amqp.BudgetAlertMessage {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]amqp.BudgetAlertMessage, len(w.recent))
	copy(out, w.recent)
	return out
}
