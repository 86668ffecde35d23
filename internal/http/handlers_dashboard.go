package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"findash/internal/amqp"
	"findash/internal/analytics"
	"findash/internal/core"
)

type monthlyTotalDTO struct {
	Month      string `json:"month"`
	TotalCents int64  `json:"total_cents"`
}

type predictionDTO struct {
	PeriodIndex    int   `json:"period_index"`
	PredictedCents int64 `json:"predicted_cents"`
}

type alertDTO struct {
	Breaches       bool  `json:"breaches"`
	ThresholdCents int64 `json:"threshold_cents"`
	PredictedCents int64 `json:"predicted_cents"`
}

type dashboardResponse struct {
	Monthly     []monthlyTotalDTO `json:"monthly"`
	Spending    []monthlyTotalDTO `json:"spending"`
	Predictions []predictionDTO   `json:"predictions"`
	Budget      budgetDTO         `json:"budget"`
	Alert       alertDTO          `json:"alert"`
	Goals       []goalProgressDTO `json:"goals"`
}

// handleDashboard runs the full pipeline over one ledger snapshot:
// aggregate, forecast the spending series, evaluate the budget, and compute
// goal progress. A breach publishes an alert event; summaries are cached per
// horizon so a breach is announced once per cache window, not per page load.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	horizon := s.horizon
	if v := r.URL.Query().Get("horizon"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil || h < 1 || h > 24 {
			writeError(w, http.StatusUnprocessableEntity, "horizon must be an integer between 1 and 24")
			return
		}
		horizon = h
	}

	cacheKey := "h=" + strconv.Itoa(horizon)
	if cached, found := s.dashCache.Get(cacheKey); found {
		s.metrics.CacheHits.Inc()
		writeJSON(w, http.StatusOK, cached)
		return
	}
	s.metrics.CacheMisses.Inc()

	transactions, err := s.store.ListTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	budget, err := s.store.Budget(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Load budget failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load budget")
		return
	}
	goals, err := s.store.ListGoals(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List goals failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list goals")
		return
	}

	monthly := analytics.AggregateMonthly(transactions)

	// The forecast runs over spending magnitudes, not net totals. Expense
	// amounts are negative in the ledger, so the series is flipped positive
	// before fitting; the budget compares against positive spend.
	spending := analytics.AggregateMonthly(expensesFlipped(transactions))
	predictions := analytics.Forecast(spending, horizon)

	resp := dashboardResponse{
		Monthly:     make([]monthlyTotalDTO, 0, len(monthly)),
		Spending:    make([]monthlyTotalDTO, 0, len(spending)),
		Predictions: make([]predictionDTO, 0, len(predictions)),
		Budget: budgetDTO{
			MonthlyLimitCents:     budget.MonthlyLimit.Cents,
			AlertThresholdPercent: budget.AlertThresholdPercent,
		},
		Goals: make([]goalProgressDTO, 0, len(goals)),
	}
	for _, m := range monthly {
		resp.Monthly = append(resp.Monthly, monthlyTotalDTO{Month: m.Month, TotalCents: m.Total.Cents})
	}
	for _, m := range spending {
		resp.Spending = append(resp.Spending, monthlyTotalDTO{Month: m.Month, TotalCents: m.Total.Cents})
	}
	for _, p := range predictions {
		resp.Predictions = append(resp.Predictions, predictionDTO{PeriodIndex: p.PeriodIndex, PredictedCents: p.Predicted.Cents})
	}
	for _, g := range goals {
		progress, err := analytics.ProgressTowards(transactions, g)
		if err != nil {
			slog.ErrorContext(r.Context(), "Goal progress failed", "error", err, "goal_id", g.ID)
			continue
		}
		resp.Goals = append(resp.Goals, goalProgressDTO{
			goalDTO:    goalToDTO(g),
			SavedCents: progress.Saved.Cents,
			Percent:    progress.Percent,
		})
	}

	if len(predictions) > 0 {
		predicted := predictions[0].Predicted
		alert := analytics.EvaluateBudget(predicted, budget)
		resp.Alert = alertDTO{
			Breaches:       alert.Breaches,
			ThresholdCents: alert.Threshold.Cents,
			PredictedCents: predicted.Cents,
		}
		if alert.Breaches && len(spending) > 0 {
			s.publishAlert(r, spending[len(spending)-1].Month, predicted, alert.Threshold, budget)
		}
	}

	s.dashCache.Set(cacheKey, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) publishAlert(r *http.Request, month string, predicted, threshold core.Money, budget core.Budget) {
	msg := amqp.NewBudgetAlertMessage(month, predicted.Cents, threshold.Cents,
		budget.MonthlyLimit.Cents, budget.AlertThresholdPercent)

	if s.publisher == nil {
		slog.WarnContext(r.Context(), "Budget breach predicted, no publisher configured",
			"month", month,
			"predicted_cents", predicted.Cents,
			"threshold_cents", threshold.Cents)
		return
	}

	if err := s.publisher.PublishBudgetAlert(r.Context(), msg); err != nil {
		// The dashboard response still succeeds; the breach is visible in it.
		slog.ErrorContext(r.Context(), "Alert publish failed", "error", err, "month", month)
		return
	}
	s.metrics.AlertsPublished.Inc()
}

// expensesFlipped returns the expense transactions with their sign flipped
// positive, for fitting the spending trend.
func expensesFlipped(transactions []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Amount.Cents < 0 {
			t.Amount.Cents = -t.Amount.Cents
			out = append(out, t)
		}
	}
	return out
}
