package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"findash/internal/analytics"
	"findash/internal/core"
	"findash/internal/ingest"
	"findash/internal/ledger"
)

const maxBodyBytes = 1 << 20 // 1 MiB

type transactionDTO struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
}

type budgetDTO struct {
	MonthlyLimitCents     int64   `json:"monthly_limit_cents"`
	AlertThresholdPercent float64 `json:"alert_threshold_percent"`
}

type goalDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TargetCents int64  `json:"target_cents"`
	CreatedAt   string `json:"created_at"`
}

type goalProgressDTO struct {
	goalDTO
	SavedCents int64 `json:"saved_cents"`
	Percent    int   `json:"percent"`
}

func transactionToDTO(t core.Transaction) transactionDTO {
	return transactionDTO{
		ID:          t.ID,
		Date:        t.Date.Format("2006-01-02"),
		Description: t.Description,
		AmountCents: t.Amount.Cents,
		Amount:      t.Amount.String(),
		Category:    string(t.Category),
	}
}

func goalToDTO(g core.Goal) goalDTO {
	return goalDTO{
		ID:          g.ID,
		Name:        g.Name,
		TargetCents: g.Target.Cents,
		CreatedAt:   g.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encoding failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.store.ListTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	dtos := make([]transactionDTO, 0, len(transactions))
	for _, t := range transactions {
		dtos = append(dtos, transactionToDTO(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": dtos})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date        string `json:"date"`
		Description string `json:"description"`
		Amount      string `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}
	cents, err := core.ParseSignedCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	amount := core.Money{Cents: cents}
	description := strings.TrimSpace(req.Description)
	tx := core.Transaction{
		ID:          uuid.NewString(),
		Date:        core.Date{Time: date},
		Description: description,
		Amount:      amount,
		Category:    analytics.Categorize(description, amount),
	}
	if err := tx.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.AppendTransactions(r.Context(), tx); err != nil {
		slog.ErrorContext(r.Context(), "Append transaction failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store transaction")
		return
	}

	s.invalidateSummaries()
	writeJSON(w, http.StatusCreated, transactionToDTO(tx))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		slog.ErrorContext(r.Context(), "Delete transaction failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}

	s.invalidateSummaries()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetTransactions(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ResetTransactions(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Reset transactions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reset transactions")
		return
	}

	s.invalidateSummaries()
	w.WriteHeader(http.StatusNoContent)
}

// handleImport ingests CSV text from the request body. Malformed lines are
// skipped and counted rather than failing the whole import.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	result := ingest.ParseCSV(string(body))
	if len(result.Transactions) > 0 {
		if err := s.store.AppendTransactions(r.Context(), result.Transactions...); err != nil {
			slog.ErrorContext(r.Context(), "Import append failed", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to store imported transactions")
			return
		}
		s.invalidateSummaries()
	}

	slog.InfoContext(r.Context(), "CSV import completed",
		"imported", len(result.Transactions),
		"skipped", result.Skipped)
	writeJSON(w, http.StatusOK, map[string]int{
		"imported": len(result.Transactions),
		"skipped":  result.Skipped,
	})
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seed  *int64 `json:"seed"`
		Count int    `json:"count"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	count := req.Count
	if count <= 0 {
		count = 30
	}
	if count > 1000 {
		writeError(w, http.StatusUnprocessableEntity, "count too large (max 1000)")
		return
	}

	transactions := ingest.NewGenerator(seed).Transactions(time.Now(), count)
	if err := s.store.AppendTransactions(r.Context(), transactions...); err != nil {
		slog.ErrorContext(r.Context(), "Sample append failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store sample transactions")
		return
	}

	s.invalidateSummaries()
	writeJSON(w, http.StatusOK, map[string]int{"generated": len(transactions)})
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	budget, err := s.store.Budget(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Load budget failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load budget")
		return
	}
	writeJSON(w, http.StatusOK, budgetDTO{
		MonthlyLimitCents:     budget.MonthlyLimit.Cents,
		AlertThresholdPercent: budget.AlertThresholdPercent,
	})
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetDTO
	if !decodeBody(w, r, &req) {
		return
	}

	budget := core.Budget{
		MonthlyLimit:          core.Money{Cents: req.MonthlyLimitCents},
		AlertThresholdPercent: req.AlertThresholdPercent,
	}
	if err := budget.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.SetBudget(r.Context(), budget); err != nil {
		slog.ErrorContext(r.Context(), "Set budget failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store budget")
		return
	}

	s.invalidateSummaries()
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.store.ListGoals(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List goals failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list goals")
		return
	}

	dtos := make([]goalDTO, 0, len(goals))
	for _, g := range goals {
		dtos = append(dtos, goalToDTO(g))
	}
	writeJSON(w, http.StatusOK, map[string]any{"goals": dtos})
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		TargetCents int64  `json:"target_cents"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	goal := core.Goal{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Target:    core.Money{Cents: req.TargetCents},
		CreatedAt: time.Now().UTC(),
	}
	if err := goal.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.AddGoal(r.Context(), goal); err != nil {
		slog.ErrorContext(r.Context(), "Add goal failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store goal")
		return
	}

	s.invalidateSummaries()
	writeJSON(w, http.StatusCreated, goalToDTO(goal))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteGoal(r.Context(), id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "goal not found")
			return
		}
		slog.ErrorContext(r.Context(), "Delete goal failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete goal")
		return
	}

	s.invalidateSummaries()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	goals, err := s.store.ListGoals(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List goals failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list goals")
		return
	}

	var goal *core.Goal
	for i := range goals {
		if goals[i].ID == id {
			goal = &goals[i]
			break
		}
	}
	if goal == nil {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}

	transactions, err := s.store.ListTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	progress, err := analytics.ProgressTowards(transactions, *goal)
	if err != nil {
		slog.ErrorContext(r.Context(), "Goal progress failed", "error", err, "goal_id", id)
		writeError(w, http.StatusInternalServerError, "failed to compute progress")
		return
	}

	writeJSON(w, http.StatusOK, goalProgressDTO{
		goalDTO:    goalToDTO(*goal),
		SavedCents: progress.Saved.Cents,
		Percent:    progress.Percent,
	})
}
