package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"pocketbank/internal/core"
)

type transactionJSON struct {
	ID           int64     `json:"id"`
	Type         string    `json:"type"`
	Amount       float64   `json:"amount"`
	Description  string    `json:"description"`
	Timestamp    time.Time `json:"timestamp"`
	BalanceAfter float64   `json:"balanceAfter"`
}

type spendRequest struct {
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	bal, err := s.balances.Balance(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Get balance error", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get balance")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"balance":   bal.Amount.Float64(),
		"updatedAt": bal.UpdatedAt.Format(time.RFC3339),
	})
}

func (s *Server) handleGetTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	txs, err := s.transactions.ListTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions error", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get transactions")
		return
	}

	out := make([]transactionJSON, 0, len(txs))
	for _, tx := range txs {
		out = append(out, transactionJSON{
			ID:           tx.ID,
			Type:         string(tx.Type),
			Amount:       tx.Amount.Float64(),
			Description:  tx.Description,
			Timestamp:    tx.CreatedAt,
			BalanceAfter: tx.BalanceAfter.Float64(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"transactions": out})
}

func (s *Server) handleSpend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req spendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Amount == nil {
		// Missing or non-numeric amount never reaches the service
		writeError(w, http.StatusBadRequest, "Please enter a valid amount")
		return
	}

	res, err := s.spender.Spend(r.Context(), *req.Amount, sanitizeInput(req.Description))
	if err != nil {
		var ife *core.InsufficientFundsError
		switch {
		case errors.Is(err, core.ErrInvalidAmount):
			writeError(w, http.StatusBadRequest, "Please enter a valid amount")
		case errors.As(err, &ife):
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":          "Not enough money in bank",
				"currentBalance": ife.Current.Float64(),
			})
		default:
			slog.ErrorContext(r.Context(), "Spend error", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update balance")
		}
		return
	}

	slog.InfoContext(r.Context(), "Spend completed",
		"amount_cents", res.AmountSpent.Cents,
		"balance_after_cents", res.NewBalance.Cents)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"newBalance":  res.NewBalance.Float64(),
		"amountSpent": res.AmountSpent.Float64(),
	})
}
