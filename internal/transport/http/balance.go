package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/nithin-ak/concert-fever/internal/domain"
)

// Ledger is the minimal interface needed for the balance surface.
type Ledger interface {
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	TopUp(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error)
}

// HandleBalance serves GET /balance?user_id=.
func HandleBalance(svc Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "user_id is required")
			return
		}

		balance, err := svc.GetBalance(r.Context(), userID)
		if err != nil {
			writeErrorFor(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(balanceResponse{
			UserID:  userID,
			Balance: balance.StringFixed(2),
		})
	}
}

// HandleTopUp serves PUT /balance/topup.
func HandleTopUp(svc Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req topUpRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.UserID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		balance, err := svc.TopUp(r.Context(), req.UserID, req.Amount)
		if err != nil {
			writeErrorFor(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(balanceResponse{
			UserID:  req.UserID,
			Balance: balance.StringFixed(2),
		})
	}
}

type topUpRequest struct {
	UserID string          `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

type balanceResponse struct {
	UserID  string `json:"user_id"`
	Balance string `json:"balance"`
}
