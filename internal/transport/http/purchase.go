package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nithin-ak/concert-fever/internal/app"
	"github.com/nithin-ak/concert-fever/internal/domain"
)

// TicketPurchaser is the minimal interface needed to execute a purchase.
type TicketPurchaser interface {
	Purchase(ctx context.Context, in app.PurchaseInput) (app.PurchaseResult, error)
}

// HandlePurchase returns an HTTP handler for the purchase operation. The
// quoted item prices are charged verbatim; recomputing them from the stored
// category price is a known hardening candidate.
func HandlePurchase(svc TicketPurchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req purchaseRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if err := req.validate(); err != nil {
			writeErrorFor(w, err)
			return
		}

		items := make([]app.PurchaseItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, app.PurchaseItem{
				EventID:       item.EventID,
				CategoryLabel: item.CategoryLabel,
				FinalPrice:    item.FinalPrice,
			})
		}

		res, err := svc.Purchase(r.Context(), app.PurchaseInput{
			BuyerID:  req.BuyerID,
			CouponID: req.CouponID,
			Items:    items,
		})
		if err != nil {
			writeErrorFor(w, err)
			return
		}

		tickets := make([]ticketResponse, 0, len(res.Tickets))
		for _, t := range res.Tickets {
			tickets = append(tickets, newTicketResponse(t))
		}

		resp := purchaseResponse{
			Tickets:          tickets,
			NewBalance:       res.NewBalance.StringFixed(2),
			NotificationSent: res.NotifyErr == nil,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// writeErrorFor maps domain errors to HTTP statuses and codes.
func writeErrorFor(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrEmptyCart:
		writeError(w, http.StatusBadRequest, codeEmptyCart, err.Error())
	case domain.ErrInvalidAmount:
		writeError(w, http.StatusBadRequest, codeInvalidAmount, err.Error())
	case domain.ErrInvalidQuantity:
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	case domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case domain.ErrInvalidCategory:
		writeError(w, http.StatusBadRequest, codeInvalidCategory, err.Error())
	case domain.ErrUserNotFound:
		writeError(w, http.StatusNotFound, codeUserNotFound, err.Error())
	case domain.ErrAccountNotFound:
		writeError(w, http.StatusNotFound, codeAccountNotFound, err.Error())
	case domain.ErrEventNotFound:
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case domain.ErrCategoryNotFound:
		writeError(w, http.StatusNotFound, codeCategoryNotFound, err.Error())
	case domain.ErrCouponNotFound:
		writeError(w, http.StatusNotFound, codeCouponNotFound, err.Error())
	case domain.ErrInsufficientFunds:
		writeError(w, http.StatusConflict, codeInsufficientFunds, err.Error())
	case domain.ErrSoldOut:
		writeError(w, http.StatusConflict, codeSoldOut, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

type purchaseItemRequest struct {
	EventID       string          `json:"event_id"`
	CategoryLabel string          `json:"category_label"`
	FinalPrice    decimal.Decimal `json:"final_price"`
}

type purchaseRequest struct {
	BuyerID  string                `json:"buyer_id"`
	CouponID string                `json:"coupon_id"`
	Items    []purchaseItemRequest `json:"items"`
}

func (r purchaseRequest) validate() error {
	if r.BuyerID == "" || r.CouponID == "" {
		return domain.ErrInvalidID
	}
	if len(r.Items) == 0 {
		return domain.ErrEmptyCart
	}
	for _, item := range r.Items {
		if item.EventID == "" || item.CategoryLabel == "" {
			return domain.ErrInvalidID
		}
		if item.FinalPrice.IsNegative() {
			return domain.ErrInvalidAmount
		}
	}
	return nil
}

type ticketResponse struct {
	ID            string    `json:"id"`
	EventID       string    `json:"event_id"`
	CategoryLabel string    `json:"category_label"`
	CouponID      *string   `json:"coupon_id,omitempty"`
	FinalPrice    string    `json:"final_price"`
	PurchasedOn   time.Time `json:"purchased_on"`
}

func newTicketResponse(t domain.Ticket) ticketResponse {
	return ticketResponse{
		ID:            t.ID,
		EventID:       t.EventID,
		CategoryLabel: t.CategoryLabel,
		CouponID:      t.CouponID,
		FinalPrice:    t.FinalPrice.StringFixed(2),
		PurchasedOn:   t.PurchasedOn,
	}
}

type purchaseResponse struct {
	Tickets          []ticketResponse `json:"tickets"`
	NewBalance       string           `json:"new_balance"`
	NotificationSent bool             `json:"notification_sent"`
}
