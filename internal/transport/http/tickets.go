package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nithin-ak/concert-fever/internal/domain"
)

// TicketLister is the minimal interface needed to list a buyer's tickets.
type TicketLister interface {
	ListTicketsByEmail(ctx context.Context, email string) ([]domain.Ticket, error)
}

// HandleListTickets returns an HTTP handler for GET /tickets?email=.
func HandleListTickets(svc TicketLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		email := r.URL.Query().Get("email")
		if email == "" {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "email is required")
			return
		}

		tickets, err := svc.ListTicketsByEmail(r.Context(), email)
		if err != nil {
			writeErrorFor(w, err)
			return
		}

		out := make([]ticketResponse, 0, len(tickets))
		for _, t := range tickets {
			out = append(out, newTicketResponse(t))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}
