package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/nithin-ak/concert-fever/internal/app"
	"github.com/nithin-ak/concert-fever/internal/domain"
)

// Catalog is the minimal interface needed to browse events.
type Catalog interface {
	ListEvents(ctx context.Context) ([]app.EventDetails, error)
	ListEventsByTag(ctx context.Context, tag string) ([]app.EventDetails, error)
	GetEventDetails(ctx context.Context, eventID string) (app.EventDetails, error)
	GetCategory(ctx context.Context, eventID, label string) (domain.TicketCategory, error)
	ListCategories(ctx context.Context, eventID string) ([]domain.TicketCategory, error)
}

// HandleEvents serves GET /events and GET /events?category=.
func HandleEvents(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var (
			details []app.EventDetails
			err     error
		)
		if tag := r.URL.Query().Get("category"); tag != "" {
			details, err = svc.ListEventsByTag(r.Context(), tag)
		} else {
			details, err = svc.ListEvents(r.Context())
		}
		if err != nil {
			writeErrorFor(w, err)
			return
		}

		out := make([]eventDetailsResponse, 0, len(details))
		for _, d := range details {
			out = append(out, newEventDetailsResponse(d))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}

// HandleEventSubtree serves GET /events/{id}, GET /events/{id}/categories
// and GET /events/{id}/categories/{label}.
func HandleEventSubtree(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		eventID, wantCategories, label, ok := parseEventPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if label != "" {
			category, err := svc.GetCategory(r.Context(), eventID, label)
			if err != nil {
				writeErrorFor(w, err)
				return
			}
			_ = json.NewEncoder(w).Encode(newCategoryResponse(category))
			return
		}

		if wantCategories {
			categories, err := svc.ListCategories(r.Context(), eventID)
			if err != nil {
				writeErrorFor(w, err)
				return
			}
			out := make([]categoryResponse, 0, len(categories))
			for _, c := range categories {
				out = append(out, newCategoryResponse(c))
			}
			_ = json.NewEncoder(w).Encode(out)
			return
		}

		details, err := svc.GetEventDetails(r.Context(), eventID)
		if err != nil {
			writeErrorFor(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(newEventDetailsResponse(details))
	}
}

func parseEventPath(path string) (eventID string, wantCategories bool, label string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case len(parts) == 2 && parts[0] == "events" && parts[1] != "":
		return parts[1], false, "", true
	case len(parts) == 3 && parts[0] == "events" && parts[1] != "" && parts[2] == "categories":
		return parts[1], true, "", true
	case len(parts) == 4 && parts[0] == "events" && parts[1] != "" && parts[2] == "categories" && parts[3] != "":
		return parts[1], true, parts[3], true
	default:
		return "", false, "", false
	}
}

type venueResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Address         string `json:"address"`
	City            string `json:"city"`
	Country         string `json:"country"`
	PinCode         string `json:"pin_code"`
	SeatingCapacity int    `json:"seating_capacity"`
}

type categoryResponse struct {
	EventID   string `json:"event_id"`
	Label     string `json:"label"`
	Price     string `json:"price"`
	Total     int    `json:"total_quantity"`
	Remaining int    `json:"remaining_quantity"`
}

func newCategoryResponse(c domain.TicketCategory) categoryResponse {
	return categoryResponse{
		EventID:   c.EventID,
		Label:     c.Label,
		Price:     c.Price.StringFixed(2),
		Total:     c.Total,
		Remaining: c.Remaining,
	}
}

type eventDetailsResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	CategoryTag string             `json:"category_tag"`
	StartsAt    time.Time          `json:"starts_at"`
	EndsAt      time.Time          `json:"ends_at"`
	Venue       venueResponse      `json:"venue"`
	Categories  []categoryResponse `json:"ticket_categories"`
}

func newEventDetailsResponse(d app.EventDetails) eventDetailsResponse {
	categories := make([]categoryResponse, 0, len(d.Categories))
	for _, c := range d.Categories {
		categories = append(categories, newCategoryResponse(c))
	}
	return eventDetailsResponse{
		ID:          d.Event.ID,
		Name:        d.Event.Name,
		Description: d.Event.Description,
		CategoryTag: d.Event.CategoryTag,
		StartsAt:    d.Event.StartsAt,
		EndsAt:      d.Event.EndsAt,
		Venue: venueResponse{
			ID:              d.Venue.ID,
			Name:            d.Venue.Name,
			Address:         d.Venue.Address,
			City:            d.Venue.City,
			Country:         d.Venue.Country,
			PinCode:         d.Venue.PinCode,
			SeatingCapacity: d.Venue.SeatingCapacity,
		},
		Categories: categories,
	}
}
