package app

import (
	"context"

	"github.com/nithin-ak/concert-fever/internal/domain"
)

type CatalogRepository interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	ListEventsByTag(ctx context.Context, tag string) ([]domain.Event, error)
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	GetVenue(ctx context.Context, venueID string) (domain.Venue, error)
	GetCategory(ctx context.Context, eventID, label string) (domain.TicketCategory, error)
	ListCategoriesByEvent(ctx context.Context, eventID string) ([]domain.TicketCategory, error)
}

// EventDetails is an event joined with its venue and sellable categories.
type EventDetails struct {
	Event      domain.Event
	Venue      domain.Venue
	Categories []domain.TicketCategory
}

// CatalogService serves read-only event browsing.
type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListEvents(ctx context.Context) ([]EventDetails, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, events)
}

func (s *CatalogService) ListEventsByTag(ctx context.Context, tag string) ([]EventDetails, error) {
	if tag == "" {
		return nil, domain.ErrInvalidCategory
	}
	events, err := s.repo.ListEventsByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, events)
}

func (s *CatalogService) GetEventDetails(ctx context.Context, eventID string) (EventDetails, error) {
	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return EventDetails{}, err
	}
	return s.details(ctx, event)
}

// ListCategories returns the ticket categories on sale for one event.
func (s *CatalogService) ListCategories(ctx context.Context, eventID string) ([]domain.TicketCategory, error) {
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListCategoriesByEvent(ctx, eventID)
}

// GetCategory returns one category's price and remaining inventory.
func (s *CatalogService) GetCategory(ctx context.Context, eventID, label string) (domain.TicketCategory, error) {
	return s.repo.GetCategory(ctx, eventID, label)
}

func (s *CatalogService) expand(ctx context.Context, events []domain.Event) ([]EventDetails, error) {
	out := make([]EventDetails, 0, len(events))
	for _, event := range events {
		details, err := s.details(ctx, event)
		if err != nil {
			return nil, err
		}
		out = append(out, details)
	}
	return out, nil
}

func (s *CatalogService) details(ctx context.Context, event domain.Event) (EventDetails, error) {
	venue, err := s.repo.GetVenue(ctx, event.VenueID)
	if err != nil {
		return EventDetails{}, err
	}
	categories, err := s.repo.ListCategoriesByEvent(ctx, event.ID)
	if err != nil {
		return EventDetails{}, err
	}
	return EventDetails{Event: event, Venue: venue, Categories: categories}, nil
}
