package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nithin-ak/concert-fever/internal/domain"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

const eventColumns = `id, venue_id, event_name, description, category_tag, starts_at, ends_at`

func (r *CatalogRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY starts_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return scanEvents(rows)
}

func (r *CatalogRepository) ListEventsByTag(ctx context.Context, tag string) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE category_tag = $1 ORDER BY starts_at, id`, tag)
	if err != nil {
		return nil, fmt.Errorf("list events by tag: %w", err)
	}
	return scanEvents(rows)
}

func (r *CatalogRepository) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	var e domain.Event
	err := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, eventID).
		Scan(&e.ID, &e.VenueID, &e.Name, &e.Description, &e.CategoryTag, &e.StartsAt, &e.EndsAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Event{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (r *CatalogRepository) GetVenue(ctx context.Context, venueID string) (domain.Venue, error) {
	const query = `
SELECT id, venue_name, address, city, country, pin_code, seating_capacity
FROM venues
WHERE id = $1`

	var v domain.Venue
	err := r.pool.QueryRow(ctx, query, venueID).
		Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.Country, &v.PinCode, &v.SeatingCapacity)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Venue{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Venue{}, fmt.Errorf("get venue %s: %w", venueID, pgx.ErrNoRows)
		}
		return domain.Venue{}, fmt.Errorf("get venue: %w", err)
	}
	return v, nil
}

func (r *CatalogRepository) GetCategory(ctx context.Context, eventID, label string) (domain.TicketCategory, error) {
	const query = `
SELECT event_id, category_label, price, total_quantity, remaining_quantity
FROM ticket_categories
WHERE event_id = $1 AND category_label = $2`

	var c domain.TicketCategory
	err := r.pool.QueryRow(ctx, query, eventID, label).
		Scan(&c.EventID, &c.Label, &c.Price, &c.Total, &c.Remaining)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.TicketCategory{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.TicketCategory{}, domain.ErrCategoryNotFound
		}
		return domain.TicketCategory{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *CatalogRepository) ListCategoriesByEvent(ctx context.Context, eventID string) ([]domain.TicketCategory, error) {
	const query = `
SELECT event_id, category_label, price, total_quantity, remaining_quantity
FROM ticket_categories
WHERE event_id = $1
ORDER BY category_label`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.TicketCategory
	for rows.Next() {
		var c domain.TicketCategory
		if err := rows.Scan(&c.EventID, &c.Label, &c.Price, &c.Total, &c.Remaining); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func scanEvents(rows pgx.Rows) ([]domain.Event, error) {
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.VenueID, &e.Name, &e.Description, &e.CategoryTag, &e.StartsAt, &e.EndsAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan events: %w", err)
	}
	return events, nil
}
