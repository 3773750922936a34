package domain

import "time"

// Venue is the physical location an event takes place at.
type Venue struct {
	ID              string
	Name            string
	Address         string
	City            string
	Country         string
	PinCode         string
	SeatingCapacity int
}

// Event represents a ticketed event with per-category inventory.
type Event struct {
	ID          string
	VenueID     string
	Name        string
	Description string
	CategoryTag string
	StartsAt    time.Time
	EndsAt      time.Time
}
