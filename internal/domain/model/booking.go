package model

import (
	"time"
)

// Booking is a reservation against a Place. UserID always equals the identity
// that created the booking; it is never taken from client input.
type Booking struct {
	ID           string    `json:"id"`
	PlaceID      string    `json:"place_id"`
	UserID       string    `json:"user_id"`
	CheckIn      time.Time `json:"check_in"`
	CheckOut     time.Time `json:"check_out"`
	NumGuests    int       `json:"num_guests"`
	ContactName  string    `json:"contact_name"`
	ContactPhone string    `json:"contact_phone"`
	Price        int       `json:"price"`
	CreatedAt    time.Time `json:"created_at"`

	Place *Place `json:"place,omitempty"` // denormalized on reads, never written through
}
