package model

import (
	"time"
)

// Place is a bookable listing. OwnerID is stamped from the authenticated
// identity at creation time and never changes afterwards.
type Place struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Address     string    `json:"address"`
	Photos      []string  `json:"photos"`
	Description string    `json:"description"`
	Perks       []string  `json:"perks"`
	ExtraInfo   string    `json:"extra_info"`
	CheckIn     string    `json:"check_in"`  // earliest check-in hour, e.g. "14:00"
	CheckOut    string    `json:"check_out"` // latest check-out hour
	MaxGuests   int       `json:"max_guests"`
	Price       int       `json:"price"` // per night
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
