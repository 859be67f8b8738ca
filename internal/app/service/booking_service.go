package service

import (
	"context"
	"fmt"
	"time"

	"staynest/internal/common"
	"staynest/internal/domain/model"
	"staynest/internal/domain/repository"

	"github.com/google/uuid"
)

type BookingService struct {
	bookingRepo repository.BookingRepository
	placeRepo   repository.PlaceRepository
}

func NewBookingService(bookingRepo repository.BookingRepository, placeRepo repository.PlaceRepository) *BookingService {
	return &BookingService{bookingRepo: bookingRepo, placeRepo: placeRepo}
}

// CreateBookingRequest intentionally has no user field: attribution comes
// from the resolved identity, so a spoofed user id in the request body is
// dropped at decode time.
type CreateBookingRequest struct {
	PlaceID      string    `json:"place_id"`
	CheckIn      time.Time `json:"check_in"`
	CheckOut     time.Time `json:"check_out"`
	NumGuests    int       `json:"num_guests"`
	ContactName  string    `json:"contact_name"`
	ContactPhone string    `json:"contact_phone"`
	Price        int       `json:"price"`
}

// CreateBooking records a reservation attributed to userID. Overlap and
// availability between bookings are not checked; admission is identity and
// shape validation only.
func (s *BookingService) CreateBooking(ctx context.Context, userID string, req CreateBookingRequest) (*model.Booking, error) {
	if userID == "" {
		return nil, common.ErrUnauthorized
	}
	if req.PlaceID == "" {
		return nil, fmt.Errorf("place_id is required: %w", common.ErrValidation)
	}
	if req.CheckIn.IsZero() || req.CheckOut.IsZero() || !req.CheckOut.After(req.CheckIn) {
		return nil, fmt.Errorf("check_out must be after check_in: %w", common.ErrValidation)
	}
	if req.ContactName == "" || req.ContactPhone == "" {
		return nil, fmt.Errorf("contact name and phone are required: %w", common.ErrValidation)
	}
	if req.NumGuests <= 0 {
		req.NumGuests = 1
	}

	if _, err := s.placeRepo.FindByID(ctx, req.PlaceID); err != nil {
		return nil, fmt.Errorf("failed to resolve booked place: %w", err)
	}

	booking := &model.Booking{
		ID:           uuid.NewString(),
		PlaceID:      req.PlaceID,
		UserID:       userID, // always the resolver's output
		CheckIn:      req.CheckIn,
		CheckOut:     req.CheckOut,
		NumGuests:    req.NumGuests,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		Price:        req.Price,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return booking, nil
}

// ListMyBookings returns only the caller's bookings, place included.
func (s *BookingService) ListMyBookings(ctx context.Context, userID string) ([]model.Booking, error) {
	if userID == "" {
		return nil, common.ErrUnauthorized
	}
	bookings, err := s.bookingRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}
