package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"staynest/internal/common"
	"staynest/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	// FindByUser returns the caller's own bookings, each with its referenced
	// place denormalized into the result.
	FindByUser(ctx context.Context, userID string) ([]model.Booking, error)
}

type pgBookingRepository struct {
	db *sql.DB
}

func NewPgBookingRepository(db *sql.DB) BookingRepository {
	return &pgBookingRepository{db: db}
}

func (r *pgBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `INSERT INTO bookings (id, place_id, user_id, check_in, check_out,
	          num_guests, contact_name, contact_phone, price)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		booking.ID, booking.PlaceID, booking.UserID, booking.CheckIn, booking.CheckOut,
		booking.NumGuests, booking.ContactName, booking.ContactPhone, booking.Price,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // FK violation: unknown place
			return fmt.Errorf("booking references unknown place: %w", common.ErrNotFound)
		}
		return fmt.Errorf("pgBookingRepository.Create: %w", err)
	}
	return nil
}

func (r *pgBookingRepository) FindByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	query := `SELECT b.id, b.place_id, b.user_id, b.check_in, b.check_out,
	                 b.num_guests, b.contact_name, b.contact_phone, b.price, b.created_at,
	                 p.id, p.owner_id, p.title, p.slug, p.address, p.photos, p.description,
	                 p.perks, p.extra_info, p.check_in, p.check_out, p.max_guests, p.price,
	                 p.created_at, p.updated_at
	          FROM bookings b
	          JOIN places p ON p.id = b.place_id
	          WHERE b.user_id = $1
	          ORDER BY b.check_in`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgBookingRepository.FindByUser: %w", err)
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		var p model.Place
		var photos, perks []byte
		err := rows.Scan(
			&b.ID, &b.PlaceID, &b.UserID, &b.CheckIn, &b.CheckOut,
			&b.NumGuests, &b.ContactName, &b.ContactPhone, &b.Price, &b.CreatedAt,
			&p.ID, &p.OwnerID, &p.Title, &p.Slug, &p.Address, &photos, &p.Description,
			&perks, &p.ExtraInfo, &p.CheckIn, &p.CheckOut, &p.MaxGuests, &p.Price,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("pgBookingRepository.FindByUser: scan: %w", err)
		}
		if err := json.Unmarshal(photos, &p.Photos); err != nil {
			return nil, fmt.Errorf("pgBookingRepository.FindByUser: unmarshal photos: %w", err)
		}
		if err := json.Unmarshal(perks, &p.Perks); err != nil {
			return nil, fmt.Errorf("pgBookingRepository.FindByUser: unmarshal perks: %w", err)
		}
		b.Place = &p
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgBookingRepository.FindByUser: iterate: %w", err)
	}
	return bookings, nil
}
