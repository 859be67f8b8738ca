package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"staynest/internal/common"
	"staynest/internal/domain/model"
)

type PlaceRepository interface {
	Create(ctx context.Context, place *model.Place) error
	FindByID(ctx context.Context, id string) (*model.Place, error)
	FindByOwner(ctx context.Context, ownerID string) ([]model.Place, error)
	FindAll(ctx context.Context) ([]model.Place, error)
	// Update persists the mutable fields of a place. The statement is scoped
	// to (id, owner_id) so a racing ownership check can never overwrite a
	// document the caller does not own.
	Update(ctx context.Context, place *model.Place) error
}

type pgPlaceRepository struct {
	db *sql.DB
}

func NewPgPlaceRepository(db *sql.DB) PlaceRepository {
	return &pgPlaceRepository{db: db}
}

const placeColumns = `id, owner_id, title, slug, address, photos, description,
	perks, extra_info, check_in, check_out, max_guests, price, created_at, updated_at`

func (r *pgPlaceRepository) Create(ctx context.Context, place *model.Place) error {
	photos, err := json.Marshal(place.Photos)
	if err != nil {
		return fmt.Errorf("pgPlaceRepository.Create: marshal photos: %w", err)
	}
	perks, err := json.Marshal(place.Perks)
	if err != nil {
		return fmt.Errorf("pgPlaceRepository.Create: marshal perks: %w", err)
	}

	query := `INSERT INTO places (id, owner_id, title, slug, address, photos, description,
	          perks, extra_info, check_in, check_out, max_guests, price)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.db.ExecContext(ctx, query,
		place.ID, place.OwnerID, place.Title, place.Slug, place.Address, photos,
		place.Description, perks, place.ExtraInfo, place.CheckIn, place.CheckOut,
		place.MaxGuests, place.Price,
	)
	if err != nil {
		return fmt.Errorf("pgPlaceRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPlaceRepository) FindByID(ctx context.Context, id string) (*model.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places WHERE id = $1`
	place, err := scanPlace(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPlaceRepository.FindByID: %w", err)
	}
	return place, nil
}

func (r *pgPlaceRepository) FindByOwner(ctx context.Context, ownerID string) ([]model.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("pgPlaceRepository.FindByOwner: %w", err)
	}
	defer rows.Close()
	return collectPlaces(rows)
}

func (r *pgPlaceRepository) FindAll(ctx context.Context) ([]model.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgPlaceRepository.FindAll: %w", err)
	}
	defer rows.Close()
	return collectPlaces(rows)
}

func (r *pgPlaceRepository) Update(ctx context.Context, place *model.Place) error {
	photos, err := json.Marshal(place.Photos)
	if err != nil {
		return fmt.Errorf("pgPlaceRepository.Update: marshal photos: %w", err)
	}
	perks, err := json.Marshal(place.Perks)
	if err != nil {
		return fmt.Errorf("pgPlaceRepository.Update: marshal perks: %w", err)
	}

	query := `UPDATE places
	          SET title = $1, slug = $2, address = $3, photos = $4, description = $5,
	              perks = $6, extra_info = $7, check_in = $8, check_out = $9,
	              max_guests = $10, price = $11, updated_at = now()
	          WHERE id = $12 AND owner_id = $13`
	res, err := r.db.ExecContext(ctx, query,
		place.Title, place.Slug, place.Address, photos, place.Description,
		perks, place.ExtraInfo, place.CheckIn, place.CheckOut,
		place.MaxGuests, place.Price, place.ID, place.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("pgPlaceRepository.Update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgPlaceRepository.Update: rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlace(row rowScanner) (*model.Place, error) {
	place := &model.Place{}
	var photos, perks []byte
	err := row.Scan(
		&place.ID, &place.OwnerID, &place.Title, &place.Slug, &place.Address, &photos,
		&place.Description, &perks, &place.ExtraInfo, &place.CheckIn, &place.CheckOut,
		&place.MaxGuests, &place.Price, &place.CreatedAt, &place.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(photos, &place.Photos); err != nil {
		return nil, fmt.Errorf("unmarshal photos: %w", err)
	}
	if err := json.Unmarshal(perks, &place.Perks); err != nil {
		return nil, fmt.Errorf("unmarshal perks: %w", err)
	}
	return place, nil
}

func collectPlaces(rows *sql.Rows) ([]model.Place, error) {
	places := []model.Place{}
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		places = append(places, *place)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate places: %w", err)
	}
	return places, nil
}
