package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"staynest/internal/common"
	"staynest/internal/domain/model"
	"staynest/internal/domain/repository"
	"staynest/internal/platform/cache"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const placeDirectoryCacheKey = "places:all"

type PlaceService struct {
	placeRepo repository.PlaceRepository
	cache     cache.Store // may be nil; listing cache is best effort
	cacheTTL  time.Duration
}

func NewPlaceService(placeRepo repository.PlaceRepository, cacheStore cache.Store, cacheTTL time.Duration) *PlaceService {
	return &PlaceService{
		placeRepo: placeRepo,
		cache:     cacheStore,
		cacheTTL:  cacheTTL,
	}
}

type CreatePlaceRequest struct {
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Photos      []string `json:"photos"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extra_info"`
	CheckIn     string   `json:"check_in"`
	CheckOut    string   `json:"check_out"`
	MaxGuests   int      `json:"max_guests"`
	Price       int      `json:"price"`
}

// UpdatePlaceRequest carries the whitelisted mutable fields. OwnerID is
// deliberately absent: ownership is fixed at creation.
type UpdatePlaceRequest struct {
	Title       *string   `json:"title,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Photos      *[]string `json:"photos,omitempty"`
	Description *string   `json:"description,omitempty"`
	Perks       *[]string `json:"perks,omitempty"`
	ExtraInfo   *string   `json:"extra_info,omitempty"`
	CheckIn     *string   `json:"check_in,omitempty"`
	CheckOut    *string   `json:"check_out,omitempty"`
	MaxGuests   *int      `json:"max_guests,omitempty"`
	Price       *int      `json:"price,omitempty"`
}

func (s *PlaceService) CreatePlace(ctx context.Context, ownerID string, req CreatePlaceRequest) (*model.Place, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthorized
	}
	if req.Title == "" || req.Address == "" {
		return nil, fmt.Errorf("title and address are required: %w", common.ErrValidation)
	}
	if req.MaxGuests <= 0 {
		req.MaxGuests = 1
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", common.ErrValidation)
	}

	id := uuid.NewString()
	place := &model.Place{
		ID:          id,
		OwnerID:     ownerID,
		Title:       req.Title,
		Slug:        slug.Make(req.Title) + "-" + id[:8], // id prefix keeps slugs unique
		Address:     req.Address,
		Photos:      req.Photos,
		Description: req.Description,
		Perks:       req.Perks,
		ExtraInfo:   req.ExtraInfo,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		MaxGuests:   req.MaxGuests,
		Price:       req.Price,
	}
	if place.Photos == nil {
		place.Photos = []string{}
	}
	if place.Perks == nil {
		place.Perks = []string{}
	}

	if err := s.placeRepo.Create(ctx, place); err != nil {
		return nil, fmt.Errorf("failed to create place: %w", err)
	}
	s.invalidateDirectory(ctx)
	return place, nil
}

func (s *PlaceService) GetPlace(ctx context.Context, id string) (*model.Place, error) {
	place, err := s.placeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load place: %w", err)
	}
	return place, nil
}

func (s *PlaceService) ListOwnPlaces(ctx context.Context, ownerID string) ([]model.Place, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthorized
	}
	places, err := s.placeRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list own places: %w", err)
	}
	return places, nil
}

// ListAllPlaces is the public directory. Reads go through the redis cache
// with a short TTL; any cache failure falls back to the database.
func (s *PlaceService) ListAllPlaces(ctx context.Context) ([]model.Place, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, placeDirectoryCacheKey); ok {
			var places []model.Place
			if err := json.Unmarshal(cached, &places); err == nil {
				return places, nil
			}
			log.Printf("discarding undecodable place directory cache entry")
		}
	}

	places, err := s.placeRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(places); err == nil {
			s.cache.Set(ctx, placeDirectoryCacheKey, encoded, s.cacheTTL)
		}
	}
	return places, nil
}

// UpdatePlace applies a whitelisted patch after re-validating ownership
// against the freshly loaded row. Unknown id yields NotFound; a caller who is
// not the owner gets Forbidden and the stored fields stay untouched.
func (s *PlaceService) UpdatePlace(ctx context.Context, callerID, placeID string, req UpdatePlaceRequest) (*model.Place, error) {
	if callerID == "" {
		return nil, common.ErrUnauthorized
	}

	place, err := s.placeRepo.FindByID(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load place for update: %w", err)
	}
	if place.OwnerID != callerID {
		return nil, common.ErrForbidden
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("title must not be empty: %w", common.ErrValidation)
		}
		place.Title = *req.Title
		place.Slug = slug.Make(*req.Title) + "-" + place.ID[:8]
	}
	if req.Address != nil {
		place.Address = *req.Address
	}
	if req.Photos != nil {
		place.Photos = *req.Photos
	}
	if req.Description != nil {
		place.Description = *req.Description
	}
	if req.Perks != nil {
		place.Perks = *req.Perks
	}
	if req.ExtraInfo != nil {
		place.ExtraInfo = *req.ExtraInfo
	}
	if req.CheckIn != nil {
		place.CheckIn = *req.CheckIn
	}
	if req.CheckOut != nil {
		place.CheckOut = *req.CheckOut
	}
	if req.MaxGuests != nil {
		if *req.MaxGuests <= 0 {
			return nil, fmt.Errorf("max_guests must be positive: %w", common.ErrValidation)
		}
		place.MaxGuests = *req.MaxGuests
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("price must not be negative: %w", common.ErrValidation)
		}
		place.Price = *req.Price
	}

	// The UPDATE is additionally scoped by owner_id so a concurrent transfer
	// of the row between load and write cannot slip through.
	if err := s.placeRepo.Update(ctx, place); err != nil {
		return nil, fmt.Errorf("failed to update place: %w", err)
	}
	s.invalidateDirectory(ctx)
	return place, nil
}

func (s *PlaceService) invalidateDirectory(ctx context.Context) {
	if s.cache != nil {
		s.cache.Del(ctx, placeDirectoryCacheKey)
	}
}
