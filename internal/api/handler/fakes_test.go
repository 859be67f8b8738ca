package handler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"staynest/internal/common"
	"staynest/internal/common/security"
	"staynest/internal/domain/model"
	"staynest/internal/platform/config"
)

func initTestSecurity(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	security.InitJWT()
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			stored := *u
			return &stored, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	stored := *u
	return &stored, nil
}

type fakePlaceRepo struct {
	places map[string]*model.Place
}

func newFakePlaceRepo() *fakePlaceRepo {
	return &fakePlaceRepo{places: map[string]*model.Place{}}
}

func (f *fakePlaceRepo) Create(_ context.Context, place *model.Place) error {
	stored := *place
	f.places[place.ID] = &stored
	return nil
}

func (f *fakePlaceRepo) FindByID(_ context.Context, id string) (*model.Place, error) {
	p, ok := f.places[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	stored := *p
	return &stored, nil
}

func (f *fakePlaceRepo) FindByOwner(_ context.Context, ownerID string) ([]model.Place, error) {
	out := []model.Place{}
	for _, p := range f.places {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlaceRepo) FindAll(_ context.Context) ([]model.Place, error) {
	out := []model.Place{}
	for _, p := range f.places {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePlaceRepo) Update(_ context.Context, place *model.Place) error {
	existing, ok := f.places[place.ID]
	if !ok || existing.OwnerID != place.OwnerID {
		return common.ErrNotFound
	}
	stored := *place
	f.places[place.ID] = &stored
	return nil
}

type fakeBookingRepo struct {
	bookings map[string]*model.Booking
	places   *fakePlaceRepo
}

func newFakeBookingRepo(places *fakePlaceRepo) *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*model.Booking{}, places: places}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *model.Booking) error {
	if _, ok := f.places.places[booking.PlaceID]; !ok {
		return common.ErrNotFound
	}
	stored := *booking
	f.bookings[booking.ID] = &stored
	return nil
}

func (f *fakeBookingRepo) FindByUser(_ context.Context, userID string) ([]model.Booking, error) {
	out := []model.Booking{}
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		joined := *b
		if p, ok := f.places.places[b.PlaceID]; ok {
			place := *p
			joined.Place = &place
		}
		out = append(out, joined)
	}
	return out, nil
}
