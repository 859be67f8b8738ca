package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"staynest/internal/api/middleware"
	"staynest/internal/app/service"
	"staynest/internal/common/security"
	"staynest/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

func newBookingTestRouter(t *testing.T) (http.Handler, *fakeBookingRepo, *model.Place) {
	t.Helper()
	initTestSecurity(t)

	placeRepo := newFakePlaceRepo()
	place := &model.Place{
		ID:      "place-1",
		OwnerID: "host-id",
		Title:   "Canal House",
		Address: "1 Waterside",
		Photos:  []string{},
		Perks:   []string{},
		Price:   120,
	}
	placeRepo.places[place.ID] = place
	bookingRepo := newFakeBookingRepo(placeRepo)

	r := chi.NewRouter()
	r.Use(jwtauth.Verify(security.TokenAuth, middleware.TokenFromCookie))
	h := NewBookingHandler(service.NewBookingService(bookingRepo, placeRepo))
	r.Route("/bookings", h.RegisterRoutes)
	return r, bookingRepo, place
}

func sessionCookieFor(t *testing.T, userID, email string) *http.Cookie {
	t.Helper()
	token, err := security.GenerateToken(userID, email)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

func TestBookingHandler_CreateIgnoresClientUserID(t *testing.T) {
	router, repo, _ := newBookingTestRouter(t)
	alice := sessionCookieFor(t, "alice-id", "a@x.com")

	// The body claims the booking belongs to Bob; attribution must still be Alice.
	body := `{
		"place_id": "place-1",
		"user_id": "bob-id",
		"user": "bob-id",
		"check_in": "2026-10-01T00:00:00Z",
		"check_out": "2026-10-05T00:00:00Z",
		"num_guests": 2,
		"contact_name": "Alice",
		"contact_phone": "+3161234",
		"price": 480
	}`
	rec := doJSON(t, router, http.MethodPost, "/bookings", body, alice)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create booking status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var created model.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("booking body unmarshal: %v", err)
	}
	if created.UserID != "alice-id" {
		t.Errorf("created booking user = %q, want alice-id", created.UserID)
	}

	stored := repo.bookings[created.ID]
	if stored == nil {
		t.Fatal("booking was not persisted")
	}
	if stored.UserID != "alice-id" {
		t.Errorf("persisted booking user = %q, want alice-id", stored.UserID)
	}
}

func TestBookingHandler_RequiresSession(t *testing.T) {
	router, _, _ := newBookingTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/bookings", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous list bookings status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/bookings", `{"place_id":"place-1"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous create booking status = %d, want 401", rec.Code)
	}
}

func TestBookingHandler_ListMineOnly(t *testing.T) {
	router, repo, place := newBookingTestRouter(t)
	alice := sessionCookieFor(t, "alice-id", "a@x.com")

	checkIn := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	repo.bookings["b1"] = &model.Booking{ID: "b1", PlaceID: place.ID, UserID: "alice-id", CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 3)}
	repo.bookings["b2"] = &model.Booking{ID: "b2", PlaceID: place.ID, UserID: "bob-id", CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 3)}

	rec := doJSON(t, router, http.MethodGet, "/bookings", "", alice)
	if rec.Code != http.StatusOK {
		t.Fatalf("list bookings status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var bookings []model.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &bookings); err != nil {
		t.Fatalf("bookings body unmarshal: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("list returned %d bookings, want 1", len(bookings))
	}
	if bookings[0].UserID != "alice-id" {
		t.Errorf("listed booking user = %q, want alice-id", bookings[0].UserID)
	}
	if bookings[0].Place == nil || bookings[0].Place.Title != "Canal House" {
		t.Error("listed booking did not include the joined place")
	}
}
