package handler

import (
	"encoding/json"
	"net/http"

	"staynest/internal/api/middleware"
	"staynest/internal/app/service"
	"staynest/internal/common"

	"github.com/go-chi/chi/v5"
)

type PlaceHandler struct {
	placeService *service.PlaceService
}

func NewPlaceHandler(ps *service.PlaceService) *PlaceHandler {
	return &PlaceHandler{placeService: ps}
}

func (h *PlaceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listPlaces)          // GET /api/places (public directory)
	r.Get("/{placeID}", h.getPlace)   // GET /api/places/{id}

	r.Group(func(owned chi.Router) {
		owned.Use(middleware.Authenticator)
		owned.Post("/", h.createPlace)
		owned.Put("/{placeID}", h.updatePlace)
	})
}

// RegisterOwnerRoutes wires the caller-scoped listing outside the /places
// subtree, matching the client's /user-places path.
func (h *PlaceHandler) RegisterOwnerRoutes(r chi.Router) {
	r.With(middleware.Authenticator).Get("/user-places", h.listOwnPlaces)
}

func (h *PlaceHandler) createPlace(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreatePlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	place, err := h.placeService.CreatePlace(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, place)
}

func (h *PlaceHandler) getPlace(w http.ResponseWriter, r *http.Request) {
	placeID := chi.URLParam(r, "placeID")

	place, err := h.placeService.GetPlace(r.Context(), placeID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, place)
}

func (h *PlaceHandler) listPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := h.placeService.ListAllPlaces(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, places)
}

func (h *PlaceHandler) listOwnPlaces(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	places, err := h.placeService.ListOwnPlaces(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, places)
}

func (h *PlaceHandler) updatePlace(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	placeID := chi.URLParam(r, "placeID")

	var req service.UpdatePlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	place, err := h.placeService.UpdatePlace(r.Context(), userID, placeID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, place)
}
