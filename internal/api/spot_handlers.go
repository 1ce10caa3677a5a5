package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"spotmarket/internal/auth"
	"spotmarket/internal/entities"
	apperrors "spotmarket/internal/errors"
	"spotmarket/internal/service"
)

type SpotHandler struct {
	Service *service.SpotService
}

func NewSpotHandler(svc *service.SpotService) *SpotHandler {
	return &SpotHandler{Service: svc}
}

// SearchSpots handles GET /api/spots with optional q, min_price,
// max_price and amenities query parameters.
func (h *SpotHandler) SearchSpots(w http.ResponseWriter, r *http.Request) {
	filters, err := parseSpotFilters(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	spots, err := h.Service.SearchSpots(filters)
	if err != nil {
		http.Error(w, "Error searching spots", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, spots)
}

func (h *SpotHandler) GetSpot(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	spot, err := h.Service.GetSpot(id)
	if err != nil {
		http.Error(w, "Spot not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, spot)
}

func (h *SpotHandler) CreateSpot(w http.ResponseWriter, r *http.Request) {
	var req entities.SpotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	spot, err := h.Service.CreateSpot(auth.UserID(r.Context()), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, spot)
}

func (h *SpotHandler) UpdateSpot(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req entities.SpotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	spot, err := h.Service.UpdateSpot(id, auth.UserID(r.Context()), req)
	if err != nil {
		if errors.Is(err, service.ErrNotSpotOwner) {
			writeHTTPError(w, apperrors.ErrForbidden(err.Error()))
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, spot)
}

func (h *SpotHandler) DeleteSpot(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	err := h.Service.DeleteSpot(id, auth.UserID(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrNotSpotOwner) {
			writeHTTPError(w, apperrors.ErrForbidden(err.Error()))
			return
		}
		http.Error(w, "Could not delete spot", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Spot deleted"})
}

func (h *SpotHandler) ListMySpots(w http.ResponseWriter, r *http.Request) {
	spots, err := h.Service.ListSpotsByOwner(auth.UserID(r.Context()))
	if err != nil {
		http.Error(w, "Error listing spots", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, spots)
}

func parseSpotFilters(r *http.Request) (entities.SpotFilters, error) {
	query := r.URL.Query()
	filters := entities.SpotFilters{
		Query:     query.Get("q"),
		Amenities: query["amenities"],
	}

	if raw := query.Get("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filters, errors.New("min_price must be a number")
		}
		filters.MinPrice = &v
	}
	if raw := query.Get("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filters, errors.New("max_price must be a number")
		}
		filters.MaxPrice = &v
	}
	return filters, nil
}
