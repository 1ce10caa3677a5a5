package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"spotmarket/internal/auth"
	"spotmarket/internal/entities"
	apperrors "spotmarket/internal/errors"
	"spotmarket/internal/service"
)

type ReservationHandler struct {
	Service *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

// QuotePrice handles GET /api/spots/{id}/quote?start_time=...&end_time=...
func (h *ReservationHandler) QuotePrice(w http.ResponseWriter, r *http.Request) {
	spotID := mux.Vars(r)["id"]
	start, end, err := parseInterval(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	quote, err := h.Service.QuotePrice(spotID, start, end)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req entities.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.Service.CreateReservation(auth.UserID(r.Context()), req)
	if err != nil {
		if errors.Is(err, service.ErrCheckoutFailed) {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	reservation, err := h.Service.GetReservation(id, auth.UserID(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrNotReservationParty) {
			writeHTTPError(w, apperrors.ErrForbidden(err.Error()))
			return
		}
		http.Error(w, "Reservation not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	err := h.Service.CancelReservation(id, auth.UserID(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotReservationParty):
			writeHTTPError(w, apperrors.ErrForbidden(err.Error()))
		case errors.Is(err, service.ErrAlreadyFinalized):
			writeHTTPError(w, apperrors.ErrConflict(err.Error()))
		default:
			http.Error(w, "Could not cancel reservation", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reservation cancelled"})
}

func (h *ReservationHandler) ListMyReservations(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListUserReservations(auth.UserID(r.Context()))
	if err != nil {
		http.Error(w, "Error listing reservations", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ReservationHandler) ListOwnerReservations(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListOwnerReservations(auth.UserID(r.Context()))
	if err != nil {
		http.Error(w, "Error listing reservations", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ReservationHandler) ListSpotReservations(w http.ResponseWriter, r *http.Request) {
	spotID := mux.Vars(r)["id"]
	list, err := h.Service.ListSpotReservations(spotID, auth.UserID(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrNotSpotOwner) {
			writeHTTPError(w, apperrors.ErrForbidden(err.Error()))
			return
		}
		http.Error(w, "Error listing reservations", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func parseInterval(r *http.Request) (time.Time, time.Time, error) {
	query := r.URL.Query()
	start, err := time.Parse(time.RFC3339, query.Get("start_time"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("start_time must be an RFC3339 timestamp")
	}
	end, err := time.Parse(time.RFC3339, query.Get("end_time"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("end_time must be an RFC3339 timestamp")
	}
	return start, end, nil
}
