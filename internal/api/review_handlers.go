package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"spotmarket/internal/auth"
	"spotmarket/internal/entities"
	"spotmarket/internal/service"
)

type ReviewHandler struct {
	Service *service.ReviewService
}

func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	spotID := mux.Vars(r)["id"]
	var req entities.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	review, err := h.Service.AddReview(spotID, auth.UserID(r.Context()), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	spotID := mux.Vars(r)["id"]
	reviews, err := h.Service.ListReviews(spotID)
	if err != nil {
		http.Error(w, "Error listing reviews", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
