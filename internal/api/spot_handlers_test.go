package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spotmarket/internal/db"
	"spotmarket/internal/entities"
	"spotmarket/internal/service"
)

type stubSpotRepo struct {
	spots []db.ParkingSpot
}

func (s *stubSpotRepo) Create(*db.ParkingSpot) error { return nil }
func (s *stubSpotRepo) Update(*db.ParkingSpot) error { return nil }
func (s *stubSpotRepo) Delete(string) error          { return nil }
func (s *stubSpotRepo) GetByID(id string) (*db.ParkingSpot, error) {
	for i := range s.spots {
		if s.spots[i].ID == id {
			return &s.spots[i], nil
		}
	}
	return nil, assert.AnError
}
func (s *stubSpotRepo) List() ([]db.ParkingSpot, error)              { return s.spots, nil }
func (s *stubSpotRepo) ListByOwner(string) ([]db.ParkingSpot, error) { return nil, nil }
func (s *stubSpotRepo) SearchByAddressPrefix(prefix string) ([]db.ParkingSpot, error) {
	var out []db.ParkingSpot
	for _, spot := range s.spots {
		if strings.HasPrefix(strings.ToLower(spot.Address), strings.ToLower(prefix)) {
			out = append(out, spot)
		}
	}
	return out, nil
}

func newSpotHandler() *SpotHandler {
	repo := &stubSpotRepo{spots: []db.ParkingSpot{
		{ID: "a", Address: "12 Main St", HourlyRate: 4, Amenities: []string{"covered"}},
		{ID: "b", Address: "99 Side Ave", HourlyRate: 9, Amenities: []string{"covered", "gated"}},
	}}
	return NewSpotHandler(service.NewSpotService(repo))
}

func TestSearchSpotsHandler(t *testing.T) {
	handler := newSpotHandler()

	t.Run("applies query parameters", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/spots?min_price=5&amenities=gated", nil)
		rec := httptest.NewRecorder()

		handler.SearchSpots(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var spots []entities.SpotResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&spots))
		require.Len(t, spots, 1)
		assert.Equal(t, "b", spots[0].ID)
	})

	t.Run("rejects non-numeric price bound", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/spots?min_price=cheap", nil)
		rec := httptest.NewRecorder()

		handler.SearchSpots(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no filters returns all spots", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/spots", nil)
		rec := httptest.NewRecorder()

		handler.SearchSpots(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var spots []entities.SpotResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&spots))
		assert.Len(t, spots, 2)
	})
}
