package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"spotmarket/internal/db"
	"spotmarket/internal/entities"
	"spotmarket/internal/repository"
)

var ErrNotSpotOwner = errors.New("spot does not belong to this user")

type SpotService struct {
	Repo repository.SpotRepository
}

func NewSpotService(repo repository.SpotRepository) *SpotService {
	return &SpotService{Repo: repo}
}

func (s *SpotService) CreateSpot(ownerID string, req entities.SpotRequest) (*entities.SpotResponse, error) {
	spot, err := spotFromRequest(req)
	if err != nil {
		return nil, err
	}
	spot.ID = uuid.NewString()
	spot.OwnerID = ownerID
	spot.CreatedAt = time.Now().UTC()
	for i := range spot.Availability {
		spot.Availability[i].ID = uuid.NewString()
		spot.Availability[i].SpotID = spot.ID
	}

	if err := s.Repo.Create(spot); err != nil {
		return nil, err
	}
	resp := SpotResponseFrom(spot)
	return &resp, nil
}

func (s *SpotService) UpdateSpot(spotID, ownerID string, req entities.SpotRequest) (*entities.SpotResponse, error) {
	existing, err := s.Repo.GetByID(spotID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, ErrNotSpotOwner
	}

	spot, err := spotFromRequest(req)
	if err != nil {
		return nil, err
	}
	spot.ID = existing.ID
	spot.OwnerID = existing.OwnerID
	spot.CreatedAt = existing.CreatedAt
	spot.Rating = existing.Rating
	spot.Reviews = existing.Reviews
	for i := range spot.Availability {
		spot.Availability[i].ID = uuid.NewString()
		spot.Availability[i].SpotID = spot.ID
	}

	if err := s.Repo.Update(spot); err != nil {
		return nil, err
	}
	resp := SpotResponseFrom(spot)
	return &resp, nil
}

func (s *SpotService) DeleteSpot(spotID, ownerID string) error {
	existing, err := s.Repo.GetByID(spotID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return ErrNotSpotOwner
	}
	return s.Repo.Delete(spotID)
}

func (s *SpotService) GetSpot(spotID string) (*entities.SpotResponse, error) {
	spot, err := s.Repo.GetByID(spotID)
	if err != nil {
		return nil, err
	}
	resp := SpotResponseFrom(spot)
	return &resp, nil
}

func (s *SpotService) ListSpotsByOwner(ownerID string) ([]entities.SpotResponse, error) {
	spots, err := s.Repo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return spotResponses(spots), nil
}

// SearchSpots runs the address prefix match in the store and applies
// the price and amenity predicates in memory over the result.
func (s *SpotService) SearchSpots(filters entities.SpotFilters) ([]entities.SpotResponse, error) {
	var (
		spots []db.ParkingSpot
		err   error
	)
	if q := strings.TrimSpace(filters.Query); q != "" {
		spots, err = s.Repo.SearchByAddressPrefix(q)
	} else {
		spots, err = s.Repo.List()
	}
	if err != nil {
		return nil, err
	}
	return spotResponses(FilterSpots(spots, filters)), nil
}

func spotFromRequest(req entities.SpotRequest) (*db.ParkingSpot, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.New("title is required")
	}
	if req.HourlyRate < 0 || req.DailyRate < 0 {
		return nil, errors.New("rates must be non-negative")
	}

	periods := make([]db.AvailabilityPeriod, 0, len(req.Availability))
	for _, p := range req.Availability {
		periods = append(periods, db.AvailabilityPeriod{
			DayOfWeek: p.DayOfWeek,
			StartTime: p.StartTime,
			EndTime:   p.EndTime,
			Recurring: p.Recurring,
		})
	}
	if err := ValidatePeriods(periods); err != nil {
		return nil, fmt.Errorf("invalid availability: %w", err)
	}

	return &db.ParkingSpot{
		Title:        req.Title,
		Description:  req.Description,
		Address:      req.Address,
		Lat:          req.Lat,
		Lng:          req.Lng,
		HourlyRate:   req.HourlyRate,
		DailyRate:    req.DailyRate,
		Availability: periods,
		Amenities:    req.Amenities,
		Images:       req.Images,
	}, nil
}

func SpotResponseFrom(spot *db.ParkingSpot) entities.SpotResponse {
	periods := make([]entities.AvailabilityPeriodRequest, 0, len(spot.Availability))
	for _, p := range spot.Availability {
		periods = append(periods, entities.AvailabilityPeriodRequest{
			DayOfWeek: p.DayOfWeek,
			StartTime: p.StartTime,
			EndTime:   p.EndTime,
			Recurring: p.Recurring,
		})
	}
	reviews := make([]entities.ReviewResponse, 0, len(spot.Reviews))
	for _, r := range spot.Reviews {
		reviews = append(reviews, entities.ReviewResponseFrom(r))
	}
	return entities.SpotResponse{
		ID:                  spot.ID,
		OwnerID:             spot.OwnerID,
		Title:               spot.Title,
		Description:         spot.Description,
		Address:             spot.Address,
		Lat:                 spot.Lat,
		Lng:                 spot.Lng,
		HourlyRate:          spot.HourlyRate,
		DailyRate:           spot.DailyRate,
		Availability:        periods,
		AvailabilitySummary: SummarizeAvailability(spot.Availability),
		Amenities:           spot.Amenities,
		Images:              spot.Images,
		Rating:              spot.Rating,
		Reviews:             reviews,
		CreatedAt:           spot.CreatedAt,
	}
}

func spotResponses(spots []db.ParkingSpot) []entities.SpotResponse {
	responses := make([]entities.SpotResponse, 0, len(spots))
	for i := range spots {
		responses = append(responses, SpotResponseFrom(&spots[i]))
	}
	return responses
}
