package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"spotmarket/internal/db"
	"spotmarket/internal/entities"
	"spotmarket/internal/repository"
)

type ReviewService struct {
	Repo  repository.ReviewRepository
	Spots repository.SpotRepository
	Users repository.UserRepository
}

func NewReviewService(repo repository.ReviewRepository, spots repository.SpotRepository, users repository.UserRepository) *ReviewService {
	return &ReviewService{Repo: repo, Spots: spots, Users: users}
}

// AddReview stores a review for a spot. The spot's aggregate rating is
// derived from its reviews at read time, so no recomputation happens
// here.
func (s *ReviewService) AddReview(spotID, userID string, req entities.ReviewRequest) (*entities.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5, got %d", req.Rating)
	}

	spot, err := s.Spots.GetByID(spotID)
	if err != nil {
		return nil, err
	}
	if spot.OwnerID == userID {
		return nil, errors.New("owners cannot review their own spot")
	}

	user, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	reviewed, err := s.Repo.HasUserReviewed(spotID, userID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, errors.New("user has already reviewed this spot")
	}

	review := &db.Review{
		ID:        uuid.NewString(),
		SpotID:    spotID,
		UserID:    userID,
		UserName:  user.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(review); err != nil {
		return nil, err
	}

	resp := entities.ReviewResponseFrom(*review)
	return &resp, nil
}

func (s *ReviewService) ListReviews(spotID string) ([]entities.ReviewResponse, error) {
	reviews, err := s.Repo.ListBySpot(spotID)
	if err != nil {
		return nil, err
	}
	responses := make([]entities.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		responses = append(responses, entities.ReviewResponseFrom(r))
	}
	return responses, nil
}
