package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spotmarket/internal/db"
	"spotmarket/internal/entities"
)

func newReviewFixture() *ReviewService {
	spots := &fakeSpotRepo{spots: []*db.ParkingSpot{
		{ID: "spot-1", OwnerID: "owner-1", Title: "Central Garage"},
	}}
	users := &fakeUserRepo{users: []*db.User{
		{ID: "driver-1", Name: "Dana", Role: db.RoleDriver},
		{ID: "owner-1", Name: "Omar", Role: db.RoleOwner},
	}}
	return NewReviewService(&fakeReviewRepo{}, spots, users)
}

func TestAddReview(t *testing.T) {
	svc := newReviewFixture()

	review, err := svc.AddReview("spot-1", "driver-1", entities.ReviewRequest{Rating: 4, Comment: "easy access"})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "Dana", review.UserName)

	reviews, err := svc.ListReviews("spot-1")
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestAddReviewRatingBounds(t *testing.T) {
	svc := newReviewFixture()

	_, err := svc.AddReview("spot-1", "driver-1", entities.ReviewRequest{Rating: 0})
	assert.Error(t, err)
	_, err = svc.AddReview("spot-1", "driver-1", entities.ReviewRequest{Rating: 6})
	assert.Error(t, err)
}

func TestAddReviewOwnSpotRejected(t *testing.T) {
	svc := newReviewFixture()

	_, err := svc.AddReview("spot-1", "owner-1", entities.ReviewRequest{Rating: 5})
	assert.Error(t, err)
}

func TestAddReviewOncePerUser(t *testing.T) {
	svc := newReviewFixture()

	_, err := svc.AddReview("spot-1", "driver-1", entities.ReviewRequest{Rating: 4})
	require.NoError(t, err)
	_, err = svc.AddReview("spot-1", "driver-1", entities.ReviewRequest{Rating: 2})
	assert.Error(t, err)
}
