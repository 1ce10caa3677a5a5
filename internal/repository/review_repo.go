package repository

import (
	"database/sql"
	"fmt"

	"spotmarket/internal/db"
)

type ReviewRepository interface {
	Create(review *db.Review) error
	ListBySpot(spotID string) ([]db.Review, error)
	HasUserReviewed(spotID, userID string) (bool, error)
}

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(database *sql.DB) ReviewRepository {
	return &reviewRepository{db: database}
}

func (r *reviewRepository) Create(review *db.Review) error {
	query := `
		INSERT INTO reviews (id, spot_id, user_id, user_name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(query,
		review.ID, review.SpotID, review.UserID, review.UserName,
		review.Rating, review.Comment, review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting review: %w", err)
	}
	return nil
}

func (r *reviewRepository) ListBySpot(spotID string) ([]db.Review, error) {
	query := `
		SELECT id, spot_id, user_id, user_name, rating, comment, created_at
		FROM reviews
		WHERE spot_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query, spotID)
	if err != nil {
		return nil, fmt.Errorf("error querying reviews: %w", err)
	}
	defer rows.Close()

	var reviews []db.Review
	for rows.Next() {
		var rev db.Review
		if err := rows.Scan(&rev.ID, &rev.SpotID, &rev.UserID, &rev.UserName, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning review: %w", err)
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) HasUserReviewed(spotID, userID string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(1) FROM reviews WHERE spot_id = $1 AND user_id = $2`, spotID, userID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("error checking existing review: %w", err)
	}
	return count > 0, nil
}
