package entities

import (
	"time"

	"spotmarket/internal/db"
)

type AvailabilityPeriodRequest struct {
	DayOfWeek *int   `json:"day_of_week,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Recurring bool   `json:"is_recurring"`
}

type SpotRequest struct {
	Title        string                      `json:"title"`
	Description  string                      `json:"description"`
	Address      string                      `json:"address"`
	Lat          float64                     `json:"lat"`
	Lng          float64                     `json:"lng"`
	HourlyRate   float64                     `json:"hourly_rate"`
	DailyRate    float64                     `json:"daily_rate"`
	Availability []AvailabilityPeriodRequest `json:"availability"`
	Amenities    []string                    `json:"amenities"`
	Images       []string                    `json:"images"`
}

type SpotResponse struct {
	ID                  string                      `json:"id"`
	OwnerID             string                      `json:"owner_id"`
	Title               string                      `json:"title"`
	Description         string                      `json:"description"`
	Address             string                      `json:"address"`
	Lat                 float64                     `json:"lat"`
	Lng                 float64                     `json:"lng"`
	HourlyRate          float64                     `json:"hourly_rate"`
	DailyRate           float64                     `json:"daily_rate"`
	Availability        []AvailabilityPeriodRequest `json:"availability"`
	AvailabilitySummary string                      `json:"availability_summary"`
	Amenities           []string                    `json:"amenities"`
	Images              []string                    `json:"images"`
	Rating              float64                     `json:"rating"`
	Reviews             []ReviewResponse            `json:"reviews,omitempty"`
	CreatedAt           time.Time                   `json:"created_at"`
}

// SpotFilters are the optional search predicates. Nil / empty fields
// impose no constraint.
type SpotFilters struct {
	Query     string   `json:"query,omitempty"`
	MinPrice  *float64 `json:"min_price,omitempty"`
	MaxPrice  *float64 `json:"max_price,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func ReviewResponseFrom(r db.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
