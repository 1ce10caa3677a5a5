package entities

import "time"

type ReservationRequest struct {
	SpotID    string    `json:"spot_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type ReservationResponse struct {
	ID            string    `json:"id"`
	SpotID        string    `json:"spot_id"`
	UserID        string    `json:"user_id"`
	OwnerUserID   string    `json:"owner_user_id"`
	Status        string    `json:"status"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	TotalPrice    float64   `json:"total_price"`
	PaymentStatus string    `json:"payment_status"`
	PaymentID     string    `json:"payment_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReservationsList struct {
	Total        int                   `json:"total"`
	Reservations []ReservationResponse `json:"reservations"`
}

type PriceQuoteResponse struct {
	SpotID     string    `json:"spot_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	TotalPrice float64   `json:"total_price"`
}

// CheckoutSessionResponse is returned from reservation creation; the
// caller completes payment at the session URL.
type CheckoutSessionResponse struct {
	ReservationID string `json:"reservation_id"`
	SessionID     string `json:"session_id"`
	URL           string `json:"url"`
}

type ReservationEmailData struct {
	UserName           string
	SpotTitle          string
	SpotAddress        string
	Status             string
	StartTimeFormatted string
	EndTimeFormatted   string
	TotalPrice         float64
	CurrentYear        int
}
