package db

import "time"

// Reservation lifecycle statuses. A reservation moves
// pending -> confirmed -> active -> completed, or to cancelled
// at any point before completion.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationActive    = "active"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
)

// Payment statuses for a reservation.
const (
	PaymentUnpaid     = "unpaid"
	PaymentProcessing = "processing"
	PaymentPaid       = "paid"
	PaymentRefunded   = "refunded"
)

// User roles.
const (
	RoleOwner  = "owner"
	RoleDriver = "driver"
	RoleBoth   = "both"
)

type User struct {
	ID                  string
	Name                string
	Email               string
	Phone               string
	Role                string
	PasswordHash        string
	ProfileImage        string
	Bio                 string
	PayoutAccountName   string
	PayoutAccountNumber string
	PayoutBankName      string
	CreatedAt           time.Time
}

// AvailabilityPeriod is either a weekly recurring slot (DayOfWeek set,
// StartTime/EndTime are wall-clock strings like "08:00") or a one-off
// absolute interval (StartTime/EndTime are RFC3339 timestamps).
type AvailabilityPeriod struct {
	ID        string
	SpotID    string
	DayOfWeek *int // 0 = Sunday .. 6 = Saturday, set when Recurring
	StartTime string
	EndTime   string
	Recurring bool
}

type ParkingSpot struct {
	ID           string
	OwnerID      string
	Title        string
	Description  string
	Address      string
	Lat          float64
	Lng          float64
	HourlyRate   float64
	DailyRate    float64
	Availability []AvailabilityPeriod
	Amenities    []string
	Images       []string
	Rating       float64 // mean of review ratings, 0 when no reviews
	Reviews      []Review
	CreatedAt    time.Time
}

type Review struct {
	ID        string
	SpotID    string
	UserID    string
	UserName  string
	Rating    int // 1..5
	Comment   string
	CreatedAt time.Time
}

type Reservation struct {
	ID              string
	SpotID          string
	UserID          string
	OwnerUserID     string
	Status          string
	StartTime       time.Time
	EndTime         time.Time
	TotalPrice      float64
	PaymentStatus   string
	PaymentID       string
	StripeSessionID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
