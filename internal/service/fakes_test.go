package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"spotmarket/internal/db"
)

// In-memory repository fakes used by the service tests. They implement
// the repository interfaces the way the Postgres implementations do,
// minus persistence.

type fakeSpotRepo struct {
	spots []*db.ParkingSpot
}

func (f *fakeSpotRepo) Create(spot *db.ParkingSpot) error {
	f.spots = append(f.spots, spot)
	return nil
}

func (f *fakeSpotRepo) Update(spot *db.ParkingSpot) error {
	for i, s := range f.spots {
		if s.ID == spot.ID {
			f.spots[i] = spot
			return nil
		}
	}
	return fmt.Errorf("spot %s not found", spot.ID)
}

func (f *fakeSpotRepo) Delete(id string) error {
	for i, s := range f.spots {
		if s.ID == id {
			f.spots = append(f.spots[:i], f.spots[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("spot %s not found", id)
}

func (f *fakeSpotRepo) GetByID(id string) (*db.ParkingSpot, error) {
	for _, s := range f.spots {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("spot %s not found", id)
}

func (f *fakeSpotRepo) List() ([]db.ParkingSpot, error) {
	out := make([]db.ParkingSpot, 0, len(f.spots))
	for _, s := range f.spots {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSpotRepo) ListByOwner(ownerID string) ([]db.ParkingSpot, error) {
	var out []db.ParkingSpot
	for _, s := range f.spots {
		if s.OwnerID == ownerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSpotRepo) SearchByAddressPrefix(prefix string) ([]db.ParkingSpot, error) {
	var out []db.ParkingSpot
	for _, s := range f.spots {
		if strings.HasPrefix(strings.ToLower(s.Address), strings.ToLower(prefix)) {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users []*db.User
}

func (f *fakeUserRepo) Create(user *db.User) error {
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*db.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s not found", id)
}

func (f *fakeUserRepo) GetByEmail(email string) (*db.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(user *db.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = user
			return nil
		}
	}
	return fmt.Errorf("user %s not found", user.ID)
}

type fakeReservationRepo struct {
	reservations []*db.Reservation
}

func (f *fakeReservationRepo) Create(res *db.Reservation) error {
	f.reservations = append(f.reservations, res)
	return nil
}

func (f *fakeReservationRepo) GetByID(id string) (*db.Reservation, error) {
	for _, r := range f.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("reservation %s not found", id)
}

func (f *fakeReservationRepo) GetByStripeSessionID(sessionID string) (*db.Reservation, error) {
	for _, r := range f.reservations {
		if r.StripeSessionID == sessionID {
			return r, nil
		}
	}
	return nil, fmt.Errorf("reservation %s not found", sessionID)
}

func (f *fakeReservationRepo) GetByPaymentID(paymentID string) (*db.Reservation, error) {
	for _, r := range f.reservations {
		if r.PaymentID == paymentID {
			return r, nil
		}
	}
	return nil, fmt.Errorf("reservation %s not found", paymentID)
}

func (f *fakeReservationRepo) ListByUser(userID string) ([]db.Reservation, error) {
	var out []db.Reservation
	for _, r := range f.reservations {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) ListByOwner(ownerID string) ([]db.Reservation, error) {
	var out []db.Reservation
	for _, r := range f.reservations {
		if r.OwnerUserID == ownerID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) ListBySpot(spotID string) ([]db.Reservation, error) {
	var out []db.Reservation
	for _, r := range f.reservations {
		if r.SpotID == spotID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) UpdateStatus(id, status string) error {
	res, err := f.GetByID(id)
	if err != nil {
		return err
	}
	res.Status = status
	return nil
}

func (f *fakeReservationRepo) UpdateStatusAndPayment(id, status, paymentStatus, paymentID string) error {
	res, err := f.GetByID(id)
	if err != nil {
		return err
	}
	res.Status = status
	res.PaymentStatus = paymentStatus
	res.PaymentID = paymentID
	return nil
}

type fakeReviewRepo struct {
	reviews []*db.Review
}

func (f *fakeReviewRepo) Create(review *db.Review) error {
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeReviewRepo) ListBySpot(spotID string) ([]db.Review, error) {
	var out []db.Review
	for _, r := range f.reviews {
		if r.SpotID == spotID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) HasUserReviewed(spotID, userID string) (bool, error) {
	for _, r := range f.reviews {
		if r.SpotID == spotID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeJobRepo struct {
	reservations []*db.Reservation
}

func (f *fakeJobRepo) GetConfirmedReservationIDsPastStartTime() ([]string, error) {
	var ids []string
	now := time.Now().UTC()
	for _, r := range f.reservations {
		if r.Status == db.ReservationConfirmed && !r.StartTime.After(now) {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

func (f *fakeJobRepo) GetActiveReservationIDsPastEndTime() ([]string, error) {
	var ids []string
	now := time.Now().UTC()
	for _, r := range f.reservations {
		if r.Status == db.ReservationActive && r.EndTime.Before(now) {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

func (f *fakeJobRepo) UpdateReservationStatuses(ids []string, newStatus string) error {
	for _, id := range ids {
		for _, r := range f.reservations {
			if r.ID == id {
				r.Status = newStatus
			}
		}
	}
	return nil
}

func (f *fakeJobRepo) CancelPendingReservationsOlderThan(before time.Time) (int64, error) {
	var count int64
	for _, r := range f.reservations {
		if r.Status == db.ReservationPending && r.CreatedAt.Before(before) {
			r.Status = db.ReservationCancelled
			count++
		}
	}
	return count, nil
}

type fakePayments struct {
	sessions   int
	refunded   []string
	failCreate bool
	failRefund bool
}

func (f *fakePayments) CreateCheckoutSession(amountCents int64, currency, description, customerEmail string) (string, string, error) {
	if f.failCreate {
		return "", "", errors.New("payment provider unavailable")
	}
	f.sessions++
	sessionID := fmt.Sprintf("cs_test_%d", f.sessions)
	return "https://checkout.test/" + sessionID, sessionID, nil
}

func (f *fakePayments) RefundPaymentBySessionID(sessionID string) error {
	if f.failRefund {
		return errors.New("refund failed")
	}
	f.refunded = append(f.refunded, sessionID)
	return nil
}

type fakeNotifier struct {
	statuses []string
}

func (f *fakeNotifier) NotifyReservationStatus(user *db.User, spot *db.ParkingSpot, reservation *db.Reservation) {
	f.statuses = append(f.statuses, reservation.Status)
}
