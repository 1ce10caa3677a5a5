package service

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"spotmarket/internal/db"
	"spotmarket/internal/entities"
	"spotmarket/internal/repository"
)

var (
	ErrNotReservationParty = errors.New("reservation does not belong to this user")
	ErrAlreadyFinalized    = errors.New("reservation is already completed or cancelled")
	ErrCheckoutFailed      = errors.New("could not create checkout session")
)

type ReservationService struct {
	Repo     repository.ReservationRepository
	Spots    repository.SpotRepository
	Users    repository.UserRepository
	Payments PaymentProvider
	Notifier Notifier

	// RefundNotice is the minimum notice before start time for a paid
	// cancellation to be refunded. Cancellation itself is always allowed.
	RefundNotice time.Duration
}

func NewReservationService(repo repository.ReservationRepository, spots repository.SpotRepository, users repository.UserRepository, payments PaymentProvider, notifier Notifier) *ReservationService {
	return &ReservationService{
		Repo:         repo,
		Spots:        spots,
		Users:        users,
		Payments:     payments,
		Notifier:     notifier,
		RefundNotice: 12 * time.Hour,
	}
}

func (s *ReservationService) QuotePrice(spotID string, start, end time.Time) (*entities.PriceQuoteResponse, error) {
	spot, err := s.Spots.GetByID(spotID)
	if err != nil {
		return nil, err
	}
	price, err := QuoteTotalPrice(spot.HourlyRate, spot.DailyRate, start, end)
	if err != nil {
		return nil, err
	}
	return &entities.PriceQuoteResponse{
		SpotID:     spotID,
		StartTime:  start,
		EndTime:    end,
		TotalPrice: price,
	}, nil
}

// CreateReservation computes the price server-side, opens a Stripe
// checkout session for it and stores the reservation as pending. The
// webhook moves it to confirmed once the session completes.
func (s *ReservationService) CreateReservation(userID string, req entities.ReservationRequest) (*entities.CheckoutSessionResponse, error) {
	spot, err := s.Spots.GetByID(req.SpotID)
	if err != nil {
		return nil, err
	}
	user, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	price, err := QuoteTotalPrice(spot.HourlyRate, spot.DailyRate, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	reservation := &db.Reservation{
		ID:            uuid.NewString(),
		SpotID:        spot.ID,
		UserID:        userID,
		OwnerUserID:   spot.OwnerID,
		Status:        db.ReservationPending,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		TotalPrice:    price,
		PaymentStatus: db.PaymentUnpaid,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	amountCents := int64(math.Round(price * 100))
	description := fmt.Sprintf("Parking at %s", spot.Title)
	sessionURL, sessionID, err := s.Payments.CreateCheckoutSession(amountCents, "usd", description, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	reservation.StripeSessionID = sessionID
	reservation.PaymentStatus = db.PaymentProcessing

	if err := s.Repo.Create(reservation); err != nil {
		log.Printf("Error creating reservation in repository: %v", err)
		return nil, err
	}

	return &entities.CheckoutSessionResponse{
		ReservationID: reservation.ID,
		SessionID:     sessionID,
		URL:           sessionURL,
	}, nil
}

func (s *ReservationService) GetReservation(id, requesterID string) (*entities.ReservationResponse, error) {
	reservation, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if reservation.UserID != requesterID && reservation.OwnerUserID != requesterID {
		return nil, ErrNotReservationParty
	}
	resp := reservationResponseFrom(reservation)
	return &resp, nil
}

// CancelReservation cancels any reservation not yet completed or
// cancelled. Paid reservations are refunded through the payment
// provider when cancelled with enough notice; the refund webhook then
// flips the payment status.
func (s *ReservationService) CancelReservation(id, requesterID string) error {
	reservation, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if reservation.UserID != requesterID && reservation.OwnerUserID != requesterID {
		return ErrNotReservationParty
	}
	if reservation.Status == db.ReservationCompleted || reservation.Status == db.ReservationCancelled {
		return ErrAlreadyFinalized
	}

	if reservation.PaymentStatus == db.PaymentPaid {
		if time.Until(reservation.StartTime) >= s.RefundNotice {
			if err := s.Payments.RefundPaymentBySessionID(reservation.StripeSessionID); err != nil {
				return fmt.Errorf("error refunding payment: %w", err)
			}
		} else {
			log.Printf("Reservation %s cancelled within refund notice window, no refund issued", id)
		}
	}

	if err := s.Repo.UpdateStatus(id, db.ReservationCancelled); err != nil {
		return err
	}
	reservation.Status = db.ReservationCancelled
	s.notify(reservation)
	return nil
}

func (s *ReservationService) ListUserReservations(userID string) (*entities.ReservationsList, error) {
	reservations, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return reservationList(reservations), nil
}

func (s *ReservationService) ListOwnerReservations(ownerID string) (*entities.ReservationsList, error) {
	reservations, err := s.Repo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return reservationList(reservations), nil
}

func (s *ReservationService) ListSpotReservations(spotID, requesterID string) (*entities.ReservationsList, error) {
	spot, err := s.Spots.GetByID(spotID)
	if err != nil {
		return nil, err
	}
	if spot.OwnerID != requesterID {
		return nil, ErrNotSpotOwner
	}
	reservations, err := s.Repo.ListBySpot(spotID)
	if err != nil {
		return nil, err
	}
	return reservationList(reservations), nil
}

// ConfirmPaymentBySessionID marks the reservation behind a completed
// checkout session as confirmed and paid.
func (s *ReservationService) ConfirmPaymentBySessionID(sessionID, paymentID string) error {
	reservation, err := s.Repo.GetByStripeSessionID(sessionID)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdateStatusAndPayment(reservation.ID, db.ReservationConfirmed, db.PaymentPaid, paymentID); err != nil {
		return err
	}
	reservation.Status = db.ReservationConfirmed
	reservation.PaymentStatus = db.PaymentPaid
	reservation.PaymentID = paymentID
	s.notify(reservation)
	return nil
}

// SessionIDForPaymentID resolves the checkout session behind a payment
// reference, for webhook events that only carry the payment intent.
func (s *ReservationService) SessionIDForPaymentID(paymentID string) (string, error) {
	reservation, err := s.Repo.GetByPaymentID(paymentID)
	if err != nil {
		return "", err
	}
	return reservation.StripeSessionID, nil
}

// MarkRefundedBySessionID records a processed refund for a cancelled
// reservation.
func (s *ReservationService) MarkRefundedBySessionID(sessionID string) error {
	reservation, err := s.Repo.GetByStripeSessionID(sessionID)
	if err != nil {
		return err
	}
	return s.Repo.UpdateStatusAndPayment(reservation.ID, db.ReservationCancelled, db.PaymentRefunded, reservation.PaymentID)
}

func (s *ReservationService) notify(reservation *db.Reservation) {
	if s.Notifier == nil {
		return
	}
	user, err := s.Users.GetByID(reservation.UserID)
	if err != nil {
		log.Printf("Could not load user %s for notification: %v", reservation.UserID, err)
		return
	}
	spot, err := s.Spots.GetByID(reservation.SpotID)
	if err != nil {
		log.Printf("Could not load spot %s for notification: %v", reservation.SpotID, err)
		return
	}
	s.Notifier.NotifyReservationStatus(user, spot, reservation)
}

func reservationResponseFrom(res *db.Reservation) entities.ReservationResponse {
	return entities.ReservationResponse{
		ID:            res.ID,
		SpotID:        res.SpotID,
		UserID:        res.UserID,
		OwnerUserID:   res.OwnerUserID,
		Status:        res.Status,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		TotalPrice:    res.TotalPrice,
		PaymentStatus: res.PaymentStatus,
		PaymentID:     res.PaymentID,
		CreatedAt:     res.CreatedAt,
	}
}

func reservationList(reservations []db.Reservation) *entities.ReservationsList {
	list := &entities.ReservationsList{
		Total:        len(reservations),
		Reservations: make([]entities.ReservationResponse, 0, len(reservations)),
	}
	for i := range reservations {
		list.Reservations = append(list.Reservations, reservationResponseFrom(&reservations[i]))
	}
	return list
}
