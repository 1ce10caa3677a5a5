package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"spotmarket/internal/db"
)

type ReservationRepository interface {
	Create(res *db.Reservation) error
	GetByID(id string) (*db.Reservation, error)
	GetByStripeSessionID(sessionID string) (*db.Reservation, error)
	GetByPaymentID(paymentID string) (*db.Reservation, error)
	ListByUser(userID string) ([]db.Reservation, error)
	ListByOwner(ownerID string) ([]db.Reservation, error)
	ListBySpot(spotID string) ([]db.Reservation, error)
	UpdateStatus(id, status string) error
	UpdateStatusAndPayment(id, status, paymentStatus, paymentID string) error
}

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(database *sql.DB) ReservationRepository {
	return &reservationRepository{db: database}
}

const reservationColumns = `
	id, spot_id, user_id, owner_user_id, status, start_time, end_time,
	total_price, payment_status, payment_id, stripe_session_id, created_at, updated_at`

func (r *reservationRepository) Create(res *db.Reservation) error {
	query := `
		INSERT INTO reservations
		(id, spot_id, user_id, owner_user_id, status, start_time, end_time, total_price, payment_status, payment_id, stripe_session_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(query,
		res.ID, res.SpotID, res.UserID, res.OwnerUserID, res.Status,
		res.StartTime, res.EndTime, res.TotalPrice, res.PaymentStatus,
		res.PaymentID, res.StripeSessionID, res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting reservation: %w", err)
	}
	return nil
}

func (r *reservationRepository) GetByID(id string) (*db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	return r.scanOne(r.db.QueryRow(query, id), id)
}

func (r *reservationRepository) GetByStripeSessionID(sessionID string) (*db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE stripe_session_id = $1`
	return r.scanOne(r.db.QueryRow(query, sessionID), sessionID)
}

func (r *reservationRepository) GetByPaymentID(paymentID string) (*db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE payment_id = $1`
	return r.scanOne(r.db.QueryRow(query, paymentID), paymentID)
}

func (r *reservationRepository) ListByUser(userID string) ([]db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryReservations(query, userID)
}

func (r *reservationRepository) ListByOwner(ownerID string) ([]db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE owner_user_id = $1 ORDER BY created_at DESC`
	return r.queryReservations(query, ownerID)
}

func (r *reservationRepository) ListBySpot(spotID string) ([]db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE spot_id = $1 ORDER BY start_time`
	return r.queryReservations(query, spotID)
}

func (r *reservationRepository) UpdateStatus(id, status string) error {
	query := `UPDATE reservations SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error updating reservation status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("reservation %s not found", id)
	}
	return nil
}

func (r *reservationRepository) UpdateStatusAndPayment(id, status, paymentStatus, paymentID string) error {
	query := `
		UPDATE reservations
		SET status = $2, payment_status = $3, payment_id = $4, updated_at = $5
		WHERE id = $1`
	result, err := r.db.Exec(query, id, status, paymentStatus, paymentID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error updating reservation payment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("reservation %s not found", id)
	}
	return nil
}

func (r *reservationRepository) scanOne(row *sql.Row, key string) (*db.Reservation, error) {
	var res db.Reservation
	err := row.Scan(
		&res.ID, &res.SpotID, &res.UserID, &res.OwnerUserID, &res.Status,
		&res.StartTime, &res.EndTime, &res.TotalPrice, &res.PaymentStatus,
		&res.PaymentID, &res.StripeSessionID, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reservation %s not found: %w", key, err)
		}
		return nil, fmt.Errorf("error scanning reservation: %w", err)
	}
	return &res, nil
}

func (r *reservationRepository) queryReservations(query string, args ...interface{}) ([]db.Reservation, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()

	var reservations []db.Reservation
	for rows.Next() {
		var res db.Reservation
		err := rows.Scan(
			&res.ID, &res.SpotID, &res.UserID, &res.OwnerUserID, &res.Status,
			&res.StartTime, &res.EndTime, &res.TotalPrice, &res.PaymentStatus,
			&res.PaymentID, &res.StripeSessionID, &res.CreatedAt, &res.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservation rows: %w", err)
	}
	return reservations, nil
}
