package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"

	"spotmarket/internal/db"
)

type JobRepository interface {
	GetConfirmedReservationIDsPastStartTime() ([]string, error)
	GetActiveReservationIDsPastEndTime() ([]string, error)
	UpdateReservationStatuses(ids []string, newStatus string) error
	CancelPendingReservationsOlderThan(before time.Time) (int64, error)
}

type jobRepository struct {
	db *sql.DB
}

func NewJobRepository(database *sql.DB) JobRepository {
	return &jobRepository{db: database}
}

func (r *jobRepository) GetConfirmedReservationIDsPastStartTime() ([]string, error) {
	query := `SELECT id FROM reservations WHERE status = $1 AND start_time <= NOW()`
	return r.queryIDs(query, db.ReservationConfirmed)
}

func (r *jobRepository) GetActiveReservationIDsPastEndTime() ([]string, error) {
	query := `SELECT id FROM reservations WHERE status = $1 AND end_time < NOW()`
	return r.queryIDs(query, db.ReservationActive)
}

func (r *jobRepository) UpdateReservationStatuses(ids []string, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.db.Exec(query, newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating reservation statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d reservations to '%s'", rowsAffected, newStatus)
	}
	return nil
}

// CancelPendingReservationsOlderThan cancels reservations whose payment
// was never completed.
func (r *jobRepository) CancelPendingReservationsOlderThan(before time.Time) (int64, error) {
	query := `UPDATE reservations SET status = $1, updated_at = NOW() WHERE status = $2 AND created_at < $3`
	result, err := r.db.Exec(query, db.ReservationCancelled, db.ReservationPending, before)
	if err != nil {
		return 0, fmt.Errorf("error cancelling stale pending reservations: %w", err)
	}
	return result.RowsAffected()
}

func (r *jobRepository) queryIDs(query string, args ...interface{}) ([]string, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reservation ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning reservation ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}
