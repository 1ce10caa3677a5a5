package service

import (
	"fmt"
	"log"
	"time"

	"spotmarket/internal/db"
	"spotmarket/internal/repository"
)

type JobService struct {
	Repo repository.JobRepository

	// PendingTTL is how long an unpaid pending reservation may live
	// before the sweep cancels it.
	PendingTTL time.Duration
}

func NewJobService(repo repository.JobRepository) *JobService {
	return &JobService{Repo: repo, PendingTTL: time.Hour}
}

// AdvanceReservationLifecycle moves confirmed reservations past their
// start time to active, and active reservations past their end time to
// completed.
func (s *JobService) AdvanceReservationLifecycle() error {
	startedIDs, err := s.Repo.GetConfirmedReservationIDsPastStartTime()
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed reservations past start time: %w", err)
	}
	if len(startedIDs) > 0 {
		log.Printf("Cron Job: marking %d reservations as '%s'", len(startedIDs), db.ReservationActive)
		if err := s.Repo.UpdateReservationStatuses(startedIDs, db.ReservationActive); err != nil {
			return fmt.Errorf("cron job: failed to activate reservations: %w", err)
		}
	}

	endedIDs, err := s.Repo.GetActiveReservationIDsPastEndTime()
	if err != nil {
		return fmt.Errorf("cron job: failed to get active reservations past end time: %w", err)
	}
	if len(endedIDs) > 0 {
		log.Printf("Cron Job: marking %d reservations as '%s'", len(endedIDs), db.ReservationCompleted)
		if err := s.Repo.UpdateReservationStatuses(endedIDs, db.ReservationCompleted); err != nil {
			return fmt.Errorf("cron job: failed to complete reservations: %w", err)
		}
	}
	return nil
}

// CancelStalePendingReservations cancels pending reservations whose
// checkout was never completed.
func (s *JobService) CancelStalePendingReservations() error {
	cutoff := time.Now().UTC().Add(-s.PendingTTL)
	count, err := s.Repo.CancelPendingReservationsOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("cron job: failed to cancel stale pending reservations: %w", err)
	}
	if count > 0 {
		log.Printf("Cron Job: cancelled %d stale pending reservations", count)
	}
	return nil
}
