package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spotmarket/internal/db"
)

func jobStatuses(repo *fakeJobRepo) map[string]string {
	statuses := make(map[string]string, len(repo.reservations))
	for _, r := range repo.reservations {
		statuses[r.ID] = r.Status
	}
	return statuses
}

func TestAdvanceReservationLifecycle(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakeJobRepo{reservations: []*db.Reservation{
		{ID: "started", Status: db.ReservationConfirmed, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)},
		{ID: "upcoming", Status: db.ReservationConfirmed, StartTime: now.Add(time.Hour), EndTime: now.Add(3 * time.Hour)},
		{ID: "ended", Status: db.ReservationActive, StartTime: now.Add(-3 * time.Hour), EndTime: now.Add(-time.Hour)},
		{ID: "ongoing", Status: db.ReservationActive, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)},
		{ID: "unpaid", Status: db.ReservationPending, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)},
	}}
	svc := NewJobService(repo)

	require.NoError(t, svc.AdvanceReservationLifecycle())

	statuses := jobStatuses(repo)
	assert.Equal(t, db.ReservationActive, statuses["started"], "confirmed past start becomes active")
	assert.Equal(t, db.ReservationConfirmed, statuses["upcoming"], "confirmed before start is untouched")
	assert.Equal(t, db.ReservationCompleted, statuses["ended"], "active past end becomes completed")
	assert.Equal(t, db.ReservationActive, statuses["ongoing"], "active before end is untouched")
	assert.Equal(t, db.ReservationPending, statuses["unpaid"], "pending is not advanced")
}

func TestAdvanceReservationLifecycleNoWork(t *testing.T) {
	svc := NewJobService(&fakeJobRepo{})
	assert.NoError(t, svc.AdvanceReservationLifecycle())
}

func TestCancelStalePendingReservations(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakeJobRepo{reservations: []*db.Reservation{
		{ID: "stale", Status: db.ReservationPending, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "fresh", Status: db.ReservationPending, CreatedAt: now.Add(-10 * time.Minute)},
		{ID: "paid", Status: db.ReservationConfirmed, CreatedAt: now.Add(-2 * time.Hour)},
	}}
	svc := NewJobService(repo)
	require.Equal(t, time.Hour, svc.PendingTTL)

	require.NoError(t, svc.CancelStalePendingReservations())

	statuses := jobStatuses(repo)
	assert.Equal(t, db.ReservationCancelled, statuses["stale"], "pending older than the TTL is cancelled")
	assert.Equal(t, db.ReservationPending, statuses["fresh"], "pending inside the TTL survives")
	assert.Equal(t, db.ReservationConfirmed, statuses["paid"], "only pending reservations are swept")
}
