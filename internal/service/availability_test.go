package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spotmarket/internal/db"
)

func recurring(day int) db.AvailabilityPeriod {
	d := day
	return db.AvailabilityPeriod{DayOfWeek: &d, StartTime: "08:00", EndTime: "18:00", Recurring: true}
}

func oneOff(start, end string) db.AvailabilityPeriod {
	return db.AvailabilityPeriod{StartTime: start, EndTime: end}
}

func TestSummarizeAvailability(t *testing.T) {
	tests := []struct {
		name    string
		periods []db.AvailabilityPeriod
		want    string
	}{
		{"no periods", nil, "Not available"},
		{"one-off period", []db.AvailabilityPeriod{oneOff("2025-06-01T08:00:00Z", "2025-06-01T18:00:00Z")}, "Check calendar"},
		{"mixed recurring and one-off", []db.AvailabilityPeriod{recurring(1), oneOff("2025-06-01T08:00:00Z", "2025-06-01T18:00:00Z")}, "Check calendar"},
		{"all seven days", []db.AvailabilityPeriod{recurring(0), recurring(1), recurring(2), recurring(3), recurring(4), recurring(5), recurring(6)}, "Available daily"},
		{"weekdays only", []db.AvailabilityPeriod{recurring(1), recurring(2), recurring(3), recurring(4), recurring(5)}, "Weekdays only"},
		{"weekends only", []db.AvailabilityPeriod{recurring(6), recurring(0)}, "Weekends only"},
		{"two arbitrary days", []db.AvailabilityPeriod{recurring(1), recurring(3)}, "Mon, Wed"},
		{"three arbitrary days truncate", []db.AvailabilityPeriod{recurring(1), recurring(3), recurring(5)}, "Mon, Wed..."},
		{"single day", []db.AvailabilityPeriod{recurring(2)}, "Tue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SummarizeAvailability(tt.periods))
		})
	}
}

func TestSummarizeAvailabilityOrderIndependent(t *testing.T) {
	forward := []db.AvailabilityPeriod{recurring(1), recurring(2), recurring(3), recurring(4), recurring(5)}
	reverse := []db.AvailabilityPeriod{recurring(5), recurring(4), recurring(3), recurring(2), recurring(1)}

	assert.Equal(t, "Weekdays only", SummarizeAvailability(forward))
	assert.Equal(t, SummarizeAvailability(forward), SummarizeAvailability(reverse))
}

func TestSummarizeAvailabilityIgnoresDuplicateDays(t *testing.T) {
	// Seven periods but only two distinct days must not classify as daily.
	periods := []db.AvailabilityPeriod{
		recurring(1), recurring(1), recurring(1), recurring(1),
		recurring(3), recurring(3), recurring(3),
	}
	assert.Equal(t, "Mon, Wed", SummarizeAvailability(periods))
}

func TestValidatePeriods(t *testing.T) {
	day := 3

	t.Run("valid recurring", func(t *testing.T) {
		err := ValidatePeriods([]db.AvailabilityPeriod{recurring(2)})
		assert.NoError(t, err)
	})
	t.Run("valid one-off", func(t *testing.T) {
		err := ValidatePeriods([]db.AvailabilityPeriod{oneOff("2025-06-01T08:00:00Z", "2025-06-01T18:00:00Z")})
		assert.NoError(t, err)
	})
	t.Run("recurring without day", func(t *testing.T) {
		err := ValidatePeriods([]db.AvailabilityPeriod{{StartTime: "08:00", EndTime: "18:00", Recurring: true}})
		assert.Error(t, err)
	})
	t.Run("day out of range", func(t *testing.T) {
		seven := 7
		err := ValidatePeriods([]db.AvailabilityPeriod{{DayOfWeek: &seven, StartTime: "08:00", EndTime: "18:00", Recurring: true}})
		assert.Error(t, err)
	})
	t.Run("recurring end before start", func(t *testing.T) {
		err := ValidatePeriods([]db.AvailabilityPeriod{{DayOfWeek: &day, StartTime: "18:00", EndTime: "08:00", Recurring: true}})
		assert.Error(t, err)
	})
	t.Run("one-off unparseable timestamps", func(t *testing.T) {
		err := ValidatePeriods([]db.AvailabilityPeriod{oneOff("not-a-time", "2025-06-01T18:00:00Z")})
		assert.Error(t, err)
	})
	t.Run("one-off end before start", func(t *testing.T) {
		err := ValidatePeriods([]db.AvailabilityPeriod{oneOff("2025-06-01T18:00:00Z", "2025-06-01T08:00:00Z")})
		assert.Error(t, err)
	})
}
