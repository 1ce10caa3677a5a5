package service

import (
	"fmt"
	"strings"
	"time"

	"spotmarket/internal/db"
)

var dayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// SummarizeAvailability classifies a spot's availability periods into a
// short display string. First matching rule wins:
//
//	no periods                     -> "Not available"
//	any one-off period             -> "Check calendar"
//	all 7 days covered             -> "Available daily"
//	exactly Mon-Fri                -> "Weekdays only"
//	exactly Sat+Sun                -> "Weekends only"
//	any other non-empty day set    -> first two day names, "..." if more
func SummarizeAvailability(periods []db.AvailabilityPeriod) string {
	if len(periods) == 0 {
		return "Not available"
	}

	for _, p := range periods {
		if !p.Recurring {
			return "Check calendar"
		}
	}

	var seen [7]bool
	var days []int
	for _, p := range periods {
		if p.DayOfWeek == nil {
			continue
		}
		d := *p.DayOfWeek
		if d < 0 || d > 6 || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}

	weekdays := seen[1] && seen[2] && seen[3] && seen[4] && seen[5]
	weekend := seen[0] && seen[6]

	switch {
	case len(days) == 7:
		return "Available daily"
	case len(days) == 5 && weekdays:
		return "Weekdays only"
	case len(days) == 2 && weekend:
		return "Weekends only"
	case len(days) > 0:
		names := make([]string, 0, 2)
		for _, d := range days[:min(2, len(days))] {
			names = append(names, dayNames[d])
		}
		summary := strings.Join(names, ", ")
		if len(days) > 2 {
			summary += "..."
		}
		return summary
	}

	// Recurring periods without a usable day-of-week. Validation rejects
	// these on write, but the classifier stays total.
	return "Limited availability"
}

// ValidatePeriods checks availability periods before they are stored.
// Recurring periods need a day-of-week in 0..6 and wall-clock times
// like "08:00" with start before end; one-off periods need RFC3339
// timestamps with start before end.
func ValidatePeriods(periods []db.AvailabilityPeriod) error {
	for i, p := range periods {
		if p.Recurring {
			if p.DayOfWeek == nil {
				return fmt.Errorf("availability period %d: recurring period requires day_of_week", i)
			}
			if *p.DayOfWeek < 0 || *p.DayOfWeek > 6 {
				return fmt.Errorf("availability period %d: day_of_week %d out of range 0-6", i, *p.DayOfWeek)
			}
			start, err := time.Parse("15:04", p.StartTime)
			if err != nil {
				return fmt.Errorf("availability period %d: invalid start time %q", i, p.StartTime)
			}
			end, err := time.Parse("15:04", p.EndTime)
			if err != nil {
				return fmt.Errorf("availability period %d: invalid end time %q", i, p.EndTime)
			}
			if !end.After(start) {
				return fmt.Errorf("availability period %d: end time must be after start time", i)
			}
			continue
		}

		start, err := time.Parse(time.RFC3339, p.StartTime)
		if err != nil {
			return fmt.Errorf("availability period %d: invalid start timestamp %q", i, p.StartTime)
		}
		end, err := time.Parse(time.RFC3339, p.EndTime)
		if err != nil {
			return fmt.Errorf("availability period %d: invalid end timestamp %q", i, p.EndTime)
		}
		if !end.After(start) {
			return fmt.Errorf("availability period %d: end must be after start", i)
		}
	}
	return nil
}
