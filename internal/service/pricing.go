package service

import (
	"fmt"
	"math"
	"time"
)

// QuoteTotalPrice computes the total price for a reservation interval
// from a spot's hourly and daily rates. Intervals of 24 hours or more
// bill whole days at the daily rate, shorter intervals bill whole
// hours at the hourly rate. Partial units always bill the full unit.
func QuoteTotalPrice(hourlyRate, dailyRate float64, start, end time.Time) (float64, error) {
	if !end.After(start) {
		return 0, fmt.Errorf("end time must be after start time")
	}
	if hourlyRate < 0 || dailyRate < 0 {
		return 0, fmt.Errorf("rates must be non-negative")
	}

	hours := end.Sub(start).Hours()
	if hours >= 24 {
		return math.Ceil(hours/24) * dailyRate, nil
	}
	return math.Ceil(hours) * hourlyRate, nil
}
