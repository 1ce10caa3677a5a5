package service

import (
	"spotmarket/internal/db"
	"spotmarket/internal/entities"
)

// FilterSpots returns the spots matching every supplied predicate.
// Price bounds are inclusive and compare against the hourly rate;
// requested amenities must all be present on the spot. Absent
// predicate fields impose no constraint.
func FilterSpots(spots []db.ParkingSpot, filters entities.SpotFilters) []db.ParkingSpot {
	result := make([]db.ParkingSpot, 0, len(spots))
	for _, spot := range spots {
		if filters.MinPrice != nil && spot.HourlyRate < *filters.MinPrice {
			continue
		}
		if filters.MaxPrice != nil && spot.HourlyRate > *filters.MaxPrice {
			continue
		}
		if !hasAllAmenities(spot.Amenities, filters.Amenities) {
			continue
		}
		result = append(result, spot)
	}
	return result
}

func hasAllAmenities(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
