package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"spotmarket/internal/db"
)

type SpotRepository interface {
	Create(spot *db.ParkingSpot) error
	Update(spot *db.ParkingSpot) error
	Delete(id string) error
	GetByID(id string) (*db.ParkingSpot, error)
	List() ([]db.ParkingSpot, error)
	ListByOwner(ownerID string) ([]db.ParkingSpot, error)
	SearchByAddressPrefix(prefix string) ([]db.ParkingSpot, error)
}

type spotRepository struct {
	db *sql.DB
}

func NewSpotRepository(database *sql.DB) SpotRepository {
	return &spotRepository{db: database}
}

// spotColumns selects spot rows with the rating aggregate. Rating is
// the mean of the spot's review ratings, 0 when it has none.
const spotColumns = `
	s.id, s.owner_id, s.title, s.description, s.address, s.lat, s.lng,
	s.hourly_rate, s.daily_rate, s.amenities, s.images, s.created_at,
	COALESCE((SELECT AVG(rating)::float8 FROM reviews r WHERE r.spot_id = s.id), 0) AS rating`

func (r *spotRepository) Create(spot *db.ParkingSpot) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO spots (id, owner_id, title, description, address, lat, lng, hourly_rate, daily_rate, amenities, images, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = tx.Exec(query,
		spot.ID, spot.OwnerID, spot.Title, spot.Description, spot.Address,
		spot.Lat, spot.Lng, spot.HourlyRate, spot.DailyRate,
		pq.Array(spot.Amenities), pq.Array(spot.Images), spot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting spot: %w", err)
	}

	if err := insertPeriods(tx, spot.ID, spot.Availability); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *spotRepository) Update(spot *db.ParkingSpot) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE spots
		SET title = $2, description = $3, address = $4, lat = $5, lng = $6,
		    hourly_rate = $7, daily_rate = $8, amenities = $9, images = $10
		WHERE id = $1`
	result, err := tx.Exec(query,
		spot.ID, spot.Title, spot.Description, spot.Address, spot.Lat, spot.Lng,
		spot.HourlyRate, spot.DailyRate, pq.Array(spot.Amenities), pq.Array(spot.Images),
	)
	if err != nil {
		return fmt.Errorf("error updating spot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("spot %s not found", spot.ID)
	}

	if _, err := tx.Exec(`DELETE FROM availability_periods WHERE spot_id = $1`, spot.ID); err != nil {
		return fmt.Errorf("error clearing availability periods: %w", err)
	}
	if err := insertPeriods(tx, spot.ID, spot.Availability); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *spotRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM spots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting spot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("spot %s not found", id)
	}
	return nil
}

func (r *spotRepository) GetByID(id string) (*db.ParkingSpot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots s WHERE s.id = $1`

	var spot db.ParkingSpot
	err := r.db.QueryRow(query, id).Scan(
		&spot.ID, &spot.OwnerID, &spot.Title, &spot.Description, &spot.Address,
		&spot.Lat, &spot.Lng, &spot.HourlyRate, &spot.DailyRate,
		pq.Array(&spot.Amenities), pq.Array(&spot.Images), &spot.CreatedAt, &spot.Rating,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("spot %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying spot: %w", err)
	}

	if err := r.attachPeriods([]*db.ParkingSpot{&spot}); err != nil {
		return nil, err
	}

	reviews, err := r.listReviews(spot.ID)
	if err != nil {
		return nil, err
	}
	spot.Reviews = reviews

	return &spot, nil
}

func (r *spotRepository) List() ([]db.ParkingSpot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots s ORDER BY s.created_at DESC`
	return r.querySpots(query)
}

func (r *spotRepository) ListByOwner(ownerID string) ([]db.ParkingSpot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots s WHERE s.owner_id = $1 ORDER BY s.created_at DESC`
	return r.querySpots(query, ownerID)
}

// SearchByAddressPrefix is the store side of spot search: a
// case-insensitive prefix match on the address column. Price and
// amenity predicates are applied in memory by the service.
func (r *spotRepository) SearchByAddressPrefix(prefix string) ([]db.ParkingSpot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots s WHERE s.address ILIKE $1 || '%' ORDER BY s.created_at DESC`
	return r.querySpots(query, prefix)
}

func (r *spotRepository) querySpots(query string, args ...interface{}) ([]db.ParkingSpot, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying spots: %w", err)
	}
	defer rows.Close()

	var spots []db.ParkingSpot
	for rows.Next() {
		var spot db.ParkingSpot
		err := rows.Scan(
			&spot.ID, &spot.OwnerID, &spot.Title, &spot.Description, &spot.Address,
			&spot.Lat, &spot.Lng, &spot.HourlyRate, &spot.DailyRate,
			pq.Array(&spot.Amenities), pq.Array(&spot.Images), &spot.CreatedAt, &spot.Rating,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning spot: %w", err)
		}
		spots = append(spots, spot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating spot rows: %w", err)
	}

	refs := make([]*db.ParkingSpot, len(spots))
	for i := range spots {
		refs[i] = &spots[i]
	}
	if err := r.attachPeriods(refs); err != nil {
		return nil, err
	}
	return spots, nil
}

func (r *spotRepository) attachPeriods(spots []*db.ParkingSpot) error {
	if len(spots) == 0 {
		return nil
	}
	ids := make([]string, len(spots))
	byID := make(map[string]*db.ParkingSpot, len(spots))
	for i, s := range spots {
		ids[i] = s.ID
		byID[s.ID] = s
	}

	query := `
		SELECT id, spot_id, day_of_week, start_time, end_time, is_recurring
		FROM availability_periods
		WHERE spot_id = ANY($1)
		ORDER BY spot_id, id`
	rows, err := r.db.Query(query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error querying availability periods: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p db.AvailabilityPeriod
		var day sql.NullInt64
		if err := rows.Scan(&p.ID, &p.SpotID, &day, &p.StartTime, &p.EndTime, &p.Recurring); err != nil {
			return fmt.Errorf("error scanning availability period: %w", err)
		}
		if day.Valid {
			d := int(day.Int64)
			p.DayOfWeek = &d
		}
		if spot, ok := byID[p.SpotID]; ok {
			spot.Availability = append(spot.Availability, p)
		}
	}
	return rows.Err()
}

func (r *spotRepository) listReviews(spotID string) ([]db.Review, error) {
	query := `
		SELECT id, spot_id, user_id, user_name, rating, comment, created_at
		FROM reviews
		WHERE spot_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query, spotID)
	if err != nil {
		return nil, fmt.Errorf("error querying reviews: %w", err)
	}
	defer rows.Close()

	var reviews []db.Review
	for rows.Next() {
		var rev db.Review
		if err := rows.Scan(&rev.ID, &rev.SpotID, &rev.UserID, &rev.UserName, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning review: %w", err)
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func insertPeriods(tx *sql.Tx, spotID string, periods []db.AvailabilityPeriod) error {
	query := `
		INSERT INTO availability_periods (id, spot_id, day_of_week, start_time, end_time, is_recurring)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, p := range periods {
		var day sql.NullInt64
		if p.DayOfWeek != nil {
			day = sql.NullInt64{Int64: int64(*p.DayOfWeek), Valid: true}
		}
		if _, err := tx.Exec(query, p.ID, spotID, day, p.StartTime, p.EndTime, p.Recurring); err != nil {
			return fmt.Errorf("error inserting availability period: %w", err)
		}
	}
	return nil
}
