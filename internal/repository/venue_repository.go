package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/ploshtadka/venue-ms/internal/model"
)

// venueColumns is the canonical column list scanned by scanVenue.  Keep the
// two in sync when the schema changes.
const venueColumns = `id, owner_id, name, description, sport_types, status, address, city,
	latitude, longitude, price_per_hour, currency, capacity, is_indoor, has_parking,
	has_changing_rooms, has_showers, has_equipment_rental, amenities, working_hours,
	rating, total_reviews, total_bookings, created_at, updated_at`

func scanVenue(row Scanner) (*model.Venue, error) {
	var v model.Venue
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Name, &v.Description, &v.SportTypes, &v.Status,
		&v.Address, &v.City, &v.Latitude, &v.Longitude, &v.PricePerHour, &v.Currency,
		&v.Capacity, &v.IsIndoor, &v.HasParking, &v.HasChangingRooms, &v.HasShowers,
		&v.HasEquipmentRental, &v.Amenities, &v.WorkingHours,
		&v.Rating, &v.TotalReviews, &v.TotalBookings, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// VenueFilter narrows and paginates venue listings.  Zero values mean "no
// filter"; Limit and Offset are always applied.
type VenueFilter struct {
	Status      model.VenueStatus
	OwnerID     *uuid.UUID
	City        string
	SportType   string
	IsIndoor    *bool
	HasParking  *bool
	MinPrice    *float64
	MaxPrice    *float64
	MinCapacity *int
	Limit       int
	Offset      int
}

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	store *Store[model.Venue]
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{
		store: NewStore(db, "venues", venueColumns, scanVenue, ErrVenueNotFound),
	}
}

// Create inserts a new venue.  Timestamps are assigned by the database, so a
// follow-up SELECT repopulates the record before it is returned to the
// caller.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues
		(id, owner_id, name, description, sport_types, status, address, city,
		 latitude, longitude, price_per_hour, currency, capacity, is_indoor, has_parking,
		 has_changing_rooms, has_showers, has_equipment_rental, amenities, working_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.store.DB().ExecContext(ctx, q,
		v.ID, v.OwnerID, v.Name, v.Description, v.SportTypes, v.Status, v.Address, v.City,
		v.Latitude, v.Longitude, v.PricePerHour, v.Currency, v.Capacity, v.IsIndoor,
		v.HasParking, v.HasChangingRooms, v.HasShowers, v.HasEquipmentRental,
		v.Amenities, v.WorkingHours,
	)
	if err != nil {
		return err
	}
	created, err := r.store.GetByID(ctx, v.ID)
	if err != nil {
		return err
	}
	*v = *created
	return nil
}

// GetByID fetches a venue without its relations.  Used for ownership checks
// and update merges where images and unavailabilities are not needed.
func (r *VenueRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Venue, error) {
	return r.store.GetByID(ctx, id)
}

// OwnerOf returns just the owner id of a venue, or ErrVenueNotFound.
func (r *VenueRepo) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	const q = `SELECT owner_id FROM venues WHERE id = ?`
	var owner uuid.UUID
	if err := r.store.DB().QueryRowContext(ctx, q, id.String()).Scan(&owner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, ErrVenueNotFound
		}
		return uuid.Nil, err
	}
	return owner, nil
}

// Update persists every mutable column of the venue.  updated_at is bumped
// in the same statement so RowsAffected is non-zero whenever the row exists.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues SET
		name = ?, description = ?, sport_types = ?, address = ?, city = ?,
		latitude = ?, longitude = ?, price_per_hour = ?, currency = ?, capacity = ?,
		is_indoor = ?, has_parking = ?, has_changing_rooms = ?, has_showers = ?,
		has_equipment_rental = ?, amenities = ?, working_hours = ?,
		updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
	res, err := r.store.DB().ExecContext(ctx, q,
		v.Name, v.Description, v.SportTypes, v.Address, v.City,
		v.Latitude, v.Longitude, v.PricePerHour, v.Currency, v.Capacity,
		v.IsIndoor, v.HasParking, v.HasChangingRooms, v.HasShowers,
		v.HasEquipmentRental, v.Amenities, v.WorkingHours,
		v.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVenueNotFound
	}
	return nil
}

// UpdateStatus moves a venue to a new lifecycle state.  Authorization is the
// handler's concern; this method performs no ownership check.
func (r *VenueRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.VenueStatus) error {
	const q = `UPDATE venues SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.store.DB().ExecContext(ctx, q, status, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVenueNotFound
	}
	return nil
}

// List returns venues matching the filter in insertion order, paginated.
func (r *VenueRepo) List(ctx context.Context, f VenueFilter) ([]*model.Venue, error) {
	var conds []string
	var args []any
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.OwnerID != nil {
		conds = append(conds, "owner_id = ?")
		args = append(args, f.OwnerID.String())
	}
	if f.City != "" {
		conds = append(conds, "city LIKE CONCAT('%', ?, '%')")
		args = append(args, f.City)
	}
	if f.SportType != "" {
		conds = append(conds, "JSON_CONTAINS(sport_types, JSON_QUOTE(?))")
		args = append(args, f.SportType)
	}
	if f.IsIndoor != nil {
		conds = append(conds, "is_indoor = ?")
		args = append(args, *f.IsIndoor)
	}
	if f.HasParking != nil {
		conds = append(conds, "has_parking = ?")
		args = append(args, *f.HasParking)
	}
	if f.MinPrice != nil {
		conds = append(conds, "price_per_hour >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conds = append(conds, "price_per_hour <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.MinCapacity != nil {
		conds = append(conds, "capacity >= ?")
		args = append(args, *f.MinCapacity)
	}
	where := strings.Join(conds, " AND ")
	order := "created_at, id"
	if f.Limit > 0 {
		order += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}
	return r.store.ListWhere(ctx, where, order, args...)
}

// DeleteCascade removes a venue and its images and unavailability windows in
// one transaction, so a half-deleted venue can never be observed.
func (r *VenueRepo) DeleteCascade(ctx context.Context, id uuid.UUID) (err error) {
	tx, err := r.store.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM venue_unavailabilities WHERE venue_id = ?`, id.String()); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM venue_images WHERE venue_id = ?`, id.String()); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id.String()); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrVenueNotFound
		return err
	}
	return nil
}
