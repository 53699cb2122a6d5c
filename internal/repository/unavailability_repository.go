package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/ploshtadka/venue-ms/internal/model"
)

const unavailabilityColumns = "id, venue_id, start_datetime, end_datetime, reason"

func scanUnavailability(row Scanner) (*model.VenueUnavailability, error) {
	var u model.VenueUnavailability
	if err := row.Scan(&u.ID, &u.VenueID, &u.StartDatetime, &u.EndDatetime, &u.Reason); err != nil {
		return nil, err
	}
	return &u, nil
}

// UnavailabilityRepo encapsulates all database queries related to venue
// unavailability windows.  Overlapping windows are allowed; downstream
// booking services treat them as additive.
type UnavailabilityRepo struct {
	store *Store[model.VenueUnavailability]
}

// NewUnavailabilityRepo constructs an UnavailabilityRepo with the provided
// DB handle.
func NewUnavailabilityRepo(db *sql.DB) *UnavailabilityRepo {
	return &UnavailabilityRepo{
		store: NewStore(db, "venue_unavailabilities", unavailabilityColumns,
			scanUnavailability, ErrUnavailabilityNotFound),
	}
}

// Create inserts an unavailability window for a venue.
func (r *UnavailabilityRepo) Create(ctx context.Context, u *model.VenueUnavailability) error {
	const q = `INSERT INTO venue_unavailabilities (id, venue_id, start_datetime, end_datetime, reason)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.store.DB().ExecContext(ctx, q, u.ID, u.VenueID, u.StartDatetime, u.EndDatetime, u.Reason)
	return err
}

// GetForVenue fetches a window by id scoped to its venue.
func (r *UnavailabilityRepo) GetForVenue(ctx context.Context, id, venueID uuid.UUID) (*model.VenueUnavailability, error) {
	const q = `SELECT id, venue_id, start_datetime, end_datetime, reason
		FROM venue_unavailabilities WHERE id = ? AND venue_id = ?`
	u, err := scanUnavailability(r.store.DB().QueryRowContext(ctx, q, id.String(), venueID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnavailabilityNotFound
		}
		return nil, err
	}
	return u, nil
}

// Update persists the window's fields, scoped to its venue.
func (r *UnavailabilityRepo) Update(ctx context.Context, u *model.VenueUnavailability) error {
	const q = `UPDATE venue_unavailabilities
		SET start_datetime = ?, end_datetime = ?, reason = ?
		WHERE id = ? AND venue_id = ?`
	_, err := r.store.DB().ExecContext(ctx, q, u.StartDatetime, u.EndDatetime, u.Reason, u.ID, u.VenueID)
	return err
}

// Delete removes a window scoped to its venue.
func (r *UnavailabilityRepo) Delete(ctx context.Context, id, venueID uuid.UUID) error {
	return r.store.DeleteWhere(ctx, "id = ? AND venue_id = ?", id.String(), venueID.String())
}

// ListForVenue returns a venue's windows ordered by start time.
func (r *UnavailabilityRepo) ListForVenue(ctx context.Context, venueID uuid.UUID) ([]*model.VenueUnavailability, error) {
	return r.store.ListWhere(ctx, "venue_id = ?", "start_datetime, id", venueID.String())
}
