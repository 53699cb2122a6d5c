package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/ploshtadka/venue-ms/internal/model"
)

const imageColumns = "id, venue_id, url, is_thumbnail, `order`"

func scanImage(row Scanner) (*model.VenueImage, error) {
	var img model.VenueImage
	if err := row.Scan(&img.ID, &img.VenueID, &img.URL, &img.IsThumbnail, &img.Order); err != nil {
		return nil, err
	}
	return &img, nil
}

// ImageRepo encapsulates all database queries related to venue images.
type ImageRepo struct {
	store *Store[model.VenueImage]
}

// NewImageRepo constructs an ImageRepo with the provided DB handle.
func NewImageRepo(db *sql.DB) *ImageRepo {
	return &ImageRepo{
		store: NewStore(db, "venue_images", imageColumns, scanImage, ErrImageNotFound),
	}
}

// Create inserts an image for a venue.  If the image is flagged as the
// thumbnail, any existing thumbnail for the venue is demoted first; both
// statements run in one transaction so the venue never shows two thumbnails.
func (r *ImageRepo) Create(ctx context.Context, img *model.VenueImage) (err error) {
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

	if img.IsThumbnail {
		if _, err = tx.ExecContext(ctx,
			`UPDATE venue_images SET is_thumbnail = FALSE WHERE venue_id = ? AND is_thumbnail = TRUE`,
			img.VenueID.String()); err != nil {
			return err
		}
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO venue_images (id, venue_id, url, is_thumbnail, `order`) VALUES (?, ?, ?, ?, ?)",
		img.ID, img.VenueID, img.URL, img.IsThumbnail, img.Order)
	return err
}

// GetForVenue fetches an image by id scoped to its venue, so an image id
// from another venue behaves as not found.
func (r *ImageRepo) GetForVenue(ctx context.Context, imageID, venueID uuid.UUID) (*model.VenueImage, error) {
	const q = "SELECT id, venue_id, url, is_thumbnail, `order` FROM venue_images WHERE id = ? AND venue_id = ?"
	img, err := scanImage(r.store.DB().QueryRowContext(ctx, q, imageID.String(), venueID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return img, nil
}

// Update persists the image's mutable fields, demoting a previous thumbnail
// when this one takes the flag.
func (r *ImageRepo) Update(ctx context.Context, img *model.VenueImage) (err error) {
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

	if img.IsThumbnail {
		if _, err = tx.ExecContext(ctx,
			`UPDATE venue_images SET is_thumbnail = FALSE WHERE venue_id = ? AND is_thumbnail = TRUE AND id <> ?`,
			img.VenueID.String(), img.ID.String()); err != nil {
			return err
		}
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE venue_images SET url = ?, is_thumbnail = ?, `order` = ? WHERE id = ? AND venue_id = ?",
		img.URL, img.IsThumbnail, img.Order, img.ID, img.VenueID)
	return err
}

// Delete removes an image scoped to its venue.
func (r *ImageRepo) Delete(ctx context.Context, imageID, venueID uuid.UUID) error {
	return r.store.DeleteWhere(ctx, "id = ? AND venue_id = ?", imageID.String(), venueID.String())
}

// ListForVenue returns a venue's images in display order.
func (r *ImageRepo) ListForVenue(ctx context.Context, venueID uuid.UUID) ([]*model.VenueImage, error) {
	return r.store.ListWhere(ctx, "venue_id = ?", "`order`, id", venueID.String())
}

// Reorder persists the positions from an ordered id list.  Ids not belonging
// to the venue are ignored rather than failing the whole request.
func (r *ImageRepo) Reorder(ctx context.Context, venueID uuid.UUID, orderedIDs []uuid.UUID) (err error) {
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

	for pos, id := range orderedIDs {
		if _, err = tx.ExecContext(ctx,
			"UPDATE venue_images SET `order` = ? WHERE id = ? AND venue_id = ?",
			pos, id.String(), venueID.String()); err != nil {
			return err
		}
	}
	return nil
}

// ThumbnailsFor returns the thumbnail url per venue id for the given venues.
// Venues without a thumbnail are simply absent from the map.
func (r *ImageRepo) ThumbnailsFor(ctx context.Context, venueIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(venueIDs))
	if len(venueIDs) == 0 {
		return out, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(venueIDs)), ",")
	args := make([]any, 0, len(venueIDs))
	for _, id := range venueIDs {
		args = append(args, id.String())
	}
	q := "SELECT venue_id, url FROM venue_images WHERE is_thumbnail = TRUE AND venue_id IN (" + placeholders + ")"
	rows, err := r.store.DB().QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var venueID uuid.UUID
		var url string
		if err := rows.Scan(&venueID, &url); err != nil {
			return nil, err
		}
		out[venueID] = url
	}
	return out, rows.Err()
}
