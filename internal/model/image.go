package model

import "github.com/google/uuid"

// VenueImage is a single image attached to a venue.  At most one image per
// venue carries IsThumbnail; the repository demotes the previous thumbnail
// when a new one is marked.  Listing order follows the Order column.
type VenueImage struct {
	ID          uuid.UUID `json:"id"`
	VenueID     uuid.UUID `json:"venue_id"`
	URL         string    `json:"url"`
	IsThumbnail bool      `json:"is_thumbnail"`
	Order       int       `json:"order"`
}
