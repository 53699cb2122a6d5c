package model

import (
	"time"

	"github.com/google/uuid"
)

// VenueUnavailability blocks a time window during which a venue cannot be
// booked (maintenance, personal reasons and so on).  StartDatetime always
// precedes EndDatetime; overlapping windows for the same venue are allowed
// and treated as additive by downstream booking services.
type VenueUnavailability struct {
	ID            uuid.UUID `json:"id"`
	VenueID       uuid.UUID `json:"venue_id"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	Reason        *string   `json:"reason"`
}
