package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VenueStatus is the lifecycle state of a venue.  New venues always start as
// StatusPending; only administrative callers may move them out of it.
type VenueStatus string

const (
	StatusPending   VenueStatus = "pending"
	StatusActive    VenueStatus = "active"
	StatusRejected  VenueStatus = "rejected"
	StatusSuspended VenueStatus = "suspended"
)

// ValidStatus reports whether s is one of the known venue statuses.
func ValidStatus(s VenueStatus) bool {
	switch s {
	case StatusPending, StatusActive, StatusRejected, StatusSuspended:
		return true
	}
	return false
}

// Known sport type tokens.  Stored as a JSON array of strings; the "other"
// token is the escape hatch for anything not listed.
const (
	SportFootball   = "football"
	SportBasketball = "basketball"
	SportTennis     = "tennis"
	SportVolleyball = "volleyball"
	SportSwimming   = "swimming"
	SportGym        = "gym"
	SportPadel      = "padel"
	SportOther      = "other"
)

// ValidSportType reports whether t is a known sport type token.
func ValidSportType(t string) bool {
	switch t {
	case SportFootball, SportBasketball, SportTennis, SportVolleyball,
		SportSwimming, SportGym, SportPadel, SportOther:
		return true
	}
	return false
}

// StringList is a []string persisted as a JSON array column.
type StringList []string

// Value implements driver.Valuer.  A nil list is stored as an empty array so
// the column never holds SQL NULL.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	return string(b), err
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]string)(l))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(l))
	}
	return fmt.Errorf("cannot scan %T into StringList", src)
}

// DayHours is the open/close pair for a single weekday.  Times are "HH:MM"
// strings in the venue's local time.
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// WeeklyHours maps weekday index "0"–"6" (0 = Monday) to that day's hours.
// A nil value means the venue is closed that day.  Persisted as a JSON
// object column.
type WeeklyHours map[string]*DayHours

// Value implements driver.Valuer.
func (w WeeklyHours) Value() (driver.Value, error) {
	if w == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]*DayHours(w))
	return string(b), err
}

// Scan implements sql.Scanner.
func (w *WeeklyHours) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*w = WeeklyHours{}
		return nil
	case []byte:
		return json.Unmarshal(v, (*map[string]*DayHours)(w))
	case string:
		return json.Unmarshal([]byte(v), (*map[string]*DayHours)(w))
	}
	return fmt.Errorf("cannot scan %T into WeeklyHours", src)
}

// Venue is a sports venue record as persisted in the venues table.  The
// struct doubles as the full API representation: aggregate fields (rating,
// review and booking counters) are maintained by other services and exposed
// read-only here.
type Venue struct {
	ID          uuid.UUID   `json:"id"`
	OwnerID     uuid.UUID   `json:"owner_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	SportTypes  StringList  `json:"sport_types"`
	Status      VenueStatus `json:"status"`

	Address   string   `json:"address"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	PricePerHour float64 `json:"price_per_hour"`
	Currency     string  `json:"currency"`

	Capacity           int        `json:"capacity"`
	IsIndoor           bool       `json:"is_indoor"`
	HasParking         bool       `json:"has_parking"`
	HasChangingRooms   bool       `json:"has_changing_rooms"`
	HasShowers         bool       `json:"has_showers"`
	HasEquipmentRental bool       `json:"has_equipment_rental"`
	Amenities          StringList `json:"amenities"`

	WorkingHours WeeklyHours `json:"working_hours"`

	Rating        float64 `json:"rating"`
	TotalReviews  int     `json:"total_reviews"`
	TotalBookings int     `json:"total_bookings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Loaded relations; populated on single-venue reads only.
	Images           []VenueImage          `json:"images"`
	Unavailabilities []VenueUnavailability `json:"unavailabilities"`
}
