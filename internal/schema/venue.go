package schema

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ploshtadka/venue-ms/internal/model"
)

// validateWorkingHours checks weekday keys and open/close pairs.  Keys must
// be "0"–"6" (0 = Monday); a nil value means closed that day.
func validateWorkingHours(w model.WeeklyHours, errs *ValidationError) {
	for key, hours := range w {
		if len(key) != 1 || key[0] < '0' || key[0] > '6' {
			errs.add("working_hours", "invalid day key '"+key+"'; must be '0'-'6'")
			continue
		}
		if hours == nil {
			continue // closed that day
		}
		open, errOpen := time.Parse("15:04", hours.Open)
		if errOpen != nil {
			errs.add("working_hours", "day "+key+": open must be HH:MM")
		}
		closing, errClose := time.Parse("15:04", hours.Close)
		if errClose != nil {
			errs.add("working_hours", "day "+key+": close must be HH:MM")
		}
		if errOpen == nil && errClose == nil && !closing.After(open) {
			errs.add("working_hours", "day "+key+": close time must be after open time")
		}
	}
}

// dedupeSportTypes removes duplicates while preserving the first occurrence
// of each token, and validates every token against the known set.
func dedupeSportTypes(in model.StringList, errs *ValidationError) model.StringList {
	out := make(model.StringList, 0, len(in))
	seen := map[string]bool{}
	for _, t := range in {
		if !model.ValidSportType(t) {
			errs.add("sport_types", "unknown sport type '"+t+"'")
			continue
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// validateCurrency uppercases and checks the 3-letter currency code.
func validateCurrency(c string, errs *ValidationError) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if len(c) != 3 {
		errs.add("currency", "must be a 3-letter code")
	}
	return c
}

// VenueCreate is the payload for POST /venues.  The owner id is injected
// from the authenticated identity, never accepted from the client, and the
// status always starts as pending.
type VenueCreate struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	SportTypes  model.StringList `json:"sport_types"`

	Address   string   `json:"address"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	PricePerHour *float64 `json:"price_per_hour"`
	Currency     string   `json:"currency"`

	Capacity           *int             `json:"capacity"`
	IsIndoor           bool             `json:"is_indoor"`
	HasParking         bool             `json:"has_parking"`
	HasChangingRooms   bool             `json:"has_changing_rooms"`
	HasShowers         bool             `json:"has_showers"`
	HasEquipmentRental bool             `json:"has_equipment_rental"`
	Amenities          model.StringList `json:"amenities"`

	WorkingHours model.WeeklyHours `json:"working_hours"`
}

// Validate normalizes the payload in place and reports every invalid field.
func (p *VenueCreate) Validate() error {
	errs := &ValidationError{}

	p.Name = strings.TrimSpace(p.Name)
	if len(p.Name) < 2 || len(p.Name) > 255 {
		errs.add("name", "must be between 2 and 255 characters")
	}
	if len(strings.TrimSpace(p.Description)) < 10 {
		errs.add("description", "must be at least 10 characters")
	}
	p.SportTypes = dedupeSportTypes(p.SportTypes, errs)

	if p.Address == "" || len(p.Address) > 500 {
		errs.add("address", "required, at most 500 characters")
	}
	if p.City == "" || len(p.City) > 100 {
		errs.add("city", "required, at most 100 characters")
	}
	if p.Latitude != nil && (*p.Latitude < -90 || *p.Latitude > 90) {
		errs.add("latitude", "must be between -90 and 90")
	}
	if p.Longitude != nil && (*p.Longitude < -180 || *p.Longitude > 180) {
		errs.add("longitude", "must be between -180 and 180")
	}

	if p.PricePerHour == nil || *p.PricePerHour < 0 {
		errs.add("price_per_hour", "required, must be >= 0")
	}
	if p.Currency == "" {
		p.Currency = "EUR"
	}
	p.Currency = validateCurrency(p.Currency, errs)

	if p.Capacity != nil && *p.Capacity < 1 {
		errs.add("capacity", "must be >= 1")
	}
	validateWorkingHours(p.WorkingHours, errs)

	return errs.or()
}

// ToModel builds the persisted venue from a validated payload.  New venues
// always enter the pending state.
func (p *VenueCreate) ToModel(ownerID uuid.UUID) *model.Venue {
	capacity := 1
	if p.Capacity != nil {
		capacity = *p.Capacity
	}
	var price float64
	if p.PricePerHour != nil {
		price = *p.PricePerHour
	}
	amenities := p.Amenities
	if amenities == nil {
		amenities = model.StringList{}
	}
	hours := p.WorkingHours
	if hours == nil {
		hours = model.WeeklyHours{}
	}
	return &model.Venue{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		Name:               p.Name,
		Description:        p.Description,
		SportTypes:         p.SportTypes,
		Status:             model.StatusPending,
		Address:            p.Address,
		City:               p.City,
		Latitude:           p.Latitude,
		Longitude:          p.Longitude,
		PricePerHour:       price,
		Currency:           p.Currency,
		Capacity:           capacity,
		IsIndoor:           p.IsIndoor,
		HasParking:         p.HasParking,
		HasChangingRooms:   p.HasChangingRooms,
		HasShowers:         p.HasShowers,
		HasEquipmentRental: p.HasEquipmentRental,
		Amenities:          amenities,
		WorkingHours:       hours,
	}
}

// VenueUpdate is the partial payload for PATCH /venues/:id.  Every field is
// optional; only supplied fields are applied.  Status changes go through the
// dedicated admin endpoint, never this one.
type VenueUpdate struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	SportTypes  *model.StringList `json:"sport_types"`

	Address   *string  `json:"address"`
	City      *string  `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	PricePerHour *float64 `json:"price_per_hour"`
	Currency     *string  `json:"currency"`

	Capacity           *int              `json:"capacity"`
	IsIndoor           *bool             `json:"is_indoor"`
	HasParking         *bool             `json:"has_parking"`
	HasChangingRooms   *bool             `json:"has_changing_rooms"`
	HasShowers         *bool             `json:"has_showers"`
	HasEquipmentRental *bool             `json:"has_equipment_rental"`
	Amenities          *model.StringList `json:"amenities"`

	WorkingHours *model.WeeklyHours `json:"working_hours"`
}

// Validate checks only supplied fields, normalizing them in place.
func (p *VenueUpdate) Validate() error {
	errs := &ValidationError{}

	if p.Name != nil {
		*p.Name = strings.TrimSpace(*p.Name)
		if len(*p.Name) < 2 || len(*p.Name) > 255 {
			errs.add("name", "must be between 2 and 255 characters")
		}
	}
	if p.Description != nil && len(strings.TrimSpace(*p.Description)) < 10 {
		errs.add("description", "must be at least 10 characters")
	}
	if p.SportTypes != nil {
		*p.SportTypes = dedupeSportTypes(*p.SportTypes, errs)
	}
	if p.Address != nil && (*p.Address == "" || len(*p.Address) > 500) {
		errs.add("address", "required, at most 500 characters")
	}
	if p.City != nil && (*p.City == "" || len(*p.City) > 100) {
		errs.add("city", "required, at most 100 characters")
	}
	if p.Latitude != nil && (*p.Latitude < -90 || *p.Latitude > 90) {
		errs.add("latitude", "must be between -90 and 90")
	}
	if p.Longitude != nil && (*p.Longitude < -180 || *p.Longitude > 180) {
		errs.add("longitude", "must be between -180 and 180")
	}
	if p.PricePerHour != nil && *p.PricePerHour < 0 {
		errs.add("price_per_hour", "must be >= 0")
	}
	if p.Currency != nil {
		*p.Currency = validateCurrency(*p.Currency, errs)
	}
	if p.Capacity != nil && *p.Capacity < 1 {
		errs.add("capacity", "must be >= 1")
	}
	if p.WorkingHours != nil {
		validateWorkingHours(*p.WorkingHours, errs)
	}

	return errs.or()
}

// ApplyTo merges the supplied fields onto an existing venue.  Omitted fields
// keep their prior values.
func (p *VenueUpdate) ApplyTo(v *model.Venue) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
	if p.SportTypes != nil {
		v.SportTypes = *p.SportTypes
	}
	if p.Address != nil {
		v.Address = *p.Address
	}
	if p.City != nil {
		v.City = *p.City
	}
	if p.Latitude != nil {
		v.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		v.Longitude = p.Longitude
	}
	if p.PricePerHour != nil {
		v.PricePerHour = *p.PricePerHour
	}
	if p.Currency != nil {
		v.Currency = *p.Currency
	}
	if p.Capacity != nil {
		v.Capacity = *p.Capacity
	}
	if p.IsIndoor != nil {
		v.IsIndoor = *p.IsIndoor
	}
	if p.HasParking != nil {
		v.HasParking = *p.HasParking
	}
	if p.HasChangingRooms != nil {
		v.HasChangingRooms = *p.HasChangingRooms
	}
	if p.HasShowers != nil {
		v.HasShowers = *p.HasShowers
	}
	if p.HasEquipmentRental != nil {
		v.HasEquipmentRental = *p.HasEquipmentRental
	}
	if p.Amenities != nil {
		v.Amenities = *p.Amenities
	}
	if p.WorkingHours != nil {
		v.WorkingHours = *p.WorkingHours
	}
}

// VenueStatusUpdate is the admin payload for PATCH /venues/:id/status.
type VenueStatusUpdate struct {
	Status model.VenueStatus `json:"status"`
}

// Validate checks the status is one of the known lifecycle states.
func (p *VenueStatusUpdate) Validate() error {
	errs := &ValidationError{}
	if !model.ValidStatus(p.Status) {
		errs.add("status", "must be one of pending, active, rejected, suspended")
	}
	return errs.or()
}

// VenueListItem is the lightweight projection returned by GET /venues.
// Heavy relations are omitted; Thumbnail carries the url of the image
// flagged as thumbnail, when one exists.
type VenueListItem struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	City         string            `json:"city"`
	SportTypes   model.StringList  `json:"sport_types"`
	Status       model.VenueStatus `json:"status"`
	PricePerHour float64           `json:"price_per_hour"`
	Currency     string            `json:"currency"`
	Capacity     int               `json:"capacity"`
	IsIndoor     bool              `json:"is_indoor"`
	Rating       float64           `json:"rating"`
	TotalReviews int               `json:"total_reviews"`
	Thumbnail    *string           `json:"thumbnail"`
}

// VenueFilters binds the query parameters of GET /venues.
type VenueFilters struct {
	Status      string   `query:"status"`
	OwnerID     string   `query:"owner_id"`
	City        string   `query:"city"`
	SportType   string   `query:"sport_type"`
	IsIndoor    *bool    `query:"is_indoor"`
	HasParking  *bool    `query:"has_parking"`
	MinPrice    *float64 `query:"min_price"`
	MaxPrice    *float64 `query:"max_price"`
	MinCapacity *int     `query:"min_capacity"`

	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

// Validate normalizes pagination and checks filter sanity.
func (f *VenueFilters) Validate() error {
	errs := &ValidationError{}
	if f.Status != "" && !model.ValidStatus(model.VenueStatus(f.Status)) {
		errs.add("status", "unknown status")
	}
	if f.OwnerID != "" {
		if _, err := uuid.Parse(f.OwnerID); err != nil {
			errs.add("owner_id", "must be a UUID")
		}
	}
	if f.SportType != "" && !model.ValidSportType(f.SportType) {
		errs.add("sport_type", "unknown sport type")
	}
	if f.MinPrice != nil && *f.MinPrice < 0 {
		errs.add("min_price", "must be >= 0")
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		errs.add("max_price", "must be >= 0")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		errs.add("min_price", "must be <= max_price")
	}
	if f.MinCapacity != nil && *f.MinCapacity < 1 {
		errs.add("min_capacity", "must be >= 1")
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
	return errs.or()
}
