package schema

import "time"

// VenueUnavailabilityCreate is the payload for POST
// /venues/:id/unavailabilities.  The venue id comes from the path.
type VenueUnavailabilityCreate struct {
	StartDatetime *time.Time `json:"start_datetime"`
	EndDatetime   *time.Time `json:"end_datetime"`
	Reason        *string    `json:"reason"`
}

// Validate requires both endpoints and end after start.
func (p *VenueUnavailabilityCreate) Validate() error {
	errs := &ValidationError{}
	if p.StartDatetime == nil {
		errs.add("start_datetime", "required")
	}
	if p.EndDatetime == nil {
		errs.add("end_datetime", "required")
	}
	if p.StartDatetime != nil && p.EndDatetime != nil && !p.EndDatetime.After(*p.StartDatetime) {
		errs.add("end_datetime", "must be after start_datetime")
	}
	if p.Reason != nil && len(*p.Reason) > 255 {
		errs.add("reason", "at most 255 characters")
	}
	return errs.or()
}

// VenueUnavailabilityUpdate is the partial payload for PATCH on a single
// unavailability window.
type VenueUnavailabilityUpdate struct {
	StartDatetime *time.Time `json:"start_datetime"`
	EndDatetime   *time.Time `json:"end_datetime"`
	Reason        *string    `json:"reason"`
}

// Validate checks the range only when both endpoints are supplied together;
// the handler re-checks the merged range against the stored row.
func (p *VenueUnavailabilityUpdate) Validate() error {
	errs := &ValidationError{}
	if p.StartDatetime != nil && p.EndDatetime != nil && !p.EndDatetime.After(*p.StartDatetime) {
		errs.add("end_datetime", "must be after start_datetime")
	}
	if p.Reason != nil && len(*p.Reason) > 255 {
		errs.add("reason", "at most 255 characters")
	}
	return errs.or()
}
