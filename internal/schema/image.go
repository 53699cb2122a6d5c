package schema

import "github.com/google/uuid"

// VenueImageCreate is the payload for POST /venues/:id/images.  The venue id
// comes from the path.
type VenueImageCreate struct {
	URL         string `json:"url"`
	IsThumbnail bool   `json:"is_thumbnail"`
	Order       *int   `json:"order"`
}

// Validate reports every invalid field.
func (p *VenueImageCreate) Validate() error {
	errs := &ValidationError{}
	if p.URL == "" || len(p.URL) > 500 {
		errs.add("url", "required, at most 500 characters")
	}
	if p.Order != nil && *p.Order < 0 {
		errs.add("order", "must be >= 0")
	}
	return errs.or()
}

// VenueImageUpdate is the partial payload for PATCH on a single image.
type VenueImageUpdate struct {
	URL         *string `json:"url"`
	IsThumbnail *bool   `json:"is_thumbnail"`
	Order       *int    `json:"order"`
}

// Validate checks only supplied fields.
func (p *VenueImageUpdate) Validate() error {
	errs := &ValidationError{}
	if p.URL != nil && (*p.URL == "" || len(*p.URL) > 500) {
		errs.add("url", "required, at most 500 characters")
	}
	if p.Order != nil && *p.Order < 0 {
		errs.add("order", "must be >= 0")
	}
	return errs.or()
}

// ImageReorder is the payload for PUT /venues/:id/images/reorder: the full
// list of image ids in their new display order.
type ImageReorder struct {
	OrderedIDs []uuid.UUID `json:"ordered_ids"`
}

// Validate requires at least one id.
func (p *ImageReorder) Validate() error {
	errs := &ValidationError{}
	if len(p.OrderedIDs) == 0 {
		errs.add("ordered_ids", "must not be empty")
	}
	return errs.or()
}
