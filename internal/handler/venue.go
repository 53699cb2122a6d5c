// Package handler contains the HTTP handlers for the venue resource and its
// nested images and unavailability windows.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ploshtadka/venue-ms/internal/auth"
	"github.com/ploshtadka/venue-ms/internal/model"
	"github.com/ploshtadka/venue-ms/internal/queue"
	"github.com/ploshtadka/venue-ms/internal/repository"
	"github.com/ploshtadka/venue-ms/internal/schema"
	queue_publisher "github.com/ploshtadka/venue-ms/internal/service"
)

// VenueHandler bundles the repositories needed by the venue endpoints.
type VenueHandler struct {
	Venues  *repository.VenueRepo
	Images  *repository.ImageRepo
	Unavail *repository.UnavailabilityRepo
}

// NewVenueHandler constructs a VenueHandler and panics if a dependency is nil.
func NewVenueHandler(venues *repository.VenueRepo, images *repository.ImageRepo, unavail *repository.UnavailabilityRepo) *VenueHandler {
	if venues == nil || images == nil || unavail == nil {
		panic("nil repository passed to NewVenueHandler")
	}
	return &VenueHandler{Venues: venues, Images: images, Unavail: unavail}
}

// loadRelations attaches images and unavailability windows to a venue for
// single-resource responses.
func (h *VenueHandler) loadRelations(ctx context.Context, v *model.Venue) error {
	images, err := h.Images.ListForVenue(ctx, v.ID)
	if err != nil {
		return err
	}
	windows, err := h.Unavail.ListForVenue(ctx, v.ID)
	if err != nil {
		return err
	}
	v.Images = make([]model.VenueImage, 0, len(images))
	for _, img := range images {
		v.Images = append(v.Images, *img)
	}
	v.Unavailabilities = make([]model.VenueUnavailability, 0, len(windows))
	for _, w := range windows {
		v.Unavailabilities = append(v.Unavailabilities, *w)
	}
	return nil
}

// ListVenues handles GET /venues: public, filterable, paginated.
func (h *VenueHandler) ListVenues(c echo.Context) error {
	var filters schema.VenueFilters
	if err := c.Bind(&filters); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid query parameters"})
	}
	if err := filters.Validate(); err != nil {
		return validationFailed(c, err)
	}

	f := repository.VenueFilter{
		Status:      model.VenueStatus(filters.Status),
		City:        filters.City,
		SportType:   filters.SportType,
		IsIndoor:    filters.IsIndoor,
		HasParking:  filters.HasParking,
		MinPrice:    filters.MinPrice,
		MaxPrice:    filters.MaxPrice,
		MinCapacity: filters.MinCapacity,
		Limit:       filters.PageSize,
		Offset:      (filters.Page - 1) * filters.PageSize,
	}
	if filters.OwnerID != "" {
		owner, _ := uuid.Parse(filters.OwnerID) // validated above
		f.OwnerID = &owner
	}

	ctx := c.Request().Context()
	venues, err := h.Venues.List(ctx, f)
	if err != nil {
		return storeFailed(c, "venues.list", err)
	}

	ids := make([]uuid.UUID, 0, len(venues))
	for _, v := range venues {
		ids = append(ids, v.ID)
	}
	thumbs, err := h.Images.ThumbnailsFor(ctx, ids)
	if err != nil {
		return storeFailed(c, "venues.thumbnails", err)
	}

	items := make([]schema.VenueListItem, 0, len(venues))
	for _, v := range venues {
		item := schema.VenueListItem{
			ID:           v.ID,
			Name:         v.Name,
			City:         v.City,
			SportTypes:   v.SportTypes,
			Status:       v.Status,
			PricePerHour: v.PricePerHour,
			Currency:     v.Currency,
			Capacity:     v.Capacity,
			IsIndoor:     v.IsIndoor,
			Rating:       v.Rating,
			TotalReviews: v.TotalReviews,
		}
		if url, ok := thumbs[v.ID]; ok {
			item.Thumbnail = &url
		}
		items = append(items, item)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "page": filters.Page, "page_size": filters.PageSize})
}

// GetVenue handles GET /venues/:id: public full representation.
func (h *VenueHandler) GetVenue(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	venue, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return notFound(c, "venue")
		}
		return storeFailed(c, "venues.get", err)
	}
	if err := h.loadRelations(ctx, venue); err != nil {
		return storeFailed(c, "venues.relations", err)
	}
	return c.JSON(http.StatusOK, venue)
}

// CreateVenue handles POST /venues.  The owner id comes from the asserted
// identity, never from the payload, and new venues always start pending.
func (h *VenueHandler) CreateVenue(c echo.Context) error {
	cu, err := currentUser(c)
	if err != nil {
		return err
	}
	var payload schema.VenueCreate
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
	}
	if err := payload.Validate(); err != nil {
		return validationFailed(c, err)
	}
	if !auth.CanWriteVenue(cu, cu.ID) {
		return forbidden(c)
	}

	venue := payload.ToModel(cu.ID)
	ctx := c.Request().Context()
	if err := h.Venues.Create(ctx, venue); err != nil {
		return storeFailed(c, "venues.create", err)
	}
	venue.Images = []model.VenueImage{}
	venue.Unavailabilities = []model.VenueUnavailability{}

	go func() {
		_ = queue_publisher.PublishVenueCreated(context.Background(), queue.VenueCreatedEvent{
			VenueID:    venue.ID.String(),
			OwnerID:    venue.OwnerID.String(),
			Name:       venue.Name,
			City:       venue.City,
			SportTypes: venue.SportTypes,
			Status:     string(venue.Status),
			CreatedAt:  venue.CreatedAt.UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusCreated, venue)
}

// UpdateVenue handles PATCH /venues/:id: partial merge by the owner or an
// admin.  The venue is resolved before authorization — venues are public
// readable, so a 404 here discloses nothing.
func (h *VenueHandler) UpdateVenue(c echo.Context) error {
	cu, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var payload schema.VenueUpdate
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
	}
	if err := payload.Validate(); err != nil {
		return validationFailed(c, err)
	}

	ctx := c.Request().Context()
	venue, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return notFound(c, "venue")
		}
		return storeFailed(c, "venues.get", err)
	}
	if !auth.CanWriteVenue(cu, venue.OwnerID) {
		return forbidden(c)
	}

	payload.ApplyTo(venue)
	if err := h.Venues.Update(ctx, venue); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return notFound(c, "venue")
		}
		return storeFailed(c, "venues.update", err)
	}

	updated, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return storeFailed(c, "venues.get", err)
	}
	if err := h.loadRelations(ctx, updated); err != nil {
		return storeFailed(c, "venues.relations", err)
	}
	return c.JSON(http.StatusOK, updated)
}

// UpdateVenueStatus handles PATCH /venues/:id/status: administrative status
// transitions, ownership irrelevant.
func (h *VenueHandler) UpdateVenueStatus(c echo.Context) error {
	cu, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var payload schema.VenueStatusUpdate
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
	}
	if err := payload.Validate(); err != nil {
		return validationFailed(c, err)
	}

	ctx := c.Request().Context()
	venue, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return notFound(c, "venue")
		}
		return storeFailed(c, "venues.get", err)
	}
	if !auth.CanAdminVenues(cu) {
		return forbidden(c)
	}

	oldStatus := venue.Status
	if err := h.Venues.UpdateStatus(ctx, id, payload.Status); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return notFound(c, "venue")
		}
		return storeFailed(c, "venues.status", err)
	}

	go func() {
		_ = queue_publisher.PublishVenueStatusChanged(context.Background(), queue.VenueStatusChangedEvent{
			VenueID:   venue.ID.String(),
			OwnerID:   venue.OwnerID.String(),
			OldStatus: string(oldStatus),
			NewStatus: string(payload.Status),
			ChangedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	updated, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return storeFailed(c, "venues.get", err)
	}
	if err := h.loadRelations(ctx, updated); err != nil {
		return storeFailed(c, "venues.relations", err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteVenue handles DELETE /venues/:id: owner or admin, cascading over
// images and unavailability windows in one transaction.
func (h *VenueHandler) DeleteVenue(c echo.Context) error {
	cu, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	owner, err := h.Venues.OwnerOf(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return notFound(c, "venue")
		}
		return storeFailed(c, "venues.owner", err)
	}
	if !auth.CanDeleteVenue(cu, owner) {
		return forbidden(c)
	}

	if err := h.Venues.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return notFound(c, "venue")
		}
		return storeFailed(c, "venues.delete", err)
	}

	go func() {
		_ = queue_publisher.PublishVenueDeleted(context.Background(), queue.VenueDeletedEvent{
			VenueID:   id.String(),
			OwnerID:   owner.String(),
			DeletedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.NoContent(http.StatusNoContent)
}
