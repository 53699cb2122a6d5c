package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ploshtadka/venue-ms/internal/auth"
	"github.com/ploshtadka/venue-ms/internal/model"
	"github.com/ploshtadka/venue-ms/internal/repository"
	"github.com/ploshtadka/venue-ms/internal/schema"
)

// ImageHandler bundles the repositories needed by the venue image endpoints.
// Every mutation authorizes against the parent venue's owner; the existence
// of the venue is resolved first (venues are public-read, nothing leaks).
type ImageHandler struct {
	Venues *repository.VenueRepo
	Images *repository.ImageRepo
}

// NewImageHandler constructs an ImageHandler and panics if a dependency is nil.
func NewImageHandler(venues *repository.VenueRepo, images *repository.ImageRepo) *ImageHandler {
	if venues == nil || images == nil {
		panic("nil repository passed to NewImageHandler")
	}
	return &ImageHandler{Venues: venues, Images: images}
}

// authorizeVenue resolves the parent venue and checks the caller may manage
// its images.  On failure the response has already been written.
func (h *ImageHandler) authorizeVenue(c echo.Context, venueID uuid.UUID) error {
	cu, err := currentUser(c)
	if err != nil {
		return err
	}
	owner, err := h.Venues.OwnerOf(c.Request().Context(), venueID)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return notFound(c, "venue")
		}
		return storeFailed(c, "venues.owner", err)
	}
	if !auth.CanManageImages(cu, owner) {
		return forbidden(c)
	}
	return nil
}

// ListImages handles GET /venues/:id/images: public, display order.
func (h *ImageHandler) ListImages(c echo.Context) error {
	venueID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if _, err := h.Venues.OwnerOf(ctx, venueID); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return notFound(c, "venue")
		}
		return storeFailed(c, "venues.owner", err)
	}
	images, err := h.Images.ListForVenue(ctx, venueID)
	if err != nil {
		return storeFailed(c, "images.list", err)
	}
	if images == nil {
		images = []*model.VenueImage{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": images})
}

// AddImage handles POST /venues/:id/images.
func (h *ImageHandler) AddImage(c echo.Context) error {
	venueID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var payload schema.VenueImageCreate
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
	}
	if err := payload.Validate(); err != nil {
		return validationFailed(c, err)
	}
	if err := h.authorizeVenue(c, venueID); err != nil {
		return err
	}

	order := 0
	if payload.Order != nil {
		order = *payload.Order
	}
	img := &model.VenueImage{
		ID:          uuid.New(),
		VenueID:     venueID,
		URL:         payload.URL,
		IsThumbnail: payload.IsThumbnail,
		Order:       order,
	}
	if err := h.Images.Create(c.Request().Context(), img); err != nil {
		return storeFailed(c, "images.create", err)
	}
	return c.JSON(http.StatusCreated, img)
}

// UpdateImage handles PATCH /venues/:id/images/:imageID: partial merge.
func (h *ImageHandler) UpdateImage(c echo.Context) error {
	venueID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	imageID, err := pathUUID(c, "imageID")
	if err != nil {
		return err
	}
	var payload schema.VenueImageUpdate
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
	}
	if err := payload.Validate(); err != nil {
		return validationFailed(c, err)
	}
	if err := h.authorizeVenue(c, venueID); err != nil {
		return err
	}

	ctx := c.Request().Context()
	img, err := h.Images.GetForVenue(ctx, imageID, venueID)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return notFound(c, "image")
		}
		return storeFailed(c, "images.get", err)
	}
	if payload.URL != nil {
		img.URL = *payload.URL
	}
	if payload.IsThumbnail != nil {
		img.IsThumbnail = *payload.IsThumbnail
	}
	if payload.Order != nil {
		img.Order = *payload.Order
	}
	if err := h.Images.Update(ctx, img); err != nil {
		return storeFailed(c, "images.update", err)
	}
	return c.JSON(http.StatusOK, img)
}

// DeleteImage handles DELETE /venues/:id/images/:imageID.
func (h *ImageHandler) DeleteImage(c echo.Context) error {
	venueID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	imageID, err := pathUUID(c, "imageID")
	if err != nil {
		return err
	}
	if err := h.authorizeVenue(c, venueID); err != nil {
		return err
	}
	if err := h.Images.Delete(c.Request().Context(), imageID, venueID); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return notFound(c, "image")
		}
		return storeFailed(c, "images.delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReorderImages handles PUT /venues/:id/images/reorder: the client sends the
// full id list in its new display order and receives the updated listing.
func (h *ImageHandler) ReorderImages(c echo.Context) error {
	venueID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var payload schema.ImageReorder
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
	}
	if err := payload.Validate(); err != nil {
		return validationFailed(c, err)
	}
	if err := h.authorizeVenue(c, venueID); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.Images.Reorder(ctx, venueID, payload.OrderedIDs); err != nil {
		return storeFailed(c, "images.reorder", err)
	}
	images, err := h.Images.ListForVenue(ctx, venueID)
	if err != nil {
		return storeFailed(c, "images.list", err)
	}
	if images == nil {
		images = []*model.VenueImage{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": images})
}
