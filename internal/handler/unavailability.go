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

// UnavailabilityHandler bundles the repositories needed by the venue
// unavailability endpoints.
type UnavailabilityHandler struct {
	Venues  *repository.VenueRepo
	Windows *repository.UnavailabilityRepo
}

// NewUnavailabilityHandler constructs an UnavailabilityHandler and panics if
// a dependency is nil.
func NewUnavailabilityHandler(venues *repository.VenueRepo, windows *repository.UnavailabilityRepo) *UnavailabilityHandler {
	if venues == nil || windows == nil {
		panic("nil repository passed to NewUnavailabilityHandler")
	}
	return &UnavailabilityHandler{Venues: venues, Windows: windows}
}

// authorizeVenue resolves the parent venue and checks the caller may manage
// its schedule.  On failure the response has already been written.
func (h *UnavailabilityHandler) authorizeVenue(c echo.Context, venueID uuid.UUID) error {
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
	if !auth.CanManageSchedule(cu, owner) {
		return forbidden(c)
	}
	return nil
}

// ListUnavailabilities handles GET /venues/:id/unavailabilities: public,
// ordered by start time.
func (h *UnavailabilityHandler) ListUnavailabilities(c echo.Context) error {
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
	windows, err := h.Windows.ListForVenue(ctx, venueID)
	if err != nil {
		return storeFailed(c, "unavailabilities.list", err)
	}
	if windows == nil {
		windows = []*model.VenueUnavailability{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": windows})
}

// CreateUnavailability handles POST /venues/:id/unavailabilities.
func (h *UnavailabilityHandler) CreateUnavailability(c echo.Context) error {
	venueID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var payload schema.VenueUnavailabilityCreate
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
	}
	if err := payload.Validate(); err != nil {
		return validationFailed(c, err)
	}
	if err := h.authorizeVenue(c, venueID); err != nil {
		return err
	}

	window := &model.VenueUnavailability{
		ID:            uuid.New(),
		VenueID:       venueID,
		StartDatetime: *payload.StartDatetime,
		EndDatetime:   *payload.EndDatetime,
		Reason:        payload.Reason,
	}
	if err := h.Windows.Create(c.Request().Context(), window); err != nil {
		return storeFailed(c, "unavailabilities.create", err)
	}
	return c.JSON(http.StatusCreated, window)
}

// UpdateUnavailability handles PATCH /venues/:id/unavailabilities/:unavailID.
// The supplied fields are merged onto the stored window; the merged range
// must still end after it starts.
func (h *UnavailabilityHandler) UpdateUnavailability(c echo.Context) error {
	venueID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	windowID, err := pathUUID(c, "unavailID")
	if err != nil {
		return err
	}
	var payload schema.VenueUnavailabilityUpdate
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
	window, err := h.Windows.GetForVenue(ctx, windowID, venueID)
	if err != nil {
		if errors.Is(err, repository.ErrUnavailabilityNotFound) {
			return notFound(c, "unavailability")
		}
		return storeFailed(c, "unavailabilities.get", err)
	}
	if payload.StartDatetime != nil {
		window.StartDatetime = *payload.StartDatetime
	}
	if payload.EndDatetime != nil {
		window.EndDatetime = *payload.EndDatetime
	}
	if payload.Reason != nil {
		window.Reason = payload.Reason
	}
	if !window.EndDatetime.After(window.StartDatetime) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "validation failed",
			"fields": []schema.FieldError{
				{Field: "end_datetime", Message: "must be after start_datetime"},
			},
		})
	}
	if err := h.Windows.Update(ctx, window); err != nil {
		return storeFailed(c, "unavailabilities.update", err)
	}
	return c.JSON(http.StatusOK, window)
}

// DeleteUnavailability handles DELETE /venues/:id/unavailabilities/:unavailID.
func (h *UnavailabilityHandler) DeleteUnavailability(c echo.Context) error {
	venueID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	windowID, err := pathUUID(c, "unavailID")
	if err != nil {
		return err
	}
	if err := h.authorizeVenue(c, venueID); err != nil {
		return err
	}
	if err := h.Windows.Delete(c.Request().Context(), windowID, venueID); err != nil {
		if errors.Is(err, repository.ErrUnavailabilityNotFound) {
			return notFound(c, "unavailability")
		}
		return storeFailed(c, "unavailabilities.delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}
