package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"github.com/ploshtadka/venue-ms/internal/handler"    // handlers implement the endpoint logic
	"github.com/ploshtadka/venue-ms/internal/middleware" // middleware for identity and caching
)

// Handlers groups every handler the router wires up.  Registration is fully
// static: each route is written out here rather than discovered, so the HTTP
// surface of the service can be read from this one file.
type Handlers struct {
	Venue   *handler.VenueHandler
	Image   *handler.ImageHandler
	Unavail *handler.UnavailabilityHandler
	Health  *handler.HealthHandler
}

// Register wires all routes onto the Echo instance.
//
// Public read endpoints carry a static Cache-Control header (30s for
// collections, 60s for a single venue) and, when Redis is available, the
// response cache.  Mutations go through the identity middleware, which
// resolves the trusted gateway headers; authorization itself happens in the
// handlers because it depends on the target venue's owner.
func Register(e *echo.Echo, h Handlers, identity echo.MiddlewareFunc, cache echo.MiddlewareFunc) {
	// Probes for load balancers and orchestration; never cached.
	e.GET("/health/live", h.Health.Live)
	e.GET("/health/ready", h.Health.Ready)

	// Public browsing.
	e.GET("/venues", h.Venue.ListVenues, middleware.CacheControl(30), cache)
	e.GET("/venues/:id", h.Venue.GetVenue, middleware.CacheControl(60), cache)
	e.GET("/venues/:id/images", h.Image.ListImages, middleware.CacheControl(30), cache)
	e.GET("/venues/:id/unavailabilities", h.Unavail.ListUnavailabilities, middleware.CacheControl(30), cache)

	// Venue mutations.
	e.POST("/venues", h.Venue.CreateVenue, identity)
	e.PATCH("/venues/:id", h.Venue.UpdateVenue, identity)
	e.PATCH("/venues/:id/status", h.Venue.UpdateVenueStatus, identity)
	e.DELETE("/venues/:id", h.Venue.DeleteVenue, identity)

	// Image mutations.
	e.POST("/venues/:id/images", h.Image.AddImage, identity)
	e.PUT("/venues/:id/images/reorder", h.Image.ReorderImages, identity)
	e.PATCH("/venues/:id/images/:imageID", h.Image.UpdateImage, identity)
	e.DELETE("/venues/:id/images/:imageID", h.Image.DeleteImage, identity)

	// Unavailability mutations.
	e.POST("/venues/:id/unavailabilities", h.Unavail.CreateUnavailability, identity)
	e.PATCH("/venues/:id/unavailabilities/:unavailID", h.Unavail.UpdateUnavailability, identity)
	e.DELETE("/venues/:id/unavailabilities/:unavailID", h.Unavail.DeleteUnavailability, identity)
}
