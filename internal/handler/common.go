package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/ploshtadka/venue-ms/internal/auth"
	"github.com/ploshtadka/venue-ms/internal/middleware"
	"github.com/ploshtadka/venue-ms/internal/schema"
)

// errResponded signals that a helper below already wrote the response.  It
// is always non-nil so call sites checking `if err != nil { return err }`
// stop instead of running the mutation behind an already-written 403/404.
// Echo's error handler ignores errors once the response is committed, so
// the sentinel never produces a second body.
var errResponded = errors.New("response already written")

// respond writes the JSON body and returns errResponded so the calling
// handler unwinds immediately.
func respond(c echo.Context, status int, body any) error {
	if err := c.JSON(status, body); err != nil {
		return err
	}
	return errResponded
}

// currentUser pulls the identity the Identity middleware stored in context.
// Handlers behind that middleware can rely on it; the fallback 422 only
// fires when a mutation route was wired without the middleware.
func currentUser(c echo.Context) (*auth.CurrentUser, error) {
	cu, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, respond(c, http.StatusUnprocessableEntity,
			echo.Map{"error": "identity headers missing or malformed"})
	}
	return cu, nil
}

// pathUUID parses a UUID path parameter, responding 404 for garbage ids: a
// non-UUID id cannot name any resource.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, respond(c, http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return id, nil
}

// validationFailed writes the 422 body for a schema.ValidationError, or a
// generic 422 when the error carries no field detail.
func validationFailed(c echo.Context, err error) error {
	var ve *schema.ValidationError
	if errors.As(err, &ve) {
		return respond(c, http.StatusUnprocessableEntity,
			echo.Map{"error": "validation failed", "fields": ve.Fields})
	}
	return respond(c, http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
}

// storeFailed logs a repository failure and answers with an opaque 500.
func storeFailed(c echo.Context, op string, err error) error {
	log.Error().Err(err).Str("op", op).Msg("store failure")
	return respond(c, http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// forbidden is the uniform 403 body; it carries no detail beyond denial.
func forbidden(c echo.Context) error {
	return respond(c, http.StatusForbidden, echo.Map{"error": "forbidden"})
}

// notFound answers 404 naming only the entity class.
func notFound(c echo.Context, entity string) error {
	return respond(c, http.StatusNotFound, echo.Map{"error": entity + " not found"})
}
