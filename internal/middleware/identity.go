package middleware // middleware provides shared request processing for handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ploshtadka/venue-ms/internal/auth"
	"github.com/ploshtadka/venue-ms/internal/users"
)

// userKey is the context key under which the resolved identity is stored.
const userKey = "current_user"

// Identity returns a middleware that resolves the trusted gateway headers
// into an auth.CurrentUser and stores it in the request context.  Missing or
// malformed headers are a 422: the gateway rejects unauthenticated traffic
// before it reaches this service, so a bad identity here is a malformed
// request, never an authentication failure — this service does not emit 401.
//
// When a users client is supplied, the asserted account is additionally
// checked for deactivation against the users-ms.  Pass nil to skip the
// lookup (local development, tests).
func Identity(usersClient *users.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header
			cu, err := auth.FromHeaders(
				h.Get(auth.HeaderUserID),
				h.Get(auth.HeaderUsername),
				h.Get(auth.HeaderScopes),
			)
			if err != nil {
				return c.JSON(http.StatusUnprocessableEntity,
					echo.Map{"error": "identity headers missing or malformed"})
			}

			if usersClient != nil {
				switch err := usersClient.CheckActive(c.Request().Context(), cu.ID); {
				case err == nil:
				case errors.Is(err, users.ErrDeactivated):
					return c.JSON(http.StatusForbidden,
						echo.Map{"error": "your account has been deactivated"})
				case errors.Is(err, users.ErrUnreachable):
					return c.JSON(http.StatusServiceUnavailable,
						echo.Map{"error": "users service unreachable"})
				default:
					return c.JSON(http.StatusBadGateway,
						echo.Map{"error": "users service error"})
				}
			}

			c.Set(userKey, cu)
			return next(c)
		}
	}
}

// CurrentUser retrieves the identity stored by the Identity middleware.
func CurrentUser(c echo.Context) (*auth.CurrentUser, bool) {
	cu, ok := c.Get(userKey).(*auth.CurrentUser)
	return cu, ok
}
