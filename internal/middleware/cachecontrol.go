package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// CacheControl returns a middleware that attaches a static
// "Cache-Control: public, max-age=N" header to the response.  This is pure
// response shaping for downstream caches; no server-side caching happens
// here.
func CacheControl(maxAgeSeconds int) echo.MiddlewareFunc {
	value := fmt.Sprintf("public, max-age=%d", maxAgeSeconds)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("Cache-Control", value)
			return next(c)
		}
	}
}
