package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly gates admin routes. It must be registered after Auth: it
// reads the is_admin flag Auth injected and rejects everyone else.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isAdmin, _ := c.Get("is_admin").(bool)
			if !isAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
