package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a missing username means the
// middleware did not run for this route.
func ctxIdentity(c echo.Context) (username string, isAdmin bool, err error) {
	username, _ = c.Get("username").(string)
	if username == "" {
		return "", false, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	isAdmin, _ = c.Get("is_admin").(bool)
	return username, isAdmin, nil
}
