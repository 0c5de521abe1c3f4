package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// userID pulls the authenticated user id that the auth middleware stashed on
// the request context. A missing value means the route was wired without the
// middleware, which is treated as an unauthenticated request.
func userID(c echo.Context) (string, error) {
	id, ok := c.Get("user_id").(string)
	if !ok || id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return id, nil
}

// username returns the username claim set by the auth middleware, if any.
func username(c echo.Context) string {
	name, _ := c.Get("username").(string)
	return name
}
