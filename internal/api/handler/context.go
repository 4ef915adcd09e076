package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// identity is the authenticated caller, as injected by the Auth middleware.
type identity struct {
	UserID      string
	Email       string
	DisplayName string
}

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a missing user id means the middleware
// did not run (or the token carried no subject), so the request is rejected
// rather than passed on with an empty owner scope.
func ctxIdentity(c echo.Context) (identity, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get("email").(string)
	displayName, _ := c.Get("display_name").(string)

	return identity{UserID: userID, Email: email, DisplayName: displayName}, nil
}
