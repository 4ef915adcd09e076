package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storelane/admin-panel/internal/core/ports"
)

// Auth is the session guard for protected routes. It resolves the current
// user from the bearer token on every request into the group; there is no
// caching of "is logged in" across requests. Without a valid session the
// chain stops with 401 before any handler runs, so no protected content or
// repository call ever happens for an unauthenticated request.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := auth.CurrentUser(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("user_id", user.ID)
			c.Set("email", user.Email)
			c.Set("display_name", user.DisplayName)

			return next(c)
		}
	}
}
