package middleware

import (
	"kingtech-store/internal/service"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const SessionCookie = "kingtech_session"

// RequireAdmin gates the admin surface. The primary mechanism is the OAuth
// session cookie; an HTTP Basic fallback can be enabled for deployments
// without OAuth configured.
func RequireAdmin(authService service.AuthService, basicAuthEnabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if basicAuthEnabled {
				username, password, ok := c.Request().BasicAuth()
				if !ok || !authService.VerifyBasic(username, password) {
					c.Response().Header().Set("WWW-Authenticate", "Basic")
					return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
				}
				c.Set("admin_email", username)
				return next(c)
			}

			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return rejectAnonymous(c)
			}

			claims, err := authService.ParseSession(cookie.Value)
			if err != nil || !claims.IsAdmin {
				return rejectAnonymous(c)
			}

			c.Set("admin_email", claims.Email)
			return next(c)
		}
	}
}

func rejectAnonymous(c echo.Context) error {
	// API clients get a 401, browsers get sent to the login surface
	if strings.HasPrefix(c.Path(), "/api") {
		return echo.NewHTTPError(http.StatusUnauthorized, "admin session required")
	}
	return c.Redirect(http.StatusFound, "/login")
}
