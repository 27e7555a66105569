package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"kingtech-store/internal/apperr"
	"kingtech-store/internal/middleware"
	"kingtech-store/internal/service"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const stateCookie = "kingtech_oauth_state"

type AuthHandler struct {
	authService   service.AuthService
	secureCookies bool
}

func NewAuthHandler(authService service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		secureCookies: secureCookies,
	}
}

// Login starts the Google OAuth flow with a random state nonce.
func (h *AuthHandler) Login(c echo.Context) error {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	state := base64.RawURLEncoding.EncodeToString(buf)

	c.SetCookie(&http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, h.authService.LoginURL(state))
}

func (h *AuthHandler) Callback(c echo.Context) error {
	ctx := c.Request().Context()

	state, err := c.Cookie(stateCookie)
	if err != nil || state.Value == "" || state.Value != c.QueryParam("state") {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid oauth state")
	}

	token, err := h.authService.HandleCallback(ctx, c.QueryParam("code"))
	if errors.Is(err, apperr.ErrForbidden) {
		// signed in fine, just not on the admin allowlist
		return c.Redirect(http.StatusFound, "/login?error=not_admin")
	}
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int((12 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, "/admin")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, "/login")
}
