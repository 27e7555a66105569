package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"kingtech-store/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	sessions map[string]*service.SessionClaims
	basic    map[string]string
}

func (s *fakeAuthService) LoginURL(state string) string { return "https://accounts.example.com?state=" + state }

func (s *fakeAuthService) HandleCallback(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (s *fakeAuthService) ParseSession(token string) (*service.SessionClaims, error) {
	claims, ok := s.sessions[token]
	if !ok {
		return nil, echo.ErrUnauthorized
	}
	return claims, nil
}

func (s *fakeAuthService) VerifyBasic(username, password string) bool {
	return s.basic[username] == password
}

func adminEcho(auth service.AuthService, basicEnabled bool) *echo.Echo {
	e := echo.New()
	group := e.Group("/api/admin", RequireAdmin(auth, basicEnabled))
	group.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	e.GET("/admin", func(c echo.Context) error {
		return c.String(http.StatusOK, "admin page")
	}, RequireAdmin(auth, basicEnabled))
	return e
}

func TestRequireAdminWithValidSession(t *testing.T) {
	auth := &fakeAuthService{sessions: map[string]*service.SessionClaims{
		"good-token": {Email: "owner@example.com", IsAdmin: true},
	}}
	e := adminEcho(auth, false)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good-token"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestRequireAdminAPIWithoutSession(t *testing.T) {
	e := adminEcho(&fakeAuthService{}, false)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminBrowserRedirectsToLogin(t *testing.T) {
	e := adminEcho(&fakeAuthService{}, false)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestRequireAdminRejectsNonAdminSession(t *testing.T) {
	auth := &fakeAuthService{sessions: map[string]*service.SessionClaims{
		"user-token": {Email: "user@example.com", IsAdmin: false},
	}}
	e := adminEcho(auth, false)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "user-token"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminBasicFallback(t *testing.T) {
	auth := &fakeAuthService{basic: map[string]string{"admin": "admin123"}}
	e := adminEcho(auth, true)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req.SetBasicAuth("admin", "admin123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req.SetBasicAuth("admin", "wrong")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Basic", rec.Header().Get("WWW-Authenticate"))
}
