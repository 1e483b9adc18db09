package token

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CreateCookie builds the HttpOnly cookie both auth tokens travel in.
func CreateCookie(name, value, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Service) setRotatedCookies(c echo.Context, access, refresh string) {
	c.SetCookie(CreateCookie("accessToken", access, "/", time.Now().Add(AccessTTL)))
	c.SetCookie(CreateCookie("refreshToken", refresh, "/", time.Now().Add(RefreshTTL)))
}

// AutoRefresh gates signed-in routes: a valid or refreshable session passes,
// anything else gets 401 with a sign-in prompt.
func (s *Service) AutoRefresh(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		newAccess, newRefresh, _, err := s.checkCookie(c)
		if err != nil {
			return err
		}
		if newRefresh != "" {
			s.setRotatedCookies(c, newAccess, newRefresh)
		}
		return next(c)
	}
}

// Optional resolves the session when auth cookies are present but lets
// anonymous visitors through, so guest carts work before sign-in.
func (s *Service) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		newAccess, newRefresh, _, err := s.checkCookie(c)
		if err == nil && newRefresh != "" {
			s.setRotatedCookies(c, newAccess, newRefresh)
		}
		return next(c)
	}
}

// AdminOnly additionally requires the admin role claim.
func (s *Service) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		newAccess, newRefresh, role, err := s.checkCookie(c)
		if err != nil {
			return err
		}
		if role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "acesso restrito a administradores")
		}
		if newRefresh != "" {
			s.setRotatedCookies(c, newAccess, newRefresh)
		}
		return next(c)
	}
}
