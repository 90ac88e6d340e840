package api

import (
	"github.com/labstack/echo/v4"
	"net/http"
)

func (s *Server) MountLocales() {
	s.handler.GET("/locales", s.ListLocales)
	s.handler.GET("/locales/:locale", s.GetLocale)
}

type ListLocalesResponse struct {
	Locales []string `json:"locales"`
	Current string   `json:"current"`
}

func (s *Server) ListLocales(c echo.Context) error {
	return c.JSON(http.StatusOK, ListLocalesResponse{
		Locales: s.locales.Locales(),
		Current: localizer(c).Locale(),
	})
}

type GetLocaleRequest struct {
	Locale string `param:"locale" validate:"required"`
}

func (s *Server) GetLocale(c echo.Context) error {
	var req GetLocaleRequest
	if err := s.bind(c, &req); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	l, err := s.locales.Lookup(req.Locale)
	if err != nil {
		return DomainError(c, err)
	}
	return c.JSON(http.StatusOK, l.Table())
}
