package api

import (
	"github.com/burenotti/go_bodyfat_backend/internal/app/locale"
	"github.com/labstack/echo/v4"
)

const KeyLocalizer = "localizer"

// Localize picks the response locale from the lang query parameter or the
// Accept-Language header.
func Localize(bundle *locale.Bundle) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := bundle.Resolve(c.QueryParam("lang"), c.Request().Header.Get("Accept-Language"))
			c.Set(KeyLocalizer, l)
			c.Response().Header().Set("Content-Language", l.Locale())
			return next(c)
		}
	}
}

func localizer(c echo.Context) *locale.Localizer {
	return c.Get(KeyLocalizer).(*locale.Localizer)
}
