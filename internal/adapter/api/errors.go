package api

import (
	"errors"
	"fmt"
	"github.com/burenotti/go_bodyfat_backend/internal/app/estimation"
	"github.com/burenotti/go_bodyfat_backend/internal/app/locale"
	"github.com/burenotti/go_bodyfat_backend/internal/app/questionnaire"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/wizard"
	"github.com/labstack/echo/v4"
	"net/http"
)

type JsonErrorModel struct {
	Message string `json:"message"`
}

func JsonError(c echo.Context, status int, content any) error {
	data := &JsonErrorModel{Message: fmt.Sprintf("%v", content)}
	return c.JSON(status, data)
}

// DomainError maps service errors to statuses and localized messages.
func DomainError(c echo.Context, err error) error {
	l := localizer(c)
	switch {
	case errors.Is(err, measurement.ErrOutOfRange), errors.Is(err, measurement.ErrInvalidNumber):
		return JsonError(c, http.StatusBadRequest, l.ValidationMessage(err))
	case errors.Is(err, measurement.ErrUnknownSex),
		errors.Is(err, measurement.ErrUnknownUnitSystem),
		errors.Is(err, measurement.ErrUnknownField),
		errors.Is(err, wizard.ErrNotAnswered):
		return JsonError(c, http.StatusBadRequest, err)
	case errors.Is(err, questionnaire.ErrSessionNotFound), errors.Is(err, locale.ErrUnsupportedLocale):
		return JsonError(c, http.StatusNotFound, err)
	case errors.Is(err, wizard.ErrWrongStep),
		errors.Is(err, wizard.ErrCannotGoBack),
		errors.Is(err, wizard.ErrNotLoading):
		return JsonError(c, http.StatusConflict, err)
	case errors.Is(err, estimation.ErrIncompleteRecord):
		return JsonError(c, http.StatusUnprocessableEntity, l.Text(locale.KeyCalculationError))
	default:
		return JsonError(c, http.StatusInternalServerError, err)
	}
}
