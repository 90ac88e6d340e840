package api

import (
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
	"github.com/labstack/echo/v4"
	"net/http"
)

func (s *Server) MountValidation() {
	s.handler.POST("/validate", s.Validate)
}

type ValidateRequest struct {
	Field string `json:"field" validate:"required"`
	Units string `json:"units" validate:"omitempty,oneof=metric imperial"`
	Value string `json:"value"`
}

type ValidateResponse struct {
	Valid   bool    `json:"valid"`
	Pending bool    `json:"pending"`
	Reason  string  `json:"reason,omitempty"`
	Message string  `json:"message,omitempty"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

func (s *Server) Validate(c echo.Context) error {
	var req ValidateRequest
	if err := s.bind(c, &req); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	field, err := measurement.ParseField(req.Field)
	if err != nil {
		return DomainError(c, err)
	}
	system, err := measurement.ParseUnitSystem(req.Units)
	if err != nil {
		return DomainError(c, err)
	}
	bounds, err := field.Bounds(system)
	if err != nil {
		return DomainError(c, err)
	}

	pending := measurement.IsPending(req.Value)
	err = measurement.ValidateRange(bounds.Min, bounds.Max, req.Value)
	s.observeValidationFailure(field, err)

	return c.JSON(http.StatusOK, ValidateResponse{
		Valid:   err == nil && !pending,
		Pending: pending,
		Reason:  measurement.Reason(err),
		Message: localizer(c).ValidationMessage(err),
		Min:     bounds.Min,
		Max:     bounds.Max,
	})
}
