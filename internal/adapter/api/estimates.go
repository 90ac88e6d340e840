package api

import (
	"github.com/burenotti/go_bodyfat_backend/internal/app/locale"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/estimate"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/units"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"net/http"
)

func (s *Server) MountEstimates() {
	s.handler.POST("/estimates", s.CreateEstimate)
}

type EstimateRequest struct {
	Sex          string   `json:"sex" validate:"required,oneof=male female"`
	Units        string   `json:"units" validate:"omitempty,oneof=metric imperial"`
	Age          *float64 `json:"age" validate:"required"`
	Weight       *float64 `json:"weight" validate:"required"`
	Height       *float64 `json:"height" validate:"required_without_all=HeightFeet HeightInches"`
	HeightFeet   *float64 `json:"height_ft" validate:"required_with=HeightInches"`
	HeightInches *float64 `json:"height_in" validate:"required_with=HeightFeet"`
	Neck         *float64 `json:"neck" validate:"required"`
	Waist        *float64 `json:"waist" validate:"required"`
	Hip          *float64 `json:"hip" validate:"required_if=Sex female"`
}

type EstimateResponse struct {
	BMI             *float64 `json:"bmi"`
	BMIBased        *float64 `json:"bmi_based"`
	Navy            *float64 `json:"navy"`
	RelativeFatMass *float64 `json:"relative_fat_mass"`
	CunBae          *float64 `json:"cun_bae"`
	Ecore           *float64 `json:"ecore"`
	AverageBf       *float64 `json:"average_bf"`
	Category        string   `json:"category"`
	CategoryLabel   string   `json:"category_label"`
	CategoryMessage string   `json:"category_message"`
}

func newEstimateResponse(l *locale.Localizer, r estimate.Result, sex *measurement.Sex) *EstimateResponse {
	category := r.Category(sex)
	return &EstimateResponse{
		BMI:             r.BMI,
		BMIBased:        r.BMIBased,
		Navy:            r.Navy,
		RelativeFatMass: r.RelativeFatMass,
		CunBae:          r.CunBae,
		Ecore:           r.Ecore,
		AverageBf:       r.AverageBf,
		Category:        string(category),
		CategoryLabel:   l.CategoryLabel(category),
		CategoryMessage: l.CategoryMessage(category),
	}
}

func (s *Server) CreateEstimate(c echo.Context) error {
	var req EstimateRequest
	if err := s.bind(c, &req); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	record, err := s.recordFromRequest(req)
	if err != nil {
		return DomainError(c, err)
	}

	result, err := s.estimationService.Estimate(c.Request().Context(), record)
	if err != nil {
		return DomainError(c, err)
	}

	return c.JSON(http.StatusOK, newEstimateResponse(localizer(c), result, record.Sex))
}

func (s *Server) recordFromRequest(req EstimateRequest) (measurement.Record, error) {
	sex, err := measurement.ParseSex(req.Sex)
	if err != nil {
		return measurement.Record{}, err
	}
	system, err := measurement.ParseUnitSystem(req.Units)
	if err != nil {
		return measurement.Record{}, err
	}

	convert := func(f measurement.Field, v *float64) (*float64, error) {
		if v == nil {
			return nil, nil
		}
		if err := f.Check(system, *v); err != nil {
			s.observeValidationFailure(f, err)
			return nil, &measurement.FieldError{Field: f, Err: err}
		}
		return lo.ToPtr(f.ToMetric(system, *v)), nil
	}

	record := measurement.Record{Sex: lo.ToPtr(sex)}
	if record.AgeYears, err = convert(measurement.FieldAge, req.Age); err != nil {
		return measurement.Record{}, err
	}
	if record.WeightKg, err = convert(measurement.FieldWeight, req.Weight); err != nil {
		return measurement.Record{}, err
	}
	if req.Height != nil {
		if record.HeightCm, err = convert(measurement.FieldHeight, req.Height); err != nil {
			return measurement.Record{}, err
		}
	} else {
		if _, err = convert(measurement.FieldHeightFeet, req.HeightFeet); err != nil {
			return measurement.Record{}, err
		}
		if _, err = convert(measurement.FieldHeightInches, req.HeightInches); err != nil {
			return measurement.Record{}, err
		}
		if cm, ok := units.FtInToCm(req.HeightFeet, req.HeightInches); ok {
			if err := measurement.CheckHeightCm(cm); err != nil {
				s.observeValidationFailure(measurement.FieldHeight, err)
				return measurement.Record{}, err
			}
			record.HeightCm = lo.ToPtr(cm)
		}
	}
	if record.NeckCm, err = convert(measurement.FieldNeck, req.Neck); err != nil {
		return measurement.Record{}, err
	}
	if record.WaistCm, err = convert(measurement.FieldWaist, req.Waist); err != nil {
		return measurement.Record{}, err
	}
	if sex == measurement.Female {
		if record.HipCm, err = convert(measurement.FieldHip, req.Hip); err != nil {
			return measurement.Record{}, err
		}
	}
	return record, nil
}

func (s *Server) observeValidationFailure(f measurement.Field, err error) {
	if s.metrics == nil {
		return
	}
	if reason := measurement.Reason(err); reason != "" {
		s.metrics.ObserveValidationFailure(f, reason)
	}
}
