package api

import (
	"context"
	"errors"
	"github.com/burenotti/go_bodyfat_backend/internal/app/locale"
	"github.com/burenotti/go_bodyfat_backend/internal/app/questionnaire"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/units"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/wizard"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"net/http"
	"time"
)

func (s *Server) MountQuestionnaires() {
	group := s.handler.Group("/questionnaires")
	group.POST("", s.StartQuestionnaire)
	group.GET("/:id", s.GetQuestionnaire)
	group.POST("/:id/next", s.NextQuestion)
	group.POST("/:id/answers/:step", s.AnswerQuestion)
	group.POST("/:id/back", s.PreviousQuestion)
	group.POST("/:id/reset", s.ResetQuestionnaire)
	group.POST("/:id/reveal", s.RevealResults)
}

type AnswersResponse struct {
	Sex          *string  `json:"sex"`
	Age          *float64 `json:"age"`
	Weight       *float64 `json:"weight"`
	Height       *float64 `json:"height,omitempty"`
	HeightFeet   *int     `json:"height_ft,omitempty"`
	HeightInches *float64 `json:"height_in,omitempty"`
	Neck         *float64 `json:"neck"`
	Waist        *float64 `json:"waist"`
	Hip          *float64 `json:"hip,omitempty"`
}

type QuestionnaireResponse struct {
	ID        string            `json:"id"`
	Locale    string            `json:"locale"`
	Units     string            `json:"units"`
	Step      string            `json:"step"`
	Steps     []string          `json:"steps"`
	Prompt    string            `json:"prompt"`
	Answers   AnswersResponse   `json:"answers"`
	Result    *EstimateResponse `json:"result,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func answersOf(system measurement.UnitSystem, r measurement.Record) AnswersResponse {
	display := func(f measurement.Field, v *float64) *float64 {
		if v == nil {
			return nil
		}
		return lo.ToPtr(units.Round(f.FromMetric(system, *v), 1))
	}

	answers := AnswersResponse{
		Age:    r.AgeYears,
		Weight: display(measurement.FieldWeight, r.WeightKg),
		Neck:   display(measurement.FieldNeck, r.NeckCm),
		Waist:  display(measurement.FieldWaist, r.WaistCm),
		Hip:    display(measurement.FieldHip, r.HipCm),
	}
	if r.Sex != nil {
		answers.Sex = lo.ToPtr(string(*r.Sex))
	}
	if r.HeightCm != nil {
		if system == measurement.Imperial {
			split := units.CmToFtIn(*r.HeightCm)
			answers.HeightFeet = lo.ToPtr(split.Feet)
			answers.HeightInches = lo.ToPtr(units.Round(split.Inches, 1))
		} else {
			answers.Height = display(measurement.FieldHeight, r.HeightCm)
		}
	}
	return answers
}

// questionnaireResponse renders a view in the session's own locale, falling
// back to the request locale when the session locale is no longer served.
func (s *Server) questionnaireResponse(c echo.Context, v questionnaire.View) *QuestionnaireResponse {
	l, err := s.locales.Lookup(v.Locale)
	if err != nil {
		l = localizer(c)
	}

	resp := &QuestionnaireResponse{
		ID:     v.ID,
		Locale: v.Locale,
		Units:  string(v.Units),
		Step:   string(v.Step),
		Steps: lo.Map(v.Steps, func(step wizard.Step, _ int) string {
			return string(step)
		}),
		Prompt:    l.Text(locale.Key("step." + string(v.Step))),
		Answers:   answersOf(v.Units, v.Record),
		UpdatedAt: v.UpdatedAt,
	}
	if v.Result != nil {
		resp.Result = newEstimateResponse(l, *v.Result, v.Record.Sex)
	}
	return resp
}

type StartQuestionnaireRequest struct {
	Units string `json:"units" validate:"omitempty,oneof=metric imperial"`
}

func (s *Server) StartQuestionnaire(c echo.Context) error {
	var req StartQuestionnaireRequest
	if err := s.bind(c, &req); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	system, err := measurement.ParseUnitSystem(req.Units)
	if err != nil {
		return DomainError(c, err)
	}

	view, err := s.questionnaireService.Start(c.Request().Context(), localizer(c).Locale(), system)
	if err != nil {
		return DomainError(c, err)
	}
	return c.JSON(http.StatusCreated, s.questionnaireResponse(c, view))
}

type QuestionnaireRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (s *Server) GetQuestionnaire(c echo.Context) error {
	return s.transition(c, s.questionnaireService.Get)
}

func (s *Server) NextQuestion(c echo.Context) error {
	return s.transition(c, s.questionnaireService.Next)
}

func (s *Server) PreviousQuestion(c echo.Context) error {
	return s.transition(c, s.questionnaireService.Back)
}

func (s *Server) ResetQuestionnaire(c echo.Context) error {
	return s.transition(c, s.questionnaireService.Reset)
}

func (s *Server) RevealResults(c echo.Context) error {
	return s.transition(c, s.questionnaireService.Reveal)
}

func (s *Server) transition(
	c echo.Context,
	do func(ctx context.Context, id string) (questionnaire.View, error),
) error {
	var req QuestionnaireRequest
	if err := s.bind(c, &req); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	view, err := do(c.Request().Context(), req.ID)
	if err != nil {
		return DomainError(c, err)
	}
	return c.JSON(http.StatusOK, s.questionnaireResponse(c, view))
}

type AnswerRequest struct {
	ID     string   `param:"id" validate:"required,uuid"`
	Step   string   `param:"step" validate:"required"`
	Values []string `json:"values" validate:"required,min=1,max=2"`
}

func (s *Server) AnswerQuestion(c echo.Context) error {
	var req AnswerRequest
	if err := s.bind(c, &req); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	step, ok := wizard.ParseStep(req.Step)
	if !ok {
		return JsonError(c, http.StatusBadRequest, "unknown step")
	}

	view, err := s.questionnaireService.Answer(c.Request().Context(), req.ID, step, req.Values...)
	if err != nil {
		var fieldErr *measurement.FieldError
		if errors.As(err, &fieldErr) {
			s.observeValidationFailure(fieldErr.Field, err)
		}
		return DomainError(c, err)
	}
	return c.JSON(http.StatusOK, s.questionnaireResponse(c, view))
}
