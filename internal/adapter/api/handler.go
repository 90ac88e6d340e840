package api

import (
	"context"
	"errors"
	"fmt"
	"github.com/burenotti/go_bodyfat_backend/internal/adapter/metrics"
	"github.com/burenotti/go_bodyfat_backend/internal/app/estimation"
	"github.com/burenotti/go_bodyfat_backend/internal/app/locale"
	"github.com/burenotti/go_bodyfat_backend/internal/app/questionnaire"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	slogecho "github.com/samber/slog-echo"
	"log/slog"
	"time"
)

type Server struct {
	handler              *echo.Echo
	logger               *slog.Logger
	addr                 string
	estimationService    *estimation.Service
	questionnaireService *questionnaire.Service
	locales              *locale.Bundle
	metrics              *metrics.Collectors
	gatherer             prometheus.Gatherer
	validator            *validator.Validate
}

func NewServer(opt ...Option) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Server.WriteTimeout = 10 * time.Second
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.IdleTimeout = 10 * time.Second
	e.Server.ReadHeaderTimeout = 5 * time.Second
	e.Server.MaxHeaderBytes = 4096

	v := validator.New(validator.WithRequiredStructEnabled())

	s := &Server{
		handler:   e,
		validator: v,
		logger:    slog.Default(),
		locales:   locale.MustNew("en"),
		gatherer:  prometheus.DefaultGatherer,
	}

	for _, opt := range opt {
		opt(s)
	}

	e.Use(slogecho.NewWithConfig(s.logger, slogecho.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelInfo,
		ServerErrorLevel: slog.LevelError,
		WithRequestID:    true,
	}))
	e.Use(middleware.Recover())
	e.Use(Localize(s.locales))
	s.Mount()
	return s
}

func (s *Server) Mount() {
	s.MountEstimates()
	s.MountValidation()
	s.MountConversion()
	s.MountLocales()
	s.MountQuestionnaires()
	s.MountMetrics()
}

func (s *Server) Handler() *echo.Echo {
	return s.handler
}

func (s *Server) Start() error {
	return s.handler.Start(s.addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.handler.Shutdown(ctx)
}

func (s *Server) bind(ctx echo.Context, i interface{}) error {
	if err := ctx.Bind(i); err != nil {
		return fmt.Errorf("bad request")
	}
	if err := s.validator.Struct(i); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return fmt.Errorf("bad request")
		}
		return fmt.Errorf("%s: %s", errs[0].Field(), errs[0].Error())

	}
	return nil
}
