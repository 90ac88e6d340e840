package api

import (
	"github.com/burenotti/go_bodyfat_backend/internal/adapter/metrics"
	"github.com/burenotti/go_bodyfat_backend/internal/app/estimation"
	"github.com/burenotti/go_bodyfat_backend/internal/app/locale"
	"github.com/burenotti/go_bodyfat_backend/internal/app/questionnaire"
	"github.com/prometheus/client_golang/prometheus"
	"log/slog"
	"net"
	"strconv"
)

type Option func(*Server)

func Addr(host string, port int) Option {
	return func(s *Server) {
		s.addr = net.JoinHostPort(host, strconv.Itoa(port))
	}
}

func Logger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

func EstimationService(service *estimation.Service) Option {
	return func(s *Server) {
		s.estimationService = service
	}
}

func QuestionnaireService(service *questionnaire.Service) Option {
	return func(s *Server) {
		s.questionnaireService = service
	}
}

func Locales(bundle *locale.Bundle) Option {
	return func(s *Server) {
		s.locales = bundle
	}
}

func Metrics(collectors *metrics.Collectors, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = collectors
		s.gatherer = gatherer
	}
}
