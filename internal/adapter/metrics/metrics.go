package metrics

import (
	"github.com/burenotti/go_bodyfat_backend/internal/domain/estimate"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Collectors struct {
	estimates          *prometheus.CounterVec
	averageBodyFat     *prometheus.HistogramVec
	validationFailures *prometheus.CounterVec
	activeSessions     prometheus.Gauge
}

func New(reg prometheus.Registerer) *Collectors {
	factory := promauto.With(reg)
	return &Collectors{
		estimates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bodyfat_estimates_total",
				Help: "Total number of body fat estimates by sex and category",
			},
			[]string{"sex", "category"},
		),
		averageBodyFat: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bodyfat_average_percent",
				Help:    "Distribution of the averaged body fat estimate",
				Buckets: []float64{5, 8, 10, 14, 15, 18, 21, 24, 26, 30, 33, 36, 39, 45, 55},
			},
			[]string{"sex"},
		),
		validationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bodyfat_validation_failures_total",
				Help: "Total number of rejected inputs by field and reason",
			},
			[]string{"field", "reason"},
		),
		activeSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bodyfat_questionnaire_sessions",
				Help: "Number of questionnaire sessions held in memory",
			},
		),
	}
}

func (c *Collectors) ObserveEstimate(sex measurement.Sex, category estimate.Category, averageBf *float64) {
	c.estimates.WithLabelValues(string(sex), string(category)).Inc()
	if averageBf != nil {
		c.averageBodyFat.WithLabelValues(string(sex)).Observe(*averageBf)
	}
}

func (c *Collectors) ObserveValidationFailure(field measurement.Field, reason string) {
	c.validationFailures.WithLabelValues(string(field), reason).Inc()
}

func (c *Collectors) SetActiveSessions(n int) {
	c.activeSessions.Set(float64(n))
}
