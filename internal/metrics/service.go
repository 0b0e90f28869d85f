package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockstats_http_requests_total",
			Help: "The total number of HTTP requests served, by endpoint and status code.",
		}, []string{"endpoint", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mockstats_http_request_duration_seconds",
			Help:    "The duration of HTTP requests, by endpoint.",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"endpoint"}),
		Entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mockstats_synthesized_entities",
			Help: "The number of synthesized entities, by kind.",
		}, []string{"kind"}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mockstats_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Requests,
		s.RequestDuration,
		s.Entities,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) ObserveRequest(endpoint string, status int, seconds float64) {
	s.Requests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	s.RequestDuration.WithLabelValues(endpoint).Observe(seconds)
}

func (s *Service) SetEntityCount(kind string, n int) {
	s.Entities.WithLabelValues(kind).Set(float64(n))
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
