package metrics

import "github.com/prometheus/client_golang/prometheus"

// Entity kinds reported by SetEntityCount.
const (
	KindUsers       = "users"
	KindGames       = "games"
	KindTournaments = "tournaments"
)

// Service holds all the Prometheus metrics for the application.
type Service struct {
	Requests           *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	Entities           *prometheus.GaugeVec
	StartupTimeSeconds prometheus.Gauge
}
