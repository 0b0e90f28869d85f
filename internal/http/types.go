package http

import (
	"net/http"

	"github.com/mauv0809/statsmock/internal/metrics"
	"github.com/mauv0809/statsmock/internal/stats"
)

type Server struct {
	Store          stats.Store
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Router         *http.ServeMux
}
