package http

import (
	"net/http"

	"github.com/mauv0809/statsmock/internal/http/handlers"
	"github.com/mauv0809/statsmock/internal/metrics"
	"github.com/mauv0809/statsmock/internal/stats"
)

func NewServer(store stats.Store, metricsSvc metrics.Metrics, metricsHandler http.Handler) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Method patterns make the mux answer 405 for anything but GET.
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(s.Store), requestIDMiddleware, paramsMiddleware))
	s.handle("/stats", handlers.UserStatsHandler(s.Store))
	s.handle("/game", handlers.GameHandler(s.Store))
	s.handle("/tournament", handlers.TournamentHandler(s.Store))
	s.handle("/games", handlers.ListGamesHandler(s.Store))
	s.handle("/tournaments", handlers.ListTournamentsHandler(s.Store))
}

func (s *Server) handle(path string, h http.Handler) {
	s.Router.Handle("GET "+path, Chain(h, requestIDMiddleware, paramsMiddleware, metricsMiddleware(s.Metrics, path)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
