package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/statsmock/internal/stats"
)

func HealthCheckHandler(store stats.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts := store.Counts()
		log.FromContext(r.Context()).Debug("Received health check request", "users", counts.Users, "games", counts.Games, "tournaments", counts.Tournaments)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}
