package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/statsmock/internal/stats"
)

// UserStatsHandler serves GET /stats?user=<name>.
func UserStatsHandler(store stats.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := username(r, store)
		log.FromContext(r.Context()).Debug("Fetching user stats", "user", user)
		result, err := store.GetUserStats(user)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// GameHandler serves GET /game?id=<gameId>.
func GameHandler(store stats.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		log.FromContext(r.Context()).Debug("Fetching game", "id", id)
		game, err := store.GetGame(id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, game)
	}
}

// TournamentHandler serves GET /tournament?id=<tournamentId>.
func TournamentHandler(store stats.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		log.FromContext(r.Context()).Debug("Fetching tournament", "id", id)
		tournament, err := store.GetTournament(id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, tournament)
	}
}

// ListGamesHandler serves GET /games?user=&page=&per_page=.
func ListGamesHandler(store stats.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := username(r, store)
		page, perPage, err := paging(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		log.FromContext(r.Context()).Debug("Listing games", "user", user, "page", page, "per_page", perPage)
		games, err := store.ListGames(user, page, perPage)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, games)
	}
}

// ListTournamentsHandler serves GET /tournaments?user=&page=&per_page=.
func ListTournamentsHandler(store stats.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := username(r, store)
		page, perPage, err := paging(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		log.FromContext(r.Context()).Debug("Listing tournaments", "user", user, "page", page, "per_page", perPage)
		tournaments, err := store.ListTournaments(user, page, perPage)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, tournaments)
	}
}
