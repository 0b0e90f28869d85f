package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/statsmock/internal/config"
	"github.com/mauv0809/statsmock/internal/metrics"
	"github.com/mauv0809/statsmock/internal/stats"
)

const testMockConfig = `
seed = 99

[users]
alice = { realname = "Alice A." }
bob = {}
u = {}

[[games]]
id = "g1"
tournamentId = "t1"
alice = 3
bob = 1

[[games]]
u = 1
[[games]]
u = 2
[[games]]
u = 3
[[games]]
u = 4
[[games]]
u = 5
[[games]]
u = 6
[[games]]
u = 7

[[tournaments]]
id = "t1"
players = ["alice", "bob"]
games = ["g1"]
`

// setupTestServer synthesizes the test configuration and wires it to a server
// backed by a fresh metrics registry.
func setupTestServer(t *testing.T) (*Server, *metrics.Service, func()) {
	t.Helper()

	cfg, err := config.ParseMock([]byte(testMockConfig))
	require.NoError(t, err)
	snapshot, err := stats.Synthesize(cfg, stats.WithToday(time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	server := NewServer(snapshot, metricsSvc, metrics.NewMetricsHandler(reg))

	teardown := func() {}
	return server, metricsSvc, teardown
}

func doRequest(t *testing.T, server *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body["error"]
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK!", string(body))
}

func TestUserStatsHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	t.Run("defaults to the current user", func(t *testing.T) {
		rr := doRequest(t, server, http.MethodGet, "/stats")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))

		var body map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "Alice A.", body["realname"])
		assert.Contains(t, body, "gameStats")
		assert.Contains(t, body, "tournamentStats")
		activity, ok := body["activity"].(map[string]any)
		require.True(t, ok)
		assert.Len(t, activity, 7)
		assert.Contains(t, activity, "2025-11-01")
		assert.Contains(t, activity, "2025-10-26")
	})

	t.Run("named user without realname", func(t *testing.T) {
		rr := doRequest(t, server, http.MethodGet, "/stats?user=bob")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"realname":null`)
	})

	t.Run("unknown user", func(t *testing.T) {
		rr := doRequest(t, server, http.MethodGet, "/stats?user=doesNotExist")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "User doesn't exist", decodeError(t, rr))
	})

	t.Run("empty user is not the current user", func(t *testing.T) {
		rr := doRequest(t, server, http.MethodGet, "/stats?user=")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("request id is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
	})
}

func TestGameHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	t.Run("missing id", func(t *testing.T) {
		rr := doRequest(t, server, http.MethodGet, "/game")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "No game id provided", decodeError(t, rr))
	})

	t.Run("unknown id", func(t *testing.T) {
		rr := doRequest(t, server, http.MethodGet, "/game?id=nope")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "No game with such id", decodeError(t, rr))
	})

	t.Run("configured game", func(t *testing.T) {
		rr := doRequest(t, server, http.MethodGet, "/game?id=g1")
		require.Equal(t, http.StatusOK, rr.Code)

		var game stats.GameResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))
		assert.Equal(t, "g1", game.GameID)
		assert.Equal(t, map[string]int{"alice": 3, "bob": 1}, game.PlayerScores)
		require.NotNil(t, game.TournamentID)
		assert.Equal(t, "t1", *game.TournamentID)
		assert.Contains(t, rr.Body.String(), `"playerScores":{"alice":3,"bob":1}`)
	})

	t.Run("auto id game has null tournament", func(t *testing.T) {
		rr := doRequest(t, server, http.MethodGet, "/game?id=mock_game_1")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"tournamentId":null`)
	})
}

func TestTournamentHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	t.Run("missing id", func(t *testing.T) {
		rr := doRequest(t, server, http.MethodGet, "/tournament")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "No tournament id provided", decodeError(t, rr))
	})

	t.Run("unknown id", func(t *testing.T) {
		rr := doRequest(t, server, http.MethodGet, "/tournament?id=nope")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "No tournament with such id", decodeError(t, rr))
	})

	t.Run("games are expanded", func(t *testing.T) {
		rr := doRequest(t, server, http.MethodGet, "/tournament?id=t1")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "gameIds")

		var tournament stats.TournamentDetails
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tournament))
		assert.Equal(t, "t1", tournament.TournamentID)
		assert.Equal(t, []string{"alice", "bob"}, tournament.Players)
		require.Len(t, tournament.Games, 1)

		game := doRequest(t, server, http.MethodGet, "/game?id=g1")
		var expected stats.GameResult
		require.NoError(t, json.Unmarshal(game.Body.Bytes(), &expected))
		assert.True(t, expected.Date.Equal(tournament.Games[0].Date))
		assert.Equal(t, expected.PlayerScores, tournament.Games[0].PlayerScores)
		assert.Equal(t, expected.DurationMillis, tournament.Games[0].DurationMillis)
	})
}

func TestListGamesHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	t.Run("second page holds the remainder in date order", func(t *testing.T) {
		first := doRequest(t, server, http.MethodGet, "/games?user=u&per_page=5&page=1")
		require.Equal(t, http.StatusOK, first.Code)
		rr := doRequest(t, server, http.MethodGet, "/games?user=u&per_page=5&page=2")
		require.Equal(t, http.StatusOK, rr.Code)

		var page1, page2 []stats.GameResult
		require.NoError(t, json.Unmarshal(first.Body.Bytes(), &page1))
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page2))
		require.Len(t, page1, 5)
		require.Len(t, page2, 2)

		all := append(page1, page2...)
		for i := 1; i < len(all); i++ {
			assert.False(t, all[i].Date.Before(all[i-1].Date), "games out of order at %d", i)
		}
	})

	t.Run("past the last page is an empty array", func(t *testing.T) {
		rr := doRequest(t, server, http.MethodGet, "/games?user=u&per_page=5&page=3")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]", rr.Body.String())
	})

	t.Run("huge page is an empty array", func(t *testing.T) {
		rr := doRequest(t, server, http.MethodGet, "/games?user=u&per_page=4&page=4611686018427387905")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]", rr.Body.String())

		rr = doRequest(t, server, http.MethodGet, "/tournaments?user=alice&per_page=9223372036854775807&page=9223372036854775807")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]", rr.Body.String())
	})

	t.Run("defaults to the current user", func(t *testing.T) {
		rr := doRequest(t, server, http.MethodGet, "/games")
		require.Equal(t, http.StatusOK, rr.Code)
		var games []stats.GameResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &games))
		require.Len(t, games, 1)
		assert.Equal(t, "g1", games[0].GameID)
	})

	t.Run("unknown user", func(t *testing.T) {
		rr := doRequest(t, server, http.MethodGet, "/games?user=doesNotExist")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "User doesn't exist", decodeError(t, rr))
	})

	testCases := []struct {
		name  string
		query string
		msg   string
	}{
		{name: "non-numeric page", query: "page=abc", msg: "Invalid page parameter"},
		{name: "zero page", query: "page=0", msg: "Invalid page parameter"},
		{name: "negative per_page", query: "per_page=-2", msg: "Invalid per_page parameter"},
		{name: "non-numeric per_page", query: "per_page=ten", msg: "Invalid per_page parameter"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, server, http.MethodGet, "/games?user=u&"+tc.query)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tc.msg, decodeError(t, rr))
		})
	}
}

func TestListTournamentsHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, http.MethodGet, "/tournaments?user=bob")
	require.Equal(t, http.StatusOK, rr.Code)
	var tournaments []stats.TournamentDetails
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tournaments))
	require.Len(t, tournaments, 1)
	assert.Equal(t, "t1", tournaments[0].TournamentID)
	require.Len(t, tournaments[0].Games, 1)
	assert.Equal(t, "g1", tournaments[0].Games[0].GameID)

	rr = doRequest(t, server, http.MethodGet, "/tournaments?user=u")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())

	rr = doRequest(t, server, http.MethodGet, "/tournaments?user=doesNotExist")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandlersWithMockStore(t *testing.T) {
	store := stats.NewMockStore("mocked")
	server := NewServer(store, metrics.NewMock(), metrics.NewMetricsHandler(prometheus.NewRegistry()))

	rr := doRequest(t, server, http.MethodGet, "/games?page=2")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, store.ListGamesCalls, 1)
	assert.Equal(t, stats.ListCall{Username: "mocked", Page: 2, PageSize: 25}, store.ListGamesCalls[0])

	rr = doRequest(t, server, http.MethodGet, "/tournaments?user=x&per_page=3")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, store.ListTournamentsCalls, 1)
	assert.Equal(t, stats.ListCall{Username: "x", Page: 1, PageSize: 3}, store.ListTournamentsCalls[0])

	store.GetGameFunc = func(string) (stats.GameResult, error) {
		return stats.GameResult{}, assert.AnError
	}
	rr = doRequest(t, server, http.MethodGet, "/game?id=boom")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal server error", decodeError(t, rr))
}

func TestMethodNotAllowed(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	for _, path := range []string{"/stats", "/game", "/tournament", "/games", "/tournaments"} {
		rr := doRequest(t, server, http.MethodPost, path)
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, path)
	}
}

func TestRequestMetrics(t *testing.T) {
	server, metricsSvc, teardown := setupTestServer(t)
	defer teardown()

	doRequest(t, server, http.MethodGet, "/game?id=g1")
	doRequest(t, server, http.MethodGet, "/game")
	doRequest(t, server, http.MethodGet, "/game")

	assert.Equal(t, 1.0, testutil.ToFloat64(metricsSvc.Requests.WithLabelValues("/game", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metricsSvc.Requests.WithLabelValues("/game", "400")))

	rr := doRequest(t, server, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "mockstats_http_requests_total"))
}
