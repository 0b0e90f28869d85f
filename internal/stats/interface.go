package stats

// Store answers the read queries served over HTTP.
type Store interface {
	// CurrentUser is the username used when a request names none.
	CurrentUser() string
	GetUserStats(username string) (UserStats, error)
	GetGame(gameID string) (GameResult, error)
	GetTournament(tournamentID string) (TournamentDetails, error)
	// ListGames returns one page of the user's games, oldest first.
	ListGames(username string, page, pageSize int) ([]GameResult, error)
	// ListTournaments returns one page of the user's tournaments, oldest first.
	ListTournaments(username string, page, pageSize int) ([]TournamentDetails, error)
	Counts() Counts
}

// Dataset enumerates every synthesized entity in synthesis order.
type Dataset interface {
	Users() []UserStats
	Games() []GameResult
	Tournaments() []Tournament
}
