package stats

import "time"

var (
	_ Store   = (*Snapshot)(nil)
	_ Dataset = (*Snapshot)(nil)
)

// Snapshot is the synthesized dataset together with its participation
// indices. It is written only by Synthesize; afterwards it is read-only and
// may be shared by any number of goroutines without locking.
type Snapshot struct {
	currentUser string

	userOrder       []string
	gameOrder       []string
	tournamentOrder []string

	users       map[string]UserStats
	games       map[string]GameResult
	tournaments map[string]Tournament

	gameIndex       *Index
	tournamentIndex *Index
}

func newSnapshot() *Snapshot {
	s := &Snapshot{
		users:       make(map[string]UserStats),
		games:       make(map[string]GameResult),
		tournaments: make(map[string]Tournament),
	}
	s.gameIndex = NewIndex(func(id string) (time.Time, bool) {
		g, ok := s.games[id]
		return g.Date, ok
	})
	s.tournamentIndex = NewIndex(func(id string) (time.Time, bool) {
		t, ok := s.tournaments[id]
		return t.Date.Time, ok
	})
	return s
}

func (s *Snapshot) CurrentUser() string {
	return s.currentUser
}

func (s *Snapshot) GetUserStats(username string) (UserStats, error) {
	u, ok := s.users[username]
	if !ok {
		return UserStats{}, ErrUserNotFound
	}
	return u.clone(), nil
}

func (s *Snapshot) GetGame(gameID string) (GameResult, error) {
	if gameID == "" {
		return GameResult{}, ErrMissingGameID
	}
	g, ok := s.games[gameID]
	if !ok {
		return GameResult{}, ErrGameNotFound
	}
	return g.clone(), nil
}

func (s *Snapshot) GetTournament(tournamentID string) (TournamentDetails, error) {
	if tournamentID == "" {
		return TournamentDetails{}, ErrMissingTournamentID
	}
	t, ok := s.tournaments[tournamentID]
	if !ok {
		return TournamentDetails{}, ErrTournamentNotFound
	}
	return s.details(t), nil
}

func (s *Snapshot) ListGames(username string, page, pageSize int) ([]GameResult, error) {
	if err := s.checkListing(username, page, pageSize); err != nil {
		return nil, err
	}
	ids := s.gameIndex.Page(username, page, pageSize)
	games := make([]GameResult, 0, len(ids))
	for _, id := range ids {
		games = append(games, s.games[id].clone())
	}
	return games, nil
}

func (s *Snapshot) ListTournaments(username string, page, pageSize int) ([]TournamentDetails, error) {
	if err := s.checkListing(username, page, pageSize); err != nil {
		return nil, err
	}
	ids := s.tournamentIndex.Page(username, page, pageSize)
	tournaments := make([]TournamentDetails, 0, len(ids))
	for _, id := range ids {
		tournaments = append(tournaments, s.details(s.tournaments[id]))
	}
	return tournaments, nil
}

func (s *Snapshot) Counts() Counts {
	return Counts{
		Users:       len(s.users),
		Games:       len(s.games),
		Tournaments: len(s.tournaments),
	}
}

// Users returns every user in configuration order.
func (s *Snapshot) Users() []UserStats {
	users := make([]UserStats, 0, len(s.userOrder))
	for _, name := range s.userOrder {
		users = append(users, s.users[name].clone())
	}
	return users
}

// Games returns every game in synthesis order.
func (s *Snapshot) Games() []GameResult {
	games := make([]GameResult, 0, len(s.gameOrder))
	for _, id := range s.gameOrder {
		games = append(games, s.games[id].clone())
	}
	return games
}

// Tournaments returns every tournament in synthesis order, with raw game ids.
func (s *Snapshot) Tournaments() []Tournament {
	tournaments := make([]Tournament, 0, len(s.tournamentOrder))
	for _, id := range s.tournamentOrder {
		tournaments = append(tournaments, s.tournaments[id].clone())
	}
	return tournaments
}

func (s *Snapshot) checkListing(username string, page, pageSize int) error {
	if _, ok := s.users[username]; !ok {
		return ErrUserNotFound
	}
	if page < 1 {
		return ErrInvalidPage
	}
	if pageSize < 1 {
		return ErrInvalidPageSize
	}
	return nil
}

// details expands the tournament's game ids into full results.
func (s *Snapshot) details(t Tournament) TournamentDetails {
	games := make([]GameResult, 0, len(t.GameIDs))
	for _, id := range t.GameIDs {
		games = append(games, s.games[id].clone())
	}
	return TournamentDetails{
		Date:         t.Date,
		TournamentID: t.TournamentID,
		Games:        games,
		Players:      append([]string{}, t.Players...),
	}
}
